package prompts

import (
	"embed"
	"strings"
	"text/template"
	"unicode/utf8"
)

//go:embed templates/*.txt
var templateFiles embed.FS

var catalog = template.Must(template.New("prompts").ParseFS(templateFiles, "templates/*.txt"))

// ShortTextLimit is the length under which AnalyzeText explains meaning
// instead of running the full structured analysis.
const ShortTextLimit = 500

type vars struct {
	Text         string
	Language     string
	DocumentType string
}

func render(name string, v vars) string {
	var b strings.Builder
	if err := catalog.ExecuteTemplate(&b, name+".txt", v); err != nil {
		// Templates are embedded and only reference fields of vars.
		panic(err)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// PDFTranslation asks for the attached PDF to be converted to language.
func PDFTranslation(language string) string {
	return render("pdf_translation", vars{Language: language})
}

// TextTranslation wraps free text with a translation instruction.
func TextTranslation(text, language string) string {
	return render("text_translation", vars{Text: text, Language: language})
}

// JargonExtraction requests SECTION/PAGE/SUMMARY records separated by "---".
func JargonExtraction(language string) string {
	return render("jargon_extraction", vars{Language: language})
}

func DocumentType() string {
	return render("document_type", vars{})
}

// HarmfulTerms requests the six-label harmful term records that
// processing.ParseHarmfulTerms understands.
func HarmfulTerms() string {
	return render("harmful_terms", vars{})
}

func ContractAlternatives() string {
	return render("contract_alternatives", vars{})
}

func LoanAnalysis() string {
	return render("loan_analysis", vars{})
}

// AnalyzeText picks the meaning explanation for short text or when the
// document type asks for a definition, else the full structured analysis.
func AnalyzeText(text, language, documentType string) string {
	v := vars{Text: text, Language: language, DocumentType: documentType}
	if wantsMeaning(text, documentType) {
		return render("analyze_meaning", v)
	}
	return render("analyze_full", v)
}

func wantsMeaning(text, documentType string) bool {
	dt := strings.ToLower(documentType)
	if strings.Contains(dt, "meaning") || strings.Contains(dt, "definition") || strings.Contains(dt, "explain") {
		return true
	}
	return utf8.RuneCountInString(text) < ShortTextLimit
}
