package processing

import (
	"encoding/json"
	"strings"

	"github.com/Ayush27641/ClarityVault-Ai/internal/llm"
)

// Record is one flagged term. Keys are the labels without the trailing colon.
type Record map[string]any

const (
	noHarmfulTerms = "NO HARMFUL TERMS IDENTIFIED"
	termSeparator  = "---"
	keyTerm        = "HARMFUL TERM"
)

var termLabels = []string{
	"HARMFUL TERM",
	"PAGE",
	"RISK LEVEL",
	"DESCRIPTION",
	"POTENTIAL IMPACT",
	"RECOMMENDATION",
}

// ParseHarmfulTerms normalizes a harmful-terms reply. It never fails:
// a JSON array is returned element for element, a bare JSON object is
// wrapped, labeled text is parsed into Records, and malformed JSON becomes
// a single Record carrying the raw text.
func ParseHarmfulTerms(resp llm.Response) []any {
	text, _ := llm.ExtractText(resp)
	return parseHarmfulText(text)
}

func parseHarmfulText(text string) []any {
	if text == "" || strings.Contains(text, noHarmfulTerms) {
		return []any{}
	}

	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		terms, err := decodeJSONTerms(trimmed)
		if err != nil {
			return []any{fallbackRecord(text)}
		}
		return terms
	}

	records := []any{}
	for _, segment := range strings.Split(text, termSeparator) {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		rec := Record{}
		for _, line := range strings.Split(segment, "\n") {
			line = strings.TrimSpace(line)
			for _, label := range termLabels {
				if value, ok := strings.CutPrefix(line, label+":"); ok {
					rec[label] = strings.TrimSpace(value)
					break
				}
			}
		}
		if _, ok := rec[keyTerm]; ok {
			records = append(records, rec)
		}
	}
	return records
}

func decodeJSONTerms(text string) ([]any, error) {
	if strings.HasPrefix(text, "{") {
		var rec Record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, err
		}
		return []any{rec}, nil
	}
	var terms []any
	if err := json.Unmarshal([]byte(text), &terms); err != nil {
		return nil, err
	}
	if terms == nil {
		terms = []any{}
	}
	return terms, nil
}

func fallbackRecord(raw string) Record {
	return Record{
		"HARMFUL TERM":     "Analysis Result",
		"DESCRIPTION":      raw,
		"PAGE":             "N/A",
		"RISK LEVEL":       "Unknown",
		"POTENTIAL IMPACT": "See description",
		"RECOMMENDATION":   "Review analysis manually",
	}
}
