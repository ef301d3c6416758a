package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ayush27641/ClarityVault-Ai/internal/extract"
	"github.com/Ayush27641/ClarityVault-Ai/internal/llm"
	"github.com/Ayush27641/ClarityVault-Ai/internal/llm/gemini"
	"github.com/Ayush27641/ClarityVault-Ai/internal/processing"
	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/config"
	"github.com/Ayush27641/ClarityVault-Ai/internal/videos"
)

func main() {
	cfg := config.Load()

	op := flag.String("op", processing.OpDocumentType, "Operation to run")
	filePath := flag.String("file", "", "Path to a PDF, DOCX or text file")
	text := flag.String("text", "", "Inline text for text operations (defaults to text extracted from -file)")
	language := flag.String("language", "English", "Target language")
	docType := flag.String("doc-type", "", "Document type label for analyze_text")
	title := flag.String("title", "", "Title for video search")
	outPath := flag.String("out", "", "Path to write JSON output (optional)")
	model := flag.String("model", cfg.GeminiModel, "Gemini model")
	flag.Parse()

	gateway, err := gemini.NewClient(cfg.GeminiAPIKey, *model, cfg.GeminiBaseURL, cfg.LLMTimeout)
	if err != nil {
		exitErr(err.Error())
	}
	ctx := context.Background()
	searcher, err := videos.NewClient(ctx, cfg.YouTubeAPIKey, cfg.YouTubeBaseURL)
	if err != nil {
		exitErr(fmt.Sprintf("video client: %v", err))
	}
	svc := processing.NewService(gateway, searcher)

	var result any
	switch *op {
	case processing.OpPDFTranslation, processing.OpJargonExtraction, processing.OpDocumentType,
		processing.OpContractAlternatives, processing.OpLoanAnalysis, processing.OpHarmfulTerms:
		upload := readUpload(*filePath)
		result, err = runFileOp(ctx, svc, *op, upload, *language)
	case processing.OpTextTranslation, processing.OpAnalyzeText:
		input := *text
		if strings.TrimSpace(input) == "" {
			input = extractText(ctx, *filePath)
		}
		var res processing.TextResult
		if *op == processing.OpTextTranslation {
			res, err = svc.TranslateText(ctx, input, *language)
		} else {
			res, err = svc.AnalyzeText(ctx, input, *language, *docType)
		}
		if err == nil {
			result = textOutput(res)
		}
	case processing.OpVideoSearch:
		result, err = svc.SearchVideos(ctx, *title, *language)
	default:
		exitErr(fmt.Sprintf("unsupported operation: %s", *op))
	}
	if err != nil {
		exitErr(fmt.Sprintf("%s: %v", *op, err))
	}

	pretty, err := prettyJSON(result)
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}

	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
	if len(pretty) == 0 || pretty[len(pretty)-1] != '\n' {
		_, _ = os.Stdout.Write([]byte("\n"))
	}
}

func runFileOp(ctx context.Context, svc *processing.Service, op string, upload *processing.Upload, language string) (any, error) {
	switch op {
	case processing.OpPDFTranslation:
		resp, err := svc.TranslatePDF(ctx, upload, language)
		return rawOrNil(resp, err)
	case processing.OpJargonExtraction:
		resp, err := svc.ExtractJargon(ctx, upload, language)
		return rawOrNil(resp, err)
	case processing.OpDocumentType:
		resp, err := svc.DocumentType(ctx, upload)
		return rawOrNil(resp, err)
	case processing.OpContractAlternatives:
		resp, err := svc.ContractAlternatives(ctx, upload)
		return rawOrNil(resp, err)
	case processing.OpLoanAnalysis:
		resp, err := svc.AnalyzeLoan(ctx, upload)
		return rawOrNil(resp, err)
	default:
		return svc.HarmfulTerms(ctx, upload)
	}
}

func rawOrNil(resp llm.Response, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return resp.Raw(), nil
}

func textOutput(res processing.TextResult) any {
	if res.Found {
		return res.Text
	}
	return res.Response.Raw()
}

func readUpload(path string) *processing.Upload {
	if strings.TrimSpace(path) == "" {
		exitErr("file path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		exitErr(fmt.Sprintf("read file: %v", err))
	}
	return &processing.Upload{
		Filename:    filepath.Base(path),
		ContentType: mimeFromExt(path),
		Data:        data,
	}
}

func extractText(ctx context.Context, path string) string {
	upload := readUpload(path)
	text, err := extract.Text(ctx, upload.Data, upload.ContentType, upload.Filename)
	if err != nil {
		exitErr(fmt.Sprintf("extract text: %v", err))
	}
	return text
}

func mimeFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return processing.PDFContentType
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

func prettyJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
