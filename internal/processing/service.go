package processing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Ayush27641/ClarityVault-Ai/internal/llm"
	"github.com/Ayush27641/ClarityVault-Ai/internal/llm/prompts"
	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/metrics"
	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/telemetry"
	"github.com/Ayush27641/ClarityVault-Ai/internal/videos"
)

const errOnlyPDF = "Only PDF files are supported"

// Service runs document and text analyses against the AI gateway.
type Service struct {
	Gateway llm.Gateway
	Videos  videos.Searcher
	now     func() time.Time
}

// NewService constructs a Service.
func NewService(gateway llm.Gateway, searcher videos.Searcher) *Service {
	return &Service{Gateway: gateway, Videos: searcher, now: time.Now}
}

// run tracks one request through the pipeline stages.
type run struct {
	op      string
	stage   Stage
	started time.Time
	svc     *Service
}

func (s *Service) begin(op string) *run {
	return &run{op: op, stage: StageReceived, started: s.now(), svc: s}
}

func (r *run) advance(st Stage) { r.stage = st }

func (r *run) elapsed() time.Duration {
	return r.svc.now().Sub(r.started)
}

// fail closes the run and wraps err with the stage it failed at.
func (r *run) fail(err error) error {
	runErr := &RunError{Operation: r.op, Stage: r.stage, Err: err}
	outcome := metrics.OutcomeFailed
	if terminalFor(err) == StageRejected {
		outcome = metrics.OutcomeRejected
	}
	metrics.ObservePipeline(r.op, outcome, r.elapsed())

	fields := map[string]any{
		"operation":  r.op,
		"transition": runErr.Transition(),
		"error":      err,
	}
	if outcome == metrics.OutcomeRejected {
		telemetry.Info("processing.rejected", fields)
	} else {
		telemetry.Error("processing.failed", fields)
	}
	return runErr
}

func (r *run) done() {
	from := r.stage
	r.stage = StageResponded
	elapsed := r.elapsed()
	metrics.ObservePipeline(r.op, metrics.OutcomeResponded, elapsed)
	telemetry.Info("processing.responded", map[string]any{
		"operation":   r.op,
		"transition":  string(from) + "->" + string(StageResponded),
		"duration_ms": elapsed.Milliseconds(),
	})
}

func validatePDF(file *Upload) error {
	if file == nil || file.ContentType != PDFContentType {
		return &ValidationError{Message: errOnlyPDF}
	}
	return nil
}

// submitPDF uploads the file and runs prompt against it. Provider calls are
// detached from request cancellation.
func (s *Service) submitPDF(ctx context.Context, r *run, file *Upload, prompt string) (llm.Response, error) {
	if err := validatePDF(file); err != nil {
		return nil, r.fail(err)
	}
	r.advance(StageValidated)
	r.advance(StagePrompted)

	ctx = context.WithoutCancel(ctx)
	ref, err := s.Gateway.UploadFile(ctx, file.Data, file.Filename, file.ContentType)
	if err != nil {
		return nil, r.fail(err)
	}
	resp, err := s.Gateway.Generate(ctx, &ref, prompt)
	if err != nil {
		return nil, r.fail(err)
	}
	r.advance(StageSubmitted)
	return resp, nil
}

func (s *Service) passthrough(ctx context.Context, op string, file *Upload, prompt string) (llm.Response, error) {
	r := s.begin(op)
	resp, err := s.submitPDF(ctx, r, file, prompt)
	if err != nil {
		return nil, err
	}
	r.advance(StageNormalized)
	r.done()
	return resp, nil
}

// TranslatePDF converts the PDF to language and returns the provider reply.
func (s *Service) TranslatePDF(ctx context.Context, file *Upload, language string) (llm.Response, error) {
	return s.passthrough(ctx, OpPDFTranslation, file, prompts.PDFTranslation(language))
}

// ExtractJargon summarizes the key sections of the PDF in language.
func (s *Service) ExtractJargon(ctx context.Context, file *Upload, language string) (llm.Response, error) {
	return s.passthrough(ctx, OpJargonExtraction, file, prompts.JargonExtraction(language))
}

// DocumentType classifies the PDF.
func (s *Service) DocumentType(ctx context.Context, file *Upload) (llm.Response, error) {
	return s.passthrough(ctx, OpDocumentType, file, prompts.DocumentType())
}

// ContractAlternatives audits a contract and proposes alternatives.
func (s *Service) ContractAlternatives(ctx context.Context, file *Upload) (llm.Response, error) {
	return s.passthrough(ctx, OpContractAlternatives, file, prompts.ContractAlternatives())
}

// AnalyzeLoan runs the EMI and repayment analysis on a loan document.
func (s *Service) AnalyzeLoan(ctx context.Context, file *Upload) (llm.Response, error) {
	return s.passthrough(ctx, OpLoanAnalysis, file, prompts.LoanAnalysis())
}

// HarmfulTerms audits the PDF and returns the flagged terms. Parsing never
// fails; an unusable reply degrades to a single descriptive record.
func (s *Service) HarmfulTerms(ctx context.Context, file *Upload) ([]any, error) {
	r := s.begin(OpHarmfulTerms)
	resp, err := s.submitPDF(ctx, r, file, prompts.HarmfulTerms())
	if err != nil {
		return nil, err
	}
	terms := ParseHarmfulTerms(resp)
	r.advance(StageNormalized)
	r.done()
	return terms, nil
}

// TranslateText translates free text into language.
func (s *Service) TranslateText(ctx context.Context, text, language string) (TextResult, error) {
	r := s.begin(OpTextTranslation)
	if isBlank(text) || isBlank(language) {
		return TextResult{}, r.fail(&ValidationError{Message: "Text and language parameters are required"})
	}
	r.advance(StageValidated)
	return s.generateText(ctx, r, prompts.TextTranslation(text, language))
}

// AnalyzeText explains or fully analyzes free text depending on its length
// and the requested document type.
func (s *Service) AnalyzeText(ctx context.Context, text, language, documentType string) (TextResult, error) {
	r := s.begin(OpAnalyzeText)
	if isBlank(text) || isBlank(language) || isBlank(documentType) {
		return TextResult{}, r.fail(&ValidationError{Message: "Text, language, and documentType parameters are required"})
	}
	r.advance(StageValidated)
	return s.generateText(ctx, r, prompts.AnalyzeText(text, language, documentType))
}

func (s *Service) generateText(ctx context.Context, r *run, prompt string) (TextResult, error) {
	r.advance(StagePrompted)
	resp, err := s.Gateway.Generate(context.WithoutCancel(ctx), nil, prompt)
	if err != nil {
		return TextResult{}, r.fail(err)
	}
	r.advance(StageSubmitted)

	text, found := llm.ExtractText(resp)
	r.advance(StageNormalized)
	r.done()
	return TextResult{Response: resp, Text: text, Found: found}, nil
}

// SearchVideos finds tutorial videos for a title. It only fails validation.
func (s *Service) SearchVideos(ctx context.Context, title, language string) ([]string, error) {
	r := s.begin(OpVideoSearch)
	if isBlank(title) || isBlank(language) {
		return nil, r.fail(&ValidationError{Message: "Title and language parameters are required"})
	}
	r.advance(StageValidated)
	r.advance(StageSubmitted)
	links := s.Videos.Search(context.WithoutCancel(ctx), title, language)
	r.advance(StageNormalized)
	r.done()
	return links, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidation reports whether err rejected the request before any provider call.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
