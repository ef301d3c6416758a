package processing

import (
	"errors"
	"fmt"

	"github.com/Ayush27641/ClarityVault-Ai/internal/llm"
)

// PDFContentType is the only content type accepted by file operations.
const PDFContentType = "application/pdf"

// Upload is a file received with a processing request. It is never stored.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Stage is a step of a processing run.
type Stage string

const (
	StageReceived   Stage = "RECEIVED"
	StageValidated  Stage = "VALIDATED"
	StagePrompted   Stage = "PROMPTED"
	StageSubmitted  Stage = "SUBMITTED"
	StageNormalized Stage = "NORMALIZED"
	StageResponded  Stage = "RESPONDED"
	StageRejected   Stage = "REJECTED"
	StageFailed     Stage = "FAILED"
)

// Operation names, also used as metric labels.
const (
	OpPDFTranslation       = "pdf_translation"
	OpTextTranslation      = "text_translation"
	OpJargonExtraction     = "pdf_jargon_extraction"
	OpDocumentType         = "find_document_type"
	OpHarmfulTerms         = "analyze_harmful_terms"
	OpContractAlternatives = "analyze_contract_alternatives"
	OpLoanAnalysis         = "analyze_loan_document"
	OpAnalyzeText          = "analyze_text"
	OpVideoSearch          = "search"
)

// ValidationError rejects a request before any provider call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// RunError reports the stage at which a run failed.
type RunError struct {
	Operation string
	Stage     Stage
	Err       error
}

func (e *RunError) Error() string { return e.Err.Error() }

func (e *RunError) Unwrap() error { return e.Err }

// Transition renders the final stage change, e.g. "SUBMITTED->FAILED".
func (e *RunError) Transition() string {
	return fmt.Sprintf("%s->%s", e.Stage, terminalFor(e.Err))
}

func terminalFor(err error) Stage {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return StageRejected
	}
	return StageFailed
}

// TextResult carries the extracted text of a reply when the envelope had one.
type TextResult struct {
	Response llm.Response
	Text     string
	Found    bool
}
