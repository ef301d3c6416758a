package llm

import (
	"context"
	"errors"
)

// Gateway abstracts the generative-AI provider used by the processing pipeline.
type Gateway interface {
	// UploadFile hands the bytes to the provider and returns a reference that
	// later Generate calls can point at.
	UploadFile(ctx context.Context, data []byte, displayName, contentType string) (FileRef, error)
	// Generate runs a single prompt. ref may be nil for text-only prompts.
	Generate(ctx context.Context, ref *FileRef, prompt string) (Response, error)
}

// FileRef identifies a file previously uploaded to the provider.
type FileRef struct {
	URI      string
	MimeType string
}

var (
	// ErrUpload marks failures of the provider file handshake.
	ErrUpload = errors.New("file upload failed")
	// ErrGeneration marks failures of the content generation call.
	ErrGeneration = errors.New("content generation failed")
)
