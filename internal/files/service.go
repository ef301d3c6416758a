package files

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Service contains business logic for stored files.
type Service struct {
	Repo FilesRepo
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo FilesRepo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// Save validates and stores a file.
func (s *Service) Save(ctx context.Context, owner, filename, contentType string, data []byte) (File, error) {
	if err := validate(filename, contentType, data); err != nil {
		return File{}, err
	}
	now := s.now().UTC()
	f := File{
		Owner:       strings.TrimSpace(owner),
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.Repo.Create(ctx, f)
}

func validate(filename, contentType string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: File is empty", ErrInvalidInput)
	}
	if len(data) > MaxFileSize {
		return fmt.Errorf("%w: File size exceeds maximum limit of %dMB", ErrInvalidInput, MaxFileSize>>20)
	}
	if !AllowedContentType(contentType) {
		return fmt.Errorf("%w: File type not supported. Allowed types: PDF, DOC, DOCX, XLS, XLSX, PPT, PPTX, TXT", ErrInvalidInput)
	}
	if strings.TrimSpace(filename) == "" {
		return fmt.Errorf("%w: Invalid filename", ErrInvalidInput)
	}
	return nil
}

// Find returns a file with its payload.
func (s *Service) Find(ctx context.Context, id int64) (File, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListByOwner returns an owner's files newest first.
func (s *Service) ListByOwner(ctx context.Context, owner string) ([]File, error) {
	return s.Repo.ListByOwner(ctx, owner)
}

// Delete removes a file.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}
