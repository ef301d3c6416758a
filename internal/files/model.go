package files

import (
	"errors"
	"time"
)

// File is a stored upload. It is immutable once created.
type File struct {
	ID          int64
	Owner       string
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MaxFileSize is the largest payload accepted by Save.
const MaxFileSize = 10 << 20 // 10MB

// AllowedContentType reports whether ct may be stored.
func AllowedContentType(ct string) bool {
	switch ct {
	case "application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-powerpoint",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation",
		"text/plain":
		return true
	}
	return false
}

var (
	ErrNotFound     = errors.New("file not found")
	ErrInvalidInput = errors.New("invalid input")
)
