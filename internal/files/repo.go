package files

import "context"

// FilesRepo defines persistence operations for stored files.
type FilesRepo interface {
	Create(ctx context.Context, f File) (File, error)
	GetByID(ctx context.Context, id int64) (File, error)
	// ListByOwner returns metadata only; Data is left nil.
	ListByOwner(ctx context.Context, owner string) ([]File, error)
	Delete(ctx context.Context, id int64) error
}
