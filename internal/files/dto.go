package files

// SavedResponse is returned after a successful save.
type SavedResponse struct {
	Message     string `json:"message"`
	ID          int64  `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Owner       string `json:"owner"`
}

// FileResponse describes a stored file without its payload.
type FileResponse struct {
	ID          int64  `json:"id"`
	Owner       string `json:"owner"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// OwnerFilesResponse lists an owner's files.
type OwnerFilesResponse struct {
	Files      []FileResponse `json:"files"`
	TotalFiles int            `json:"totalFiles"`
	Username   string         `json:"username"`
}

func toResponse(f File) FileResponse {
	return FileResponse{
		ID:          f.ID,
		Owner:       f.Owner,
		Filename:    f.Filename,
		ContentType: f.ContentType,
		Size:        f.Size,
	}
}
