package files

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Ayush27641/ClarityVault-Ai/internal/extract"
	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/server/middleware"
	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/server/respond"
	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/util"
)

const maxUploadSize = MaxFileSize + 1<<20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches file routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/files")
	g.POST("/save", h.save)
	g.DELETE("/delete/:id", h.delete)
	g.GET("/find/:id", h.find)
	g.GET("/download/:id", h.download)
	g.GET("/findByUsername/:username", h.listByOwner)
	g.GET("/text/:id", h.text)
}

func (h *Handler) save(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusBadRequest, "validation_error", fmt.Sprintf("File size exceeds maximum limit of %dMB", MaxFileSize>>20), nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "File is empty", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	owner := firstNonBlank(c.PostForm("owner"), c.PostForm("username"), middleware.UsernameFromContext(c))
	saved, err := h.Svc.Save(c.Request.Context(), owner, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to save file: "+err.Error(), nil)
		}
		return
	}

	respond.OK(c, SavedResponse{
		Message:     "File saved successfully",
		ID:          saved.ID,
		Filename:    saved.Filename,
		ContentType: saved.ContentType,
		Owner:       saved.Owner,
	})
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "File not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to delete file: "+err.Error(), nil)
		}
		return
	}
	respond.OK(c, gin.H{"message": "File deleted successfully"})
}

func (h *Handler) find(c *gin.Context) {
	f, ok := h.load(c)
	if !ok {
		return
	}
	respond.OK(c, toResponse(f))
}

func (h *Handler) download(c *gin.Context) {
	f, ok := h.load(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, util.SanitizeFileName(f.Filename)))
	c.Data(http.StatusOK, f.ContentType, f.Data)
}

func (h *Handler) text(c *gin.Context) {
	f, ok := h.load(c)
	if !ok {
		return
	}
	text, err := extract.Text(c.Request.Context(), f.Data, f.ContentType, f.Filename)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupported):
			respond.Error(c, http.StatusBadRequest, "unsupported_type", "Text extraction supports PDF, DOCX, XLSX, PPTX and TXT files", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to extract text: "+err.Error(), nil)
		}
		return
	}
	respond.OK(c, gin.H{"id": f.ID, "filename": f.Filename, "text": text})
}

func (h *Handler) listByOwner(c *gin.Context) {
	owner := c.Param("username")
	list, err := h.Svc.ListByOwner(c.Request.Context(), owner)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to find files: "+err.Error(), nil)
		return
	}

	out := make([]FileResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toResponse(f))
	}
	respond.OK(c, OwnerFilesResponse{Files: out, TotalFiles: len(out), Username: owner})
}

func (h *Handler) load(c *gin.Context) (File, bool) {
	id, ok := parseID(c)
	if !ok {
		return File{}, false
	}
	f, err := h.Svc.Find(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "File not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to find file: "+err.Error(), nil)
		}
		return File{}, false
	}
	return f, true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file id", nil)
		return 0, false
	}
	return id, true
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
