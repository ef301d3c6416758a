package processing

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ayush27641/ClarityVault-Ai/internal/llm"
	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/server/middleware"
	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/server/respond"
)

const (
	maxFileSize   = 10 << 20 // 10MB
	maxUploadSize = maxFileSize + 1<<20
)

const respondedTransition = "NORMALIZED->RESPONDED"

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches processing routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/file-processing")
	g.POST("/pdf_translation", h.translatePDF)
	g.POST("/text_translation", h.translateText)
	g.POST("/pdf_jargon_extraction", h.extractJargon)
	g.GET("/search", h.searchVideos)
	g.POST("/find_Document_type", h.documentType)
	g.POST("/analyze_text", h.analyzeText)
	g.POST("/analyze_harmful_terms", h.harmfulTerms)
	g.POST("/analyze_contract_alternatives", h.contractAlternatives)
	g.POST("/analyze_loan_document", h.analyzeLoan)
}

type textRequest struct {
	Text         string `form:"text" json:"text"`
	Language     string `form:"language" json:"language"`
	DocumentType string `form:"documentType" json:"documentType"`
}

func (h *Handler) translatePDF(c *gin.Context) {
	file, ok := readUpload(c)
	if !ok {
		return
	}
	resp, err := h.Svc.TranslatePDF(c.Request.Context(), file, c.PostForm("language"))
	if err != nil {
		fail(c, "Error processing PDF", err)
		return
	}
	writeRaw(c, resp)
}

func (h *Handler) extractJargon(c *gin.Context) {
	file, ok := readUpload(c)
	if !ok {
		return
	}
	resp, err := h.Svc.ExtractJargon(c.Request.Context(), file, c.PostForm("language"))
	if err != nil {
		fail(c, "Error extracting jargon from PDF", err)
		return
	}
	writeRaw(c, resp)
}

func (h *Handler) documentType(c *gin.Context) {
	file, ok := readUpload(c)
	if !ok {
		return
	}
	resp, err := h.Svc.DocumentType(c.Request.Context(), file)
	if err != nil {
		fail(c, "Error processing PDF", err)
		return
	}
	writeRaw(c, resp)
}

func (h *Handler) contractAlternatives(c *gin.Context) {
	file, ok := readUpload(c)
	if !ok {
		return
	}
	resp, err := h.Svc.ContractAlternatives(c.Request.Context(), file)
	if err != nil {
		fail(c, "Error analyzing contract and finding alternatives", err)
		return
	}
	writeRaw(c, resp)
}

func (h *Handler) analyzeLoan(c *gin.Context) {
	file, ok := readUpload(c)
	if !ok {
		return
	}
	resp, err := h.Svc.AnalyzeLoan(c.Request.Context(), file)
	if err != nil {
		fail(c, "Error analyzing loan document", err)
		return
	}
	writeRaw(c, resp)
}

func (h *Handler) harmfulTerms(c *gin.Context) {
	file, ok := readUpload(c)
	if !ok {
		return
	}
	terms, err := h.Svc.HarmfulTerms(c.Request.Context(), file)
	if err != nil {
		fail(c, "Error analyzing harmful terms in PDF", err)
		return
	}
	c.Set(middleware.PipelineKey, respondedTransition)
	respond.JSON(c, http.StatusOK, terms)
}

func (h *Handler) translateText(c *gin.Context) {
	var req textRequest
	_ = c.ShouldBind(&req)
	result, err := h.Svc.TranslateText(c.Request.Context(), req.Text, req.Language)
	if err != nil {
		fail(c, "Error translating text", err)
		return
	}
	writeText(c, result)
}

func (h *Handler) analyzeText(c *gin.Context) {
	var req textRequest
	_ = c.ShouldBind(&req)
	result, err := h.Svc.AnalyzeText(c.Request.Context(), req.Text, req.Language, req.DocumentType)
	if err != nil {
		fail(c, "Error analyzing text", err)
		return
	}
	writeText(c, result)
}

func (h *Handler) searchVideos(c *gin.Context) {
	links, err := h.Svc.SearchVideos(c.Request.Context(), c.Query("title"), c.Query("language"))
	if err != nil {
		fail(c, "", err)
		return
	}
	c.Set(middleware.PipelineKey, respondedTransition)
	respond.JSON(c, http.StatusOK, links)
}

// readUpload returns the "file" part. A missing part yields nil so the
// service can reject it like any other non-PDF upload.
func readUpload(c *gin.Context) (*Upload, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Message(c, http.StatusBadRequest, "File size exceeds the 10MB limit")
			return nil, false
		}
		return nil, true
	}
	if fileHeader.Size > maxFileSize {
		respond.Message(c, http.StatusBadRequest, "File size exceeds the 10MB limit")
		return nil, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Message(c, http.StatusBadRequest, "Unable to read uploaded file")
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respond.Message(c, http.StatusBadRequest, "Unable to read uploaded file")
		return nil, false
	}
	return &Upload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, true
}

func writeRaw(c *gin.Context, resp llm.Response) {
	c.Set(middleware.PipelineKey, respondedTransition)
	c.Data(http.StatusOK, "application/json; charset=utf-8", resp.Raw())
}

func writeText(c *gin.Context, result TextResult) {
	if !result.Found {
		writeRaw(c, result.Response)
		return
	}
	c.Set(middleware.PipelineKey, respondedTransition)
	respond.JSON(c, http.StatusOK, result.Text)
}

// fail maps a run error to a JSON string response. PDF rejections, and any
// validation error when prefix is empty, are a bare 400. Missing text
// parameters keep the operation prefix and answer 500 like upstream faults.
func fail(c *gin.Context, prefix string, err error) {
	var runErr *RunError
	if errors.As(err, &runErr) {
		c.Set(middleware.PipelineKey, runErr.Transition())
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		if ve.Message == errOnlyPDF || prefix == "" {
			respond.Message(c, http.StatusBadRequest, ve.Message)
			return
		}
		respond.Message(c, http.StatusInternalServerError, fmt.Sprintf("%s: %s", prefix, ve.Message))
		return
	}
	msg := err.Error()
	if prefix != "" {
		msg = fmt.Sprintf("%s: %s", prefix, msg)
	}
	respond.Message(c, http.StatusInternalServerError, msg)
}
