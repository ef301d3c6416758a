package health

import (
	"github.com/gin-gonic/gin"

	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/health")
	g.GET("", h.status)
	g.GET("/detailed", h.detailed)
}

func (h *Handler) status(c *gin.Context) {
	respond.OK(c, h.Svc.Status())
}

func (h *Handler) detailed(c *gin.Context) {
	respond.OK(c, h.Svc.Detailed(c.Request.Context()))
}
