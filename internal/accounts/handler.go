package accounts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/server/respond"
	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/telemetry"
)

const badCredentials = "Either Wrong credentials or Internal server error "

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.register)
	rg.GET("/login", h.login)
	rg.GET("/data/:username", h.data)
	rg.PUT("/updateRegistration", h.update)
	rg.GET("/getAllUsers", h.list)
	rg.GET("/getName", h.name)
}

func (h *Handler) register(c *gin.Context) {
	var reg Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		respond.Message(c, http.StatusInternalServerError, "Could not register user")
		return
	}
	if _, err := h.Svc.Register(c.Request.Context(), reg); err != nil {
		if errors.Is(err, ErrDuplicateAccount) {
			respond.Message(c, http.StatusBadRequest, "Username is already in use")
			return
		}
		telemetry.Error("accounts.register_failed", map[string]any{"email": reg.Email, "error": err.Error()})
		respond.Message(c, http.StatusInternalServerError, "Could not register user")
		return
	}
	respond.Empty(c, http.StatusOK)
}

func (h *Handler) login(c *gin.Context) {
	token, err := h.Svc.Login(c.Request.Context(), c.Query("email"), c.Query("password"))
	if err != nil {
		respond.Message(c, http.StatusBadRequest, badCredentials)
		return
	}
	respond.OK(c, token)
}

func (h *Handler) data(c *gin.Context) {
	a, err := h.Svc.FindByEmail(c.Request.Context(), c.Param("username"))
	if err != nil {
		telemetry.Warn("accounts.lookup_failed", map[string]any{"email": c.Param("username"), "error": err.Error()})
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	respond.OK(c, a)
}

func (h *Handler) update(c *gin.Context) {
	var reg Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		respond.Message(c, http.StatusInternalServerError, "Could not update user try again later")
		return
	}
	if _, err := h.Svc.Update(c.Request.Context(), reg); err != nil {
		telemetry.Error("accounts.update_failed", map[string]any{"email": reg.Email, "error": err.Error()})
		respond.Message(c, http.StatusInternalServerError, "Could not update user try again later")
		return
	}
	respond.Empty(c, http.StatusOK)
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		respond.Message(c, http.StatusInternalServerError, "Failed to get users")
		return
	}
	respond.OK(c, list)
}

func (h *Handler) name(c *gin.Context) {
	name, found, err := h.Svc.DisplayName(c.Request.Context(), c.Query("username"))
	if err != nil {
		respond.Message(c, http.StatusInternalServerError, "Failed to get name")
		return
	}
	if !found {
		respond.OK(c, nil)
		return
	}
	respond.OK(c, name)
}
