package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/server/middleware"
	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/server/respond"
)

// registerMeRoutes attaches the /me endpoint.
func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", meHandler)
}

func meHandler(c *gin.Context) {
	username := middleware.UsernameFromContext(c)
	if username == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"username": username})
}
