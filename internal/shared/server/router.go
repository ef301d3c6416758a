package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/config"
	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/metrics"
	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/server/middleware"
	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/server/respond"
)

// RouteRegistrar is implemented by every feature handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries the handlers mounted by NewRouter.
type RouterDeps struct {
	Config            config.Config
	Version           string
	Tokens            middleware.TokenVerifier
	AccountHandler    RouteRegistrar
	FileHandler       RouteRegistrar
	ProcessingHandler RouteRegistrar
	HealthHandler     RouteRegistrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Bearer(deps.Tokens),
	)

	r.GET("/", func(c *gin.Context) {
		respond.OK(c, gin.H{
			"message":   "Backend API is running!",
			"version":   deps.Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})
	r.GET("/metrics", metrics.Handler())
	r.NoRoute(func(c *gin.Context) {
		respond.JSON(c, http.StatusNotFound, gin.H{
			"message": "Route not found",
			"path":    c.Request.URL.RequestURI(),
		})
	})

	root := r.Group("")
	mount(root, deps.AccountHandler)

	api := r.Group("/api")
	registerMeRoutes(api)
	mount(api, deps.HealthHandler)
	mount(api, deps.FileHandler)
	mount(api, deps.ProcessingHandler)

	return r
}

func mount(rg *gin.RouterGroup, h RouteRegistrar) {
	if h != nil {
		h.RegisterRoutes(rg)
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
