package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/resumes"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/server/middleware"
	"resume-screener/internal/shared/server/respond"
	"resume-screener/internal/shares"
	"resume-screener/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config        config.Config
	UsersHandler  *users.Handler
	ResumeHandler *resumes.Handler
	ShareHandler  *shares.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	deps.UsersHandler.RegisterPublicRoutes(api)
	deps.ShareHandler.RegisterPublicRoutes(api)

	authed := api.Group("")
	authed.Use(middleware.Auth())
	deps.UsersHandler.RegisterRoutes(authed)
	deps.ResumeHandler.RegisterRoutes(authed)
	deps.ShareHandler.RegisterRoutes(authed)

	return r
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
