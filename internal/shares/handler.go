package shares

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/resumes"
	"resume-screener/internal/shared/server/middleware"
	"resume-screener/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches share routes to the authenticated router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/:id/share", h.create)
	rg.GET("/shares", h.list)
	rg.DELETE("/shares/:token", h.revoke)
}

// RegisterPublicRoutes attaches the unauthenticated resolve route.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/share/:token", h.resolve)
}

type createRequest struct {
	ExpiresInDays int    `json:"expiresInDays"`
	AllowDownload bool   `json:"allowDownload"`
	Note          string `json:"note"`
}

func (h *Handler) create(c *gin.Context) {
	// Body is optional; defaults produce a never-expiring link.
	var req createRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}

	actor := resumes.Actor{
		ID:   middleware.UserIDFromContext(c),
		Role: middleware.UserRoleFromContext(c),
	}

	link, url, err := h.Svc.Create(c.Request.Context(), actor, c.Param("id"), req.ExpiresInDays, req.AllowDownload, req.Note)
	if err != nil {
		h.respondError(c, err, "failed to create share link")
		return
	}

	respond.Created(c, gin.H{
		"token":         link.Token,
		"url":           url,
		"expiresAt":     link.ExpiresAt,
		"allowDownload": link.AllowDownload,
		"note":          link.Note,
	})
}

func (h *Handler) list(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	links, err := h.Svc.List(c.Request.Context(), ownerID)
	if err != nil {
		h.respondError(c, err, "failed to list share links")
		return
	}

	out := make([]gin.H, 0, len(links))
	for _, link := range links {
		out = append(out, gin.H{
			"token":         link.Token,
			"url":           h.Svc.PublicURL(link.Token),
			"resume":        link.ResumeID,
			"expiresAt":     link.ExpiresAt,
			"allowDownload": link.AllowDownload,
			"note":          link.Note,
			"createdAt":     link.CreatedAt,
		})
	}
	respond.OK(c, gin.H{"count": len(out), "data": out})
}

func (h *Handler) revoke(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	if err := h.Svc.Revoke(c.Request.Context(), ownerID, c.Param("token")); err != nil {
		h.respondError(c, err, "failed to revoke share link")
		return
	}
	respond.OK(c, gin.H{"message": "Share link revoked"})
}

func (h *Handler) resolve(c *gin.Context) {
	resolved, err := h.Svc.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.respondError(c, err, "failed to resolve share link")
		return
	}

	rec := resolved.Resume
	respond.OK(c, gin.H{
		"data": gin.H{
			"name":      rec.Name,
			"jobDesc":   rec.JobDesc,
			"score":     rec.Score,
			"feedback":  rec.Feedback,
			"version":   rec.Version,
			"createdAt": rec.CreatedAt,
		},
		"allowDownload": resolved.AllowDownload,
		"note":          resolved.Note,
		"sharedAt":      resolved.SharedAt.Format(time.RFC3339),
	})
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "share link not found", nil)
	case errors.Is(err, ErrExpired):
		respond.Error(c, http.StatusGone, "expired", "share link expired", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "forbidden", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
