package resumes

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/shared/server/middleware"
	"resume-screener/internal/shared/server/respond"
	"resume-screener/internal/users"
)

const maxUploadSize = 15 << 20 // 15MB, matches the upload form limit

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the authenticated router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.upload)
	rg.GET("/resumes/mine", h.mine)
	rg.GET("/resumes", middleware.RequireRoles(users.RoleAdmin, users.RoleRecruiter), h.list)
	rg.POST("/resumes/compare", h.compare)
	rg.GET("/resumes/:id", h.get)
	rg.GET("/resumes/:id/versions", h.versions)
	rg.POST("/resumes/:id/cover-letter", h.coverLetter)
}

func actorFromContext(c *gin.Context) Actor {
	return Actor{
		ID:   middleware.UserIDFromContext(c),
		Role: middleware.UserRoleFromContext(c),
	}
}

func (h *Handler) upload(c *gin.Context) {
	actor := actorFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	name := c.PostForm("name")
	jobDesc := c.PostForm("jobDesc")
	targetUser := c.PostForm("user")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", `PDF file is required under field "file"`, nil)
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

	mimeType := fileHeader.Header.Get("Content-Type")
	rec, raw, err := h.Svc.Submit(c.Request.Context(), actor, targetUser, name, jobDesc, data, mimeType)
	if err != nil {
		h.respondError(c, err, "failed to submit resume")
		return
	}
	c.Set("resumeId", rec.ID)

	respond.OK(c, gin.H{
		"message": "Your analysis is ready",
		"data":    toResponse(rec),
		"ai_raw":  raw,
	})
}

func (h *Handler) mine(c *gin.Context) {
	actor := actorFromContext(c)
	f := filterFromQuery(c, false)

	recs, err := h.Svc.Mine(c.Request.Context(), actor, f)
	if err != nil {
		h.respondError(c, err, "failed to list resumes")
		return
	}
	respond.OK(c, gin.H{
		"count": len(recs),
		"data":  toResponses(recs),
	})
}

func (h *Handler) list(c *gin.Context) {
	actor := actorFromContext(c)
	f := filterFromQuery(c, true)

	page := intQuery(c, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := intQuery(c, "limit", 20)
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	recs, total, err := h.Svc.ListAll(c.Request.Context(), actor, f, limit, (page-1)*limit)
	if err != nil {
		h.respondError(c, err, "failed to list resumes")
		return
	}
	pages := (total + limit - 1) / limit
	respond.OK(c, gin.H{
		"total": total,
		"page":  page,
		"pages": pages,
		"data":  toResponses(recs),
	})
}

func (h *Handler) get(c *gin.Context) {
	actor := actorFromContext(c)
	rec, err := h.Svc.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to fetch resume")
		return
	}
	respond.OK(c, gin.H{"data": toResponse(rec)})
}

func (h *Handler) versions(c *gin.Context) {
	actor := actorFromContext(c)
	chain, err := h.Svc.Versions(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to fetch versions")
		return
	}
	respond.OK(c, gin.H{
		"count": len(chain),
		"data":  toResponses(chain),
	})
}

type compareRequest struct {
	IDs []string `json:"ids"`
}

func (h *Handler) compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	actor := actorFromContext(c)
	recs, err := h.Svc.Compare(c.Request.Context(), actor, req.IDs)
	if err != nil {
		h.respondError(c, err, "failed to compare resumes")
		return
	}
	respond.OK(c, gin.H{"data": toResponses(recs)})
}

type coverLetterRequest struct {
	Company string `json:"company"`
	Role    string `json:"role"`
	Tone    string `json:"tone"`
	Notes   string `json:"notes"`
}

func (h *Handler) coverLetter(c *gin.Context) {
	var req coverLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	actor := actorFromContext(c)
	text, err := h.Svc.CoverLetter(c.Request.Context(), actor, c.Param("id"), req.Company, req.Role, req.Tone, req.Notes)
	if err != nil {
		h.respondError(c, err, "failed to draft cover letter")
		return
	}
	respond.OK(c, gin.H{"coverLetter": text})
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "forbidden", nil)
	case errors.Is(err, ErrUpstream):
		respond.Error(c, http.StatusBadGateway, "upstream_error", "AI service failure", nil)
	case errors.Is(err, ErrVersionConflict):
		respond.Error(c, http.StatusConflict, "conflict", "concurrent submission for this resume name, retry", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func filterFromQuery(c *gin.Context, staff bool) Filter {
	f := Filter{
		Q:        c.Query("q"),
		Keywords: ParseKeywords(c.Query("keywords")),
	}
	if v, ok := intQueryOK(c, "minScore"); ok {
		f.MinScore = &v
	}
	if v, ok := intQueryOK(c, "maxScore"); ok {
		f.MaxScore = &v
	}
	if t, ok := dateQuery(c, "fromDate", false); ok {
		f.From = &t
	}
	if t, ok := dateQuery(c, "toDate", true); ok {
		f.To = &t
	}
	if staff {
		f.UserID = c.Query("user")
	}
	return f
}

func intQuery(c *gin.Context, key string, def int) int {
	if v, ok := intQueryOK(c, key); ok {
		return v
	}
	return def
}

func intQueryOK(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// dateQuery accepts RFC3339 or a bare date. A bare to-date covers its whole day.
func dateQuery(c *gin.Context, key string, endOfDay bool) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, true
}
