package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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

// RegisterPublicRoutes attaches the unauthenticated auth routes.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
}

// RegisterRoutes attaches the authenticated auth routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.me)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	PhotoURL string `json:"photoUrl"`
	Role     string `json:"role"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, token, created, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.PhotoURL, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "name, email and a password of at least 6 characters are required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to register", nil)
		}
		return
	}

	payload := gin.H{
		"message": "Welcome Back",
		"user":    toResponse(user),
		"token":   token,
	}
	if created {
		payload["message"] = "Registered"
		respond.Created(c, payload)
		return
	}
	respond.OK(c, payload)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid credentials", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log in", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"message": "Logged in",
		"user":    toResponse(user),
		"token":   token,
	})
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.OK(c, gin.H{"user": toResponse(user)})
}

func toResponse(user User) gin.H {
	return gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"photoUrl":  user.PhotoURL,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
	}
}
