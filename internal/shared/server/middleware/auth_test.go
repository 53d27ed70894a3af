package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/shared/auth"
)

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth())
	router.GET("/api/v1/resumes/mine", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": UserIDFromContext(c),
			"role":   UserRoleFromContext(c),
		})
	})
	return router
}

func TestAuthRejectsMissingToken(t *testing.T) {
	router := authRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/mine", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	router := authRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/mine", nil)
	req.Header.Set("Authorization", "Token abc123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthSetsIdentityFromToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := authRouter()

	token, err := auth.SignJWT("user-1", "RECRUITER")
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/mine", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", resp.Code, resp.Body.String())
	}
	body := resp.Body.String()
	if !strings.Contains(body, "user-1") || !strings.Contains(body, "RECRUITER") {
		t.Fatalf("identity not propagated: %s", body)
	}
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	router := authRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/resumes/mine", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/staff",
		func(c *gin.Context) { c.Set("userRole", "CANDIDATE"); c.Next() },
		RequireRoles("ADMIN", "RECRUITER"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	router.GET("/staff-ok",
		func(c *gin.Context) { c.Set("userRole", "ADMIN"); c.Next() },
		RequireRoles("ADMIN", "RECRUITER"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/staff", nil))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for candidate, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/staff-ok", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", resp.Code)
	}
}
