package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resume-screener/internal/shared/config"
)

type scriptedAI struct {
	reply string
}

func (a scriptedAI) Complete(ctx context.Context, prompt string) (string, error) {
	return a.reply, nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ENV", "dev")

	app, err := Build(config.Config{
		Env:             "dev",
		AIProvider:      "none",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		ShareBaseURL:    "http://localhost:5173",
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	app.ResumeService.AI = scriptedAI{reply: "Score: 82\nReason: Solid backend experience."}
	app.ResumeService.Extract = func(ctx context.Context, data []byte, mimeType string) (string, error) {
		return string(data), nil
	}
	return app
}

func doJSON(t *testing.T, app *App, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func registerUser(t *testing.T, app *App, name, email, role string) (id, token string) {
	t.Helper()
	w := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name":     name,
		"email":    email,
		"password": "secret1",
		"role":     role,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", email, w.Code, w.Body.String())
	}
	body := decode(t, w)
	user := body["user"].(map[string]any)
	return user["id"].(string), body["token"].(string)
}

func uploadResume(t *testing.T, app *App, token, name, jobDesc, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("name", name); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := mw.WriteField("jobDesc", jobDesc); err != nil {
		t.Fatalf("write field: %v", err)
	}
	fw, err := mw.CreateFormFile("file", "resume.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	w := doJSON(t, app, http.MethodGet, "/api/v1/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
}

func TestUploadAndFetchFlow(t *testing.T) {
	app := newTestApp(t)
	_, candidateToken := registerUser(t, app, "Ada", "ada@example.com", "CANDIDATE")
	_, adminToken := registerUser(t, app, "Root", "root@example.com", "ADMIN")
	_, otherToken := registerUser(t, app, "Eve", "eve@example.com", "CANDIDATE")

	w := uploadResume(t, app, candidateToken, "backend", "build APIs", "years of Go experience")
	if w.Code != http.StatusOK {
		t.Fatalf("upload: status %d body %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["message"] != "Your analysis is ready" {
		t.Fatalf("unexpected message %v", body["message"])
	}
	data := body["data"].(map[string]any)
	if data["score"].(float64) != 82 {
		t.Fatalf("expected score 82, got %v", data["score"])
	}
	if data["version"].(float64) != 1 {
		t.Fatalf("expected version 1, got %v", data["version"])
	}
	resumeID := data["id"].(string)

	// Resubmitting under the same name creates version 2.
	w = uploadResume(t, app, candidateToken, "backend", "build APIs", "even more Go experience")
	if w.Code != http.StatusOK {
		t.Fatalf("second upload: status %d body %s", w.Code, w.Body.String())
	}
	if v := decode(t, w)["data"].(map[string]any)["version"].(float64); v != 2 {
		t.Fatalf("expected version 2, got %v", v)
	}

	// Owner and staff can read, a foreign candidate cannot.
	if w := doJSON(t, app, http.MethodGet, "/api/v1/resumes/"+resumeID, candidateToken, nil); w.Code != http.StatusOK {
		t.Fatalf("owner get: status %d", w.Code)
	}
	if w := doJSON(t, app, http.MethodGet, "/api/v1/resumes/"+resumeID, adminToken, nil); w.Code != http.StatusOK {
		t.Fatalf("admin get: status %d", w.Code)
	}
	if w := doJSON(t, app, http.MethodGet, "/api/v1/resumes/"+resumeID, otherToken, nil); w.Code != http.StatusForbidden {
		t.Fatalf("foreign get: status %d", w.Code)
	}

	// Version history spans the whole chain from any anchor.
	w = doJSON(t, app, http.MethodGet, "/api/v1/resumes/"+resumeID+"/versions", candidateToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("versions: status %d body %s", w.Code, w.Body.String())
	}
	if count := decode(t, w)["count"].(float64); count != 2 {
		t.Fatalf("expected 2 versions, got %v", count)
	}
}

func TestStaffListRoleGate(t *testing.T) {
	app := newTestApp(t)
	_, candidateToken := registerUser(t, app, "Ada", "ada@example.com", "CANDIDATE")
	_, recruiterToken := registerUser(t, app, "Rex", "rex@example.com", "RECRUITER")

	if w := uploadResume(t, app, candidateToken, "backend", "build APIs", "go"); w.Code != http.StatusOK {
		t.Fatalf("upload: status %d", w.Code)
	}

	if w := doJSON(t, app, http.MethodGet, "/api/v1/resumes", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous list: status %d", w.Code)
	}
	if w := doJSON(t, app, http.MethodGet, "/api/v1/resumes", candidateToken, nil); w.Code != http.StatusForbidden {
		t.Fatalf("candidate list: status %d", w.Code)
	}

	w := doJSON(t, app, http.MethodGet, "/api/v1/resumes?minScore=50", recruiterToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("recruiter list: status %d body %s", w.Code, w.Body.String())
	}
	if total := decode(t, w)["total"].(float64); total != 1 {
		t.Fatalf("expected total 1, got %v", total)
	}
}

func TestCompareRequiresTwoIDs(t *testing.T) {
	app := newTestApp(t)
	_, token := registerUser(t, app, "Ada", "ada@example.com", "CANDIDATE")

	w := doJSON(t, app, http.MethodPost, "/api/v1/resumes/compare", token, map[string]any{
		"ids": []string{"only-one"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body %s", w.Code, w.Body.String())
	}
}

func TestShareLinkLifecycle(t *testing.T) {
	app := newTestApp(t)
	_, candidateToken := registerUser(t, app, "Ada", "ada@example.com", "CANDIDATE")

	w := uploadResume(t, app, candidateToken, "backend", "build APIs", "go")
	if w.Code != http.StatusOK {
		t.Fatalf("upload: status %d", w.Code)
	}
	resumeID := decode(t, w)["data"].(map[string]any)["id"].(string)

	w = doJSON(t, app, http.MethodPost, "/api/v1/resumes/"+resumeID+"/share", candidateToken, map[string]any{
		"expiresInDays": 7,
		"allowDownload": true,
		"note":          "for acme",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("share create: status %d body %s", w.Code, w.Body.String())
	}
	created := decode(t, w)
	token := created["token"].(string)
	if !strings.HasSuffix(created["url"].(string), "/share/"+token) {
		t.Fatalf("unexpected share url %v", created["url"])
	}

	// The resolve route needs no authentication.
	w = doJSON(t, app, http.MethodGet, "/api/v1/share/"+token, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("resolve: status %d body %s", w.Code, w.Body.String())
	}
	resolved := decode(t, w)
	if resolved["note"] != "for acme" || resolved["allowDownload"] != true {
		t.Fatalf("unexpected resolve body %v", resolved)
	}
	if resolved["data"].(map[string]any)["name"] != "backend" {
		t.Fatalf("unexpected resolved resume %v", resolved["data"])
	}

	if w := doJSON(t, app, http.MethodGet, "/api/v1/shares", candidateToken, nil); w.Code != http.StatusOK {
		t.Fatalf("list shares: status %d", w.Code)
	} else if count := decode(t, w)["count"].(float64); count != 1 {
		t.Fatalf("expected 1 share, got %v", count)
	}

	if w := doJSON(t, app, http.MethodDelete, "/api/v1/shares/"+token, candidateToken, nil); w.Code != http.StatusOK {
		t.Fatalf("revoke: status %d body %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, app, http.MethodGet, "/api/v1/share/"+token, "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after revoke, got %d", w.Code)
	}
}

func TestAuthMe(t *testing.T) {
	app := newTestApp(t)
	id, token := registerUser(t, app, "Ada", "ada@example.com", "CANDIDATE")

	w := doJSON(t, app, http.MethodGet, "/api/v1/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: status %d body %s", w.Code, w.Body.String())
	}
	user := decode(t, w)["user"].(map[string]any)
	if user["id"] != id {
		t.Fatalf("expected id %s, got %v", id, user["id"])
	}

	if w := doJSON(t, app, http.MethodGet, "/api/v1/auth/me", "garbage", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", w.Code)
	}
}
