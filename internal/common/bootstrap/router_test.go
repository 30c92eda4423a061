package bootstrap

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/clock"
	commonhttp "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/http"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
)

func stubHandler(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		commonhttp.WriteJSON(w, http.StatusOK, map[string]string{"handler": name, "path": r.URL.Path})
	})
}

func newTestRouter(t *testing.T, staticDir string) http.Handler {
	t.Helper()
	log := logger.NewWithWriter(io.Discard, "test", "error")
	return NewRouter(RouterDeps{
		Log:         log,
		Errors:      commonhttp.NewErrorHandler(log, false),
		Clock:       clock.NewMockClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)),
		CORSOrigins: []string{"http://localhost:3000"},
		StaticDir:   staticDir,
		Auth:        stubHandler("auth"),
		Reviews:     stubHandler("reviews"),
	})
}

func serve(h http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	rec := serve(newTestRouter(t, ""), http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["timestamp"] != "2024-05-01T08:00:00Z" {
		t.Errorf("unexpected body %v", body)
	}
	if rec.Header().Get("X-Trace-ID") == "" {
		t.Error("expected trace id header")
	}
}

func TestRouter_MountsAPI(t *testing.T) {
	h := newTestRouter(t, "")

	for path, want := range map[string]string{
		"/api/auth/login":   "auth",
		"/api/reviews/":     "reviews",
		"/api/reviews/feed": "reviews",
	} {
		rec := serve(h, http.MethodGet, path, nil)
		var body map[string]string
		_ = json.NewDecoder(rec.Body).Decode(&body)
		if rec.Code != http.StatusOK || body["handler"] != want {
			t.Errorf("%s: got %d %v", path, rec.Code, body)
		}
	}
}

func TestRouter_UnknownAPIRouteIsEnvelope(t *testing.T) {
	rec := serve(newTestRouter(t, t.TempDir()), http.MethodGet, "/api/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var env commonhttp.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Success || env.Code != "ROUTE_NOT_FOUND" || env.TraceID == "" {
		t.Errorf("unexpected envelope %+v", env)
	}
}

func TestRouter_SPAFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>spa</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644); err != nil {
		t.Fatal(err)
	}
	h := newTestRouter(t, dir)

	rec := serve(h, http.MethodGet, "/app.js", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "console.log") {
		t.Errorf("static file: got %d %q", rec.Code, rec.Body.String())
	}

	rec = serve(h, http.MethodGet, "/reviews/some/client/route", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "spa") {
		t.Errorf("fallback: got %d %q", rec.Code, rec.Body.String())
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestRouter(t, "")

	rec := serve(h, http.MethodOptions, "/api/auth/login", map[string]string{
		"Origin":                        "http://localhost:3000",
		"Access-Control-Request-Method": http.MethodPost,
	})
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allowed origin: got %q", got)
	}

	rec = serve(h, http.MethodOptions, "/api/auth/login", map[string]string{
		"Origin":                        "http://evil.example",
		"Access-Control-Request-Method": http.MethodPost,
	})
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin should not be allowed, got %q", got)
	}
}

func TestRouter_Metrics(t *testing.T) {
	h := newTestRouter(t, "")
	serve(h, http.MethodGet, "/health", nil)

	rec := serve(h, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Errorf("metrics: got %d", rec.Code)
	}
}
