package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newCORSEngine(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(origins))
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func corsRequest(r *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORS_AllowList(t *testing.T) {
	r := newCORSEngine([]string{"https://vetcard.example.com/", " "})

	w := corsRequest(r, http.MethodGet, "https://vetcard.example.com")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://vetcard.example.com" {
		t.Fatalf("expected allowed origin to be echoed, got %q", got)
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatal("expected credentials to be allowed")
	}

	w = corsRequest(r, http.MethodGet, "https://evil.example.com")
	if w.Code != http.StatusOK {
		t.Fatalf("expected simple request to pass through, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS headers for another origin, got %q", got)
	}

	if w := corsRequest(r, http.MethodOptions, "https://evil.example.com"); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 preflight, got %d", w.Code)
	}
	if w := corsRequest(r, http.MethodOptions, "https://vetcard.example.com"); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", w.Code)
	}
}

func TestCORS_EmptyListAllowsAny(t *testing.T) {
	r := newCORSEngine(nil)

	w := corsRequest(r, http.MethodGet, "http://localhost:3000")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected origin to be echoed, got %q", got)
	}
	if w := corsRequest(r, http.MethodGet, ""); w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("expected no CORS headers without an Origin")
	}
}
