package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lee_Blog/internal/middleware"
	"Lee_Blog/internal/repository/file"
	"Lee_Blog/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, staticDir string) *gin.Engine {
	t.Helper()
	store, err := file.Open(t.TempDir())
	require.NoError(t, err)
	opts := service.Options{Store: store}
	return InitRouter(Deps{
		Posts:     service.NewPostService(opts),
		Comments:  service.NewCommentService(opts),
		Reactions: service.NewReactionService(opts),
		StaticDir: staticDir,
	})
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestInitRouter_RegistersRoutes(t *testing.T) {
	r := newTestRouter(t, "")

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	for _, key := range []string{
		"GET /healthz",
		"GET /metrics",
		"GET /api/posts",
		"POST /api/posts",
		"DELETE /api/posts/:id",
		"POST /api/posts/:id/like",
		"POST /api/posts/:id/dislike",
		"GET /api/posts/:id/comments",
		"POST /api/posts/:id/comments",
		"POST /api/comments/:id/like",
		"POST /api/comments/:id/dislike",
	} {
		assert.True(t, registered[key], "route %s not registered", key)
	}
}

func TestInitRouter_HealthAndMetrics(t *testing.T) {
	r := newTestRouter(t, "")

	w := serve(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	serve(r, http.MethodGet, "/api/posts", "")
	w = serve(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "blog_http_requests_total")
}

func TestInitRouter_CreateThenList(t *testing.T) {
	r := newTestRouter(t, "")

	w := serve(r, http.MethodPost, "/api/posts", `{"title":"Hello","content":"World","tags":"go"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = serve(r, http.MethodGet, "/api/posts?tag=go", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Hello"`)
}

func TestInitRouter_StaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>blog</h1>"), 0o644))
	r := newTestRouter(t, dir)

	w := serve(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>blog</h1>")

	w = serve(r, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, w.Body.String())

	w = serve(r, http.MethodGet, "/missing.js", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInitRouter_NoStaticDir(t *testing.T) {
	r := newTestRouter(t, "")

	w := serve(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
