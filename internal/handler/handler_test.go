package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lee_Blog/internal/model"
	"Lee_Blog/internal/repository/file"
	"Lee_Blog/internal/service"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := file.Open(t.TempDir())
	require.NoError(t, err)

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	opts := service.Options{
		Store: store,
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	}
	posts := NewPostHandler(service.NewPostService(opts))
	comments := NewCommentHandler(service.NewCommentService(opts))
	reactions := NewReactionHandler(service.NewReactionService(opts))

	r := gin.New()
	api := r.Group("/api")
	api.GET("/posts", posts.List)
	api.POST("/posts", posts.Create)
	api.DELETE("/posts/:id", posts.Delete)
	api.POST("/posts/:id/like", reactions.LikePost)
	api.POST("/posts/:id/dislike", reactions.DislikePost)
	api.GET("/posts/:id/comments", comments.List)
	api.POST("/posts/:id/comments", comments.Create)
	api.POST("/comments/:id/like", reactions.LikeComment)
	api.POST("/comments/:id/dislike", reactions.DislikeComment)
	return r
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createPost(t *testing.T, r *gin.Engine, title string, tags any) model.Post {
	t.Helper()
	w := do(r, http.MethodPost, "/api/posts", gin.H{"title": title, "content": "body of " + title, "tags": tags})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestListPosts_EmptyStoreReturnsEmptyArray(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodGet, "/api/posts", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreatePost_AcceptsStringOrArrayTags(t *testing.T) {
	r := setupRouter(t)

	a := createPost(t, r, "Alpha", "go")
	b := createPost(t, r, "Beta", []string{"go", "web"})

	assert.Equal(t, []string{"go"}, a.Tags)
	assert.Equal(t, []string{"go", "web"}, b.Tags)
	assert.NotEmpty(t, a.ID)
	assert.Zero(t, a.Likes)
}

func TestCreatePost_Validation(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodPost, "/api/posts", gin.H{"title": "", "content": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, errorOf(t, w))

	w = do(r, http.MethodPost, "/api/posts", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPosts_FilterSortPaginate(t *testing.T) {
	r := setupRouter(t)
	a := createPost(t, r, "Alpha", []string{"go"})
	createPost(t, r, "Beta", []string{"web"})
	c := createPost(t, r, "Gamma", []string{"go"})

	w := do(r, http.MethodGet, "/api/posts?tag=go", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got []model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, c.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)

	w = do(r, http.MethodGet, "/api/posts?tag=todas&sort=oldest&limit=1&skip=1", nil)
	got = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Beta", got[0].Title)

	w = do(r, http.MethodGet, "/api/posts?search=GAMMA&limit=abc", nil)
	got = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, c.ID, got[0].ID)
}

func TestReactions(t *testing.T) {
	r := setupRouter(t)
	p := createPost(t, r, "Alpha", nil)

	do(r, http.MethodPost, "/api/posts/"+p.ID+"/like", nil)
	w := do(r, http.MethodPost, "/api/posts/"+p.ID+"/like", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"likes":2,"dislikes":0}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/posts/"+p.ID+"/dislike", nil)
	assert.JSONEq(t, `{"likes":2,"dislikes":1}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/posts/missing/like", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "post not found", errorOf(t, w))

	w = do(r, http.MethodPost, "/api/comments/missing/dislike", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "comment not found", errorOf(t, w))
}

func TestComments_CreateListReactDelete(t *testing.T) {
	r := setupRouter(t)
	p := createPost(t, r, "Alpha", nil)

	var ids []string
	for _, text := range []string{"one", "two", "three", "four"} {
		w := do(r, http.MethodPost, "/api/posts/"+p.ID+"/comments", gin.H{"text": text})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var cm model.Comment
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cm))
		assert.Equal(t, p.ID, cm.PostID)
		ids = append(ids, cm.ID)
	}

	w := do(r, http.MethodGet, "/api/posts/"+p.ID+"/comments", nil)
	var page []model.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page, 3)
	assert.Equal(t, ids[3], page[0].ID)

	w = do(r, http.MethodPost, "/api/comments/"+ids[0]+"/like", nil)
	assert.JSONEq(t, `{"likes":1,"dislikes":0}`, w.Body.String())

	// 不校验帖子是否存在
	w = do(r, http.MethodPost, "/api/posts/missing/comments", gin.H{"text": "hi"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodPost, "/api/posts/"+p.ID+"/comments", gin.H{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, "/api/posts/"+p.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/posts/"+p.ID+"/comments?limit=10", nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(r, http.MethodDelete, "/api/posts/"+p.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPosts_TagWithSpecialCharacters(t *testing.T) {
	r := setupRouter(t)
	p := createPost(t, r, "FAQ", []string{"Q&A"})
	createPost(t, r, "Other", []string{"misc"})
	assert.Equal(t, []string{"Q&A"}, p.Tags)

	w := do(r, http.MethodGet, "/api/posts?tag=Q%26A", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got []model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, p.ID, got[0].ID)
}
