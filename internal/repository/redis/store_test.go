package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lee_Blog/internal/model"
)

// 需要真实 Redis：设置 BLOG_TEST_REDIS_ADDR 才会运行
func testStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("BLOG_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("BLOG_TEST_REDIS_ADDR not set")
	}
	client, err := NewClient(Config{Addr: addr, Password: os.Getenv("BLOG_TEST_REDIS_PASSWORD")})
	require.NoError(t, err)
	s := NewStore(client, "blogtest:"+t.Name())
	t.Cleanup(func() {
		_ = client.Del(context.Background(), s.key("posts"), s.key("comments")).Err()
		_ = s.Close()
	})
	return s
}

func TestSplitAddrs(t *testing.T) {
	assert.Equal(t, []string{"a:1", "b:2"}, splitAddrs(" a:1, ,b:2 "))
	assert.Empty(t, splitAddrs(""))
}

func TestNewClient_RequiresAddr(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestStore_KeyLayout(t *testing.T) {
	s := NewStore(nil, "")
	assert.Equal(t, "blog:posts", s.key("posts"))
	assert.Equal(t, "blog:comments", s.key("comments"))
}

func TestStore_MissingKeyIsEmpty(t *testing.T) {
	s := testStore(t)
	posts, err := s.LoadPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	at := time.Date(2024, 2, 2, 2, 2, 2, 0, time.UTC)
	posts := []model.Post{{ID: "1", Title: "t", Content: "c", Tags: []string{"a"}, CreatedAt: at, Likes: 2}}
	comments := []model.Comment{{ID: "c", PostID: "1", Text: "x", CreatedAt: at, Dislikes: 1}}
	require.NoError(t, s.SavePosts(ctx, posts))
	require.NoError(t, s.SaveComments(ctx, comments))

	gotPosts, err := s.LoadPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, posts, gotPosts)
	gotComments, err := s.LoadComments(ctx)
	require.NoError(t, err)
	assert.Equal(t, comments, gotComments)
}
