package service

import (
	"context"
	"fmt"
	"strings"

	"Lee_Blog/internal/event"
	"Lee_Blog/internal/metrics"
	"Lee_Blog/internal/model"
	"Lee_Blog/internal/pkg"
	"Lee_Blog/internal/query"
)

type PostService struct {
	base
}

func NewPostService(opts Options) *PostService {
	return &PostService{base: newBase(opts, "post_service")}
}

// ListPosts 只有按评论数排序时才读取评论集合
func (s *PostService) ListPosts(ctx context.Context, p query.PostParams) []model.Post {
	posts := s.readPosts(ctx)
	var comments []model.Comment
	if query.ParseSort(p.Sort).NeedsComments() {
		comments = s.readComments(ctx)
	}
	return query.ListPosts(posts, comments, p)
}

// CreatePost 标题和内容在清洗、去空白后都不能为空；新帖子插在集合最前面
func (s *PostService) CreatePost(ctx context.Context, title, content string, tags []string) (post *model.Post, err error) {
	defer func() { metrics.MutationsTotal.WithLabelValues("post_create", result(err)).Inc() }()

	title = s.sanitizer.Title(title)
	content = s.sanitizer.Markdown(content)
	if title == "" || content == "" {
		return nil, pkg.NewValidationError("title and content are required")
	}

	now := s.now()
	created := model.Post{
		ID:        s.ids.New(now),
		Title:     title,
		Content:   content,
		Tags:      normalizeTags(tags),
		CreatedAt: now,
	}

	posts := s.readPosts(ctx)
	posts = append([]model.Post{created}, posts...)
	if err := s.store.SavePosts(ctx, posts); err != nil {
		return nil, fmt.Errorf("save posts: %w", err)
	}

	s.publish(ctx, event.Event{
		Type: event.PostCreated, ID: created.ID, PostID: created.ID, At: now,
		Title: created.Title, Body: created.Content,
	})
	return &created, nil
}

// DeletePost 先写 posts 再写 comments，两次写之间没有事务
func (s *PostService) DeletePost(ctx context.Context, id string) (err error) {
	defer func() { metrics.MutationsTotal.WithLabelValues("post_delete", result(err)).Inc() }()

	posts := s.readPosts(ctx)
	idx := indexOfPost(posts, id)
	if idx < 0 {
		return pkg.NewNotFoundError("post", id)
	}
	posts = append(posts[:idx], posts[idx+1:]...)
	if err := s.store.SavePosts(ctx, posts); err != nil {
		return fmt.Errorf("save posts: %w", err)
	}

	comments := s.readComments(ctx)
	kept := make([]model.Comment, 0, len(comments))
	for _, c := range comments {
		if c.PostID != id {
			kept = append(kept, c)
		}
	}
	removed := len(comments) - len(kept)
	if err := s.store.SaveComments(ctx, kept); err != nil {
		s.logger.Error("cascade delete left orphan comments", "post_id", id, "error", err)
		return fmt.Errorf("save comments: %w", err)
	}
	metrics.CascadedCommentsTotal.Add(float64(removed))

	s.publish(ctx, event.Event{
		Type: event.PostDeleted, ID: id, PostID: id, At: s.now(), Cascaded: removed,
	})
	return nil
}

// normalizeTags 只去首尾空白、去空、去重，内容按作者原样保存（标签是精确匹配的）
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func indexOfPost(posts []model.Post, id string) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}
