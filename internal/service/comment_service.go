package service

import (
	"context"
	"fmt"

	"Lee_Blog/internal/event"
	"Lee_Blog/internal/metrics"
	"Lee_Blog/internal/model"
	"Lee_Blog/internal/pkg"
	"Lee_Blog/internal/query"
)

type CommentService struct {
	base
}

func NewCommentService(opts Options) *CommentService {
	return &CommentService{base: newBase(opts, "comment_service")}
}

func (s *CommentService) ListComments(ctx context.Context, p query.CommentParams) []model.Comment {
	return query.ListComments(s.readComments(ctx), p)
}

// CreateComment 不检查 postID 是否存在
func (s *CommentService) CreateComment(ctx context.Context, postID, text string) (comment *model.Comment, err error) {
	defer func() { metrics.MutationsTotal.WithLabelValues("comment_create", result(err)).Inc() }()

	text = s.sanitizer.Markdown(text)
	if text == "" {
		return nil, pkg.NewValidationError("comment text is required")
	}

	now := s.now()
	created := model.Comment{
		ID:        s.ids.New(now),
		PostID:    postID,
		Text:      text,
		CreatedAt: now,
	}

	comments := s.readComments(ctx)
	comments = append(comments, created)
	if err := s.store.SaveComments(ctx, comments); err != nil {
		return nil, fmt.Errorf("save comments: %w", err)
	}

	s.publish(ctx, event.Event{
		Type: event.CommentCreated, ID: created.ID, PostID: postID, At: now, Body: created.Text,
	})
	return &created, nil
}

// OrphanReport 找出 postId 指向不存在帖子的评论
type OrphanReport struct {
	Posts    int
	Comments int
	Orphans  []model.Comment
	Pruned   bool
}

// CheckOrphans 运维命令用：读失败直接报错，避免把读失败误判为全部是孤儿评论
func (s *CommentService) CheckOrphans(ctx context.Context, prune bool) (*OrphanReport, error) {
	posts, err := s.store.LoadPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	comments, err := s.store.LoadComments(ctx)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}

	live := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		live[p.ID] = struct{}{}
	}
	report := &OrphanReport{Posts: len(posts), Comments: len(comments), Orphans: []model.Comment{}}
	kept := make([]model.Comment, 0, len(comments))
	for _, c := range comments {
		if _, ok := live[c.PostID]; ok {
			kept = append(kept, c)
			continue
		}
		report.Orphans = append(report.Orphans, c)
	}

	if prune && len(report.Orphans) > 0 {
		if err := s.store.SaveComments(ctx, kept); err != nil {
			return nil, fmt.Errorf("save comments: %w", err)
		}
		report.Pruned = true
		s.logger.Info("pruned orphan comments", "count", len(report.Orphans))
	}
	return report, nil
}
