package service

import (
	"context"
	"fmt"

	"Lee_Blog/internal/event"
	"Lee_Blog/internal/metrics"
	"Lee_Blog/internal/model"
	"Lee_Blog/internal/pkg"
)

// Kind like / dislike
type Kind string

const (
	Like    Kind = "like"
	Dislike Kind = "dislike"
)

// ReactionService 只有 +1，没有取消
type ReactionService struct {
	base
}

func NewReactionService(opts Options) *ReactionService {
	return &ReactionService{base: newBase(opts, "reaction_service")}
}

func (s *ReactionService) LikePost(ctx context.Context, id string) (model.Reaction, error) {
	return s.ReactPost(ctx, id, Like)
}

func (s *ReactionService) DislikePost(ctx context.Context, id string) (model.Reaction, error) {
	return s.ReactPost(ctx, id, Dislike)
}

func (s *ReactionService) LikeComment(ctx context.Context, id string) (model.Reaction, error) {
	return s.ReactComment(ctx, id, Like)
}

func (s *ReactionService) DislikeComment(ctx context.Context, id string) (model.Reaction, error) {
	return s.ReactComment(ctx, id, Dislike)
}

func (s *ReactionService) ReactPost(ctx context.Context, id string, kind Kind) (r model.Reaction, err error) {
	defer func() { metrics.MutationsTotal.WithLabelValues("react", result(err)).Inc() }()

	posts := s.readPosts(ctx)
	idx := indexOfPost(posts, id)
	if idx < 0 {
		return model.Reaction{}, pkg.NewNotFoundError("post", id)
	}
	p := &posts[idx]
	bump(kind, &p.Likes, &p.Dislikes)
	if err := s.store.SavePosts(ctx, posts); err != nil {
		return model.Reaction{}, fmt.Errorf("save posts: %w", err)
	}
	metrics.ReactionsTotal.WithLabelValues("post", string(kind)).Inc()

	r = model.Reaction{Likes: p.Likes, Dislikes: p.Dislikes}
	typ := event.PostLiked
	if kind == Dislike {
		typ = event.PostDisliked
	}
	s.publish(ctx, event.Event{Type: typ, ID: id, PostID: id, At: s.now(), Likes: r.Likes, Dislikes: r.Dislikes})
	return r, nil
}

func (s *ReactionService) ReactComment(ctx context.Context, id string, kind Kind) (r model.Reaction, err error) {
	defer func() { metrics.MutationsTotal.WithLabelValues("react", result(err)).Inc() }()

	comments := s.readComments(ctx)
	idx := -1
	for i := range comments {
		if comments[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Reaction{}, pkg.NewNotFoundError("comment", id)
	}
	c := &comments[idx]
	bump(kind, &c.Likes, &c.Dislikes)
	if err := s.store.SaveComments(ctx, comments); err != nil {
		return model.Reaction{}, fmt.Errorf("save comments: %w", err)
	}
	metrics.ReactionsTotal.WithLabelValues("comment", string(kind)).Inc()

	r = model.Reaction{Likes: c.Likes, Dislikes: c.Dislikes}
	typ := event.CommentLiked
	if kind == Dislike {
		typ = event.CommentDisliked
	}
	s.publish(ctx, event.Event{Type: typ, ID: id, PostID: c.PostID, At: s.now(), Likes: r.Likes, Dislikes: r.Dislikes})
	return r, nil
}

func bump(kind Kind, likes, dislikes *int64) {
	if kind == Dislike {
		*dislikes++
		return
	}
	*likes++
}
