// Package event 变更成功后发出的领域事件。发布失败只记日志，不影响请求结果
package event

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type Type string

const (
	PostCreated     Type = "post.created"
	PostDeleted     Type = "post.deleted"
	PostLiked       Type = "post.liked"
	PostDisliked    Type = "post.disliked"
	CommentCreated  Type = "comment.created"
	CommentLiked    Type = "comment.liked"
	CommentDisliked Type = "comment.disliked"
)

// Event PostID 同时作为 kafka 分区键，评论事件也带上所属帖子
type Event struct {
	Type     Type      `json:"type"`
	ID       string    `json:"id"`
	PostID   string    `json:"postId"`
	At       time.Time `json:"at"`
	Title    string    `json:"title,omitempty"`
	Body     string    `json:"body,omitempty"`
	Likes    int64     `json:"likes"`
	Dislikes int64     `json:"dislikes"`
	// Cascaded 删除帖子时一并删掉的评论数
	Cascaded int `json:"cascaded,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop 什么都不做
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Multi 依次投递给每个 Publisher，错误合并返回
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogPublisher 开发环境用
type LogPublisher struct {
	Logger *slog.Logger
}

func (p LogPublisher) Publish(_ context.Context, e Event) error {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("domain event", "type", e.Type, "id", e.ID, "post_id", e.PostID)
	return nil
}
