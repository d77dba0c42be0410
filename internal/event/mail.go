package event

import (
	"context"
	"fmt"

	"Lee_Blog/internal/pkg"
)

// MailFunc 与 pkg.Mailer.Send 签名一致，测试里替换
type MailFunc func(to, subject, htmlBody string) error

// MailPublisher 有新帖子/新评论时给审核邮箱发提醒，其余事件忽略
type MailPublisher struct {
	to   string
	send MailFunc
}

func NewMailPublisher(mailer *pkg.Mailer, to string) *MailPublisher {
	return &MailPublisher{to: to, send: mailer.Send}
}

func (p *MailPublisher) Publish(_ context.Context, e Event) error {
	var subject, kind string
	switch e.Type {
	case PostCreated:
		kind, subject = "post", fmt.Sprintf("[blog] new post: %s", pkg.PlainText(e.Title))
	case CommentCreated:
		kind, subject = "comment", fmt.Sprintf("[blog] new comment on %s", e.PostID)
	default:
		return nil
	}
	if err := p.send(p.to, subject, pkg.ModerationHTML(kind, e.ID, e.Title, e.Body)); err != nil {
		return fmt.Errorf("send moderation mail: %w", err)
	}
	return nil
}
