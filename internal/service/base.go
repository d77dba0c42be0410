package service

import (
	"context"
	"log/slog"
	"time"

	"Lee_Blog/internal/event"
	"Lee_Blog/internal/metrics"
	"Lee_Blog/internal/model"
	"Lee_Blog/internal/pkg"
	"Lee_Blog/internal/repository"
)

// Options 各个 service 共用的依赖；零值字段在 New 时补默认值
type Options struct {
	Store     repository.Store
	Sanitizer pkg.Sanitizer
	Publisher event.Publisher
	Logger    *slog.Logger
	IDs       *pkg.IDGenerator
	Now       func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Sanitizer == nil {
		o.Sanitizer = pkg.NewSanitizer()
	}
	if o.Publisher == nil {
		o.Publisher = event.Nop{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.IDs == nil {
		o.IDs = pkg.NewIDGenerator()
	}
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }
	}
	return o
}

// base 每次操作都是 读全部 -> 内存修改 -> 写全部，没有锁
type base struct {
	store     repository.Store
	sanitizer pkg.Sanitizer
	publisher event.Publisher
	logger    *slog.Logger
	ids       *pkg.IDGenerator
	now       func() time.Time
}

func newBase(o Options, component string) base {
	o = o.withDefaults()
	return base{
		store:     o.Store,
		sanitizer: o.Sanitizer,
		publisher: o.Publisher,
		logger:    o.Logger.With("component", component),
		ids:       o.IDs,
		now:       o.Now,
	}
}

// readPosts 读失败按空集合处理，只记日志
func (b *base) readPosts(ctx context.Context) []model.Post {
	posts, err := b.store.LoadPosts(ctx)
	if err != nil {
		b.logger.Warn("read posts failed, treating as empty", "error", err)
		metrics.StoreReadFailuresTotal.WithLabelValues(repository.CollectionPosts).Inc()
		return []model.Post{}
	}
	return posts
}

func (b *base) readComments(ctx context.Context) []model.Comment {
	comments, err := b.store.LoadComments(ctx)
	if err != nil {
		b.logger.Warn("read comments failed, treating as empty", "error", err)
		metrics.StoreReadFailuresTotal.WithLabelValues(repository.CollectionComments).Inc()
		return []model.Comment{}
	}
	return comments
}

func (b *base) publish(ctx context.Context, e event.Event) {
	if err := b.publisher.Publish(ctx, e); err != nil {
		b.logger.Error("publish event failed", "type", e.Type, "id", e.ID, "error", err)
		metrics.EventPublishFailuresTotal.WithLabelValues(string(e.Type)).Inc()
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
