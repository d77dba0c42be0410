package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"Lee_Blog/internal/model"
	"Lee_Blog/internal/repository"
)

const DefaultKeyPrefix = "blog"

// Store 每个集合存成一个 JSON 数组字符串，和文件后端同样是整体读写
type Store struct {
	rdb    redis.UniversalClient
	prefix string
}

var _ repository.Store = (*Store)(nil)

func NewStore(rdb redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) key(collection string) string {
	return fmt.Sprintf("%s:%s", s.prefix, collection)
}

func (s *Store) LoadPosts(ctx context.Context) ([]model.Post, error) {
	posts := []model.Post{}
	if err := s.get(ctx, repository.CollectionPosts, &posts); err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].Tags == nil {
			posts[i].Tags = []string{}
		}
	}
	return posts, nil
}

func (s *Store) SavePosts(ctx context.Context, posts []model.Post) error {
	if posts == nil {
		posts = []model.Post{}
	}
	return s.set(ctx, repository.CollectionPosts, posts)
}

func (s *Store) LoadComments(ctx context.Context) ([]model.Comment, error) {
	comments := []model.Comment{}
	if err := s.get(ctx, repository.CollectionComments, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *Store) SaveComments(ctx context.Context, comments []model.Comment) error {
	if comments == nil {
		comments = []model.Comment{}
	}
	return s.set(ctx, repository.CollectionComments, comments)
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

// get key 不存在视为空集合
func (s *Store) get(ctx context.Context, collection string, v any) error {
	data, err := s.rdb.Get(ctx, s.key(collection)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", collection, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

func (s *Store) set(ctx context.Context, collection string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	if err := s.rdb.Set(ctx, s.key(collection), data, 0).Err(); err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	return nil
}
