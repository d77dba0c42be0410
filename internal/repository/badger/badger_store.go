// Package badger 内嵌 KV 后端：每条记录一个 key，key 里带写入序号，遍历顺序即写入顺序
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"

	"Lee_Blog/internal/model"
	"Lee_Blog/internal/repository"
)

const (
	postPrefix    = "post/"
	commentPrefix = "comment/"
)

type Config struct {
	// Path 为空且 InMemory=false 时报错
	Path       string
	InMemory   bool
	SyncWrites bool
	Logger     *slog.Logger
}

type Store struct {
	db *badger.DB
}

var _ repository.Store = (*Store)(nil)

type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) LoadPosts(_ context.Context) ([]model.Post, error) {
	posts := []model.Post{}
	err := s.scan(postPrefix, func(v []byte) error {
		var p model.Post
		if err := json.Unmarshal(v, &p); err != nil {
			return err
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		posts = append(posts, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	return posts, nil
}

func (s *Store) SavePosts(_ context.Context, posts []model.Post) error {
	values := make([][]byte, 0, len(posts))
	for i := range posts {
		b, err := json.Marshal(&posts[i])
		if err != nil {
			return fmt.Errorf("encode post %s: %w", posts[i].ID, err)
		}
		values = append(values, b)
	}
	if err := s.replace(postPrefix, values); err != nil {
		return fmt.Errorf("save posts: %w", err)
	}
	return nil
}

func (s *Store) LoadComments(_ context.Context) ([]model.Comment, error) {
	comments := []model.Comment{}
	err := s.scan(commentPrefix, func(v []byte) error {
		var c model.Comment
		if err := json.Unmarshal(v, &c); err != nil {
			return err
		}
		comments = append(comments, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	return comments, nil
}

func (s *Store) SaveComments(_ context.Context, comments []model.Comment) error {
	values := make([][]byte, 0, len(comments))
	for i := range comments {
		b, err := json.Marshal(&comments[i])
		if err != nil {
			return fmt.Errorf("encode comment %s: %w", comments[i].ID, err)
		}
		values = append(values, b)
	}
	if err := s.replace(commentPrefix, values); err != nil {
		return fmt.Errorf("save comments: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) scan(prefix string, fn func(v []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := it.Item().Value(fn); err != nil {
				return err
			}
		}
		return nil
	})
}

// replace 覆盖写入 0..n-1 号记录，再删掉多出来的旧记录；
// WriteBatch 可能拆成多个事务提交，中途失败只做尽力而为，与文件后端一致
func (s *Store) replace(prefix string, values [][]byte) error {
	stale, err := s.keysFrom(prefix, len(values))
	if err != nil {
		return err
	}
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for i, v := range values {
		if err := wb.Set(seqKey(prefix, i), v); err != nil {
			return err
		}
	}
	for _, k := range stale {
		if err := wb.Delete(k); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// keysFrom 序号 >= from 的已有 key
func (s *Store) keysFrom(prefix string, from int) ([][]byte, error) {
	var keys [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		p := []byte(prefix)
		for it.Seek(seqKey(prefix, from)); it.ValidForPrefix(p); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	return keys, err
}

// seqKey 零填充保证字典序与写入顺序一致
func seqKey(prefix string, i int) []byte {
	return []byte(fmt.Sprintf("%s%010d", prefix, i))
}
