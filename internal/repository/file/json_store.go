// Package file 把两个集合各存成一个 JSON 数组文件
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"Lee_Blog/internal/model"
	"Lee_Blog/internal/repository"
)

const (
	PostsFile    = "posts.json"
	CommentsFile = "comments.json"
)

type JSONStore struct {
	postsPath    string
	commentsPath string
}

var _ repository.Store = (*JSONStore)(nil)

// Open 创建数据目录；文件不存在时初始化为 []
func Open(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	s := &JSONStore{
		postsPath:    filepath.Join(dir, PostsFile),
		commentsPath: filepath.Join(dir, CommentsFile),
	}
	for _, p := range []string{s.postsPath, s.commentsPath} {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			if err := os.WriteFile(p, []byte("[]"), 0o644); err != nil {
				return nil, fmt.Errorf("init %s: %w", p, err)
			}
		}
	}
	return s, nil
}

func (s *JSONStore) LoadPosts(_ context.Context) ([]model.Post, error) {
	posts := []model.Post{}
	if err := readJSON(s.postsPath, &posts); err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].Tags == nil {
			posts[i].Tags = []string{}
		}
	}
	return posts, nil
}

func (s *JSONStore) SavePosts(_ context.Context, posts []model.Post) error {
	if posts == nil {
		posts = []model.Post{}
	}
	return writeJSON(s.postsPath, posts)
}

func (s *JSONStore) LoadComments(_ context.Context) ([]model.Comment, error) {
	comments := []model.Comment{}
	if err := readJSON(s.commentsPath, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *JSONStore) SaveComments(_ context.Context, comments []model.Comment) error {
	if comments == nil {
		comments = []model.Comment{}
	}
	return writeJSON(s.commentsPath, comments)
}

func (s *JSONStore) Close() error { return nil }

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// writeJSON 两空格缩进；先写临时文件再 rename，读方不会看到写了一半的文件
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
