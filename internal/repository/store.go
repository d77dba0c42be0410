// Package repository 定义整集合读写的存储接口。
//
// 所有后端都只支持"读全部/写全部"：没有局部更新、没有索引、没有锁。
// 两个请求并发修改同一集合时，后写入的会覆盖先写入的（丢失更新），这是已知限制。
package repository

import (
	"context"

	"Lee_Blog/internal/model"
)

const (
	CollectionPosts    = "posts"
	CollectionComments = "comments"
)

// Store 帖子和评论两个集合的持久化。Load 返回的顺序就是写入时的顺序
type Store interface {
	LoadPosts(ctx context.Context) ([]model.Post, error)
	SavePosts(ctx context.Context, posts []model.Post) error
	LoadComments(ctx context.Context) ([]model.Comment, error)
	SaveComments(ctx context.Context, comments []model.Comment) error
	Close() error
}
