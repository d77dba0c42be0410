package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"Lee_Blog/internal/model"
	"Lee_Blog/internal/repository"
)

const batchSize = 200

// PostRow posts 表；Seq 记录集合里的位置，读出时按 Seq 排序还原顺序
type PostRow struct {
	Seq       int       `gorm:"primaryKey;autoIncrement:false"`
	ID        string    `gorm:"size:32;not null;uniqueIndex"`
	Title     string    `gorm:"type:text;not null"`
	Content   string    `gorm:"type:mediumtext"`
	Tags      []string  `gorm:"serializer:json;type:json"`
	CreatedAt time.Time `gorm:"precision:3;autoCreateTime:false"`
	Likes     int64     `gorm:"not null;default:0"`
	Dislikes  int64     `gorm:"not null;default:0"`
}

func (PostRow) TableName() string { return "posts" }

// CommentRow comments 表
type CommentRow struct {
	Seq       int       `gorm:"primaryKey;autoIncrement:false"`
	ID        string    `gorm:"size:32;not null;uniqueIndex"`
	PostID    string    `gorm:"size:255;not null;index"`
	Text      string    `gorm:"type:mediumtext"`
	CreatedAt time.Time `gorm:"precision:3;autoCreateTime:false"`
	Likes     int64     `gorm:"not null;default:0"`
	Dislikes  int64     `gorm:"not null;default:0"`
}

func (CommentRow) TableName() string { return "comments" }

// Store 整表读写：Save 在一个事务里清空再批量插入
type Store struct {
	DB *gorm.DB
}

var _ repository.Store = (*Store)(nil)

func (r *Store) LoadPosts(ctx context.Context) ([]model.Post, error) {
	var rows []PostRow
	if err := r.DB.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	posts := make([]model.Post, 0, len(rows))
	for _, row := range rows {
		tags := row.Tags
		if tags == nil {
			tags = []string{}
		}
		posts = append(posts, model.Post{
			ID:        row.ID,
			Title:     row.Title,
			Content:   row.Content,
			Tags:      tags,
			CreatedAt: row.CreatedAt.UTC(),
			Likes:     row.Likes,
			Dislikes:  row.Dislikes,
		})
	}
	return posts, nil
}

func (r *Store) SavePosts(ctx context.Context, posts []model.Post) error {
	rows := make([]PostRow, 0, len(posts))
	for i, p := range posts {
		rows = append(rows, PostRow{
			Seq:       i,
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Content,
			Tags:      p.Tags,
			CreatedAt: p.CreatedAt,
			Likes:     p.Likes,
			Dislikes:  p.Dislikes,
		})
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&PostRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, batchSize).Error
	})
}

func (r *Store) LoadComments(ctx context.Context) ([]model.Comment, error) {
	var rows []CommentRow
	if err := r.DB.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	comments := make([]model.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, model.Comment{
			ID:        row.ID,
			PostID:    row.PostID,
			Text:      row.Text,
			CreatedAt: row.CreatedAt.UTC(),
			Likes:     row.Likes,
			Dislikes:  row.Dislikes,
		})
	}
	return comments, nil
}

func (r *Store) SaveComments(ctx context.Context, comments []model.Comment) error {
	rows := make([]CommentRow, 0, len(comments))
	for i, c := range comments {
		rows = append(rows, CommentRow{
			Seq:       i,
			ID:        c.ID,
			PostID:    c.PostID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
			Likes:     c.Likes,
			Dislikes:  c.Dislikes,
		})
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&CommentRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, batchSize).Error
	})
}

func (r *Store) Close() error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
