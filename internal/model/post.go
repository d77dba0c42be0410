package model

import "time"

// Post 帖子，tags 按作者给定的顺序保存
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	Likes     int64     `json:"likes"`
	Dislikes  int64     `json:"dislikes"`
}

// HasTag 精确匹配（区分大小写）
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Reaction like/dislike 接口的返回值
type Reaction struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}
