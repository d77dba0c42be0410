package model

import "time"

// Comment 评论，通过 PostID 挂在某个帖子下
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	Likes     int64     `json:"likes"`
	Dislikes  int64     `json:"dislikes"`
}
