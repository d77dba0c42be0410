package query

import (
	"strings"

	"Lee_Blog/internal/model"
)

// SortKey 排序方式
type SortKey int

const (
	SortRecent SortKey = iota
	SortOldest
	SortLikesDesc
	SortLikesAsc
	SortDislikesDesc
	SortDislikesAsc
	SortCommentsDesc
	SortCommentsAsc
)

// 前端下拉框里的文案和英文别名都认
var sortNames = map[string]SortKey{
	"recent":        SortRecent,
	"oldest":        SortOldest,
	"likes_desc":    SortLikesDesc,
	"likes_asc":     SortLikesAsc,
	"dislikes_desc": SortDislikesDesc,
	"dislikes_asc":  SortDislikesAsc,
	"comments_desc": SortCommentsDesc,
	"comments_asc":  SortCommentsAsc,

	"mais recentes":               SortRecent,
	"mais antigos":                SortOldest,
	"maior número de likes":       SortLikesDesc,
	"menor número de likes":       SortLikesAsc,
	"maior número de dislikes":    SortDislikesDesc,
	"menor número de dislikes":    SortDislikesAsc,
	"maior número de comentários": SortCommentsDesc,
	"menor número de comentários": SortCommentsAsc,
}

// ParseSort 不认识的值一律按最新排序
func ParseSort(raw string) SortKey {
	if k, ok := sortNames[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return k
	}
	return SortRecent
}

func (k SortKey) String() string {
	switch k {
	case SortOldest:
		return "oldest"
	case SortLikesDesc:
		return "likes_desc"
	case SortLikesAsc:
		return "likes_asc"
	case SortDislikesDesc:
		return "dislikes_desc"
	case SortDislikesAsc:
		return "dislikes_asc"
	case SortCommentsDesc:
		return "comments_desc"
	case SortCommentsAsc:
		return "comments_asc"
	}
	return "recent"
}

// NeedsComments 按评论数排序时才需要加载评论集合
func (k SortKey) NeedsComments() bool {
	return k == SortCommentsDesc || k == SortCommentsAsc
}

// less 严格小于；相等返回 false，配合 SliceStable 保持原有相对顺序
func (k SortKey) less(a, b *model.Post, counts map[string]int) bool {
	switch k {
	case SortOldest:
		return a.CreatedAt.Before(b.CreatedAt)
	case SortLikesDesc:
		return a.Likes > b.Likes
	case SortLikesAsc:
		return a.Likes < b.Likes
	case SortDislikesDesc:
		return a.Dislikes > b.Dislikes
	case SortDislikesAsc:
		return a.Dislikes < b.Dislikes
	case SortCommentsDesc:
		return counts[a.ID] > counts[b.ID]
	case SortCommentsAsc:
		return counts[a.ID] < counts[b.ID]
	}
	return a.CreatedAt.After(b.CreatedAt)
}
