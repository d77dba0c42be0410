// Package query 帖子/评论列表的过滤、排序、分页。全部是纯函数，不碰存储。
package query

import (
	"sort"
	"strconv"
	"strings"

	"Lee_Blog/internal/model"
	"Lee_Blog/internal/pkg"
)

const (
	DefaultPostLimit    = 5
	DefaultCommentLimit = 3
)

// PostParams 一次帖子列表请求的全部条件
type PostParams struct {
	Tag    string
	Search string
	Sort   string
	Limit  int
	Skip   int
}

// CommentParams 一次评论列表请求的全部条件
type CommentParams struct {
	PostID string
	Limit  int
	Skip   int
}

// ParsePage 解析 limit/skip 查询参数；非数字、负数、缺省都回落到默认值，limit=0 也按缺省处理
func ParsePage(limitRaw, skipRaw string, defaultLimit int) (limit, skip int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(strings.TrimSpace(limitRaw)); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(skipRaw)); err == nil && v > 0 {
		skip = v
	}
	return limit, skip
}

// ListPosts 过滤 -> 稳定排序 -> 分页。comments 只在按评论数排序时才会用到，可以传 nil
func ListPosts(posts []model.Post, comments []model.Comment, p PostParams) []model.Post {
	out := make([]model.Post, 0, len(posts))
	search := strings.ToLower(p.Search)
	for _, post := range posts {
		if !IsAllTags(p.Tag) && !post.HasTag(p.Tag) {
			continue
		}
		if search != "" && !matchesSearch(&post, search) {
			continue
		}
		out = append(out, post)
	}

	key := ParseSort(p.Sort)
	var counts map[string]int
	if key.NeedsComments() {
		counts = CommentCounts(comments)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return key.less(&out[i], &out[j], counts)
	})

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultPostLimit
	}
	return paginate(out, p.Skip, limit)
}

// ListComments 只保留 postId 完全相等的评论，按时间倒序
func ListComments(comments []model.Comment, p CommentParams) []model.Comment {
	out := make([]model.Comment, 0)
	for _, c := range comments {
		if c.PostID == p.PostID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultCommentLimit
	}
	return paginate(out, p.Skip, limit)
}

// matchesSearch 在去掉标签、还原实体后的纯文本上匹配，不会命中 HTML 标记本身
func matchesSearch(post *model.Post, search string) bool {
	return strings.Contains(strings.ToLower(pkg.PlainText(post.Title)), search) ||
		strings.Contains(strings.ToLower(pkg.PlainText(post.Content)), search)
}

// CommentCounts 每次请求现算，不落盘
func CommentCounts(comments []model.Comment) map[string]int {
	counts := make(map[string]int, len(comments))
	for _, c := range comments {
		counts[c.PostID]++
	}
	return counts
}

// HasMore 客户端用：本页满了就可能还有下一页
func HasMore(pageLen, limit int) bool {
	return limit > 0 && pageLen == limit
}

// IsAllTags "all"/"todas"/空 都表示不过滤
func IsAllTags(tag string) bool {
	return tag == "" || tag == TagAll || tag == tagAllLegacy
}

const (
	TagAll       = "all"
	tagAllLegacy = "todas"
)

func paginate[T any](items []T, skip, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) || end < skip {
		end = len(items)
	}
	return items[skip:end]
}
