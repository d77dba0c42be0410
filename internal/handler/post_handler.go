package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Lee_Blog/internal/model"
	"Lee_Blog/internal/query"
	"Lee_Blog/internal/service"
)

type PostHandler struct {
	svc *service.PostService
}

type CreatePostReq struct {
	Title   string        `json:"title"`
	Content string        `json:"content"`
	Tags    model.TagList `json:"tags"`
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// List 帖子列表：tag / search / sort / limit / skip，参数不合法时回落默认值
func (h *PostHandler) List(c *gin.Context) {
	limit, skip := query.ParsePage(c.Query("limit"), c.Query("skip"), query.DefaultPostLimit)
	params := query.PostParams{
		Tag:    c.Query("tag"),
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		Limit:  limit,
		Skip:   skip,
	}
	c.JSON(http.StatusOK, h.svc.ListPosts(c.Request.Context(), params))
}

// Create 创建帖子
func (h *PostHandler) Create(c *gin.Context) {
	var req CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), req.Title, req.Content, req.Tags.Strings())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// Delete 删除帖子及其全部评论
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.svc.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}
