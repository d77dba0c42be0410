package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Lee_Blog/internal/query"
	"Lee_Blog/internal/service"
)

type CommentHandler struct {
	svc *service.CommentService
}

type CreateCommentReq struct {
	Text string `json:"text"`
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// List 某个帖子的评论，最新的在前
func (h *CommentHandler) List(c *gin.Context) {
	limit, skip := query.ParsePage(c.Query("limit"), c.Query("skip"), query.DefaultCommentLimit)
	params := query.CommentParams{
		PostID: c.Param("id"),
		Limit:  limit,
		Skip:   skip,
	}
	c.JSON(http.StatusOK, h.svc.ListComments(c.Request.Context(), params))
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	comment, err := h.svc.CreateComment(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
