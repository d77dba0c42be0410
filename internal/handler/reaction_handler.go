package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"Lee_Blog/internal/model"
	"Lee_Blog/internal/service"
)

type ReactionHandler struct {
	svc *service.ReactionService
}

func NewReactionHandler(svc *service.ReactionService) *ReactionHandler {
	return &ReactionHandler{svc: svc}
}

func (h *ReactionHandler) LikePost(c *gin.Context) {
	h.react(c, h.svc.LikePost)
}

func (h *ReactionHandler) DislikePost(c *gin.Context) {
	h.react(c, h.svc.DislikePost)
}

func (h *ReactionHandler) LikeComment(c *gin.Context) {
	h.react(c, h.svc.LikeComment)
}

func (h *ReactionHandler) DislikeComment(c *gin.Context) {
	h.react(c, h.svc.DislikeComment)
}

func (h *ReactionHandler) react(c *gin.Context, fn func(context.Context, string) (model.Reaction, error)) {
	r, err := fn(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
