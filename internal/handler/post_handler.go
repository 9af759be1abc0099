package handler

import (
	"net/http"

	"Chirpio/internal/dto"
	"Chirpio/internal/middleware"
	"Chirpio/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostHandler struct {
	svc *service.PostService
	log *zap.Logger
}

func NewPostHandler(svc *service.PostService, log *zap.Logger) *PostHandler {
	return &PostHandler{svc: svc, log: log}
}

// Create 创建定时帖子
// POST /api/post/create
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, h.log, service.ErrInvalidBody)
		return
	}

	// 从中间件获取组织上下文
	auth, ok := middleware.AuthFrom(c)
	if !ok {
		fail(c, h.log, service.ErrUnauthenticated)
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), auth, req)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.CreatePostResp{Success: true, Post: *post})
}
