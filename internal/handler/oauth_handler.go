package handler

import (
	"net/http"
	"net/url"

	"Chirpio/internal/dto"
	"Chirpio/internal/middleware"
	"Chirpio/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OAuthHandler struct {
	svc       *service.OAuthService
	publicURL string
	log       *zap.Logger
}

func NewOAuthHandler(svc *service.OAuthService, publicURL string, log *zap.Logger) *OAuthHandler {
	return &OAuthHandler{svc: svc, publicURL: publicURL, log: log}
}

// Connect 跳转到 Facebook 授权页
// GET /api/oauth/facebook/connect
func (h *OAuthHandler) Connect(c *gin.Context) {
	target, err := h.svc.ConnectURL(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// Callback Facebook 授权回调，结果一律重定向到确认页
// GET /api/oauth/facebook/callback
func (h *OAuthHandler) Callback(c *gin.Context) {
	var req dto.OAuthCallbackReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.redirect(c, service.CallbackResult{Failure: service.ReasonCallbackFailed})
		return
	}

	res := h.svc.HandleCallback(c.Request.Context(), req, middleware.CookieToken(c))
	h.redirect(c, res)
}

func (h *OAuthHandler) redirect(c *gin.Context, res service.CallbackResult) {
	q := url.Values{}
	if res.Success != "" {
		q.Set("success", res.Success)
	} else {
		q.Set("error", string(res.Failure))
	}
	c.Redirect(http.StatusFound, h.publicURL+"/dashboard/confirmation?"+q.Encode())
}

// Disconnect 解绑 Facebook
// DELETE /api/oauth/facebook/disconnect
func (h *OAuthHandler) Disconnect(c *gin.Context) {
	if err := h.svc.Disconnect(c.Request.Context(), middleware.UserID(c)); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResp{Success: true})
}
