package handler

import (
	"net/http"

	"Chirpio/internal/dto"
	"Chirpio/internal/middleware"
	"Chirpio/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SuggestHandler struct {
	svc *service.SuggestService
	log *zap.Logger
}

func NewSuggestHandler(svc *service.SuggestService, log *zap.Logger) *SuggestHandler {
	return &SuggestHandler{svc: svc, log: log}
}

// OrgSuggest 已认证组织的 AI 润色
// POST /api/ai-suggest
func (h *SuggestHandler) OrgSuggest(c *gin.Context) {
	var req dto.SuggestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, h.log, service.ErrInvalidBody)
		return
	}

	auth, _ := middleware.AuthFrom(c)
	suggestion, err := h.svc.Suggest(c.Request.Context(), req.Content, service.SuggestMeta{
		UserID:         auth.UserID,
		OrganisationID: auth.OrganisationID,
	})
	if err != nil {
		fail(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrgSuggestResp{Suggestion: suggestion, OrganisationID: auth.OrganisationID})
}

// PublicSuggest 无需登录的 AI 润色
// POST /api/suggestions
func (h *SuggestHandler) PublicSuggest(c *gin.Context) {
	var req dto.SuggestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, h.log, service.ErrInvalidBody)
		return
	}

	suggestion, err := h.svc.Suggest(c.Request.Context(), req.Content, service.SuggestMeta{})
	if err != nil {
		fail(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuggestResp{Suggestion: suggestion})
}
