package service

import (
	"context"
	"encoding/json"
	"errors"

	"Chirpio/internal/dto"
	"Chirpio/internal/model"
	"Chirpio/internal/repository"

	"go.uber.org/zap"
)

type DashboardService struct {
	accounts repository.SocialAccountRepository
	log      *zap.Logger
}

func NewDashboardService(accounts repository.SocialAccountRepository, log *zap.Logger) *DashboardService {
	return &DashboardService{accounts: accounts, log: log}
}

// Connections 返回各平台绑定状态
func (s *DashboardService) Connections(ctx context.Context, userID string) (*dto.DashboardResp, error) {
	resp := &dto.DashboardResp{
		UserID:      userID,
		Connections: map[string]dto.ConnectionResp{},
	}

	acc, err := s.accounts.Find(ctx, userID, model.PlatformFacebook)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		resp.Connections[model.PlatformFacebook] = dto.ConnectionResp{Connected: false}
	case err != nil:
		s.log.Error("❌ 查询绑定状态失败", traceField(ctx), zap.String("user_id", userID), zap.Error(err))
		return nil, ErrUpstream
	default:
		conn := dto.ConnectionResp{Connected: true, ConnectedAt: &acc.UpdatedAt}
		if len(acc.ProfileData) > 0 {
			conn.Profile = json.RawMessage(acc.ProfileData)
		}
		resp.Connections[model.PlatformFacebook] = conn
	}
	return resp, nil
}
