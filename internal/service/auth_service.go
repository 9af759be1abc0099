package service

import (
	"context"
	"errors"

	"Chirpio/internal/client"
	"Chirpio/internal/repository"

	"go.uber.org/zap"
)

// SessionClient 由认证服务校验 session token
type SessionClient interface {
	GetUser(ctx context.Context, accessToken string) (*client.AuthUser, error)
}

// AuthContext 通过鉴权后的请求上下文
type AuthContext struct {
	UserID         string
	OrganisationID string
}

type AuthService interface {
	// ResolveUser token -> user_id
	ResolveUser(ctx context.Context, token string) (string, error)
	// Authorize token -> user -> 组织成员 -> 组织已认证
	Authorize(ctx context.Context, token string) (*AuthContext, error)
}

type authService struct {
	sessions SessionClient
	orgs     repository.OrgRepository
	log      *zap.Logger
}

func NewAuthService(sessions SessionClient, orgs repository.OrgRepository, log *zap.Logger) AuthService {
	return &authService{sessions: sessions, orgs: orgs, log: log}
}

func (s *authService) ResolveUser(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}
	user, err := s.sessions.GetUser(ctx, token)
	if err != nil {
		if !errors.Is(err, client.ErrInvalidSession) {
			s.log.Warn("⚠️ 认证服务调用失败", traceField(ctx), zap.Error(err))
		}
		return "", ErrAuthenticationFailed
	}
	return user.ID, nil
}

func (s *authService) Authorize(ctx context.Context, token string) (*AuthContext, error) {
	// 1. 校验会话
	userID, err := s.ResolveUser(ctx, token)
	if err != nil {
		return nil, err
	}

	// 2. 查组织成员关系
	member, err := s.orgs.FindMembership(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error("❌ 查询组织成员失败", traceField(ctx), zap.String("user_id", userID), zap.Error(err))
		}
		return nil, ErrNoMembership
	}

	// 3. 查组织并检查认证状态
	org, err := s.orgs.FindOrganisation(ctx, member.OrganisationID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error("❌ 查询组织失败", traceField(ctx), zap.String("organisation_id", member.OrganisationID), zap.Error(err))
		}
		return nil, ErrOrganisationNotFound
	}
	if !org.Verified {
		return nil, ErrNotVerified
	}

	return &AuthContext{UserID: userID, OrganisationID: org.ID}, nil
}
