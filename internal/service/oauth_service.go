package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"Chirpio/internal/client"
	"Chirpio/internal/dto"
	"Chirpio/internal/model"
	"Chirpio/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// FailureReason 回跳页面上的 error=<reason>
type FailureReason string

const (
	ReasonOAuthFailed         FailureReason = "oauth_failed"
	ReasonNoCode              FailureReason = "no_code"
	ReasonInvalidState        FailureReason = "invalid_state"
	ReasonTokenExchangeFailed FailureReason = "token_exchange_failed"
	ReasonNoAccessToken       FailureReason = "no_access_token"
	ReasonNotAuthenticated    FailureReason = "not_authenticated"
	ReasonStorageFailed       FailureReason = "storage_failed"
	ReasonCallbackFailed      FailureReason = "callback_failed"
)

const (
	SuccessFacebookConnected = "facebook_connected"
	stateTTL                 = 10 * time.Minute
)

// FacebookOAuth Graph API 适配器
type FacebookOAuth interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*client.FacebookToken, error)
	FetchProfile(ctx context.Context, accessToken string) (json.RawMessage, error)
}

// CallbackResult 要么 Success 有值，要么 Failure 有值
type CallbackResult struct {
	Success string
	Failure FailureReason
}

type OAuthService struct {
	fb       FacebookOAuth
	auth     AuthService
	accounts repository.SocialAccountRepository
	states   repository.StateStore
	log      *zap.Logger
}

func NewOAuthService(fb FacebookOAuth, auth AuthService, accounts repository.SocialAccountRepository, states repository.StateStore, log *zap.Logger) *OAuthService {
	return &OAuthService{fb: fb, auth: auth, accounts: accounts, states: states, log: log}
}

// ConnectURL 签发一次性 state 并返回 Facebook 授权地址
func (s *OAuthService) ConnectURL(ctx context.Context) (string, error) {
	state := uuid.NewString()
	if err := s.states.Save(ctx, state, stateTTL); err != nil {
		return "", err
	}
	return s.fb.AuthCodeURL(state), nil
}

// callbackFlow 回调流程里逐步累积的状态
type callbackFlow struct {
	req          dto.OAuthCallbackReq
	sessionToken string

	accessToken string
	profile     datatypes.JSON
	userID      string
}

type callbackStep func(ctx context.Context, f *callbackFlow) FailureReason

// HandleCallback 按顺序执行每一步，任一步失败立即短路
func (s *OAuthService) HandleCallback(ctx context.Context, req dto.OAuthCallbackReq, sessionToken string) CallbackResult {
	f := &callbackFlow{req: req, sessionToken: sessionToken}

	steps := []callbackStep{
		s.checkProviderError,
		s.checkCode,
		s.checkState,
		s.exchangeCode,
		s.fetchProfile,
		s.resolveSession,
		s.storeAccount,
	}
	for _, step := range steps {
		if reason := step(ctx, f); reason != "" {
			s.log.Warn("⚠️ Facebook 回调失败", traceField(ctx), zap.String("reason", string(reason)))
			return CallbackResult{Failure: reason}
		}
	}

	s.log.Info("✅ Facebook 账号绑定成功", traceField(ctx), zap.String("user_id", f.userID))
	return CallbackResult{Success: SuccessFacebookConnected}
}

func (s *OAuthService) checkProviderError(_ context.Context, f *callbackFlow) FailureReason {
	if f.req.Error != "" {
		s.log.Warn("⚠️ Facebook 授权失败", zap.String("error", f.req.Error))
		return ReasonOAuthFailed
	}
	return ""
}

func (s *OAuthService) checkCode(_ context.Context, f *callbackFlow) FailureReason {
	if f.req.Code == "" {
		return ReasonNoCode
	}
	return ""
}

// checkState 没带 state 的回调直接放行
func (s *OAuthService) checkState(ctx context.Context, f *callbackFlow) FailureReason {
	if f.req.State == "" {
		return ""
	}
	ok, err := s.states.Consume(ctx, f.req.State)
	if err != nil {
		s.log.Error("❌ 读取 OAuth state 失败", zap.Error(err))
		return ReasonCallbackFailed
	}
	if !ok {
		return ReasonInvalidState
	}
	return ""
}

func (s *OAuthService) exchangeCode(ctx context.Context, f *callbackFlow) FailureReason {
	token, err := s.fb.ExchangeCode(ctx, f.req.Code)
	if err != nil {
		s.log.Error("❌ 授权码换取 token 失败", traceField(ctx), zap.Error(err))
		switch {
		case errors.Is(err, client.ErrTokenExchangeRejected):
			return ReasonTokenExchangeFailed
		case errors.Is(err, client.ErrNoAccessToken):
			return ReasonNoAccessToken
		default:
			return ReasonCallbackFailed
		}
	}
	if token.AccessToken == "" {
		return ReasonNoAccessToken
	}
	f.accessToken = token.AccessToken
	return ""
}

// fetchProfile 尽力而为，拿不到就存 JSON null (datatypes.JSON 不能扫描 SQL NULL)
func (s *OAuthService) fetchProfile(ctx context.Context, f *callbackFlow) FailureReason {
	f.profile = datatypes.JSON("null")
	profile, err := s.fb.FetchProfile(ctx, f.accessToken)
	if err != nil {
		s.log.Warn("⚠️ 获取 Facebook 资料失败，继续绑定", zap.Error(err))
		return ""
	}
	if len(profile) > 0 {
		f.profile = datatypes.JSON(profile)
	}
	return ""
}

func (s *OAuthService) resolveSession(ctx context.Context, f *callbackFlow) FailureReason {
	userID, err := s.auth.ResolveUser(ctx, f.sessionToken)
	if err != nil {
		return ReasonNotAuthenticated
	}
	f.userID = userID
	return ""
}

func (s *OAuthService) storeAccount(ctx context.Context, f *callbackFlow) FailureReason {
	account := &model.SocialAccount{
		UserID:      f.userID,
		Platform:    model.PlatformFacebook,
		AccessToken: f.accessToken,
		ProfileData: f.profile,
	}
	if err := s.accounts.Upsert(ctx, account); err != nil {
		s.log.Error("❌ 保存 Facebook token 失败", traceField(ctx), zap.String("user_id", f.userID), zap.Error(err))
		return ReasonStorageFailed
	}
	return ""
}

// Disconnect 删除绑定，没有记录也算成功
func (s *OAuthService) Disconnect(ctx context.Context, userID string) error {
	n, err := s.accounts.Delete(ctx, userID, model.PlatformFacebook)
	if err != nil {
		s.log.Error("❌ 解绑 Facebook 失败", traceField(ctx), zap.String("user_id", userID), zap.Error(err))
		return ErrUpstream.WithMessage("Failed to disconnect Facebook account")
	}
	s.log.Info("Facebook 已解绑", zap.String("user_id", userID), zap.Int64("rows", n))
	return nil
}
