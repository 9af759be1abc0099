package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrInvalidSession 认证服务拒绝了该 token
var ErrInvalidSession = errors.New("session rejected by auth service")

type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SupabaseAuth 通过 GoTrue REST 接口校验 access token
type SupabaseAuth struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewSupabaseAuth(baseURL, serviceKey string, httpClient *http.Client) *SupabaseAuth {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &SupabaseAuth{baseURL: baseURL, serviceKey: serviceKey, httpClient: httpClient}
}

// GetUser GET /auth/v1/user；401/403 视为会话无效，其余失败属于认证服务故障
func (s *SupabaseAuth) GetUser(ctx context.Context, accessToken string) (*AuthUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", ErrInvalidSession, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("auth service returned status %d: %s", resp.StatusCode, body)
	}

	var user AuthUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode auth user: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: empty user id", ErrInvalidSession)
	}
	return &user, nil
}
