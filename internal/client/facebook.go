package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"Chirpio/internal/conf"

	"golang.org/x/oauth2"
)

const graphVersion = "/v17.0"

var (
	// ErrTokenExchangeRejected Graph API 对 code 交换返回了非 2xx
	ErrTokenExchangeRejected = errors.New("token exchange rejected")
	// ErrNoAccessToken 交换成功但响应里没有 access_token
	ErrNoAccessToken = errors.New("token response missing access_token")
)

type FacebookToken struct {
	AccessToken string
	TokenType   string
	Expiry      time.Time
}

type FacebookClient struct {
	oauth      *oauth2.Config
	graphURL   string
	httpClient *http.Client
}

func NewFacebookClient(cfg conf.FacebookConfig, httpClient *http.Client) *FacebookClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &FacebookClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.AppID,
			ClientSecret: cfg.AppSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       splitScopes(cfg.Scopes),
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.DialogURL,
				TokenURL: cfg.GraphURL + graphVersion + "/oauth/access_token",
				// Facebook 只认表单里的 client_id / client_secret
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		graphURL:   cfg.GraphURL,
		httpClient: httpClient,
	}
}

// AuthCodeURL 授权对话框地址，state 为空时不带该参数
func (c *FacebookClient) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// ExchangeCode 用授权码换 access token
func (c *FacebookClient) ExchangeCode(ctx context.Context, code string) (*FacebookToken, error) {
	tok, err := c.oauth.Exchange(c.withHTTPClient(ctx), code)
	if err != nil {
		return nil, classifyExchangeError(err)
	}
	return &FacebookToken{AccessToken: tok.AccessToken, TokenType: tok.TokenType, Expiry: tok.Expiry}, nil
}

// classifyExchangeError 非 2xx -> ErrTokenExchangeRejected，缺 token -> ErrNoAccessToken，其余原样返回
func classifyExchangeError(err error) error {
	var rErr *oauth2.RetrieveError
	if errors.As(err, &rErr) {
		return fmt.Errorf("%w: status %d: %s", ErrTokenExchangeRejected, rErr.Response.StatusCode, string(rErr.Body))
	}
	var uErr *url.Error
	if errors.As(err, &uErr) {
		return fmt.Errorf("token request failed: %w", err)
	}
	// oauth2 没有导出这个错误，只能按文案识别
	if strings.Contains(err.Error(), "missing access_token") {
		return ErrNoAccessToken
	}
	return fmt.Errorf("failed to decode token response: %w", err)
}

// FetchProfile GET /me，token 通过 Authorization 头携带，原样返回 JSON
func (c *FacebookClient) FetchProfile(ctx context.Context, accessToken string) (json.RawMessage, error) {
	ctx = c.withHTTPClient(ctx)
	hc := c.oauth.Client(ctx, &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.graphURL+"/me", nil)
	if err != nil {
		return nil, err
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("profile response is not JSON (status %d)", resp.StatusCode)
	}
	return json.RawMessage(body), nil
}

// withHTTPClient 让 oauth2 复用注入的 http.Client (超时、测试服务器)
func (c *FacebookClient) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

func splitScopes(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' })
}
