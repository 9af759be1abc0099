package dto

import (
	"encoding/json"
	"time"
)

// OAuthCallbackReq Facebook 回调参数
type OAuthCallbackReq struct {
	Code  string `form:"code"`
	Error string `form:"error"`
	State string `form:"state"`
}

type SuccessResp struct {
	Success bool `json:"success"`
}

// DashboardResp 仪表盘连接状态，不返回 access_token
type DashboardResp struct {
	UserID      string                    `json:"user_id"`
	Connections map[string]ConnectionResp `json:"connections"`
}

type ConnectionResp struct {
	Connected   bool            `json:"connected"`
	ConnectedAt *time.Time      `json:"connected_at,omitempty"`
	Profile     json.RawMessage `json:"profile,omitempty"`
}
