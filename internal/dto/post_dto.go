package dto

import (
	"encoding/json"
	"time"
)

// CreatePostReq 创建定时帖子
type CreatePostReq struct {
	Content       string          `json:"content"`
	Platforms     []string        `json:"platforms"`
	ScheduledTime json.RawMessage `json:"scheduled_time"` // 可选：时间字符串或毫秒时间戳；null、""、0、false 等同于不传
}

type PostResp struct {
	ID            string     `json:"id"`
	Content       string     `json:"content"`
	Platforms     []string   `json:"platforms"`
	Status        string     `json:"status"`
	ScheduledTime *time.Time `json:"scheduled_time"` // 未排期时返回 null
	CreatedAt     time.Time  `json:"created_at"`
}

type CreatePostResp struct {
	Success bool     `json:"success"`
	Post    PostResp `json:"post"`
}
