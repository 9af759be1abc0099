package model

import "time"

// SuggestionLog 记录每一次 AI 润色调用
type SuggestionLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// 公开接口 /api/suggestions 没有用户上下文，两者都可能为空
	OrganisationID *string `gorm:"type:uuid;index" json:"organisation_id"`
	UserID         *string `gorm:"type:uuid;index" json:"user_id"`
	TraceID        string  `gorm:"index" json:"trace_id"`

	Provider string `gorm:"size:20" json:"provider"`
	Model    string `gorm:"size:50" json:"model"`

	ContentLen    int   `json:"content_len"`
	SuggestionLen int   `json:"suggestion_len"`
	DurationMs    int64 `json:"duration_ms"`

	Status   string `gorm:"size:20" json:"status"` // success, failed
	ErrorMsg string `gorm:"type:text" json:"error_msg"`
}

func (SuggestionLog) TableName() string { return "suggestion_logs" }
