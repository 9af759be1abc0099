package model

import "gorm.io/datatypes"

// SocialAccount 用户绑定的第三方账号，(user_id, platform) 唯一
type SocialAccount struct {
	BaseModel
	UserID   string `gorm:"type:uuid;not null;uniqueIndex:idx_social_accounts_user_platform" json:"user_id"`
	Platform string `gorm:"size:20;not null;uniqueIndex:idx_social_accounts_user_platform" json:"platform"`

	AccessToken string `gorm:"type:text;not null" json:"-"`

	// Graph API /me 原样返回的 JSON
	ProfileData datatypes.JSON `json:"profile_data"`
}

func (SocialAccount) TableName() string { return "social_accounts" }
