package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	PostStatusScheduled = "scheduled"
)

// 支持的平台
const (
	PlatformFacebook  = "facebook"
	PlatformTwitter   = "twitter"
	PlatformInstagram = "instagram"
	PlatformLinkedIn  = "linkedin"
)

var Platforms = []string{PlatformFacebook, PlatformTwitter, PlatformInstagram, PlatformLinkedIn}

func IsPlatform(p string) bool {
	for _, v := range Platforms {
		if v == p {
			return true
		}
	}
	return false
}

type Post struct {
	BaseModel
	OrganisationID string `gorm:"type:uuid;index;not null" json:"organisation_id"`
	UserID         string `gorm:"type:uuid;index;not null" json:"user_id"`

	Content   string                      `gorm:"type:text;not null" json:"content"`
	Platforms datatypes.JSONSlice[string] `gorm:"not null" json:"platforms"`

	// 只记录发布意图，创建时固定为 scheduled
	Status        string     `gorm:"size:20;not null;index" json:"status"`
	ScheduledTime *time.Time `json:"scheduled_time"`
}

func (Post) TableName() string { return "posts" }
