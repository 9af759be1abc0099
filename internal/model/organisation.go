package model

import "time"

type Organisation struct {
	BaseModel
	Name string `gorm:"size:100" json:"name"`

	// 只有通过审核的组织才能发帖、调用 AI
	Verified bool `gorm:"not null;default:false" json:"verified"`

	Members []OrganisationMember `gorm:"foreignKey:OrganisationID" json:"members,omitempty"`
}

func (Organisation) TableName() string { return "organisations" }

// OrganisationMember 中间表：记录用户属于哪个组织
type OrganisationMember struct {
	OrganisationID string `gorm:"type:uuid;primaryKey" json:"organisation_id"`
	UserID         string `gorm:"type:uuid;primaryKey;index" json:"user_id"`

	// 角色: owner, admin, member
	Role      string    `gorm:"size:20;default:'member'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (OrganisationMember) TableName() string { return "organisation_members" }
