package repository

import (
	"context"

	"Chirpio/internal/model"

	"gorm.io/gorm"
)

type OrgRepository interface {
	// FindMembership 返回用户的第一条成员记录
	FindMembership(ctx context.Context, userID string) (*model.OrganisationMember, error)
	FindOrganisation(ctx context.Context, orgID string) (*model.Organisation, error)
}

type orgRepository struct {
	db *gorm.DB
}

func NewOrgRepository(db *gorm.DB) OrgRepository {
	return &orgRepository{db: db}
}

func (r *orgRepository) FindMembership(ctx context.Context, userID string) (*model.OrganisationMember, error) {
	var m model.OrganisationMember
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&m).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *orgRepository) FindOrganisation(ctx context.Context, orgID string) (*model.Organisation, error) {
	var org model.Organisation
	if err := r.db.WithContext(ctx).Where("id = ?", orgID).Take(&org).Error; err != nil {
		return nil, translate(err)
	}
	return &org, nil
}
