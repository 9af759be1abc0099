package repository

import (
	"context"

	"Chirpio/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SocialAccountRepository interface {
	// Upsert 以 (user_id, platform) 为冲突键，覆盖 token 和 profile
	Upsert(ctx context.Context, account *model.SocialAccount) error
	// Delete 返回删除的行数，0 行不算错误
	Delete(ctx context.Context, userID, platform string) (int64, error)
	Find(ctx context.Context, userID, platform string) (*model.SocialAccount, error)
}

type socialAccountRepository struct {
	db *gorm.DB
}

func NewSocialAccountRepository(db *gorm.DB) SocialAccountRepository {
	return &socialAccountRepository{db: db}
}

func (r *socialAccountRepository) Upsert(ctx context.Context, account *model.SocialAccount) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "profile_data", "updated_at"}),
	}).Create(account).Error
}

func (r *socialAccountRepository) Delete(ctx context.Context, userID, platform string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND platform = ?", userID, platform).
		Delete(&model.SocialAccount{})
	return res.RowsAffected, res.Error
}

func (r *socialAccountRepository) Find(ctx context.Context, userID, platform string) (*model.SocialAccount, error) {
	var acc model.SocialAccount
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND platform = ?", userID, platform).
		Take(&acc).Error; err != nil {
		return nil, translate(err)
	}
	return &acc, nil
}
