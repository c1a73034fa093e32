package repository

import (
	"time"

	"journal-review-api/models"

	"gorm.io/gorm"
)

type TokenRepository interface {
	Create(token *models.UserToken) error
	FindActiveByHash(tokenHash, tokenType string, now time.Time) (*models.UserToken, error)
	Revoke(tokenID int, now time.Time) error
	RevokeAllForUser(userID int, tokenType string, now time.Time) error
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(token *models.UserToken) error {
	return r.db.Create(token).Error
}

func (r *tokenRepository) FindActiveByHash(tokenHash, tokenType string, now time.Time) (*models.UserToken, error) {
	var token models.UserToken
	err := r.db.Where("token_hash = ? AND token_type = ? AND is_revoked = ? AND expires_at > ?",
		tokenHash, tokenType, false, now).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) Revoke(tokenID int, now time.Time) error {
	return r.db.Model(&models.UserToken{}).
		Where("token_id = ?", tokenID).
		Updates(map[string]interface{}{
			"is_revoked": true,
			"update_at":  now,
		}).Error
}

func (r *tokenRepository) RevokeAllForUser(userID int, tokenType string, now time.Time) error {
	if userID == 0 {
		return nil
	}

	return r.db.Model(&models.UserToken{}).
		Where("user_id = ? AND token_type = ? AND is_revoked = ?", userID, tokenType, false).
		Updates(map[string]interface{}{
			"is_revoked": true,
			"update_at":  now,
			"expires_at": now,
		}).Error
}
