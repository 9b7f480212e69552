package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"expense-manager/internal/models"

	"gorm.io/gorm"
)

var ErrTokenNotFound = errors.New("token not found")

type blacklistedTokenRepository struct {
	db *gorm.DB
}

func NewBlacklistedTokenRepository(db *gorm.DB) BlacklistedTokenRepositoryInterface {
	return &blacklistedTokenRepository{db: db}
}

// Create revokes token.JTI. Revoking an already revoked JTI succeeds.
func (r *blacklistedTokenRepository) Create(ctx context.Context, token *models.BlacklistedToken) error {
	err := r.db.WithContext(ctx).Create(token).Error
	switch {
	case err == nil, isDuplicateKeyError(err):
		return nil
	default:
		return fmt.Errorf("failed to revoke token %s: %w", token.JTI, err)
	}
}

func (r *blacklistedTokenRepository) GetByJTI(ctx context.Context, jti string) (*models.BlacklistedToken, error) {
	token := &models.BlacklistedToken{}
	err := r.db.WithContext(ctx).Where("jti = ?", jti).Take(token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up revoked token: %w", err)
	}
	return token, nil
}

// DeleteExpired removes revocations for tokens that expired before the cutoff.
func (r *blacklistedTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&models.BlacklistedToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired revoked tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}
