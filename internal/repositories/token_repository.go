package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"stockroom/internal/models"
)

// TokenRepository is the denylist of revoked JWTs, consulted on every
// authenticated request so logout actually invalidates a token.
type TokenRepository interface {
	Revoke(jti string, expiresAt time.Time) error
	IsRevoked(jti string) (bool, error)
}

// GORMTokenRepository is a GORM implementation of TokenRepository.
type GORMTokenRepository struct {
	db *gorm.DB
}

// NewGORMTokenRepository creates a new instance of GORMTokenRepository.
func NewGORMTokenRepository(db *gorm.DB) *GORMTokenRepository {
	return &GORMTokenRepository{
		db: db,
	}
}

// Revoke records a token's jti until its natural expiry. Revoking the same
// token twice is a no-op.
func (r *GORMTokenRepository) Revoke(jti string, expiresAt time.Time) error {
	entry := models.RevokedToken{JTI: jti, ExpiresAt: expiresAt}
	res := r.db.Where("jti = ?", jti).FirstOrCreate(&entry)
	if res.Error != nil {
		return fmt.Errorf("failed to revoke token %s: %w", jti, res.Error)
	}
	return nil
}

// IsRevoked reports whether a token's jti is on the denylist.
func (r *GORMTokenRepository) IsRevoked(jti string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.RevokedToken{}).Where("jti = ?", jti).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check token %s: %w", jti, err)
	}
	return count > 0, nil
}
