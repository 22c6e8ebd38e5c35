package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/albretostimbung/naraicoderbe/internal/model"
	"github.com/albretostimbung/naraicoderbe/pkg/jwtutil"
	"gorm.io/gorm"
)

// IssueToken records a new access token for user and returns its signed form
func IssueToken(ctx context.Context, db *gorm.DB, user *model.User, name string) (string, *model.AccessToken, error) {
	util := jwtutil.Default()

	token := &model.AccessToken{
		UserID:    user.ID,
		Name:      name,
		ExpiresAt: time.Now().UTC().Add(util.TokenTTL()),
	}
	if err := db.WithContext(ctx).Create(token).Error; err != nil {
		return "", nil, fmt.Errorf("store access token: %w", err)
	}

	signed, err := util.GenerateToken(user.ID, user.Email, user.Role, token.ID, token.ExpiresAt)
	if err != nil {
		return "", nil, fmt.Errorf("sign access token: %w", err)
	}

	return signed, token, nil
}

// RevokeToken marks token as no longer usable
func RevokeToken(ctx context.Context, db *gorm.DB, token *model.AccessToken) error {
	return db.WithContext(ctx).Model(token).Update("revoked", true).Error
}
