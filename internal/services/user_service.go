package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"aicodegen-backend/internal/database"
	"aicodegen-backend/internal/models"

	"gorm.io/gorm"
)

const identityCacheDuration = 10 * time.Minute

func identityCacheKey(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}

// NormalizeEmail trims and lowercases an address before it is stored or compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func FindUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := database.DB.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := database.DB.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ResolveIdentity maps a token subject to the account projection, reading through the redis cache.
func ResolveIdentity(ctx context.Context, userID string) (models.Identity, error) {
	cacheKey := identityCacheKey(userID)
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var identity models.Identity
			if err := json.Unmarshal([]byte(val), &identity); err == nil {
				return identity, nil
			}
		}
	}

	user, err := FindUserByID(ctx, userID)
	if err != nil {
		return models.Identity{}, err
	}
	identity := user.Identity()

	if database.RedisClient != nil {
		if data, err := json.Marshal(identity); err == nil {
			database.RedisClient.Set(ctx, cacheKey, data, identityCacheDuration)
		}
	}

	return identity, nil
}

// SetRefreshToken stores (or clears, when token is nil) the account's refresh credential.
func SetRefreshToken(ctx context.Context, userID string, token *string) error {
	result := database.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("refresh_token", token)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	invalidateIdentityCache(ctx, userID)
	return nil
}

func invalidateIdentityCache(ctx context.Context, userID string) {
	if database.RedisClient != nil {
		database.RedisClient.Del(ctx, identityCacheKey(userID))
	}
}
