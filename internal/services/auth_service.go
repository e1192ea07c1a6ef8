package services

import (
	"context"
	"errors"
	"strings"

	"aicodegen-backend/config"
	"aicodegen-backend/internal/database"
	"aicodegen-backend/internal/models"
	"aicodegen-backend/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthResult is what a successful login or refresh hands back to the caller.
type AuthResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

func RegisterUser(ctx context.Context, name, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)

	// Check if user already exists
	_, err := FindUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := database.DB.WithContext(ctx).Create(user).Error; err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return user, nil
}

func LoginUser(ctx context.Context, cfg config.JWTConfig, email, password string) (*AuthResult, error) {
	user, err := FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return issueTokens(ctx, cfg, user)
}

// RefreshTokens exchanges a valid refresh token for a new pair. The presented
// token must be the one currently stored on the account; it is rotated out.
func RefreshTokens(ctx context.Context, cfg config.JWTConfig, refreshToken string) (*AuthResult, error) {
	claims, err := utils.ValidateToken(refreshToken, cfg.RefreshSecret)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, ErrInvalidRefreshToken
	}

	return issueTokens(ctx, cfg, user)
}

// LogoutUser revokes the presented access token and forgets the refresh token.
func LogoutUser(ctx context.Context, userID string, accessToken string, claims *utils.Claims) error {
	if claims != nil {
		if err := AddToDenylist(ctx, accessToken, claims.RemainingLifetime()); err != nil {
			return err
		}
	}
	return SetRefreshToken(ctx, userID, nil)
}

func issueTokens(ctx context.Context, cfg config.JWTConfig, user *models.User) (*AuthResult, error) {
	accessToken, err := utils.GenerateToken(user.ID, cfg.AccessSecret, cfg.AccessTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := utils.GenerateToken(user.ID, cfg.RefreshSecret, cfg.RefreshTTL)
	if err != nil {
		return nil, err
	}

	if err := SetRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, err
	}
	user.RefreshToken = &refreshToken

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
