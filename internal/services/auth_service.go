package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"karesave-backend/internal/models"
	"karesave-backend/internal/repositories"
	"karesave-backend/pkg/auth"
)

const RoleAdmin = "admin"

type AuthService struct {
	adminRepo  repositories.AdminUserRepository
	jwtManager *auth.JWTManager
	log        *zap.Logger
}

func NewAuthService(adminRepo repositories.AdminUserRepository, jwtManager *auth.JWTManager, log *zap.Logger) *AuthService {
	return &AuthService{
		adminRepo:  adminRepo,
		jwtManager: jwtManager,
		log:        log,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	TokenType    string           `json:"token_type"`
	ExpiresIn    int64            `json:"expires_in"` // seconds until access token expires
	User         models.AdminUser `json:"user"`
}

// EnsureAdmin creates the bootstrap admin account if no account with that
// email exists. An existing account is left untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	_, err := s.adminRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &models.AdminUser{
		Name:         name,
		Email:        email,
		Role:         RoleAdmin,
		Permissions:  models.StringArray{"orders", "outreach", "inbox"},
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}
	if err := s.adminRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	s.log.Info("bootstrap admin created", zap.String("email", email))
	return nil
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.adminRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, errors.New("account is not active")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokenPair, err := s.jwtManager.GenerateTokenPair(user.ID.String(), user.Role, user.Email)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.adminRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.log.Warn("failed to record admin login", zap.String("user_id", user.ID.String()), zap.Error(err))
	} else {
		user.LastLoginAt = &now
	}

	return &AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    tokenPair.ExpiresIn,
		User:         *user,
	}, nil
}

// Refresh issues a new access token for a still-active admin. The refresh
// token itself is returned unchanged.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateToken(refreshToken)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	if claims.TokenType != auth.RefreshToken {
		return nil, auth.ErrInvalidTokenType
	}

	user, err := s.adminRepo.GetByEmail(ctx, claims.Email)
	if err != nil || user.ID.String() != claims.UserID {
		return nil, auth.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, errors.New("account is not active")
	}

	accessToken, err := s.jwtManager.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.AccessTTL().Seconds()),
		User:         *user,
	}, nil
}
