package service

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/dao/cache"
	"Storefront/models"
	"Storefront/pkg/jwt"
	"Storefront/pkg/snowflake"
	"Storefront/pkg/utils"
	"Storefront/types"
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const accessToken = "access"

type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error)
	Me(ctx context.Context, userID int64) (*models.User, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	GrantAdmin(ctx context.Context, email string) error
}

type AuthService struct {
	Jwt       *config.Jwt
	UserDAO   *dao.Users
	Blacklist *cache.TokenBlacklist
}

var _ IAuthService = (*AuthService)(nil)

func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error) {
	email := utils.NormalizeEmail(req.Email)
	if email == "" {
		return nil, invalid("email", "required")
	}
	if len(req.Password) < 8 {
		return nil, invalid("password", "must be at least 8 characters")
	}
	exist, err := s.UserDAO.IsEmailExist(ctx, email)
	if err != nil {
		return nil, err
	}
	if exist {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:           snowflake.GenID(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		Role:         models.RoleCustomer,
	}
	if err := s.UserDAO.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error) {
	user, err := s.UserDAO.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, claims, err := jwt.GenerateToken(
		[]byte(s.Jwt.Secret),
		user.ID,
		user.Email,
		user.Role,
		accessToken,
		time.Duration(s.Jwt.ExpiresIn)*time.Second,
	)
	if err != nil {
		return nil, err
	}
	return &types.LoginResponse{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: user}, nil
}

func (s *AuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	return s.UserDAO.FindById(ctx, userID)
}

// Logout token 在过期前一直留在黑名单中
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return nil
	}
	return s.Blacklist.Add(ctx, jti, expiresAt)
}

func (s *AuthService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	return s.Blacklist.IsBlocked(ctx, jti)
}

func (s *AuthService) GrantAdmin(ctx context.Context, email string) error {
	user, err := s.UserDAO.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return err
	}
	_, err = s.UserDAO.UpdateById(ctx, user.ID, map[string]any{"role": models.RoleAdmin})
	return err
}
