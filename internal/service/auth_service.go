package service

import (
	"context"
	"errors"
	"time"

	"github.com/ducnguyen/caretrack/internal/model"
	"github.com/ducnguyen/caretrack/internal/repository"
	"github.com/ducnguyen/caretrack/pkg/auth"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration and login
type AuthService struct {
	userRepo   *repository.UserRepository
	jwtManager *auth.JWTManager
	rdb        *redis.Client
}

func NewAuthService(userRepo *repository.UserRepository, jwtManager *auth.JWTManager, rdb *redis.Client) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		rdb:        rdb,
	}
}

// Register creates a new user account
func (s *AuthService) Register(req model.RegisterRequest) (*model.UserResponse, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, errors.New("failed to create user")
	}

	resp := user.ToResponse()
	return &resp, nil
}

// Login authenticates a user and returns a JWT token
func (s *AuthService) Login(req model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.New("failed to find user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &model.LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// GetProfile returns the current user's profile
func (s *AuthService) GetProfile(userID uint) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	resp := user.ToResponse()
	return &resp, nil
}

// Logout blacklists the token for the remainder of its lifetime
func (s *AuthService) Logout(tokenString string) error {
	claims, err := s.jwtManager.ValidateToken(tokenString)
	if err != nil {
		return err
	}

	expiresIn := time.Until(claims.ExpiresAt.Time)
	if expiresIn <= 0 {
		return nil
	}

	return s.rdb.Set(context.Background(), "blacklist:"+tokenString, "revoked", expiresIn).Err()
}
