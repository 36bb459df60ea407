package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"swisstination/domain"
	"swisstination/pkg/logger"
	"swisstination/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// TokenRepository stores issued tokens so logout can invalidate them before
// they expire.
type TokenRepository interface {
	StoreToken(ctx context.Context, userID, token string, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	RevokeToken(ctx context.Context, userID, token string) error
}

type authService struct {
	userRepo  UserRepository
	tokenRepo TokenRepository
	validate  *validator.Validate
	tokenTTL  time.Duration
}

func NewAuthService(userRepo UserRepository, tokenRepo TokenRepository, validate *validator.Validate, tokenTTL time.Duration) *authService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		validate:  validate,
		tokenTTL:  tokenTTL,
	}
}

func (s *authService) Signup(ctx context.Context, user *domain.User) (string, domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", "error", err)
		return "", domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", "error", err)
		return "", domain.User{}, errors.New("password must be at least 6 characters")
	}

	// Check if email already exists
	existingUser, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.UserID != "" {
		logger.Error("Email already exists", "email", user.Email)
		return "", domain.User{}, errors.New("user with this email already exists")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return "", domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		UserID:    uuid.NewString(),
		Name:      user.Name,
		Email:     user.Email,
		Password:  passwordHash,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", "error", err)
		return "", domain.User{}, err
	}

	token, err := s.issueToken(ctx, newUser)
	if err != nil {
		return "", domain.User{}, err
	}

	newUser.Password = ""
	return token, newUser, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Invalid user credentials", "error", err)
		return "", domain.User{}, errors.New("invalid email or password")
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Error("User password incorrect", "email", email)
		return "", domain.User{}, errors.New("invalid email or password")
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return "", domain.User{}, err
	}

	user.Password = ""
	return token, user, nil
}

func (s *authService) Logout(ctx context.Context, userID, token string) error {
	if s.tokenRepo == nil {
		return nil
	}

	if err := s.tokenRepo.RevokeToken(ctx, userID, token); err != nil {
		logger.Error("Failed to revoke token", "error", err)
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// ValidateTokenFromRedis resolves a token back to its user id, used by the
// auth middleware to reject tokens revoked before expiry.
func (s *authService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	if s.tokenRepo == nil {
		return "", errors.New("token store is not configured")
	}

	return s.tokenRepo.ValidateToken(ctx, token)
}

func (s *authService) GetProfile(ctx context.Context, userID string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("context error: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		logger.Error("Failed to find user", "error", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

func (s *authService) issueToken(ctx context.Context, user domain.User) (string, error) {
	token, err := utils.GenerateJWT(user.UserID, user.Email, s.tokenTTL)
	if err != nil {
		logger.Error("Failed to generate token", "error", err)
		return "", errors.New("failed to generate token")
	}

	if s.tokenRepo != nil {
		if err := s.tokenRepo.StoreToken(ctx, user.UserID, token, s.tokenTTL); err != nil {
			logger.Error("Failed to store token", "error", err)
			return "", fmt.Errorf("failed to store token: %w", err)
		}
	}

	return token, nil
}
