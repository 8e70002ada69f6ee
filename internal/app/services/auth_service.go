package services

import (
	"context"
	"strings"

	"github.com/deniz/courseloop/internal/app/models"
	"github.com/deniz/courseloop/internal/app/models/dto"
	"github.com/deniz/courseloop/internal/pkg/apperrors"
	"github.com/deniz/courseloop/internal/pkg/auth"
	"github.com/deniz/courseloop/internal/pkg/logger"
)

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

type authService struct {
	userRepo   UserStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo UserStore, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         models.RoleStudent,
		Institution:  strings.TrimSpace(req.Institution),
		Program:      strings.TrimSpace(req.Program),
	}

	if _, err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("userID", user.ID).Str("email", email).Msg("User registered")
	return s.issueToken(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		// Hide whether the account exists
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *authService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, id)
}

func (s *authService) issueToken(user *models.User) (*dto.TokenResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
