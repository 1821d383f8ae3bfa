package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"meetsync/core/errors"
	"meetsync/core/logger"
	"meetsync/core/utils"
	"meetsync/modules/auth/dto"
	"meetsync/modules/auth/entity"
	"meetsync/modules/auth/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, *errors.AppError)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, *errors.AppError)
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError)
}

type AuthService struct {
	repo repository.AuthRepositoryInterface
}

func NewAuthService(repo repository.AuthRepositoryInterface) AuthServiceInterface {
	return &AuthService{repo: repo}
}

// Register creates an account and issues a token
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid email address", nil)
	}
	if len(req.Password) < 8 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Password must be at least 8 characters", nil)
	}

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "Email is already registered", nil)
	} else if !stderrors.Is(err, sql.ErrNoRows) {
		logger.Error("AuthService:Register:Lookup", "email", email, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check existing account", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("AuthService:Register:Hash", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to hash password", err)
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if req.Name != "" {
		user.Name = &req.Name
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logger.Error("AuthService:Register:Insert", "email", email, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create account", err)
	}

	return s.issueToken(created)
}

// Login validates credentials and issues a token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid email or password", nil)
		}
		logger.Error("AuthService:Login:Lookup", "email", email, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load account", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid email or password", nil)
	}

	return s.issueToken(user)
}

// Me returns the authenticated user's profile
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewAppError(errors.ErrNotFound, "User not found", err)
		}
		logger.Error("AuthService:Me", "user_id", userID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load user", err)
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *AuthService) issueToken(user *entity.User) (*dto.AuthResponse, *errors.AppError) {
	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		logger.Error("AuthService:IssueToken", "user_id", user.ID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to issue token", err)
	}

	return &dto.AuthResponse{
		AccessToken: token,
		User:        dto.ToUserResponse(user),
	}, nil
}
