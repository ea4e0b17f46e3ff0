package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"github.com/sshusain313/causeconnect-sub000/internal/apperrors"
	"github.com/sshusain313/causeconnect-sub000/internal/config"
	"github.com/sshusain313/causeconnect-sub000/internal/models"
	"github.com/sshusain313/causeconnect-sub000/internal/repositories"
	"github.com/sshusain313/causeconnect-sub000/internal/utils"
	"github.com/sshusain313/causeconnect-sub000/pkg/mailer"
)

// AuthService handles registration and login
type AuthService struct {
	userRepo repositories.UserRepository
	mailer   mailer.Mailer
	cfg      *config.Config
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository, m mailer.Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		mailer:   m,
		cfg:      cfg,
	}
}

// Register creates a new user account. Admin accounts cannot be
// self-registered; the role defaults to "user" when absent. The welcome
// email is best-effort and never fails registration.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if !models.ValidRole(req.Role) {
		return nil, apperrors.Validation("unknown role %q", req.Role)
	}
	if req.Role == models.RoleAdmin {
		return nil, apperrors.Forbidden("admin accounts cannot be self-registered")
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Server("failed to check for existing user", err)
	}
	if existing != nil {
		return nil, apperrors.Validation("a user with email %s already exists", req.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Server("failed to hash password", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperrors.Server("failed to create user", err)
	}

	if _, err := s.mailer.SendMail(user.Email, "Welcome to CauseConnect",
		"Thanks for joining CauseConnect, "+user.Name+"!"); err != nil {
		slog.Warn("welcome email failed", "email", user.Email, "error", err)
	}

	user.Password = ""
	return user, nil
}

// Login verifies credentials and issues a JWT
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.Auth("invalid credentials")
		}
		return nil, apperrors.Server("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.Auth("invalid credentials")
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, string(user.Role), s.cfg)
	if err != nil {
		return nil, apperrors.Server("failed to generate token", err)
	}

	user.Password = ""
	return &models.LoginResponse{Token: token, User: user}, nil
}
