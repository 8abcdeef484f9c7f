package user

import (
	"context"
	"errors"

	"styledecor/models"
	"styledecor/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a password account and signs it in.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	req.Email = models.NormalizeEmail(req.Email)
	if problems := utils.ValidateStruct(req); len(problems) > 0 {
		return nil, utils.ValidationError(problems...)
	}

	existing, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.Internal("Registration failed, please try again", err)
	}
	if existing != nil {
		return nil, utils.NewError(utils.KindValidation, "A user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.Internal("Registration failed, please try again", err)
	}
	u := &models.User{
		Account: models.Account{
			Name:     req.Name,
			Email:    req.Email,
			Role:     models.RoleUser,
			IsActive: true,
		},
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, utils.Internal("Registration failed, please try again", err)
	}
	return s.issue(u)
}

// Login checks the password and issues a fresh token.
func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	req.Email = models.NormalizeEmail(req.Email)
	if problems := utils.ValidateStruct(req); len(problems) > 0 {
		return nil, utils.ValidationError(problems...)
	}

	u, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.Internal("Login failed, please try again", err)
	}
	if u == nil || u.PasswordHash == "" {
		return nil, utils.Unauthenticated("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			utils.GetLogger().Warn("Password comparison failed", zap.Error(err))
		}
		return nil, utils.Unauthenticated("Invalid email or password")
	}
	if !u.IsActive {
		return nil, utils.Unauthenticated("Account is deactivated. Please contact support.")
	}
	return s.issue(u)
}

func (s *DefaultUserService) Me(ctx context.Context, caller *models.Identity) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, utils.Internal("Failed to fetch user", err)
	}
	if u == nil {
		return nil, utils.NotFound("User not found")
	}
	return u, nil
}

func (s *DefaultUserService) issue(u *models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(s.JWTSecret, u.ID.Hex(), u.Email, s.TokenExpiry)
	if err != nil {
		return nil, utils.Internal("Failed to generate token", err)
	}
	return &models.AuthResponse{Token: token, User: u}, nil
}
