package user

import (
	"context"
	"strings"

	"styledecor/models"
	"styledecor/services/auth"
	"styledecor/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) Sync(ctx context.Context, req models.UserSyncRequest) (*models.User, error) {
	req.Email = models.NormalizeEmail(req.Email)
	if problems := utils.ValidateStruct(req); len(problems) > 0 {
		if req.Email == "" {
			return nil, utils.NewError(utils.KindValidation, "Email is required")
		}
		return nil, utils.ValidationError(problems...)
	}

	var existing *models.User
	var err error
	if req.UID != "" {
		existing, err = s.Repo.GetByFirebaseUID(ctx, req.UID)
		if err != nil {
			return nil, utils.Internal("Failed to create or update user", err)
		}
	}
	byEmail, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.Internal("Failed to create or update user", err)
	}
	switch {
	case existing == nil && byEmail != nil:
		// An email already linked to a provider identity only syncs under that identity.
		if byEmail.FirebaseUID != "" && byEmail.FirebaseUID != req.UID {
			return nil, utils.Forbidden("This email is linked to another account")
		}
		existing = byEmail
	case existing != nil && byEmail != nil && byEmail.ID != existing.ID:
		return nil, utils.Forbidden("This email is linked to another account")
	}

	if existing != nil {
		if name := strings.TrimSpace(req.Name); name != "" {
			existing.Name = name
		} else if existing.Name == "" {
			existing.Name = auth.DisplayName("", req.Email)
		}
		existing.Email = req.Email
		if req.UID != "" {
			existing.FirebaseUID = req.UID
		}
		if req.PhoneNumber != "" {
			existing.PhoneNumber = req.PhoneNumber
		}
		if req.PhotoURL != "" {
			existing.PhotoURL = req.PhotoURL
		}
		if req.FCMToken != "" {
			existing.FCMToken = req.FCMToken
		}
		if err := s.Repo.Update(ctx, existing); err != nil {
			return nil, utils.Internal("Failed to create or update user", err)
		}
		return existing, nil
	}

	// Provider-managed accounts never log in with a password; store a hash nobody knows.
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.Internal("Failed to create or update user", err)
	}
	created := &models.User{
		Account: models.Account{
			Name:        auth.DisplayName(req.Name, req.Email),
			Email:       req.Email,
			Role:        models.RoleUser,
			FirebaseUID: req.UID,
			PhotoURL:    req.PhotoURL,
			PhoneNumber: req.PhoneNumber,
			IsActive:    true,
			FCMToken:    req.FCMToken,
		},
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(ctx, created); err != nil {
		return nil, utils.Internal("Failed to create or update user", err)
	}
	utils.GetLogger().Info("User synced from provider", zap.String("email", created.Email))
	return created, nil
}

func (s *DefaultUserService) GetUser(ctx context.Context, key string) (*models.User, error) {
	u, err := s.Repo.GetByFirebaseUID(ctx, key)
	if err != nil {
		return nil, utils.Internal("Failed to fetch user", err)
	}
	if u == nil {
		if id, ok := models.ParseObjectID(key); ok {
			if u, err = s.Repo.GetByID(ctx, id); err != nil {
				return nil, utils.Internal("Failed to fetch user", err)
			}
		}
	}
	if u == nil {
		return nil, utils.NotFound("User not found")
	}
	return u, nil
}

func (s *DefaultUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.List(ctx, "")
	if err != nil {
		return nil, utils.Internal("Failed to fetch users", err)
	}
	return users, nil
}

func (s *DefaultUserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return nil, utils.NewError(utils.KindValidation, "Email is required")
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.Internal("Failed to search user", err)
	}
	if u == nil {
		return nil, utils.NotFound("User not found")
	}
	return u, nil
}

func (s *DefaultUserService) UpdateRole(ctx context.Context, userID, role string) (*models.User, error) {
	if !models.OneOf(role, models.Roles) {
		return nil, utils.NewError(utils.KindInvalidRole, "Invalid role. Must be user, admin, or decorator")
	}
	u, err := s.load(ctx, userID, "User not found")
	if err != nil {
		return nil, err
	}
	u.SetRole(role)
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, utils.Internal("Failed to update user role", err)
	}
	return u, nil
}

func (s *DefaultUserService) load(ctx context.Context, id, notFound string) (*models.User, error) {
	oid, ok := models.ParseObjectID(id)
	if !ok {
		return nil, utils.NotFound(notFound)
	}
	u, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		return nil, utils.Internal("Failed to fetch user", err)
	}
	if u == nil {
		return nil, utils.NotFound(notFound)
	}
	return u, nil
}
