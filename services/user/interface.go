package user

import (
	"context"
	"time"

	userRepo "styledecor/database/repository/user"
	"styledecor/models"
)

// UserService manages accounts, roles and the decorator extension.
type UserService interface {
	// Sync upserts the local record after a client-side provider sign-in. It never changes the role.
	Sync(ctx context.Context, req models.UserSyncRequest) (*models.User, error)
	// GetUser looks the key up as a provider subject id first, then as a local id.
	GetUser(ctx context.Context, key string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateRole(ctx context.Context, userID, role string) (*models.User, error)

	ListDecorators(ctx context.Context) ([]models.User, error)
	MakeDecorator(ctx context.Context, userID string, specialties []string) (*models.User, error)
	SetApproval(ctx context.Context, decoratorID string, approved bool) (*models.User, error)
	UpdateDecoratorProfile(ctx context.Context, caller *models.Identity, update models.DecoratorProfileUpdate) (*models.User, error)

	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Me(ctx context.Context, caller *models.Identity) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo        userRepo.UserRepository
	JWTSecret   []byte
	TokenExpiry time.Duration
}

func NewUserService(repo userRepo.UserRepository, jwtSecret string, tokenExpiry time.Duration) *DefaultUserService {
	return &DefaultUserService{Repo: repo, JWTSecret: []byte(jwtSecret), TokenExpiry: tokenExpiry}
}
