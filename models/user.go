package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser      = "user"
	RoleDecorator = "decorator"
	RoleAdmin     = "admin"
)

var Roles = []string{RoleUser, RoleDecorator, RoleAdmin}

// Account is the part of a user every role shares.
type Account struct {
	ID          primitive.ObjectID `json:"_id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Role        string             `json:"role"`
	FirebaseUID string             `json:"firebaseUid,omitempty"`
	PhotoURL    string             `json:"photoURL,omitempty"`
	PhoneNumber string             `json:"phoneNumber,omitempty"`
	IsActive    bool               `json:"isActive"`
	FCMToken    string             `json:"-"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// DecoratorProfile only exists for accounts whose role is decorator.
type DecoratorProfile struct {
	Specialties   []string `json:"specialties"`
	Rating        float64  `json:"rating"`
	TotalProjects int      `json:"totalProjects"`
	IsApproved    bool     `json:"isApproved"`
}

// User is an account with an optional decorator extension.
type User struct {
	Account
	PasswordHash string            `json:"-"`
	Decorator    *DecoratorProfile `json:"decorator,omitempty"`
}

func (u *User) IsDecorator() bool {
	return u.Role == RoleDecorator
}

func (u *User) IsApprovedDecorator() bool {
	return u.IsDecorator() && u.Decorator != nil && u.Decorator.IsApproved
}

// SetRole changes the role and keeps the decorator extension consistent with it.
// Entering the decorator role always starts unapproved.
func (u *User) SetRole(role string) {
	if role == RoleDecorator {
		if u.Decorator == nil {
			u.Decorator = &DecoratorProfile{}
		}
		u.Decorator.IsApproved = false
	} else {
		u.Decorator = nil
	}
	u.Role = role
}

// Identity returns the authenticated principal derived from the user.
func (u *User) Identity(authType string) *Identity {
	return &Identity{
		UserID:      u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		FirebaseUID: u.FirebaseUID,
		IsActive:    u.IsActive,
		IsApproved:  u.IsApprovedDecorator(),
		AuthType:    authType,
	}
}

// UserSyncRequest is sent by clients after signing in with the identity provider.
type UserSyncRequest struct {
	UID         string `json:"uid"`
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name" validate:"max=100"`
	PhotoURL    string `json:"photoURL"`
	PhoneNumber string `json:"phone"`
	FCMToken    string `json:"fcmToken"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type DecoratorProfileUpdate struct {
	Specialties []string `json:"specialties"`
	PhoneNumber *string  `json:"phoneNumber"`
	PhotoURL    *string  `json:"photoURL"`
}
