package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	userRepo "styledecor/database/repository/user"
	"styledecor/models"
	"styledecor/utils"

	fbauth "firebase.google.com/go/v4/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Verifier turns a bearer token into an authenticated identity.
// Rejections are returned as *utils.AppError of kind unauthenticated.
type Verifier interface {
	Name() string
	Verify(ctx context.Context, token string) (*models.Identity, error)
}

// IDTokenVerifier is the slice of the Firebase auth client the resolver needs.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseVerifier accepts identity-provider tokens and provisions
// a local user on first sight.
type FirebaseVerifier struct {
	Client IDTokenVerifier
	Users  userRepo.UserRepository
	Now    func() time.Time
}

func NewFirebaseVerifier(client IDTokenVerifier, users userRepo.UserRepository) *FirebaseVerifier {
	return &FirebaseVerifier{Client: client, Users: users, Now: time.Now}
}

func (v *FirebaseVerifier) Name() string { return models.AuthTypeFirebase }

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*models.Identity, error) {
	decoded, err := v.Client.VerifyIDToken(ctx, token)
	if err != nil {
		if fbauth.IsIDTokenExpired(err) {
			return nil, utils.Unauthenticated("Token expired. Please login again.")
		}
		return nil, utils.Unauthenticated("Authentication failed. Invalid token.")
	}

	claims := ProviderClaimsFromToken(decoded)
	user, err := v.findOrProvision(ctx, claims)
	if err != nil {
		return nil, err
	}

	identity := user.Identity(models.AuthTypeFirebase)
	identity.ExpiresAt = time.Unix(decoded.Expires, 0)
	return identity, nil
}

func (v *FirebaseVerifier) findOrProvision(ctx context.Context, claims models.ProviderClaims) (*models.User, error) {
	user, err := v.Users.GetByFirebaseUID(ctx, claims.UID)
	if err != nil {
		return nil, utils.Internal("Failed to load user", err)
	}
	if user != nil {
		return user, nil
	}

	// Accounts created through register/login are linked on first provider sign-in.
	if claims.Email != "" {
		user, err = v.Users.GetByEmail(ctx, claims.Email)
		if err != nil {
			return nil, utils.Internal("Failed to load user", err)
		}
		if user != nil {
			if user.FirebaseUID != "" && user.FirebaseUID != claims.UID {
				return nil, utils.Unauthenticated("This email is linked to another account.")
			}
			user.FirebaseUID = claims.UID
			user.UpdatedAt = v.now()
			if err := v.Users.Update(ctx, user); err != nil {
				return nil, utils.Internal("Failed to link user", err)
			}
			return user, nil
		}
	}

	now := v.now()
	user = &models.User{Account: models.Account{
		ID:          primitive.NewObjectID(),
		Name:        DisplayName(claims.Name, claims.Email),
		Email:       claims.Email,
		Role:        models.RoleUser,
		FirebaseUID: claims.UID,
		PhotoURL:    claims.Picture,
		PhoneNumber: claims.Phone,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}}
	if err := v.Users.Create(ctx, user); err != nil {
		return nil, utils.Internal("Failed to create user", err)
	}
	return user, nil
}

func (v *FirebaseVerifier) now() time.Time {
	if v.Now == nil {
		return time.Now()
	}
	return v.Now()
}

// JWTVerifier accepts tokens issued by the login endpoint.
type JWTVerifier struct {
	Secret []byte
	Users  userRepo.UserRepository
}

func NewJWTVerifier(secret string, users userRepo.UserRepository) *JWTVerifier {
	return &JWTVerifier{Secret: []byte(secret), Users: users}
}

func (v *JWTVerifier) Name() string { return models.AuthTypeJWT }

func (v *JWTVerifier) Verify(ctx context.Context, token string) (*models.Identity, error) {
	claims, err := utils.ParseToken(v.Secret, token)
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return nil, utils.Unauthenticated("Token expired. Please login again.")
		}
		return nil, utils.Unauthenticated("Invalid token. Please login again.")
	}

	id, ok := models.ParseObjectID(claims.UserID)
	if !ok {
		return nil, utils.Unauthenticated("User not found. Token is invalid.")
	}
	user, err := v.Users.GetByID(ctx, id)
	if err != nil {
		return nil, utils.Internal("Failed to load user", err)
	}
	if user == nil {
		return nil, utils.Unauthenticated("User not found. Token is invalid.")
	}
	if !user.IsActive {
		return nil, utils.Unauthenticated("Account is deactivated. Please contact support.")
	}

	identity := user.Identity(models.AuthTypeJWT)
	identity.ExpiresAt = claims.ExpiresAt
	return identity, nil
}

// ProviderClaimsFromToken extracts the profile claims carried by a Firebase ID token.
func ProviderClaimsFromToken(t *fbauth.Token) models.ProviderClaims {
	str := func(key string) string {
		if v, ok := t.Claims[key].(string); ok {
			return v
		}
		return ""
	}
	return models.ProviderClaims{
		UID:     t.UID,
		Email:   models.NormalizeEmail(str("email")),
		Name:    str("name"),
		Picture: str("picture"),
		Phone:   str("phone_number"),
	}
}

// DisplayName falls back to the local part of the email when no name is known.
func DisplayName(name, email string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return "User"
}
