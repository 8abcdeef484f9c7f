package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AuthTypeFirebase = "firebase"
	AuthTypeJWT      = "jwt"
)

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID      primitive.ObjectID
	Email       string
	Name        string
	Role        string
	FirebaseUID string
	IsActive    bool
	IsApproved  bool
	AuthType    string
	// ExpiresAt is when the presented credential expires, if known.
	ExpiresAt time.Time
}

func (i *Identity) HasRole(roles ...string) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// ProviderClaims are the verified claims of an identity-provider token.
type ProviderClaims struct {
	UID     string
	Email   string
	Name    string
	Picture string
	Phone   string
}
