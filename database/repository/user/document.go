package userRepo

import (
	"time"

	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// userDocument is the flat persisted shape of a user. Decorator fields are
// stored alongside the account and only surface when the role is decorator.
type userDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Email         string             `bson:"email"`
	Password      string             `bson:"password"`
	Role          string             `bson:"role"`
	FirebaseUID   string             `bson:"firebaseUid,omitempty"`
	PhotoURL      string             `bson:"photoURL,omitempty"`
	PhoneNumber   string             `bson:"phoneNumber,omitempty"`
	FCMToken      string             `bson:"fcmToken,omitempty"`
	Specialties   []string           `bson:"specialties,omitempty"`
	Rating        float64            `bson:"rating"`
	TotalProjects int                `bson:"totalProjects"`
	IsApproved    bool               `bson:"isApproved"`
	IsActive      bool               `bson:"isActive"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func toDocument(u *models.User) userDocument {
	doc := userDocument{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Password:    u.PasswordHash,
		Role:        u.Role,
		FirebaseUID: u.FirebaseUID,
		PhotoURL:    u.PhotoURL,
		PhoneNumber: u.PhoneNumber,
		FCMToken:    u.FCMToken,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if u.Decorator != nil {
		doc.Specialties = u.Decorator.Specialties
		doc.Rating = u.Decorator.Rating
		doc.TotalProjects = u.Decorator.TotalProjects
		doc.IsApproved = u.Decorator.IsApproved
	}
	return doc
}

func (d userDocument) toModel() *models.User {
	u := &models.User{
		Account: models.Account{
			ID:          d.ID,
			Name:        d.Name,
			Email:       d.Email,
			Role:        d.Role,
			FirebaseUID: d.FirebaseUID,
			PhotoURL:    d.PhotoURL,
			PhoneNumber: d.PhoneNumber,
			IsActive:    d.IsActive,
			FCMToken:    d.FCMToken,
			CreatedAt:   d.CreatedAt,
			UpdatedAt:   d.UpdatedAt,
		},
		PasswordHash: d.Password,
	}
	if d.Role == models.RoleDecorator {
		u.Decorator = &models.DecoratorProfile{
			Specialties:   d.Specialties,
			Rating:        d.Rating,
			TotalProjects: d.TotalProjects,
			IsApproved:    d.IsApproved,
		}
	}
	return u
}
