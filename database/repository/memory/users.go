package memory

import (
	"context"
	"fmt"
	"time"

	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return fmt.Errorf("failed to create user: email %s already exists", user.Email)
		}
		if user.FirebaseUID != "" && existing.FirebaseUID == user.FirebaseUID {
			return fmt.Errorf("failed to create user: firebaseUid %s already exists", user.FirebaseUID)
		}
	}

	now := r.s.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.s.users[user.ID] = copyUser(*user)
	return nil
}

func (r *UserRepo) findOne(match func(models.User) bool) *models.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			out := copyUser(u)
			return &out
		}
	}
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(func(u models.User) bool { return u.ID == id }), nil
}

func (r *UserRepo) GetByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, nil
	}
	return r.findOne(func(u models.User) bool { return u.FirebaseUID == uid }), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.findOne(func(u models.User) bool { return u.Email == email }), nil
}

func (r *UserRepo) Update(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return fmt.Errorf("user with id %s not found", user.ID.Hex())
	}
	user.UpdatedAt = r.s.now()
	r.s.users[user.ID] = copyUser(*user)
	return nil
}

func (r *UserRepo) find(match func(models.User) bool) []models.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.User{}
	for _, u := range r.s.users {
		if match(u) {
			out = append(out, copyUser(u))
		}
	}
	sortNewestFirst(out, func(u models.User) time.Time { return u.CreatedAt })
	return out
}

func (r *UserRepo) List(_ context.Context, role string) ([]models.User, error) {
	return r.find(func(u models.User) bool { return role == "" || u.Role == role }), nil
}

func (r *UserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	return int64(len(r.find(func(u models.User) bool { return u.Role == role }))), nil
}
