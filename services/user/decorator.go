package user

import (
	"context"

	"styledecor/models"
	"styledecor/utils"
)

func (s *DefaultUserService) ListDecorators(ctx context.Context) ([]models.User, error) {
	decorators, err := s.Repo.List(ctx, models.RoleDecorator)
	if err != nil {
		return nil, utils.Internal("Failed to fetch decorators", err)
	}
	return decorators, nil
}

func (s *DefaultUserService) MakeDecorator(ctx context.Context, userID string, specialties []string) (*models.User, error) {
	if userID == "" {
		return nil, utils.NewError(utils.KindValidation, "User ID is required")
	}
	u, err := s.load(ctx, userID, "User not found")
	if err != nil {
		return nil, err
	}
	u.SetRole(models.RoleDecorator)
	if specialties == nil {
		specialties = []string{}
	}
	u.Decorator.Specialties = specialties
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, utils.Internal("Failed to update user role", err)
	}
	return u, nil
}

func (s *DefaultUserService) SetApproval(ctx context.Context, decoratorID string, approved bool) (*models.User, error) {
	u, err := s.load(ctx, decoratorID, "Decorator not found")
	if err != nil {
		return nil, err
	}
	if !u.IsDecorator() {
		return nil, utils.NotFound("Decorator not found")
	}
	if u.Decorator == nil {
		u.Decorator = &models.DecoratorProfile{}
	}
	u.Decorator.IsApproved = approved
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, utils.Internal("Failed to update decorator status", err)
	}
	return u, nil
}

func (s *DefaultUserService) UpdateDecoratorProfile(ctx context.Context, caller *models.Identity, update models.DecoratorProfileUpdate) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, utils.Internal("Failed to update profile", err)
	}
	if u == nil || !u.IsDecorator() {
		return nil, utils.Forbidden("Access denied. This resource is only available to decorators.")
	}
	if u.Decorator == nil {
		u.Decorator = &models.DecoratorProfile{}
	}
	if update.Specialties != nil {
		u.Decorator.Specialties = update.Specialties
	}
	if update.PhoneNumber != nil && *update.PhoneNumber != "" {
		u.PhoneNumber = *update.PhoneNumber
	}
	if update.PhotoURL != nil && *update.PhotoURL != "" {
		u.PhotoURL = *update.PhotoURL
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, utils.Internal("Failed to update profile", err)
	}
	return u, nil
}
