package serviceRepo

import (
	"context"

	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceRepository defines methods for catalog data access.
// A missing service is reported as (nil, nil).
type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Service, error)
	// Query returns one page of services matching q and the total match count.
	Query(ctx context.Context, q models.ServiceQuery) ([]models.Service, int64, error)
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	Categories(ctx context.Context) ([]string, error)
	Latest(ctx context.Context, limit int) ([]models.Service, error)
	Count(ctx context.Context) (int64, error)
}
