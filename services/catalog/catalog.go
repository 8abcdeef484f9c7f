package catalog

import (
	"context"
	"io"
	"math"
	"strconv"
	"strings"

	serviceRepo "styledecor/database/repository/service"
	"styledecor/models"
	"styledecor/services/storage"
	"styledecor/utils"

	"go.uber.org/zap"
)

const (
	DefaultPage          = 1
	DefaultLimit         = 10
	DefaultFeaturedLimit = 6
	DefaultSort          = "-createdAt"
)

var sortableFields = []string{"createdAt", "cost", "service_name"}

// CatalogService exposes the decoration service catalog.
type CatalogService interface {
	List(ctx context.Context, params ListParams) (*models.ServicePage, error)
	Get(ctx context.Context, id string) (*models.Service, error)
	Featured(ctx context.Context, limit string) ([]models.Service, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, caller *models.Identity, in ServiceInput) (*models.Service, error)
	Update(ctx context.Context, id string, patch ServicePatch) (*models.Service, error)
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, file io.Reader, filename string) (string, error)
}

type DefaultCatalogService struct {
	Repo serviceRepo.ServiceRepository
	// Images is nil when no image host is configured.
	Images storage.ImageStore
}

func NewCatalogService(repo serviceRepo.ServiceRepository, images storage.ImageStore) *DefaultCatalogService {
	return &DefaultCatalogService{Repo: repo, Images: images}
}

// ParseListParams applies defaults and drops values that do not parse.
func ParseListParams(p ListParams) models.ServiceQuery {
	q := models.ServiceQuery{
		Search:   strings.TrimSpace(p.Search),
		Category: strings.TrimSpace(p.Category),
		Page:     positiveInt(p.Page, DefaultPage),
		Limit:    positiveInt(p.Limit, DefaultLimit),
	}
	if v, err := strconv.ParseFloat(p.MinCost, 64); err == nil {
		q.MinCost = &v
	}
	if v, err := strconv.ParseFloat(p.MaxCost, 64); err == nil {
		q.MaxCost = &v
	}
	q.SortField, q.SortDesc = parseSort(p.Sort)
	return q
}

func parseSort(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	field, desc := strings.TrimPrefix(raw, "-"), strings.HasPrefix(raw, "-")
	if !models.OneOf(field, sortableFields) {
		return "createdAt", true
	}
	return field, desc
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func (s *DefaultCatalogService) List(ctx context.Context, params ListParams) (*models.ServicePage, error) {
	q := ParseListParams(params)
	services, total, err := s.Repo.Query(ctx, q)
	if err != nil {
		return nil, utils.Internal("Failed to fetch services", err)
	}
	return &models.ServicePage{
		Services: services,
		Pagination: models.Pagination{
			CurrentPage:  q.Page,
			TotalPages:   int(math.Ceil(float64(total) / float64(q.Limit))),
			TotalItems:   total,
			ItemsPerPage: q.Limit,
		},
	}, nil
}

func (s *DefaultCatalogService) Get(ctx context.Context, id string) (*models.Service, error) {
	oid, ok := models.ParseObjectID(id)
	if !ok {
		return nil, utils.NotFound("Service not found")
	}
	svc, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		return nil, utils.Internal("Failed to fetch service", err)
	}
	if svc == nil {
		return nil, utils.NotFound("Service not found")
	}
	return svc, nil
}

func (s *DefaultCatalogService) Featured(ctx context.Context, limit string) ([]models.Service, error) {
	services, err := s.Repo.Latest(ctx, positiveInt(limit, DefaultFeaturedLimit))
	if err != nil {
		return nil, utils.Internal("Failed to fetch featured services", err)
	}
	return services, nil
}

func (s *DefaultCatalogService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.Repo.Categories(ctx)
	if err != nil {
		return nil, utils.Internal("Failed to fetch categories", err)
	}
	return categories, nil
}

func (s *DefaultCatalogService) Create(ctx context.Context, caller *models.Identity, in ServiceInput) (*models.Service, error) {
	in = in.trimmed()
	problems := utils.ValidateStruct(in)

	creator := in.CreatedByEmail
	if caller != nil && caller.Email != "" {
		creator = models.NormalizeEmail(caller.Email)
	}
	if creator == "" {
		problems = append(problems, "Creator email is required")
	} else if utils.Validator().Var(creator, "email") != nil {
		problems = append(problems, "Please provide a valid email address")
	}
	if len(problems) > 0 {
		return nil, utils.ValidationError(problems...)
	}

	svc := &models.Service{
		Name:           in.Name,
		Cost:           *in.Cost,
		Unit:           in.Unit,
		Category:       in.Category,
		Description:    in.Description,
		Image:          in.Image,
		CreatedByEmail: creator,
	}
	if err := s.Repo.Create(ctx, svc); err != nil {
		return nil, utils.Internal("Failed to create service", err)
	}
	utils.GetLogger().Info("Service created", zap.String("id", svc.ID.Hex()), zap.String("name", svc.Name))
	return svc, nil
}

func (s *DefaultCatalogService) Update(ctx context.Context, id string, patch ServicePatch) (*models.Service, error) {
	if problems := utils.ValidateStruct(patch); len(problems) > 0 {
		return nil, utils.ValidationError(problems...)
	}
	svc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.apply(svc)
	if err := s.Repo.Update(ctx, svc); err != nil {
		return nil, utils.Internal("Failed to update service", err)
	}
	return svc, nil
}

func (s *DefaultCatalogService) Delete(ctx context.Context, id string) error {
	oid, ok := models.ParseObjectID(id)
	if !ok {
		return utils.NotFound("Service not found")
	}
	deleted, err := s.Repo.Delete(ctx, oid)
	if err != nil {
		return utils.Internal("Failed to delete service", err)
	}
	if !deleted {
		return utils.NotFound("Service not found")
	}
	return nil
}

func (s *DefaultCatalogService) UploadImage(ctx context.Context, file io.Reader, filename string) (string, error) {
	if s.Images == nil {
		return "", utils.Internal("Image uploads are not configured", utils.ErrCloudinaryNotConfigured)
	}
	url, err := s.Images.UploadImage(ctx, file, filename)
	if err != nil {
		return "", utils.Internal("Failed to upload image", err)
	}
	return url, nil
}
