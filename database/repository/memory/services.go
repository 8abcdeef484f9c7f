package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ServiceRepo struct{ s *Store }

func (r *ServiceRepo) Create(_ context.Context, service *models.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	service.CreatedAt = now
	service.UpdatedAt = now
	if service.ID.IsZero() {
		service.ID = primitive.NewObjectID()
	}
	r.s.services[service.ID] = *service
	return nil
}

func (r *ServiceRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	svc, ok := r.s.services[id]
	if !ok {
		return nil, nil
	}
	return &svc, nil
}

func matches(svc models.Service, q models.ServiceQuery) bool {
	if q.Search != "" && !strings.Contains(strings.ToLower(svc.Name), strings.ToLower(q.Search)) {
		return false
	}
	if q.Category != "" && svc.Category != q.Category {
		return false
	}
	if q.MinCost != nil && svc.Cost < *q.MinCost {
		return false
	}
	if q.MaxCost != nil && svc.Cost > *q.MaxCost {
		return false
	}
	return true
}

func less(a, b models.Service, field string) bool {
	switch field {
	case "cost":
		return a.Cost < b.Cost
	case "service_name":
		return a.Name < b.Name
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

func (r *ServiceRepo) Query(_ context.Context, q models.ServiceQuery) ([]models.Service, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := []models.Service{}
	for _, svc := range r.s.services {
		if matches(svc, q) {
			all = append(all, svc)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if q.SortDesc {
			return less(all[j], all[i], q.SortField)
		}
		return less(all[i], all[j], q.SortField)
	})

	total := int64(len(all))
	start := (q.Page - 1) * q.Limit
	if start >= len(all) {
		return []models.Service{}, total, nil
	}
	end := start + q.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *ServiceRepo) Update(_ context.Context, service *models.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.services[service.ID]; !ok {
		return fmt.Errorf("service %s not found", service.ID.Hex())
	}
	service.UpdatedAt = r.s.now()
	r.s.services[service.ID] = *service
	return nil
}

func (r *ServiceRepo) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.services[id]; !ok {
		return false, nil
	}
	delete(r.s.services, id)
	return true, nil
}

func (r *ServiceRepo) Categories(_ context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := map[string]bool{}
	categories := []string{}
	for _, svc := range r.s.services {
		if svc.Category != "" && !seen[svc.Category] {
			seen[svc.Category] = true
			categories = append(categories, svc.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *ServiceRepo) Latest(_ context.Context, limit int) ([]models.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]models.Service, 0, len(r.s.services))
	for _, svc := range r.s.services {
		all = append(all, svc)
	}
	sortNewestFirst(all, func(s models.Service) time.Time { return s.CreatedAt })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *ServiceRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.services)), nil
}
