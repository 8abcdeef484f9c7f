package analytics

import (
	"context"
	"strconv"
	"time"

	analyticsRepo "styledecor/database/repository/analytics"
	serviceRepo "styledecor/database/repository/service"
	userRepo "styledecor/database/repository/user"
	"styledecor/models"
	"styledecor/utils"

	"golang.org/x/sync/errgroup"
)

const DefaultTrendDays = 7

// AnalyticsService builds the admin dashboard figures.
type AnalyticsService interface {
	Summary(ctx context.Context) (*models.AnalyticsSummary, error)
	BookingsTrend(ctx context.Context, days string) ([]models.BookingTrendPoint, error)
	RevenueByCategory(ctx context.Context) ([]models.CategoryRevenue, error)
}

type DefaultAnalyticsService struct {
	Repo     analyticsRepo.AnalyticsRepository
	Services serviceRepo.ServiceRepository
	Users    userRepo.UserRepository
	Now      func() time.Time
}

func NewAnalyticsService(repo analyticsRepo.AnalyticsRepository, services serviceRepo.ServiceRepository, users userRepo.UserRepository) *DefaultAnalyticsService {
	return &DefaultAnalyticsService{Repo: repo, Services: services, Users: users, Now: time.Now}
}

func (s *DefaultAnalyticsService) Summary(ctx context.Context) (*models.AnalyticsSummary, error) {
	var out models.AnalyticsSummary
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.TotalBookings, err = s.Repo.CountBookings(ctx, "")
		return err
	})
	g.Go(func() (err error) {
		out.CompletedBookings, err = s.Repo.CountBookings(ctx, models.BookingCompleted)
		return err
	})
	g.Go(func() (err error) {
		out.TotalServices, err = s.Services.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.TotalDecorators, err = s.Users.CountByRole(ctx, models.RoleDecorator)
		return err
	})
	g.Go(func() (err error) {
		out.TotalRevenue, err = s.Repo.PaidRevenue(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, utils.Internal("Failed to load analytics summary", err)
	}
	return &out, nil
}

// TrendSince is the start of the UTC day days-1 days before now.
func TrendSince(now time.Time, days int) time.Time {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start.AddDate(0, 0, -(days - 1))
}

func (s *DefaultAnalyticsService) BookingsTrend(ctx context.Context, days string) ([]models.BookingTrendPoint, error) {
	n, err := strconv.Atoi(days)
	if err != nil || n < 1 {
		n = DefaultTrendDays
	}
	points, err := s.Repo.BookingsTrend(ctx, TrendSince(s.now(), n))
	if err != nil {
		return nil, utils.Internal("Failed to load bookings trend", err)
	}
	return points, nil
}

func (s *DefaultAnalyticsService) RevenueByCategory(ctx context.Context) ([]models.CategoryRevenue, error) {
	rows, err := s.Repo.RevenueByCategory(ctx)
	if err != nil {
		return nil, utils.Internal("Failed to load revenue by category", err)
	}
	return rows, nil
}

func (s *DefaultAnalyticsService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
