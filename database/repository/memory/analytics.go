package memory

import (
	"context"
	"sort"
	"time"

	"styledecor/models"
	"styledecor/utils"
)

type AnalyticsRepo struct{ s *Store }

func (r *AnalyticsRepo) CountBookings(_ context.Context, status string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, b := range r.s.bookings {
		if status == "" || b.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *AnalyticsRepo) PaidRevenue(_ context.Context) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var amounts []float64
	for _, p := range r.s.payments {
		if p.Status == models.PaymentPaid {
			amounts = append(amounts, p.Amount)
		}
	}
	return utils.SumAmounts(amounts...), nil
}

func (r *AnalyticsRepo) BookingsTrend(_ context.Context, since time.Time) ([]models.BookingTrendPoint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := map[string]int64{}
	for _, b := range r.s.bookings {
		if b.CreatedAt.Before(since) {
			continue
		}
		counts[b.CreatedAt.UTC().Format("2006-01-02")]++
	}
	points := make([]models.BookingTrendPoint, 0, len(counts))
	for day, n := range counts {
		points = append(points, models.BookingTrendPoint{Date: day, Bookings: n})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points, nil
}

func (r *AnalyticsRepo) RevenueByCategory(_ context.Context) ([]models.CategoryRevenue, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	amounts := map[string][]float64{}
	for _, p := range r.s.payments {
		if p.Status != models.PaymentPaid {
			continue
		}
		category := "Unknown"
		if b, ok := r.s.bookings[p.BookingID]; ok {
			if svc, ok := r.s.services[b.ServiceID]; ok && svc.Category != "" {
				category = svc.Category
			}
		}
		amounts[category] = append(amounts[category], p.Amount)
	}

	rows := make([]models.CategoryRevenue, 0, len(amounts))
	for category, list := range amounts {
		rows = append(rows, models.CategoryRevenue{
			Category: category,
			Revenue:  utils.SumAmounts(list...),
			Payments: int64(len(list)),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Revenue > rows[j].Revenue })
	return rows, nil
}
