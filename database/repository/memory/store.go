// Package memory keeps every collection in process memory. It backs the
// memory:// database URL for local runs and the service tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds all collections behind one lock so cross-collection reads stay consistent.
type Store struct {
	mu       sync.RWMutex
	bookings map[primitive.ObjectID]models.Booking
	services map[primitive.ObjectID]models.Service
	payments map[primitive.ObjectID]models.Payment
	users    map[primitive.ObjectID]models.User

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		bookings: make(map[primitive.ObjectID]models.Booking),
		services: make(map[primitive.ObjectID]models.Service),
		payments: make(map[primitive.ObjectID]models.Payment),
		users:    make(map[primitive.ObjectID]models.User),
		now:      time.Now,
	}
}

func (s *Store) Bookings() *BookingRepo    { return &BookingRepo{s} }
func (s *Store) Services() *ServiceRepo    { return &ServiceRepo{s} }
func (s *Store) Payments() *PaymentRepo    { return &PaymentRepo{s} }
func (s *Store) Users() *UserRepo          { return &UserRepo{s} }
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{s} }

// SetClock replaces the time source used for createdAt and updatedAt.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func copyBooking(b models.Booking) models.Booking {
	if b.AssignedDecorator != nil {
		id := *b.AssignedDecorator
		b.AssignedDecorator = &id
	}
	if b.DecoratorEarning != nil {
		e := *b.DecoratorEarning
		b.DecoratorEarning = &e
	}
	if b.StatusSteps != nil {
		b.StatusSteps = append([]models.StatusStep(nil), b.StatusSteps...)
	}
	b.Service = nil
	return b
}

func copyUser(u models.User) models.User {
	if u.Decorator != nil {
		d := *u.Decorator
		d.Specialties = append([]string(nil), d.Specialties...)
		u.Decorator = &d
	}
	return u
}

// expandBooking returns a copy of b with its service attached. Callers hold the lock.
func (s *Store) expandBooking(b models.Booking) models.Booking {
	out := copyBooking(b)
	if svc, ok := s.services[b.ServiceID]; ok {
		out.Service = &svc
	}
	return out
}

func sortNewestFirst[T any](items []T, createdAt func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}
