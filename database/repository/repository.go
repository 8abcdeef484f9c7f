// Package repository assembles the data-access layer for the configured backend.
package repository

import (
	analyticsRepo "styledecor/database/repository/analytics"
	bookingRepo "styledecor/database/repository/booking"
	"styledecor/database/repository/memory"
	paymentRepo "styledecor/database/repository/payment"
	serviceRepo "styledecor/database/repository/service"
	userRepo "styledecor/database/repository/user"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories groups every repository the services depend on.
type Repositories struct {
	Bookings  bookingRepo.BookingRepository
	Services  serviceRepo.ServiceRepository
	Payments  paymentRepo.PaymentRepository
	Users     userRepo.UserRepository
	Analytics analyticsRepo.AnalyticsRepository
}

// NewMongoRepositories wires every repository to the given database.
func NewMongoRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Bookings:  bookingRepo.NewMongoBookingRepo(db),
		Services:  serviceRepo.NewMongoServiceRepo(db),
		Payments:  paymentRepo.NewMongoPaymentRepo(db),
		Users:     userRepo.NewMongoUserRepo(db),
		Analytics: analyticsRepo.NewMongoAnalyticsRepo(db),
	}
}

// NewMemoryRepositories wires every repository to one in-process store.
func NewMemoryRepositories(store *memory.Store) *Repositories {
	return &Repositories{
		Bookings:  store.Bookings(),
		Services:  store.Services(),
		Payments:  store.Payments(),
		Users:     store.Users(),
		Analytics: store.Analytics(),
	}
}
