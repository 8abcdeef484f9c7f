package analyticsRepo

import (
	"context"
	"fmt"
	"time"

	"styledecor/database"
	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AnalyticsRepository exposes the aggregate queries behind the admin dashboard.
type AnalyticsRepository interface {
	// CountBookings counts bookings with the given status, or all bookings when status is empty.
	CountBookings(ctx context.Context, status string) (int64, error)
	// PaidRevenue sums the amounts of payments whose status is paid.
	PaidRevenue(ctx context.Context) (float64, error)
	// BookingsTrend counts bookings per creation day (UTC, YYYY-MM-DD) since the given time, ascending.
	BookingsTrend(ctx context.Context, since time.Time) ([]models.BookingTrendPoint, error)
	// RevenueByCategory sums paid revenue per booked service category, highest first.
	RevenueByCategory(ctx context.Context) ([]models.CategoryRevenue, error)
}

// MongoAnalyticsRepo runs aggregation pipelines over the bookings and payments collections.
type MongoAnalyticsRepo struct {
	bookings *mongo.Collection
	payments *mongo.Collection
}

func NewMongoAnalyticsRepo(db *mongo.Database) *MongoAnalyticsRepo {
	return &MongoAnalyticsRepo{
		bookings: db.Collection(database.BookingsCollection),
		payments: db.Collection(database.PaymentsCollection),
	}
}

func (r *MongoAnalyticsRepo) CountBookings(ctx context.Context, status string) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	n, err := r.bookings.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return n, nil
}

func (r *MongoAnalyticsRepo) PaidRevenue(ctx context.Context) (float64, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "status", Value: models.PaymentPaid}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	}
	cursor, err := r.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode revenue: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *MongoAnalyticsRepo) BookingsTrend(ctx context.Context, since time.Time) ([]models.BookingTrendPoint, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "createdAt", Value: bson.D{{Key: "$gte", Value: since}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$createdAt"},
			}}}},
			{Key: "bookings", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cursor, err := r.bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booking trend: %w", err)
	}
	points := []models.BookingTrendPoint{}
	if err := cursor.All(ctx, &points); err != nil {
		return nil, fmt.Errorf("failed to decode booking trend: %w", err)
	}
	return points, nil
}

func (r *MongoAnalyticsRepo) RevenueByCategory(ctx context.Context) ([]models.CategoryRevenue, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "status", Value: models.PaymentPaid}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.BookingsCollection},
			{Key: "localField", Value: "booking"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "booking"},
		}}},
		{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$booking"}, {Key: "preserveNullAndEmptyArrays", Value: true}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.ServicesCollection},
			{Key: "localField", Value: "booking.serviceId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "service"},
		}}},
		{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$service"}, {Key: "preserveNullAndEmptyArrays", Value: true}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$service.category", "Unknown"}}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
			{Key: "payments", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "revenue", Value: -1}}}},
	}
	cursor, err := r.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue by category: %w", err)
	}
	rows := []models.CategoryRevenue{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode revenue by category: %w", err)
	}
	return rows, nil
}
