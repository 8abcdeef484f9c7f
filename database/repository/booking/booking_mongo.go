package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"styledecor/database"
	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates the repository and ensures its indexes.
func NewMongoBookingRepo(db *mongo.Database) *MongoBookingRepo {
	repo := &MongoBookingRepo{coll: db.Collection(database.BookingsCollection)}
	if err := repo.ensureIndexes(context.Background()); err != nil {
		zap.L().Warn("booking indexes not created", zap.Error(err))
	}
	return repo
}

// bookingDocument is a booking decoded together with its looked-up service.
type bookingDocument struct {
	models.Booking `bson:",inline"`
	Service        *models.Service `bson:"service,omitempty"`
}

func (d bookingDocument) toModel() models.Booking {
	b := d.Booking
	b.Service = d.Service
	return b
}

// withService builds a pipeline that matches bookings and expands serviceId.
func withService(match bson.D, sort bson.D) mongo.Pipeline {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: match}}}
	if sort != nil {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sort}})
	}
	return append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.ServicesCollection},
			{Key: "localField", Value: "serviceId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "service"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$service"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	)
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, withService(bson.D{{Key: "_id", Value: id}}, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to find booking %s: %w", id.Hex(), err)
	}
	var docs []bookingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode booking %s: %w", id.Hex(), err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	b := docs[0].toModel()
	return &b, nil
}

func (r *MongoBookingRepo) List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	match := bson.D{}
	if filter.CustomerEmail != "" {
		match = append(match, bson.E{Key: "userInfo.email", Value: filter.CustomerEmail})
	}
	if filter.AssignedDecorator != nil {
		match = append(match, bson.E{Key: "assignedDecorator", Value: *filter.AssignedDecorator})
	}

	cursor, err := r.coll.Aggregate(ctx, withService(match, bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	var docs []bookingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	bookings := make([]models.Booking, 0, len(docs))
	for _, d := range docs {
		bookings = append(bookings, d.toModel())
	}
	return bookings, nil
}

func (r *MongoBookingRepo) Save(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	booking.UpdatedAt = time.Now()
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": booking.ID}, booking)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", booking.ID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.Hex())
	}
	return nil
}

func (r *MongoBookingRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (bool, error) {
	return r.updateFields(ctx, id, bson.M{
		"status":        status,
		"bookingStatus": status,
	})
}

func (r *MongoBookingRepo) MarkPaid(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return r.updateFields(ctx, id, bson.M{
		"paymentStatus": models.PaymentPaid,
		"status":        models.BookingConfirmed,
		"bookingStatus": models.BookingConfirmed,
	})
}

func (r *MongoBookingRepo) updateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update booking %s: %w", id.Hex(), err)
	}
	return result.MatchedCount > 0, nil
}
