package paymentRepo

import (
	"context"
	"fmt"
	"time"

	"styledecor/database"
	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

func NewMongoPaymentRepo(db *mongo.Database) *MongoPaymentRepo {
	repo := &MongoPaymentRepo{coll: db.Collection(database.PaymentsCollection)}
	if err := repo.ensureIndexes(context.Background()); err != nil {
		zap.L().Warn("payment indexes not created", zap.Error(err))
	}
	return repo
}

func (r *MongoPaymentRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "stripeSessionId", Value: 1}}},
		{Keys: bson.D{{Key: "stripePaymentIntentId", Value: 1}}, Options: options.Index().SetSparse(true)},
		{Keys: bson.D{{Key: "userEmail", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "booking", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	payment.CreatedAt = now
	payment.UpdatedAt = now
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *MongoPaymentRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Payment, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var payment models.Payment
	err := r.coll.FindOne(ctx, bson.M{"stripeSessionId": sessionID}).Decode(&payment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to find payment for session %s: %w", sessionID, err)
	}
	return &payment, nil
}

func (r *MongoPaymentRepo) Update(ctx context.Context, payment *models.Payment) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	payment.UpdatedAt = time.Now()
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": payment.ID}, payment)
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", payment.ID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("payment %s not found", payment.ID.Hex())
	}
	return nil
}

// paymentDocument is a payment decoded with its booking and the booking's service.
type paymentDocument struct {
	models.Payment `bson:",inline"`
	Booking        *struct {
		models.Booking `bson:",inline"`
		Service        *models.Service `bson:"service,omitempty"`
	} `bson:"bookingDoc,omitempty"`
}

func (r *MongoPaymentRepo) ListByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "userEmail", Value: email}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.BookingsCollection},
			{Key: "localField", Value: "booking"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "bookingDoc"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$bookingDoc"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.ServicesCollection},
			{Key: "localField", Value: "bookingDoc.serviceId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "bookingDoc.service"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$bookingDoc.service"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for %s: %w", email, err)
	}
	var docs []paymentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}

	payments := make([]models.Payment, 0, len(docs))
	for _, d := range docs {
		p := d.Payment
		if d.Booking != nil && !d.Booking.ID.IsZero() {
			b := d.Booking.Booking
			b.Service = d.Booking.Service
			p.Booking = &b
		}
		payments = append(payments, p)
	}
	return payments, nil
}
