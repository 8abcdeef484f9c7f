package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lifecycle statuses shared by status and its mirror bookingStatus.
const (
	BookingPending    = "pending"
	BookingConfirmed  = "confirmed"
	BookingInProgress = "in-progress"
	BookingCompleted  = "completed"
	BookingCancelled  = "cancelled"
)

// Payment statuses as tracked on a booking.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

var (
	BookingStatuses = []string{BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled}
	PaymentStatuses = []string{PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded}
)

// DefaultStepLabels are the progress milestones created when a decorator is assigned.
var DefaultStepLabels = []string{"Confirmed", "Planning", "In Progress", "Completed"}

type CustomerInfo struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

type Location struct {
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode string `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
}

type StatusStep struct {
	Label     string `bson:"step" json:"step"`
	Completed bool   `bson:"completed" json:"completed"`
}

type Booking struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	UserInfo          CustomerInfo        `bson:"userInfo" json:"userInfo"`
	ServiceID         primitive.ObjectID  `bson:"serviceId" json:"serviceId"`
	Date              time.Time           `bson:"date" json:"date"`
	ServiceDate       time.Time           `bson:"serviceDate" json:"serviceDate"`
	ServiceTime       string              `bson:"serviceTime,omitempty" json:"serviceTime,omitempty"`
	SpecialRequests   string              `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"`
	Location          Location            `bson:"location" json:"location"`
	PaymentStatus     string              `bson:"paymentStatus" json:"paymentStatus"`
	Status            string              `bson:"status" json:"status"`
	BookingStatus     string              `bson:"bookingStatus" json:"bookingStatus"`
	AssignedDecorator *primitive.ObjectID `bson:"assignedDecorator,omitempty" json:"assignedDecorator,omitempty"`
	DecoratorEarning  *float64            `bson:"decoratorEarning,omitempty" json:"decoratorEarning,omitempty"`
	StatusSteps       []StatusStep        `bson:"statusSteps" json:"statusSteps"`
	CreatedAt         time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time           `bson:"updatedAt" json:"updatedAt"`

	// Service is the expanded catalog entry; it is never persisted on the booking.
	Service *Service `bson:"-" json:"service,omitempty"`
}

// ServiceName is the derived name of the booked service, empty when not expanded.
func (b *Booking) ServiceName() string {
	if b.Service == nil {
		return ""
	}
	return b.Service.Name
}

// SetStatus changes the lifecycle status and keeps bookingStatus mirrored.
func (b *Booking) SetStatus(status string) {
	b.Status = status
	b.BookingStatus = status
}

// ApplyStatusPatch applies a partial update of status and/or bookingStatus.
// When both are supplied, status wins.
func (b *Booking) ApplyStatusPatch(status, bookingStatus *string) {
	switch {
	case status != nil:
		b.SetStatus(*status)
	case bookingStatus != nil:
		b.SetStatus(*bookingStatus)
	}
}

// IsAssignedTo reports whether userID is the booking's assigned decorator.
func (b *Booking) IsAssignedTo(userID primitive.ObjectID) bool {
	return b.AssignedDecorator != nil && *b.AssignedDecorator == userID
}

// BookingFilter narrows booking listings.
type BookingFilter struct {
	CustomerEmail     string
	AssignedDecorator *primitive.ObjectID
}

// DecoratorProject is the decorator dashboard view of an assigned booking.
type DecoratorProject struct {
	ID               primitive.ObjectID `json:"_id"`
	ServiceID        primitive.ObjectID `json:"serviceId"`
	ServiceName      string             `json:"serviceName,omitempty"`
	ClientName       string             `json:"clientName"`
	Date             time.Time          `json:"date"`
	Time             string             `json:"time,omitempty"`
	Status           string             `json:"status"`
	TotalAmount      float64            `json:"totalAmount"`
	DecoratorEarning float64            `json:"decoratorEarning"`
	Address          Location           `json:"address"`
	StatusSteps      []StatusStep       `json:"statusSteps"`
}

// MarshalJSON adds the derived serviceName to the booking's wire form.
func (b Booking) MarshalJSON() ([]byte, error) {
	type booking Booking
	return json.Marshal(struct {
		booking
		ServiceName string `json:"serviceName,omitempty"`
	}{booking(b), b.ServiceName()})
}
