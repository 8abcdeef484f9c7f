package models

// Booking event types published after lifecycle changes.
const (
	EventDecoratorAssigned = "decorator_assigned"
	EventStepUpdated       = "step_updated"
	EventPaymentConfirmed  = "payment_confirmed"
)

// BookingEvent is the payload of an asynchronous booking notification.
type BookingEvent struct {
	Type          string `json:"type"`
	BookingID     string `json:"bookingId"`
	CustomerEmail string `json:"customerEmail"`
	DecoratorID   string `json:"decoratorId,omitempty"`
	Status        string `json:"status,omitempty"`
	ServiceName   string `json:"serviceName,omitempty"`
}
