package booking

import (
	"strings"
	"time"

	"styledecor/models"
)

type CustomerInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,max=20"`
}

type LocationInput struct {
	Address string `json:"address" validate:"required,max=200"`
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"max=100"`
	ZipCode string `json:"zipCode" validate:"max=20"`
}

// CreateBookingRequest is the customer's booking form.
type CreateBookingRequest struct {
	UserInfo        CustomerInput `json:"userInfo"`
	ServiceID       string        `json:"serviceId" validate:"required"`
	Date            string        `json:"date" validate:"required"`
	ServiceDate     string        `json:"serviceDate"`
	ServiceTime     string        `json:"serviceTime" validate:"max=50"`
	SpecialRequests string        `json:"specialRequests" validate:"max=500"`
	Location        LocationInput `json:"location"`
	PaymentStatus   string        `json:"paymentStatus"`
}

// UpdateBookingRequest patches any subset of booking fields.
type UpdateBookingRequest struct {
	UserInfo         *CustomerInput `json:"userInfo"`
	ServiceID        *string        `json:"serviceId"`
	Date             *string        `json:"date"`
	ServiceDate      *string        `json:"serviceDate"`
	ServiceTime      *string        `json:"serviceTime" validate:"omitempty,max=50"`
	SpecialRequests  *string        `json:"specialRequests" validate:"omitempty,max=500"`
	Location         *LocationInput `json:"location"`
	PaymentStatus    *string        `json:"paymentStatus"`
	Status           *string        `json:"status"`
	BookingStatus    *string        `json:"bookingStatus"`
	DecoratorEarning *float64       `json:"decoratorEarning" validate:"omitempty,gte=0"`
}

type AssignDecoratorRequest struct {
	DecoratorID string `json:"decoratorId"`
}

type UpdateStepRequest struct {
	StepIndex *int `json:"stepIndex"`
	Completed bool `json:"completed"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDate accepts ISO-8601 timestamps and plain calendar dates (UTC midnight).
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalizeEnum lowercases v and checks it against allowed.
func normalizeEnum(v string, allowed []string) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	return v, models.OneOf(v, allowed)
}

func (in CustomerInput) toModel() models.CustomerInfo {
	return models.CustomerInfo{
		Name:  strings.TrimSpace(in.Name),
		Email: models.NormalizeEmail(in.Email),
		Phone: strings.TrimSpace(in.Phone),
	}
}

func (in LocationInput) toModel() models.Location {
	return models.Location{
		Address: strings.TrimSpace(in.Address),
		City:    strings.TrimSpace(in.City),
		State:   strings.TrimSpace(in.State),
		ZipCode: strings.TrimSpace(in.ZipCode),
	}
}
