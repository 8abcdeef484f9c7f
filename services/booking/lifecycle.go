package booking

import (
	"styledecor/models"
	"styledecor/utils"
)

// InitialStatusSteps builds the four-step checklist with completion back-filled
// from the booking's current status.
func InitialStatusSteps(status string) []models.StatusStep {
	confirmed := status == models.BookingConfirmed || status == models.BookingInProgress || status == models.BookingCompleted
	underway := status == models.BookingInProgress || status == models.BookingCompleted
	done := status == models.BookingCompleted

	completed := []bool{confirmed, underway, underway, done}
	steps := make([]models.StatusStep, len(models.DefaultStepLabels))
	for i, label := range models.DefaultStepLabels {
		steps[i] = models.StatusStep{Label: label, Completed: completed[i]}
	}
	return steps
}

// DeriveStatus maps the number of completed steps to an overall status.
// Which steps are completed does not matter, only how many.
func DeriveStatus(steps []models.StatusStep) string {
	done := 0
	for _, s := range steps {
		if s.Completed {
			done++
		}
	}
	switch {
	case done == 0:
		return models.BookingPending
	case done == len(steps):
		return models.BookingCompleted
	case done == 1:
		return models.BookingConfirmed
	default:
		return models.BookingInProgress
	}
}

// EnsureStatusSteps initializes the checklist if it is empty. It reports whether it changed b.
func EnsureStatusSteps(b *models.Booking) bool {
	if len(b.StatusSteps) > 0 {
		return false
	}
	b.StatusSteps = InitialStatusSteps(b.Status)
	return true
}

// EnsureDecoratorEarning sets the decorator's share of the service cost if no
// earning is recorded yet and the cost is known. Zero counts as unrecorded.
func EnsureDecoratorEarning(b *models.Booking) bool {
	if b.DecoratorEarning != nil && *b.DecoratorEarning != 0 {
		return false
	}
	if b.Service == nil {
		return false
	}
	earning := utils.DecoratorEarning(b.Service.Cost)
	b.DecoratorEarning = &earning
	return true
}

// ProjectView shapes an assigned booking for the decorator dashboard.
func ProjectView(b models.Booking) models.DecoratorProject {
	var cost float64
	if b.Service != nil {
		cost = b.Service.Cost
	}

	earning := 0.0
	switch {
	case b.DecoratorEarning != nil && *b.DecoratorEarning != 0:
		earning = *b.DecoratorEarning
	case cost > 0:
		earning = utils.DecoratorEarning(cost)
	}

	date := b.ServiceDate
	if date.IsZero() {
		date = b.Date
	}

	return models.DecoratorProject{
		ID:               b.ID,
		ServiceID:        b.ServiceID,
		ServiceName:      b.ServiceName(),
		ClientName:       b.UserInfo.Name,
		Date:             date,
		Time:             b.ServiceTime,
		Status:           b.Status,
		TotalAmount:      cost,
		DecoratorEarning: earning,
		Address:          b.Location,
		StatusSteps:      b.StatusSteps,
	}
}
