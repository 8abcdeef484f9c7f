package booking

import (
	"testing"

	"styledecor/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepsWith(completed ...bool) []models.StatusStep {
	steps := make([]models.StatusStep, len(completed))
	for i, c := range completed {
		steps[i] = models.StatusStep{Label: models.DefaultStepLabels[i], Completed: c}
	}
	return steps
}

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name  string
		steps []models.StatusStep
		want  string
	}{
		{"none done", stepsWith(false, false, false, false), models.BookingPending},
		{"first done", stepsWith(true, false, false, false), models.BookingConfirmed},
		{"only last done", stepsWith(false, false, false, true), models.BookingConfirmed},
		{"two done", stepsWith(true, true, false, false), models.BookingInProgress},
		{"three done out of order", stepsWith(false, true, true, true), models.BookingInProgress},
		{"all done", stepsWith(true, true, true, true), models.BookingCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveStatus(tc.steps))
		})
	}
}

func TestInitialStatusSteps(t *testing.T) {
	cases := map[string][]bool{
		models.BookingPending:    {false, false, false, false},
		models.BookingCancelled:  {false, false, false, false},
		models.BookingConfirmed:  {true, false, false, false},
		models.BookingInProgress: {true, true, true, false},
		models.BookingCompleted:  {true, true, true, true},
	}
	for status, want := range cases {
		steps := InitialStatusSteps(status)
		require.Len(t, steps, 4, status)
		for i, s := range steps {
			assert.Equal(t, models.DefaultStepLabels[i], s.Label)
			assert.Equal(t, want[i], s.Completed, "%s step %d", status, i)
		}
	}
}

func TestEnsureStatusSteps_KeepsExisting(t *testing.T) {
	b := &models.Booking{Status: models.BookingPending, StatusSteps: stepsWith(true, false)}
	assert.False(t, EnsureStatusSteps(b))
	assert.Len(t, b.StatusSteps, 2)

	empty := &models.Booking{Status: models.BookingConfirmed}
	assert.True(t, EnsureStatusSteps(empty))
	assert.Len(t, empty.StatusSteps, 4)
	assert.True(t, empty.StatusSteps[0].Completed)
}

func TestEnsureDecoratorEarning(t *testing.T) {
	b := &models.Booking{Service: &models.Service{Cost: 50000}}
	assert.True(t, EnsureDecoratorEarning(b))
	require.NotNil(t, b.DecoratorEarning)
	assert.Equal(t, 35000.0, *b.DecoratorEarning)

	b.Service.Cost = 80000
	assert.False(t, EnsureDecoratorEarning(b))
	assert.Equal(t, 35000.0, *b.DecoratorEarning)
}

func TestEnsureDecoratorEarning_ZeroIsUnset(t *testing.T) {
	zero := 0.0
	b := &models.Booking{DecoratorEarning: &zero, Service: &models.Service{Cost: 1000}}
	assert.True(t, EnsureDecoratorEarning(b))
	assert.Equal(t, 700.0, *b.DecoratorEarning)

	noService := &models.Booking{}
	assert.False(t, EnsureDecoratorEarning(noService))
	assert.Nil(t, noService.DecoratorEarning)
}

func TestProjectView_FallsBackToComputedEarning(t *testing.T) {
	b := models.Booking{
		UserInfo: models.CustomerInfo{Name: "Ayesha"},
		Service:  &models.Service{Name: "Wedding Stage", Cost: 1000},
		Status:   models.BookingConfirmed,
	}
	p := ProjectView(b)
	assert.Equal(t, "Wedding Stage", p.ServiceName)
	assert.Equal(t, "Ayesha", p.ClientName)
	assert.Equal(t, 1000.0, p.TotalAmount)
	assert.Equal(t, 700.0, p.DecoratorEarning)
}
