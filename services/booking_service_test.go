package services

import (
	"context"
	"errors"
	"testing"

	"bizdesk-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockTimeslotRepo struct {
	findByID     func(ctx context.Context, id string) (*models.TimeSlot, error)
	markIfAvail  func(ctx context.Context, tx *gorm.DB, id string) (bool, error)
	findAvail    func(ctx context.Context, date string) ([]models.TimeSlot, error)
	createFn     func(ctx context.Context, slot *models.TimeSlot) error
	updateFn     func(ctx context.Context, id string, updates map[string]interface{}) (bool, error)
	deleteFn     func(ctx context.Context, id string) (bool, error)
}

func (m *mockTimeslotRepo) FindAvailable(ctx context.Context, date string) ([]models.TimeSlot, error) {
	return m.findAvail(ctx, date)
}

func (m *mockTimeslotRepo) FindByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	return m.findByID(ctx, id)
}

func (m *mockTimeslotRepo) Create(ctx context.Context, slot *models.TimeSlot) error {
	return m.createFn(ctx, slot)
}

func (m *mockTimeslotRepo) Update(ctx context.Context, id string, updates map[string]interface{}) (bool, error) {
	return m.updateFn(ctx, id, updates)
}

func (m *mockTimeslotRepo) Delete(ctx context.Context, id string) (bool, error) {
	return m.deleteFn(ctx, id)
}

func (m *mockTimeslotRepo) MarkUnavailableIfAvailable(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	return m.markIfAvail(ctx, tx, id)
}

type mockBookingRepo struct {
	created []models.ConsultationBooking

	createErr      error
	notifSentCalls []bool
	notifSentErr   error
	countsByStatus map[string]int64
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, booking *models.ConsultationBooking) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, *booking)
	return nil
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*models.ConsultationBooking, error) {
	for i := range m.created {
		if m.created[i].ID == id {
			return &m.created[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepo) FindAll(ctx context.Context, skip, limit int) ([]models.ConsultationBooking, error) {
	return m.created, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	return false, nil
}

func (m *mockBookingRepo) SetNotificationSent(ctx context.Context, id string, sent bool) error {
	m.notifSentCalls = append(m.notifSentCalls, sent)
	return m.notifSentErr
}

func (m *mockBookingRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	if m.countsByStatus == nil {
		return map[string]int64{}, nil
	}
	return m.countsByStatus, nil
}

type mockNotifier struct {
	bookingResult bool
	bookingCalls  int
	inquiryResult bool
	inquiryCalls  int
	inquiryDone   chan struct{}
}

func (m *mockNotifier) BookingConfirmation(booking *models.ConsultationBooking) bool {
	m.bookingCalls++
	return m.bookingResult
}

func (m *mockNotifier) InquiryAlert(inquiry *models.ContactInquiry) bool {
	m.inquiryCalls++
	if m.inquiryDone != nil {
		close(m.inquiryDone)
	}
	return m.inquiryResult
}

func availableSlot() *models.TimeSlot {
	return &models.TimeSlot{ID: "slot-1", Date: "2026-09-07", Time: "10:00", IsAvailable: true}
}

func bookingRequest() BookingRequest {
	return BookingRequest{
		FullName:        "Asha Rao",
		Email:           "asha@example.com",
		Phone:           "+91-98765-43210",
		ServiceInterest: "company-registration",
		TimeslotID:      "slot-1",
	}
}

func TestBookCreatesBookingAndClaimsSlot(t *testing.T) {
	slots := &mockTimeslotRepo{
		findByID: func(ctx context.Context, id string) (*models.TimeSlot, error) {
			return availableSlot(), nil
		},
		markIfAvail: func(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
			return true, nil
		},
	}
	bookings := &mockBookingRepo{}
	notifier := &mockNotifier{bookingResult: true}
	svc := NewBookingService(nil, slots, bookings, notifier)

	booking, err := svc.Book(context.Background(), bookingRequest())
	require.NoError(t, err)
	require.Len(t, bookings.created, 1)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "2026-09-07", booking.Date)
	assert.Equal(t, "10:00", booking.Time)
	assert.Equal(t, "slot-1", booking.TimeslotID)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.True(t, booking.NotificationSent)
	assert.Equal(t, []bool{true}, bookings.notifSentCalls)
	assert.Equal(t, 1, notifier.bookingCalls)
}

func TestBookSlotNotFound(t *testing.T) {
	slots := &mockTimeslotRepo{
		findByID: func(ctx context.Context, id string) (*models.TimeSlot, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	bookings := &mockBookingRepo{}
	svc := NewBookingService(nil, slots, bookings, &mockNotifier{})

	_, err := svc.Book(context.Background(), bookingRequest())
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.Empty(t, bookings.created)
}

func TestBookUnavailableSlotCreatesNothing(t *testing.T) {
	slots := &mockTimeslotRepo{
		findByID: func(ctx context.Context, id string) (*models.TimeSlot, error) {
			slot := availableSlot()
			slot.IsAvailable = false
			return slot, nil
		},
	}
	bookings := &mockBookingRepo{}
	notifier := &mockNotifier{}
	svc := NewBookingService(nil, slots, bookings, notifier)

	_, err := svc.Book(context.Background(), bookingRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Empty(t, bookings.created)
	assert.Zero(t, notifier.bookingCalls)
}

// A slot that reads as available but is claimed by a racing request
// before the conditional update runs must lose cleanly: no booking row,
// ErrSlotTaken to the caller. The pre-check miss keeps its own sentinel.
func TestBookLosesRaceOnConditionalUpdate(t *testing.T) {
	slots := &mockTimeslotRepo{
		findByID: func(ctx context.Context, id string) (*models.TimeSlot, error) {
			return availableSlot(), nil
		},
		markIfAvail: func(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
			return false, nil
		},
	}
	bookings := &mockBookingRepo{}
	svc := NewBookingService(nil, slots, bookings, &mockNotifier{})

	_, err := svc.Book(context.Background(), bookingRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NotErrorIs(t, err, ErrSlotUnavailable)
	assert.Empty(t, bookings.created)
}

func TestBookSucceedsWhenNotifierFails(t *testing.T) {
	slots := &mockTimeslotRepo{
		findByID: func(ctx context.Context, id string) (*models.TimeSlot, error) {
			return availableSlot(), nil
		},
		markIfAvail: func(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
			return true, nil
		},
	}
	bookings := &mockBookingRepo{}
	svc := NewBookingService(nil, slots, bookings, &mockNotifier{bookingResult: false})

	booking, err := svc.Book(context.Background(), bookingRequest())
	require.NoError(t, err)
	assert.False(t, booking.NotificationSent)
	assert.Empty(t, bookings.notifSentCalls)

	// the booking is retrievable afterwards
	stored, err := bookings.FindByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, stored.ID)
}

func TestBookStorageErrorOnCreate(t *testing.T) {
	slots := &mockTimeslotRepo{
		findByID: func(ctx context.Context, id string) (*models.TimeSlot, error) {
			return availableSlot(), nil
		},
		markIfAvail: func(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
			return true, nil
		},
	}
	bookings := &mockBookingRepo{createErr: errors.New("connection reset")}
	notifier := &mockNotifier{bookingResult: true}
	svc := NewBookingService(nil, slots, bookings, notifier)

	_, err := svc.Book(context.Background(), bookingRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSlotNotFound)
	assert.NotErrorIs(t, err, ErrSlotUnavailable)
	assert.NotErrorIs(t, err, ErrSlotTaken)
	assert.Zero(t, notifier.bookingCalls)
}
