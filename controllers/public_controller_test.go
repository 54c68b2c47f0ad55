package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"bizdesk-backend/models"
	"bizdesk-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubTimeslotRepo struct {
	slot *models.TimeSlot

	// loseClaim makes the conditional claim fail even when the slot
	// still reads as available, simulating a concurrent winner.
	loseClaim bool
}

func (s *stubTimeslotRepo) FindAvailable(ctx context.Context, date string) ([]models.TimeSlot, error) {
	if s.slot == nil || !s.slot.IsAvailable {
		return []models.TimeSlot{}, nil
	}
	return []models.TimeSlot{*s.slot}, nil
}

func (s *stubTimeslotRepo) FindByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	if s.slot == nil || s.slot.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.slot
	return &copied, nil
}

func (s *stubTimeslotRepo) Create(ctx context.Context, slot *models.TimeSlot) error { return nil }

func (s *stubTimeslotRepo) Update(ctx context.Context, id string, updates map[string]interface{}) (bool, error) {
	return false, nil
}

func (s *stubTimeslotRepo) Delete(ctx context.Context, id string) (bool, error) { return false, nil }

func (s *stubTimeslotRepo) MarkUnavailableIfAvailable(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	if s.loseClaim || s.slot == nil || s.slot.ID != id || !s.slot.IsAvailable {
		return false, nil
	}
	s.slot.IsAvailable = false
	return true, nil
}

type stubBookingRepo struct {
	created []models.ConsultationBooking
}

func (s *stubBookingRepo) Create(ctx context.Context, tx *gorm.DB, booking *models.ConsultationBooking) error {
	s.created = append(s.created, *booking)
	return nil
}

func (s *stubBookingRepo) FindByID(ctx context.Context, id string) (*models.ConsultationBooking, error) {
	for i := range s.created {
		if s.created[i].ID == id {
			return &s.created[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubBookingRepo) FindAll(ctx context.Context, skip, limit int) ([]models.ConsultationBooking, error) {
	return s.created, nil
}

func (s *stubBookingRepo) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	return false, nil
}

func (s *stubBookingRepo) SetNotificationSent(ctx context.Context, id string, sent bool) error {
	return nil
}

func (s *stubBookingRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

type stubInquiryRepo struct {
	created []models.ContactInquiry
}

func (s *stubInquiryRepo) Create(ctx context.Context, inquiry *models.ContactInquiry) error {
	s.created = append(s.created, *inquiry)
	return nil
}

func (s *stubInquiryRepo) FindAll(ctx context.Context, skip, limit int) ([]models.ContactInquiry, error) {
	return s.created, nil
}

func (s *stubInquiryRepo) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	return false, nil
}

func (s *stubInquiryRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

// failingNotifier simulates a mail system that is down for every send.
type failingNotifier struct{}

func (failingNotifier) BookingConfirmation(*models.ConsultationBooking) bool { return false }
func (failingNotifier) InquiryAlert(*models.ContactInquiry) bool             { return false }

func bookingTestRouter(slots *stubTimeslotRepo, bookings *stubBookingRepo, inquiries *stubInquiryRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	bookingSvc := services.NewBookingService(nil, slots, bookings, failingNotifier{})
	inquirySvc := services.NewInquiryService(inquiries, nil)
	ctl := NewPublicController(nil, slots, nil, nil, nil, nil, nil, nil, inquirySvc, bookingSvc)

	r := gin.New()
	r.POST("/api/booking", ctl.CreateBooking)
	r.POST("/api/contact", ctl.SubmitContact)
	r.GET("/api/timeslots", ctl.ListTimeslots)
	return r
}

const bookingBody = `{
	"full_name": "Asha Rao",
	"email": "asha@example.com",
	"phone": "+91-98765-43210",
	"service_interest": "company-registration",
	"timeslot_id": "slot-1"
}`

// Even with every notification failing, a persisted booking must come
// back as HTTP 200 success:true and stay retrievable.
func TestBookingEndpointSucceedsDespiteNotifierFailure(t *testing.T) {
	slots := &stubTimeslotRepo{slot: &models.TimeSlot{ID: "slot-1", Date: "2026-09-07", Time: "10:00", IsAvailable: true}}
	bookings := &stubBookingRepo{}
	r := bookingTestRouter(slots, bookings, &stubInquiryRepo{})

	w := postJSON(r, "/api/booking", bookingBody, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                       `json:"success"`
		Data    models.ConsultationBooking `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.False(t, resp.Data.NotificationSent)

	stored, err := bookings.FindByID(context.Background(), resp.Data.ID)
	require.NoError(t, err)
	assert.Equal(t, "slot-1", stored.TimeslotID)
}

// A booking against a slot that already reads as taken is a plain bad
// request, matching the pre-claim availability check.
func TestBookingEndpointSecondBookingRejected(t *testing.T) {
	slots := &stubTimeslotRepo{slot: &models.TimeSlot{ID: "slot-1", Date: "2026-09-07", Time: "10:00", IsAvailable: true}}
	bookings := &stubBookingRepo{}
	r := bookingTestRouter(slots, bookings, &stubInquiryRepo{})

	first := postJSON(r, "/api/booking", bookingBody, nil)
	require.Equal(t, http.StatusOK, first.Code)

	second := postJSON(r, "/api/booking", bookingBody, nil)
	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.Len(t, bookings.created, 1)

	// the claimed slot no longer shows as available
	w := getWithToken(r, "/api/timeslots", "")
	assert.NotContains(t, w.Body.String(), "slot-1")
}

// Losing the conditional claim after the slot read as available is the
// concurrent-booking case and surfaces as a conflict.
func TestBookingEndpointRaceLoserGetsConflict(t *testing.T) {
	slots := &stubTimeslotRepo{
		slot:      &models.TimeSlot{ID: "slot-1", Date: "2026-09-07", Time: "10:00", IsAvailable: true},
		loseClaim: true,
	}
	bookings := &stubBookingRepo{}
	r := bookingTestRouter(slots, bookings, &stubInquiryRepo{})

	w := postJSON(r, "/api/booking", bookingBody, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, bookings.created)
}

func TestBookingEndpointUnknownSlot(t *testing.T) {
	r := bookingTestRouter(&stubTimeslotRepo{}, &stubBookingRepo{}, &stubInquiryRepo{})

	w := postJSON(r, "/api/booking", bookingBody, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContactNormalizesLegacyName(t *testing.T) {
	inquiries := &stubInquiryRepo{}
	r := bookingTestRouter(&stubTimeslotRepo{}, &stubBookingRepo{}, inquiries)

	w := postJSON(r, "/api/contact", `{"name":"Legacy Sender","email":"l@example.com","message":"hi"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, inquiries.created, 1)
	assert.Equal(t, "Legacy Sender", inquiries.created[0].FullName)
}

func TestContactRequiresAName(t *testing.T) {
	inquiries := &stubInquiryRepo{}
	r := bookingTestRouter(&stubTimeslotRepo{}, &stubBookingRepo{}, inquiries)

	w := postJSON(r, "/api/contact", `{"email":"l@example.com","message":"hi"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, inquiries.created)
}
