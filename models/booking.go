package models

import "time"

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
	BookingStatusNoShow    = "no_show"
)

// ConsultationBooking references exactly one TimeSlot; date and time are
// copied from the slot at booking time so the record stays readable even if
// the slot is later edited or deleted.
type ConsultationBooking struct {
	ID              string `gorm:"primaryKey;size:36" json:"id"`
	FullName        string `gorm:"size:255" json:"full_name"`
	Email           string `gorm:"size:255" json:"email"`
	Phone           string `gorm:"size:50" json:"phone"`
	Company         string `gorm:"size:255" json:"company,omitempty"`
	ServiceInterest string `gorm:"size:255" json:"service_interest"`
	Message         string `gorm:"type:text" json:"message,omitempty"`

	Date       string `gorm:"size:10" json:"date"`
	Time       string `gorm:"size:5" json:"time"`
	TimeslotID string `gorm:"size:36;index" json:"timeslot_id"`

	Status string `gorm:"size:32;default:confirmed;index" json:"status"`

	// Outcome of the confirmation email, recorded separately from the
	// booking itself: a failed send never fails the booking.
	NotificationSent bool `gorm:"default:false" json:"notification_sent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidBookingStatus reports whether s is one of the known booking statuses.
// Transitions are admin-driven and unconstrained beyond this.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow:
		return true
	}
	return false
}
