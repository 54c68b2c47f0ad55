package services

import "bizdesk-backend/models"

// Notifier delivers outbound email. Implementations report whether at
// least one recipient accepted the message; delivery is always
// best-effort and never blocks a write that already committed.
type Notifier interface {
	BookingConfirmation(booking *models.ConsultationBooking) bool
	InquiryAlert(inquiry *models.ContactInquiry) bool
}
