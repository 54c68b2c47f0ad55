package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"bizdesk-backend/models"
	"bizdesk-backend/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSlotNotFound    = errors.New("time slot not found")
	ErrSlotUnavailable = errors.New("time slot is no longer available")
	ErrSlotTaken       = errors.New("time slot was claimed by a concurrent booking")
)

// BookingRequest carries the customer details for a consultation booking.
type BookingRequest struct {
	FullName        string `json:"full_name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required"`
	Company         string `json:"company"`
	ServiceInterest string `json:"service_interest"`
	Message         string `json:"message"`
	TimeslotID      string `json:"timeslot_id" binding:"required"`
}

// BookingService coordinates slot claiming, booking persistence and the
// confirmation email. The slot claim and the booking insert share one
// transaction so a failed insert releases the slot.
type BookingService struct {
	db       *gorm.DB
	slots    repository.TimeslotRepository
	bookings repository.BookingRepository
	notifier Notifier
}

func NewBookingService(db *gorm.DB, slots repository.TimeslotRepository, bookings repository.BookingRepository, notifier Notifier) *BookingService {
	return &BookingService{db: db, slots: slots, bookings: bookings, notifier: notifier}
}

// Book claims the requested slot and records the booking. A slot that
// already reads as unavailable yields ErrSlotUnavailable. Two requests
// racing for the same slot are serialized by the conditional update in
// MarkUnavailableIfAvailable; the loser gets ErrSlotTaken and no booking
// row. Once the transaction commits the booking stands even if the
// confirmation email fails.
func (s *BookingService) Book(ctx context.Context, req BookingRequest) (*models.ConsultationBooking, error) {
	slot, err := s.slots.FindByID(ctx, req.TimeslotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("load time slot: %w", err)
	}
	if !slot.IsAvailable {
		return nil, ErrSlotUnavailable
	}

	booking := &models.ConsultationBooking{
		ID:              uuid.NewString(),
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		Company:         req.Company,
		ServiceInterest: req.ServiceInterest,
		Message:         req.Message,
		Date:            slot.Date,
		Time:            slot.Time,
		TimeslotID:      slot.ID,
		Status:          models.BookingStatusConfirmed,
	}

	err = s.inTransaction(ctx, func(tx *gorm.DB) error {
		claimed, err := s.slots.MarkUnavailableIfAvailable(ctx, tx, slot.ID)
		if err != nil {
			return fmt.Errorf("claim time slot: %w", err)
		}
		if !claimed {
			return ErrSlotTaken
		}
		if err := s.bookings.Create(ctx, tx, booking); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil && s.notifier.BookingConfirmation(booking) {
		booking.NotificationSent = true
		if err := s.bookings.SetNotificationSent(ctx, booking.ID, true); err != nil {
			log.Printf("booking %s: could not record notification flag: %v", booking.ID, err)
		}
	}
	return booking, nil
}

// inTransaction runs fn inside a database transaction. With no db handle
// the repositories use their own connections and fn runs directly.
func (s *BookingService) inTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return fn(nil)
	}
	return s.db.WithContext(ctx).Transaction(fn)
}
