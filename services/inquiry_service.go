package services

import (
	"context"
	"fmt"
	"log"

	"bizdesk-backend/models"
	"bizdesk-backend/repository"

	"github.com/google/uuid"
)

// InquiryRequest is the contact form payload.
type InquiryRequest struct {
	FullName        string `json:"full_name"`
	Name            string `json:"name"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone"`
	Company         string `json:"company"`
	Message         string `json:"message" binding:"required"`
	ServiceInterest string `json:"service_interest"`
}

// DisplayName prefers full_name and falls back to the legacy name field.
func (r InquiryRequest) DisplayName() string {
	if r.FullName != "" {
		return r.FullName
	}
	return r.Name
}

type InquiryService struct {
	inquiries repository.InquiryRepository
	notifier  Notifier
}

func NewInquiryService(inquiries repository.InquiryRepository, notifier Notifier) *InquiryService {
	return &InquiryService{inquiries: inquiries, notifier: notifier}
}

// Submit stores the inquiry and alerts the site operator in the
// background. The caller gets the stored record as soon as the insert
// succeeds; the alert outcome is only logged.
func (s *InquiryService) Submit(ctx context.Context, req InquiryRequest) (*models.ContactInquiry, error) {
	inquiry := &models.ContactInquiry{
		ID:              uuid.NewString(),
		FullName:        req.DisplayName(),
		Email:           req.Email,
		Phone:           req.Phone,
		Company:         req.Company,
		Message:         req.Message,
		ServiceInterest: req.ServiceInterest,
		Status:          models.InquiryStatusNew,
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}

	if s.notifier != nil {
		go func(inq models.ContactInquiry) {
			if !s.notifier.InquiryAlert(&inq) {
				log.Printf("inquiry %s: operator alert not delivered", inq.ID)
			}
		}(*inquiry)
	}
	return inquiry, nil
}
