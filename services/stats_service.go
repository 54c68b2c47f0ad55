package services

import (
	"context"
	"fmt"

	"bizdesk-backend/models"
	"bizdesk-backend/repository"
)

const recentItems = 5

// DashboardStats is the admin dashboard snapshot.
type DashboardStats struct {
	TotalInquiries    int64                        `json:"total_inquiries"`
	NewInquiries      int64                        `json:"new_inquiries"`
	InquiriesByStatus map[string]int64             `json:"inquiries_by_status"`
	TotalBookings     int64                        `json:"total_bookings"`
	ConfirmedBookings int64                        `json:"confirmed_bookings"`
	BookingsByStatus  map[string]int64             `json:"bookings_by_status"`
	RecentInquiries   []models.ContactInquiry      `json:"recent_inquiries"`
	RecentBookings    []models.ConsultationBooking `json:"recent_bookings"`
}

type StatsService struct {
	inquiries repository.InquiryRepository
	bookings  repository.BookingRepository
}

func NewStatsService(inquiries repository.InquiryRepository, bookings repository.BookingRepository) *StatsService {
	return &StatsService{inquiries: inquiries, bookings: bookings}
}

func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	inquiryCounts, err := s.inquiries.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count inquiries: %w", err)
	}
	bookingCounts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	stats := &DashboardStats{
		InquiriesByStatus: inquiryCounts,
		BookingsByStatus:  bookingCounts,
		NewInquiries:      inquiryCounts[models.InquiryStatusNew],
		ConfirmedBookings: bookingCounts[models.BookingStatusConfirmed],
	}
	for _, n := range inquiryCounts {
		stats.TotalInquiries += n
	}
	for _, n := range bookingCounts {
		stats.TotalBookings += n
	}

	if stats.RecentInquiries, err = s.inquiries.FindAll(ctx, 0, recentItems); err != nil {
		return nil, fmt.Errorf("recent inquiries: %w", err)
	}
	if stats.RecentBookings, err = s.bookings.FindAll(ctx, 0, recentItems); err != nil {
		return nil, fmt.Errorf("recent bookings: %w", err)
	}
	return stats, nil
}
