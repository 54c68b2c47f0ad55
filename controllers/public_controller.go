package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"bizdesk-backend/models"
	"bizdesk-backend/repository"
	"bizdesk-backend/services"
	"bizdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PublicController serves the unauthenticated site endpoints.
type PublicController struct {
	stages       repository.StageRepository
	timeslots    repository.TimeslotRepository
	settings     repository.SettingsRepository
	blogs        repository.BlogRepository
	faqs         repository.FAQRepository
	testimonials repository.TestimonialRepository
	packages     repository.PackageRepository
	analytics    repository.AnalyticsRepository
	inquiries    *services.InquiryService
	bookings     *services.BookingService
}

func NewPublicController(
	stages repository.StageRepository,
	timeslots repository.TimeslotRepository,
	settings repository.SettingsRepository,
	blogs repository.BlogRepository,
	faqs repository.FAQRepository,
	testimonials repository.TestimonialRepository,
	packages repository.PackageRepository,
	analytics repository.AnalyticsRepository,
	inquiries *services.InquiryService,
	bookings *services.BookingService,
) *PublicController {
	return &PublicController{
		stages:       stages,
		timeslots:    timeslots,
		settings:     settings,
		blogs:        blogs,
		faqs:         faqs,
		testimonials: testimonials,
		packages:     packages,
		analytics:    analytics,
		inquiries:    inquiries,
		bookings:     bookings,
	}
}

func (ctl *PublicController) Health(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/stages
func (ctl *PublicController) ListStages(c *gin.Context) {
	stages, err := ctl.stages.FindAll(c.Request.Context())
	if err != nil {
		log.Printf("list stages: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stages)
}

// GET /api/stages/:id
func (ctl *PublicController) GetStage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Stage not found")
		return
	}
	stage, err := ctl.stages.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Stage not found")
			return
		}
		log.Printf("get stage %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stage)
}

// GET /api/services/:service_id
func (ctl *PublicController) GetService(c *gin.Context) {
	serviceID := c.Param("service_id")
	service, err := ctl.stages.FindServiceByServiceID(c.Request.Context(), serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Service not found")
			return
		}
		log.Printf("get service %s: %v", serviceID, err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, service)
}

// POST /api/contact
func (ctl *PublicController) SubmitContact(c *gin.Context) {
	var req services.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.DisplayName() == "" {
		utils.JSONError(c, http.StatusBadRequest, "full_name is required")
		return
	}
	inquiry, err := ctl.inquiries.Submit(c.Request.Context(), req)
	if err != nil {
		log.Printf("submit inquiry: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, inquiry)
}

// GET /api/timeslots?date=YYYY-MM-DD
func (ctl *PublicController) ListTimeslots(c *gin.Context) {
	slots, err := ctl.timeslots.FindAvailable(c.Request.Context(), c.Query("date"))
	if err != nil {
		log.Printf("list timeslots: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, slots)
}

// POST /api/booking
func (ctl *PublicController) CreateBooking(c *gin.Context) {
	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	booking, err := ctl.bookings.Book(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSlotNotFound):
			utils.JSONError(c, http.StatusNotFound, "Time slot not found")
		case errors.Is(err, services.ErrSlotUnavailable):
			utils.JSONError(c, http.StatusBadRequest, "Time slot is no longer available")
		case errors.Is(err, services.ErrSlotTaken):
			utils.JSONError(c, http.StatusConflict, "Time slot is no longer available")
		default:
			log.Printf("create booking: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// GET /api/settings returns the stored settings, or the built-in defaults
// when the row is missing or unreadable. The public site must always render.
func (ctl *PublicController) GetSettings(c *gin.Context) {
	settings, err := ctl.settings.Get(c.Request.Context())
	if err != nil {
		defaults := models.DefaultSettings()
		utils.JSONSuccess(c, http.StatusOK, defaults)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, settings)
}

// GET /api/blogs
func (ctl *PublicController) ListBlogs(c *gin.Context) {
	skip, limit := pagination(c, 20)
	blogs, err := ctl.blogs.FindAll(c.Request.Context(), true, skip, limit)
	if err != nil {
		log.Printf("list blogs: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, blogs)
}

// GET /api/blogs/:slug
func (ctl *PublicController) GetBlogBySlug(c *gin.Context) {
	slug := c.Param("slug")
	blog, err := ctl.blogs.FindBySlug(c.Request.Context(), slug)
	if err != nil || !blog.Published {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("get blog %s: %v", slug, err)
			utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		utils.JSONError(c, http.StatusNotFound, "Blog not found")
		return
	}
	// Counter only; a failed increment never hides the post.
	if err := ctl.blogs.IncrementViews(c.Request.Context(), blog.ID); err != nil {
		log.Printf("increment views for blog %s: %v", blog.ID, err)
	} else {
		blog.Views++
	}
	utils.JSONSuccess(c, http.StatusOK, blog)
}

// GET /api/faqs
func (ctl *PublicController) ListFAQs(c *gin.Context) {
	faqs, err := ctl.faqs.FindAll(c.Request.Context(), true)
	if err != nil {
		log.Printf("list faqs: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, faqs)
}

// GET /api/testimonials
func (ctl *PublicController) ListTestimonials(c *gin.Context) {
	testimonials, err := ctl.testimonials.FindAll(c.Request.Context(), true)
	if err != nil {
		log.Printf("list testimonials: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, testimonials)
}

// GET /api/packages
func (ctl *PublicController) ListPackages(c *gin.Context) {
	packages, err := ctl.packages.FindAll(c.Request.Context(), true)
	if err != nil {
		log.Printf("list packages: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, packages)
}

type trackEventRequest struct {
	EventType string                 `json:"event_type" binding:"required"`
	Page      string                 `json:"page"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// POST /api/analytics/track
func (ctl *PublicController) TrackEvent(c *gin.Context) {
	var req trackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "event_type is required")
		return
	}
	event := &models.AnalyticsEvent{
		ID:        uuid.NewString(),
		EventType: req.EventType,
		Page:      req.Page,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
		Metadata:  toJSON(req.Metadata),
	}
	if err := ctl.analytics.Track(c.Request.Context(), event); err != nil {
		log.Printf("track event: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Event tracked")
}

// pagination reads skip/limit query params with sane bounds.
func pagination(c *gin.Context, defaultLimit int) (int, int) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if skip < 0 {
		skip = 0
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit <= 0 || limit > 100 {
		limit = defaultLimit
	}
	return skip, limit
}
