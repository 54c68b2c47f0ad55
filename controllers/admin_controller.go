package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"bizdesk-backend/models"
	"bizdesk-backend/repository"
	"bizdesk-backend/services"
	"bizdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AdminController covers the authenticated admin panel: dashboard stats,
// stage and service management, inquiries, timeslots and bookings.
type AdminController struct {
	stages    repository.StageRepository
	inquiries repository.InquiryRepository
	timeslots repository.TimeslotRepository
	bookings  repository.BookingRepository
	stats     *services.StatsService
}

func NewAdminController(
	stages repository.StageRepository,
	inquiries repository.InquiryRepository,
	timeslots repository.TimeslotRepository,
	bookings repository.BookingRepository,
	stats *services.StatsService,
) *AdminController {
	return &AdminController{
		stages:    stages,
		inquiries: inquiries,
		timeslots: timeslots,
		bookings:  bookings,
		stats:     stats,
	}
}

// GET /api/admin/stats
func (ctl *AdminController) GetStats(c *gin.Context) {
	stats, err := ctl.stats.Dashboard(c.Request.Context())
	if err != nil {
		log.Printf("dashboard stats: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}

// --- stages ---

// POST /api/admin/stages
func (ctl *AdminController) CreateStage(c *gin.Context) {
	var stage models.Stage
	if err := c.ShouldBindJSON(&stage); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if stage.ID <= 0 || stage.Title == "" {
		utils.JSONError(c, http.StatusBadRequest, "id and title are required")
		return
	}
	for i := range stage.Services {
		stage.Services[i].RelevantFor = normalizeRelevantFor(stage.Services[i].RelevantFor)
	}
	if err := ctl.stages.Create(c.Request.Context(), &stage); err != nil {
		log.Printf("create stage: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, stage)
}

// PUT /api/admin/stages/:id
func (ctl *AdminController) UpdateStage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Stage not found")
		return
	}
	updates, ok := bindUpdates(c)
	if !ok {
		return
	}
	found, err := ctl.stages.Update(c.Request.Context(), id, updates)
	if err != nil {
		log.Printf("update stage %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Stage not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Stage updated")
}

// DELETE /api/admin/stages/:id
func (ctl *AdminController) DeleteStage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Stage not found")
		return
	}
	found, err := ctl.stages.Delete(c.Request.Context(), id)
	if err != nil {
		log.Printf("delete stage %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Stage not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Stage deleted")
}

// POST /api/admin/stages/:id/services
func (ctl *AdminController) AddStageService(c *gin.Context) {
	stageID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Stage not found")
		return
	}
	var service models.Service
	if err := c.ShouldBindJSON(&service); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if service.ServiceID == "" || service.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "service_id and name are required")
		return
	}
	service.RelevantFor = normalizeRelevantFor(service.RelevantFor)

	found, err := ctl.stages.AddService(c.Request.Context(), stageID, &service)
	if err != nil {
		log.Printf("add service to stage %d: %v", stageID, err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Stage not found")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, service)
}

// PUT /api/admin/stages/:id/services/:service_id
func (ctl *AdminController) UpdateStageService(c *gin.Context) {
	stageID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Service not found")
		return
	}
	updates, ok := bindUpdates(c)
	if !ok {
		return
	}
	if raw, present := updates["relevant_for"]; present {
		updates["relevant_for"] = normalizeRelevantFor(toJSON(raw))
	}
	found, err := ctl.stages.UpdateService(c.Request.Context(), stageID, c.Param("service_id"), updates)
	if err != nil {
		log.Printf("update service %s: %v", c.Param("service_id"), err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Service not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Service updated")
}

// DELETE /api/admin/stages/:id/services/:service_id
func (ctl *AdminController) DeleteStageService(c *gin.Context) {
	stageID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Service not found")
		return
	}
	found, err := ctl.stages.DeleteService(c.Request.Context(), stageID, c.Param("service_id"))
	if err != nil {
		log.Printf("delete service %s: %v", c.Param("service_id"), err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Service not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Service deleted")
}

// --- inquiries ---

// GET /api/admin/inquiries
func (ctl *AdminController) ListInquiries(c *gin.Context) {
	skip, limit := pagination(c, 50)
	inquiries, err := ctl.inquiries.FindAll(c.Request.Context(), skip, limit)
	if err != nil {
		log.Printf("list inquiries: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, inquiries)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/admin/inquiries/:id/status
func (ctl *AdminController) UpdateInquiryStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.ValidInquiryStatus(req.Status) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid status")
		return
	}
	found, err := ctl.inquiries.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		log.Printf("update inquiry status: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Inquiry not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Status updated")
}

// --- timeslots ---

type timeslotRequest struct {
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	IsAvailable *bool  `json:"is_available"`
}

// POST /api/admin/timeslots
func (ctl *AdminController) CreateTimeslot(c *gin.Context) {
	var req timeslotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "date and time are required")
		return
	}
	slot := &models.TimeSlot{
		ID:          uuid.NewString(),
		Date:        req.Date,
		Time:        req.Time,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		slot.IsAvailable = *req.IsAvailable
	}
	if err := ctl.timeslots.Create(c.Request.Context(), slot); err != nil {
		log.Printf("create timeslot: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, slot)
}

// PUT /api/admin/timeslots/:id
func (ctl *AdminController) UpdateTimeslot(c *gin.Context) {
	updates, ok := bindUpdates(c)
	if !ok {
		return
	}
	found, err := ctl.timeslots.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		log.Printf("update timeslot %s: %v", c.Param("id"), err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Time slot not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Time slot updated")
}

// DELETE /api/admin/timeslots/:id
func (ctl *AdminController) DeleteTimeslot(c *gin.Context) {
	found, err := ctl.timeslots.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("delete timeslot %s: %v", c.Param("id"), err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Time slot not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Time slot deleted")
}

// --- bookings ---

// GET /api/admin/bookings
func (ctl *AdminController) ListBookings(c *gin.Context) {
	skip, limit := pagination(c, 50)
	bookings, err := ctl.bookings.FindAll(c.Request.Context(), skip, limit)
	if err != nil {
		log.Printf("list bookings: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// PUT /api/admin/bookings/:id/status
func (ctl *AdminController) UpdateBookingStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.ValidBookingStatus(req.Status) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid status")
		return
	}
	found, err := ctl.bookings.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		log.Printf("update booking status: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Booking not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Status updated")
}

// bindUpdates binds a partial-update body and strips immutable fields.
func bindUpdates(c *gin.Context) (map[string]interface{}, bool) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil || len(updates) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return nil, false
	}
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	return updates, true
}

// normalizeRelevantFor enforces the audience tag invariant: a service
// always carries a non-empty relevant_for list.
func normalizeRelevantFor(raw datatypes.JSON) datatypes.JSON {
	var tags []string
	if len(raw) > 0 && json.Unmarshal(raw, &tags) == nil && len(tags) > 0 {
		return raw
	}
	return toJSON(models.DefaultRelevantFor)
}
