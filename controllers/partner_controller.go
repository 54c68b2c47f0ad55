package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"bizdesk-backend/middleware"
	"bizdesk-backend/models"
	"bizdesk-backend/repository"
	"bizdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartnerController manages a partner's client book. Every query is
// scoped by the partner id from the session; a client owned by another
// partner is reported as not found, never as forbidden.
type PartnerController struct {
	clients repository.ClientRepository
}

func NewPartnerController(clients repository.ClientRepository) *PartnerController {
	return &PartnerController{clients: clients}
}

func partnerID(c *gin.Context) (string, bool) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid or expired token")
		return "", false
	}
	return session.PrincipalID, true
}

// GET /api/partner/clients
func (ctl *PartnerController) ListClients(c *gin.Context) {
	pid, ok := partnerID(c)
	if !ok {
		return
	}
	clients, err := ctl.clients.FindByPartner(c.Request.Context(), pid)
	if err != nil {
		log.Printf("list clients: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, clients)
}

// GET /api/partner/clients/:id
func (ctl *PartnerController) GetClient(c *gin.Context) {
	pid, ok := partnerID(c)
	if !ok {
		return
	}
	client, err := ctl.clients.FindOwned(c.Request.Context(), pid, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Client not found")
			return
		}
		log.Printf("get client %s: %v", c.Param("id"), err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, client)
}

type clientRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
}

// POST /api/partner/clients
func (ctl *PartnerController) CreateClient(c *gin.Context) {
	pid, ok := partnerID(c)
	if !ok {
		return
	}
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "full_name is required")
		return
	}
	client := &models.Client{
		ID:        uuid.NewString(),
		PartnerID: pid,
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Services:  []models.ClientService{},
	}
	if err := ctl.clients.Create(c.Request.Context(), client); err != nil {
		log.Printf("create client: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, client)
}

// PUT /api/partner/clients/:id
func (ctl *PartnerController) UpdateClient(c *gin.Context) {
	pid, ok := partnerID(c)
	if !ok {
		return
	}
	updates, ok := bindUpdates(c)
	if !ok {
		return
	}
	delete(updates, "partner_id")
	found, err := ctl.clients.Update(c.Request.Context(), pid, c.Param("id"), updates)
	if err != nil {
		log.Printf("update client %s: %v", c.Param("id"), err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Client not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Client updated")
}

// DELETE /api/partner/clients/:id
func (ctl *PartnerController) DeleteClient(c *gin.Context) {
	pid, ok := partnerID(c)
	if !ok {
		return
	}
	found, err := ctl.clients.Delete(c.Request.Context(), pid, c.Param("id"))
	if err != nil {
		log.Printf("delete client %s: %v", c.Param("id"), err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Client not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Client deleted")
}

type clientServiceRequest struct {
	ServiceID    string                 `json:"service_id" binding:"required"`
	ServiceName  string                 `json:"service_name"`
	Price        float64                `json:"price"`
	PurchaseDate string                 `json:"purchase_date"`
	Metadata     map[string]interface{} `json:"metadata"`
}

// POST /api/partner/clients/:id/services
func (ctl *PartnerController) AddClientService(c *gin.Context) {
	pid, ok := partnerID(c)
	if !ok {
		return
	}
	var req clientServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "service_id is required")
		return
	}
	purchased := time.Now().UTC()
	if req.PurchaseDate != "" {
		t, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid purchase_date")
			return
		}
		purchased = t
	}
	service := &models.ClientService{
		ID:           uuid.NewString(),
		ServiceID:    req.ServiceID,
		ServiceName:  req.ServiceName,
		Price:        req.Price,
		PurchaseDate: purchased,
		Metadata:     toJSON(req.Metadata),
	}
	found, err := ctl.clients.AddService(c.Request.Context(), pid, c.Param("id"), service)
	if err != nil {
		log.Printf("add client service: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Client not found")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, service)
}

// PUT /api/partner/clients/:id/services/:service_id
func (ctl *PartnerController) UpdateClientService(c *gin.Context) {
	pid, ok := partnerID(c)
	if !ok {
		return
	}
	updates, ok := bindUpdates(c)
	if !ok {
		return
	}
	jsonifyFields(updates, "metadata")
	found, err := ctl.clients.UpdateService(c.Request.Context(), pid, c.Param("id"), c.Param("service_id"), updates)
	if err != nil {
		log.Printf("update client service: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Service not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Service updated")
}

// DELETE /api/partner/clients/:id/services/:service_id
func (ctl *PartnerController) DeleteClientService(c *gin.Context) {
	pid, ok := partnerID(c)
	if !ok {
		return
	}
	found, err := ctl.clients.DeleteService(c.Request.Context(), pid, c.Param("id"), c.Param("service_id"))
	if err != nil {
		log.Printf("delete client service: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Service not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Service deleted")
}

// GET /api/partner/revenue
func (ctl *PartnerController) Revenue(c *gin.Context) {
	pid, ok := partnerID(c)
	if !ok {
		return
	}
	summary, err := ctl.clients.RevenueByPartner(c.Request.Context(), pid)
	if err != nil {
		log.Printf("revenue summary: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}
