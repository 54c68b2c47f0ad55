package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"bizdesk-backend/auth"
	"bizdesk-backend/middleware"
	"bizdesk-backend/models"
	"bizdesk-backend/repository"
	"bizdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const invalidCredentials = "Invalid credentials"

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// AuthController handles login, logout, verify and partner registration
// for both principal kinds. Each kind has its own session store; a token
// issued by one never verifies against the other.
type AuthController struct {
	admins          repository.AdminRepository
	partners        repository.PartnerRepository
	adminSessions   *auth.SessionStore
	partnerSessions *auth.SessionStore
}

func NewAuthController(admins repository.AdminRepository, partners repository.PartnerRepository, adminSessions, partnerSessions *auth.SessionStore) *AuthController {
	return &AuthController{
		admins:          admins,
		partners:        partners,
		adminSessions:   adminSessions,
		partnerSessions: partnerSessions,
	}
}

// POST /api/admin/login
func (ctl *AuthController) AdminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "username and password are required")
		return
	}

	// Unknown-username and wrong-password attempts share one code path
	// and one response so usernames cannot be enumerated.
	var id, username, digest string
	admin, err := ctl.admins.FindByUsername(c.Request.Context(), req.Username)
	switch {
	case err == nil:
		id, username, digest = admin.ID, admin.Username, admin.PasswordHash
	case errors.Is(err, gorm.ErrRecordNotFound):
		// keep going with empty digest
	default:
		log.Printf("admin login: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !verifyOrBurn(req.Password, digest) {
		utils.JSONError(c, http.StatusUnauthorized, invalidCredentials)
		return
	}

	session, err := ctl.adminSessions.Create(id, username)
	if err != nil {
		log.Printf("admin login: create session: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"token": session.Token, "username": username})
}

// POST /api/admin/logout
func (ctl *AuthController) AdminLogout(c *gin.Context) {
	ctl.adminSessions.Delete(bearerToken(c))
	utils.JSONMessage(c, http.StatusOK, "Logged out")
}

// GET /api/admin/verify
func (ctl *AuthController) AdminVerify(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"username":   session.DisplayName,
		"expires_at": session.ExpiresAt,
	})
}

// POST /api/partner/login
func (ctl *AuthController) PartnerLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "username and password are required")
		return
	}

	var id, username, digest string
	partner, err := ctl.partners.FindByUsername(c.Request.Context(), req.Username)
	switch {
	case err == nil:
		id, username, digest = partner.ID, partner.Username, partner.PasswordHash
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		log.Printf("partner login: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !verifyOrBurn(req.Password, digest) {
		utils.JSONError(c, http.StatusUnauthorized, invalidCredentials)
		return
	}

	session, err := ctl.partnerSessions.Create(id, username)
	if err != nil {
		log.Printf("partner login: create session: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"token": session.Token, "username": username})
}

// POST /api/partner/register
func (ctl *AuthController) PartnerRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "username, email and a password of at least 8 characters are required")
		return
	}

	if _, err := ctl.partners.FindByUsername(c.Request.Context(), req.Username); err == nil {
		utils.JSONError(c, http.StatusConflict, "Username already taken")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("partner register: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	digest, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("partner register: hash password: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	partner := &models.Partner{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: digest,
		Name:         req.Name,
		Phone:        req.Phone,
	}
	if err := ctl.partners.Create(c.Request.Context(), partner); err != nil {
		log.Printf("partner register: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, partner)
}

// POST /api/partner/logout
func (ctl *AuthController) PartnerLogout(c *gin.Context) {
	ctl.partnerSessions.Delete(bearerToken(c))
	utils.JSONMessage(c, http.StatusOK, "Logged out")
}

// GET /api/partner/verify
func (ctl *AuthController) PartnerVerify(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"username":   session.DisplayName,
		"expires_at": session.ExpiresAt,
	})
}

// verifyOrBurn checks the password against the stored digest, or against
// a throwaway digest when none exists, keeping timing comparable.
func verifyOrBurn(password, digest string) bool {
	if digest == "" {
		return auth.CheckDummy(password)
	}
	return auth.CheckPassword(password, digest)
}

func bearerToken(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}
