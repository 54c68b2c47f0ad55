package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bizdesk-backend/auth"
	"bizdesk-backend/middleware"
	"bizdesk-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockAdminRepo struct {
	admins map[string]models.Admin
}

func (m *mockAdminRepo) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	if admin, ok := m.admins[username]; ok {
		return &admin, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	m.admins[admin.Username] = *admin
	return nil
}

func (m *mockAdminRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.admins)), nil
}

type mockPartnerRepo struct {
	partners map[string]models.Partner
}

func (m *mockPartnerRepo) FindByUsername(ctx context.Context, username string) (*models.Partner, error) {
	if partner, ok := m.partners[username]; ok {
		return &partner, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPartnerRepo) Create(ctx context.Context, partner *models.Partner) error {
	m.partners[partner.Username] = *partner
	return nil
}

func seededAdminRepo(t *testing.T) *mockAdminRepo {
	t.Helper()
	hash, err := auth.HashPassword("admin123")
	require.NoError(t, err)
	return &mockAdminRepo{admins: map[string]models.Admin{
		"admin": {ID: "admin-1", Username: "admin", PasswordHash: hash},
	}}
}

func authTestRouter(adminRepo *mockAdminRepo, adminSessions *auth.SessionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctl := NewAuthController(adminRepo, &mockPartnerRepo{partners: map[string]models.Partner{}}, adminSessions, auth.NewSessionStore("partner", 0))

	r := gin.New()
	r.POST("/api/admin/login", ctl.AdminLogin)
	guarded := r.Group("/api/admin")
	guarded.Use(middleware.RequireSession(adminSessions))
	guarded.GET("/verify", ctl.AdminVerify)
	guarded.POST("/logout", ctl.AdminLogout)
	return r
}

func postJSON(r *gin.Engine, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getWithToken(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminLoginVerifyFlow(t *testing.T) {
	sessions := auth.NewSessionStore("admin", 0)
	r := authTestRouter(seededAdminRepo(t), sessions)

	w := postJSON(r, "/api/admin/login", `{"username":"admin","password":"admin123"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Token    string `json:"token"`
			Username string `json:"username"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Data.Token)

	w = getWithToken(r, "/api/admin/verify", resp.Data.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"admin"`)
}

// A near-zero TTL makes every issued token expire immediately, so the
// verify that follows a successful login must come back 401.
func TestAdminVerifyAfterExpiry(t *testing.T) {
	sessions := auth.NewSessionStore("admin", time.Nanosecond)
	r := authTestRouter(seededAdminRepo(t), sessions)

	w := postJSON(r, "/api/admin/login", `{"username":"admin","password":"admin123"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	time.Sleep(5 * time.Millisecond)

	w = getWithToken(r, "/api/admin/verify", resp.Data.Token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

// Unknown usernames and wrong passwords must be indistinguishable from
// the outside: same status, same body.
func TestAdminLoginGenericFailure(t *testing.T) {
	sessions := auth.NewSessionStore("admin", 0)
	r := authTestRouter(seededAdminRepo(t), sessions)

	wrongPass := postJSON(r, "/api/admin/login", `{"username":"admin","password":"nope"}`, nil)
	unknownUser := postJSON(r, "/api/admin/login", `{"username":"ghost","password":"nope"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPass.Body.String(), unknownUser.Body.String())
}

func TestAuthMiddlewareErrorMessages(t *testing.T) {
	sessions := auth.NewSessionStore("admin", 0)
	r := authTestRouter(seededAdminRepo(t), sessions)

	missing := getWithToken(r, "/api/admin/verify", "")
	assert.Equal(t, http.StatusUnauthorized, missing.Code)
	assert.Contains(t, missing.Body.String(), "No authorization token provided")

	bogus := getWithToken(r, "/api/admin/verify", "not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, bogus.Code)
	assert.Contains(t, bogus.Body.String(), "Invalid or expired token")
}

func TestAdminLogoutInvalidatesToken(t *testing.T) {
	sessions := auth.NewSessionStore("admin", 0)
	r := authTestRouter(seededAdminRepo(t), sessions)

	w := postJSON(r, "/api/admin/login", `{"username":"admin","password":"admin123"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = postJSON(r, "/api/admin/logout", `{}`, map[string]string{"Authorization": "Bearer " + resp.Data.Token})
	require.Equal(t, http.StatusOK, w.Code)

	w = getWithToken(r, "/api/admin/verify", resp.Data.Token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Admin tokens must never verify against the partner store.
func TestAdminTokenRejectedByPartnerGuard(t *testing.T) {
	adminSessions := auth.NewSessionStore("admin", 0)
	partnerSessions := auth.NewSessionStore("partner", 0)

	session, err := adminSessions.Create("admin-1", "admin")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	guarded := r.Group("/api/partner")
	guarded.Use(middleware.RequireSession(partnerSessions))
	guarded.GET("/verify", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := getWithToken(r, "/api/partner/verify", session.Token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
