package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bizdesk-backend/auth"
	"bizdesk-backend/middleware"
	"bizdesk-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// mockClientRepo holds clients keyed by id and enforces the same
// ownership scoping as the real repository.
type mockClientRepo struct {
	clients map[string]models.Client
}

func (m *mockClientRepo) FindByPartner(ctx context.Context, partnerID string) ([]models.Client, error) {
	var out []models.Client
	for _, c := range m.clients {
		if c.PartnerID == partnerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockClientRepo) FindOwned(ctx context.Context, partnerID, clientID string) (*models.Client, error) {
	if c, ok := m.clients[clientID]; ok && c.PartnerID == partnerID {
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClientRepo) Create(ctx context.Context, client *models.Client) error {
	m.clients[client.ID] = *client
	return nil
}

func (m *mockClientRepo) Update(ctx context.Context, partnerID, clientID string, updates map[string]interface{}) (bool, error) {
	c, ok := m.clients[clientID]
	if !ok || c.PartnerID != partnerID {
		return false, nil
	}
	if name, present := updates["full_name"]; present {
		c.FullName, _ = name.(string)
	}
	m.clients[clientID] = c
	return true, nil
}

func (m *mockClientRepo) Delete(ctx context.Context, partnerID, clientID string) (bool, error) {
	c, ok := m.clients[clientID]
	if !ok || c.PartnerID != partnerID {
		return false, nil
	}
	delete(m.clients, clientID)
	return true, nil
}

func (m *mockClientRepo) AddService(ctx context.Context, partnerID, clientID string, service *models.ClientService) (bool, error) {
	c, ok := m.clients[clientID]
	if !ok || c.PartnerID != partnerID {
		return false, nil
	}
	c.Services = append(c.Services, *service)
	m.clients[clientID] = c
	return true, nil
}

func (m *mockClientRepo) UpdateService(ctx context.Context, partnerID, clientID, serviceID string, updates map[string]interface{}) (bool, error) {
	c, ok := m.clients[clientID]
	if !ok || c.PartnerID != partnerID {
		return false, nil
	}
	for i := range c.Services {
		if c.Services[i].ID == serviceID {
			m.clients[clientID] = c
			return true, nil
		}
	}
	return false, nil
}

func (m *mockClientRepo) DeleteService(ctx context.Context, partnerID, clientID, serviceID string) (bool, error) {
	c, ok := m.clients[clientID]
	if !ok || c.PartnerID != partnerID {
		return false, nil
	}
	for i := range c.Services {
		if c.Services[i].ID == serviceID {
			c.Services = append(c.Services[:i], c.Services[i+1:]...)
			m.clients[clientID] = c
			return true, nil
		}
	}
	return false, nil
}

func (m *mockClientRepo) RevenueByPartner(ctx context.Context, partnerID string) (*models.RevenueSummary, error) {
	summary := &models.RevenueSummary{ByClient: []models.ClientRevenue{}}
	for _, c := range m.clients {
		if c.PartnerID != partnerID {
			continue
		}
		revenue := models.ClientRevenue{ClientID: c.ID, FullName: c.FullName}
		for _, s := range c.Services {
			revenue.Revenue += s.Price
			revenue.ServiceCount++
		}
		summary.TotalRevenue += revenue.Revenue
		summary.TotalClients++
		summary.TotalServices += revenue.ServiceCount
		summary.ByClient = append(summary.ByClient, revenue)
	}
	return summary, nil
}

func partnerTestRouter(t *testing.T, repo *mockClientRepo) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := auth.NewSessionStore("partner", 0)
	session, err := sessions.Create("partner-a", "partner-a")
	require.NoError(t, err)

	ctl := NewPartnerController(repo)
	r := gin.New()
	guarded := r.Group("/api/partner")
	guarded.Use(middleware.RequireSession(sessions))
	guarded.GET("/clients/:id", ctl.GetClient)
	guarded.PUT("/clients/:id", ctl.UpdateClient)
	guarded.DELETE("/clients/:id", ctl.DeleteClient)
	guarded.GET("/revenue", ctl.Revenue)
	return r, session.Token
}

func twoPartnerRepo() *mockClientRepo {
	return &mockClientRepo{clients: map[string]models.Client{
		"client-a": {ID: "client-a", PartnerID: "partner-a", FullName: "Own Client", Services: []models.ClientService{
			{ID: "svc-1", ServiceID: "gst-registration", Price: 1999},
			{ID: "svc-2", ServiceID: "company-registration", Price: 7999},
		}},
		"client-b": {ID: "client-b", PartnerID: "partner-b", FullName: "Foreign Client"},
	}}
}

// A client owned by another partner must look exactly like a missing
// one: 404, no data, and no hint that the id exists.
func TestForeignClientReturnsNotFound(t *testing.T) {
	r, token := partnerTestRouter(t, twoPartnerRepo())

	existing := getWithToken(r, "/api/partner/clients/client-a", token)
	require.Equal(t, http.StatusOK, existing.Code)

	foreign := getWithToken(r, "/api/partner/clients/client-b", token)
	assert.Equal(t, http.StatusNotFound, foreign.Code)
	assert.NotContains(t, foreign.Body.String(), "Foreign Client")

	missing := getWithToken(r, "/api/partner/clients/no-such-id", token)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, foreign.Body.String(), missing.Body.String())
}

func TestForeignClientMutationsReturnNotFound(t *testing.T) {
	repo := twoPartnerRepo()
	r, token := partnerTestRouter(t, repo)

	update := putJSON(r, "/api/partner/clients/client-b", `{"full_name":"Hijacked"}`, token)
	assert.Equal(t, http.StatusNotFound, update.Code)
	assert.Equal(t, "Foreign Client", repo.clients["client-b"].FullName)

	del := deleteReq(r, "/api/partner/clients/client-b", token)
	assert.Equal(t, http.StatusNotFound, del.Code)
	_, stillThere := repo.clients["client-b"]
	assert.True(t, stillThere)
}

func TestRevenueOnlyCountsOwnClients(t *testing.T) {
	r, token := partnerTestRouter(t, twoPartnerRepo())

	w := getWithToken(r, "/api/partner/revenue", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_revenue":9998`)
	assert.Contains(t, w.Body.String(), `"total_clients":1`)
	assert.NotContains(t, w.Body.String(), "client-b")
}

func putJSON(r *gin.Engine, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func deleteReq(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
