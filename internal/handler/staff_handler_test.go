package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ptit-edu/portal-backend/internal/config"
	"github.com/ptit-edu/portal-backend/internal/middleware"
	"github.com/ptit-edu/portal-backend/internal/model"
	"github.com/ptit-edu/portal-backend/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func staffRouter(t *testing.T, store *fakeAdmissions) *gin.Engine {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	auth := service.NewAuthService(&config.Config{
		StaffUsername:     "admission",
		StaffPasswordHash: string(hash),
		JWTSecret:         "k",
		JWTExpiry:         time.Hour,
	})
	admissions := service.NewAdmissionService(store, nil, nil, service.AdmissionLimits{}, zerolog.Nop())
	h := NewStaffHandler(auth, admissions, service.NewExportService(store, zerolog.Nop()), zerolog.Nop())

	r := gin.New()
	r.POST("/api/admin/login", h.Login)
	g := r.Group("/api/admin", middleware.RequireStaffJWT(auth))
	g.GET("/admissions", h.ListAdmissions)
	g.GET("/admissions/export", h.ExportAdmissions)
	return r
}

func login(t *testing.T, r *gin.Engine, password string) (int, string) {
	t.Helper()
	w := serve(r, postJSON("/api/admin/login", `{"username":"admission","password":"`+password+`"}`))
	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body.Data.Token
}

func TestStaffLoginAndList(t *testing.T) {
	store := &fakeAdmissions{saved: []model.Admission{{ID: 1, FullName: "A"}, {ID: 2, FullName: "B"}}}
	r := staffRouter(t, store)

	code, _ := login(t, r, "wrong")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, token := login(t, r, "secret")
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, token)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/admin/admissions", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/admissions?page=1&per_page=10", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data       []model.Admission `json:"data"`
		Pagination struct {
			TotalItems int `json:"total_items"`
			PerPage    int `json:"per_page"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
	assert.Equal(t, 2, body.Pagination.TotalItems)
	assert.Equal(t, 10, body.Pagination.PerPage)
}

func TestStaffExport(t *testing.T) {
	store := &fakeAdmissions{saved: []model.Admission{{ID: 1, FullName: "A"}}}
	r := staffRouter(t, store)
	_, token := login(t, r, "secret")

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/admin/admissions/export?token="+token, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, w.Body.Len())

	store.err = errors.New("down")
	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/admin/admissions/export?token="+token, nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	bad := func(context.Context) error { return errors.New("refused") }

	r := gin.New()
	r.GET("/ok", NewHealthHandler(map[string]HealthCheck{"postgres": ok}).Health)
	r.GET("/bad", NewHealthHandler(map[string]HealthCheck{"postgres": ok, "redis": bad}).Health)

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/ok", nil)).Code)
	w := serve(r, httptest.NewRequest(http.MethodGet, "/bad", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "refused")
}
