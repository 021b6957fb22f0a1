package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ptit-edu/portal-backend/internal/middleware"
	"github.com/ptit-edu/portal-backend/internal/model"
	"github.com/ptit-edu/portal-backend/internal/response"
	"github.com/ptit-edu/portal-backend/internal/service"
	"github.com/ptit-edu/portal-backend/internal/validator"
	"github.com/rs/zerolog"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StaffHandler serves the admission office console.
type StaffHandler struct {
	auth       *service.AuthService
	admissions *service.AdmissionService
	export     *service.ExportService
	log        zerolog.Logger
}

func NewStaffHandler(auth *service.AuthService, admissions *service.AdmissionService, export *service.ExportService, log zerolog.Logger) *StaffHandler {
	return &StaffHandler{
		auth:       auth,
		admissions: admissions,
		export:     export,
		log:        log.With().Str("component", "staff_handler").Logger(),
	}
}

// Login godoc
// POST /api/admin/login
func (h *StaffHandler) Login(c *gin.Context) {
	var req model.StaffLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStaffDisabled):
			response.Fail(c, http.StatusServiceUnavailable, response.ErrStaffDisabled)
		case errors.Is(err, service.ErrInvalidCredentials):
			h.log.Warn().Str("username", req.Username).Str("ip", c.ClientIP()).Msg("Failed staff login")
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token})
}

// ListAdmissions godoc
// GET /api/admin/admissions?page=1&per_page=20
func (h *StaffHandler) ListAdmissions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	items, total, err := h.admissions.List(c.Request.Context(), page, perPage)
	if err != nil {
		h.log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("Failed to list admissions")
		response.Fail(c, http.StatusInternalServerError, response.ErrDatabase)
		return
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	response.SuccessWithPagination(c, http.StatusOK, items, response.NewPagination(page, perPage, total))
}

// ExportAdmissions godoc
// GET /api/admin/admissions/export
// Downloads every admission as an .xlsx workbook.
func (h *StaffHandler) ExportAdmissions(c *gin.Context) {
	var buf bytes.Buffer
	n, err := h.export.WriteAdmissionsXLSX(c.Request.Context(), &buf)
	if err != nil {
		h.log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("Failed to export admissions")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	user := ""
	if claims := middleware.GetClaims(c); claims != nil {
		user = claims.Username
	}
	h.log.Info().Str("username", user).Int("rows", n).Msg("Admissions exported")

	filename := fmt.Sprintf("admissions_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
