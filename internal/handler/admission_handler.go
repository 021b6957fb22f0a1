package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ptit-edu/portal-backend/internal/model"
	"github.com/ptit-edu/portal-backend/internal/response"
	"github.com/ptit-edu/portal-backend/internal/service"
	"github.com/ptit-edu/portal-backend/internal/validator"
	"github.com/rs/zerolog"
)

// AdmissionHandler accepts online applications.
type AdmissionHandler struct {
	admissions *service.AdmissionService
	maxBody    int64
	log        zerolog.Logger
}

// NewAdmissionHandler creates an AdmissionHandler. maxBody caps the whole
// multipart request.
func NewAdmissionHandler(admissions *service.AdmissionService, maxBody int64, log zerolog.Logger) *AdmissionHandler {
	return &AdmissionHandler{
		admissions: admissions,
		maxBody:    maxBody,
		log:        log.With().Str("component", "admission_handler").Logger(),
	}
}

// Submit godoc
// POST /api/admission
// Multipart form with the applicant fields and attachments under "files".
func (h *AdmissionHandler) Submit(c *gin.Context) {
	if h.maxBody > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)
	}

	mf, err := c.MultipartForm()
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
			return
		}
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	var form model.AdmissionForm
	if fields := validator.BindForm(c, &form); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	var files []*multipart.FileHeader
	if mf != nil {
		files = mf.File["files"]
	}

	result, err := h.admissions.Submit(c.Request.Context(), form, files)
	switch {
	case err == nil:
		response.Plain(c, http.StatusOK, result)
	case errors.Is(err, service.ErrTooManyFiles):
		response.Fail(c, http.StatusBadRequest, response.ErrTooManyFiles)
	case errors.Is(err, service.ErrFileTooLarge):
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
	case errors.Is(err, service.ErrUnsupportedFileType):
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrDatabase)
	}
}
