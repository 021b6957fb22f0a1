package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ptit-edu/portal-backend/internal/response"
	"github.com/ptit-edu/portal-backend/internal/service"
	"github.com/rs/zerolog"
)

// ContentHandler serves the landing-page lists and the campus catalogue.
// Successful bodies are bare JSON arrays.
type ContentHandler struct {
	content *service.ContentService
	campus  *service.CampusService
	log     zerolog.Logger
}

func NewContentHandler(content *service.ContentService, campus *service.CampusService, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		content: content,
		campus:  campus,
		log:     log.With().Str("component", "content_handler").Logger(),
	}
}

// Intro godoc
// GET /api/intro
func (h *ContentHandler) Intro(c *gin.Context) {
	serveList(c, h.log, "intro", h.content.IntroSlides)
}

// History godoc
// GET /api/history
func (h *ContentHandler) History(c *gin.Context) {
	serveList(c, h.log, "history", h.content.HistoryEvents)
}

// Achievements godoc
// GET /api/achievements
func (h *ContentHandler) Achievements(c *gin.Context) {
	serveList(c, h.log, "achievements", h.content.Achievements)
}

// Partners godoc
// GET /api/partners
func (h *ContentHandler) Partners(c *gin.Context) {
	serveList(c, h.log, "partners", h.content.Partners)
}

// Campus godoc
// GET /api/campus
// Each record carries absolute model_url and thumbnail_url.
func (h *ContentHandler) Campus(c *gin.Context) {
	serveList(c, h.log, "campus", h.campus.List)
}

func serveList[T any](c *gin.Context, log zerolog.Logger, kind string, load func(context.Context) ([]T, error)) {
	items, err := load(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Str("kind", kind).Str("request_id", response.RequestID(c)).Msg("Failed to load list")
		response.Fail(c, http.StatusInternalServerError, response.ErrDatabase)
		return
	}
	response.Plain(c, http.StatusOK, items)
}
