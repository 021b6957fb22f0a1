package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/ptit-edu/portal-backend/internal/middleware"
	"github.com/ptit-edu/portal-backend/internal/model"
	"github.com/ptit-edu/portal-backend/internal/response"
	"github.com/ptit-edu/portal-backend/internal/service"
	"github.com/ptit-edu/portal-backend/internal/validator"
	ws "github.com/ptit-edu/portal-backend/internal/websocket"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// ChatHandler exposes the assistant over REST and WebSocket.
type ChatHandler struct {
	chat     *service.ChatService
	limiter  *middleware.RateLimiter
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewChatHandler creates a ChatHandler. limiter throttles WebSocket
// messages per connection; REST calls are throttled by the router.
func NewChatHandler(chat *service.ChatService, limiter *middleware.RateLimiter, allowedOrigins []string, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		chat:     chat,
		limiter:  limiter,
		upgrader: buildUpgrader(allowedOrigins),
		log:      log.With().Str("component", "chat_handler").Logger(),
	}
}

// Chat godoc
// POST /api/chat
// Answers one message: 200 {reply}, 400 on an empty message, 500 {reply: busy} on upstream failure.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if fields := validator.Bind(c, &req); fields != nil {
		if strings.TrimSpace(req.Message) == "" {
			response.Fail(c, http.StatusBadRequest, response.ErrEmptyMessage)
			return
		}
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	reply, err := h.chat.Reply(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			response.Fail(c, http.StatusBadRequest, response.ErrEmptyMessage)
			return
		}
		response.Plain(c, http.StatusInternalServerError, model.ChatReply{Reply: service.BusyReply})
		return
	}

	response.Plain(c, http.StatusOK, model.ChatReply{Reply: reply})
}

// Stream godoc
// WS /ws/chat
// Keeps a transcript per connection and sends the whole conversation
// upstream for each message.
func (h *ChatHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	wsLog := h.log.With().Str("conn_id", connID).Str("ip", c.ClientIP()).Logger()
	wsLog.Info().Msg("Chat connected")

	ctx := c.Request.Context()
	transcript := ws.NewTranscript(ws.DefaultMaxTurns)

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		var writeErr error
		switch msg.Action {
		case ws.ActionPing:
			writeErr = ws.WriteTyped(conn, ws.EventResponse{Event: ws.EventPong})
		case ws.ActionReset:
			transcript.Reset()
			writeErr = ws.WriteTyped(conn, ws.EventResponse{Event: ws.EventReset})
		case ws.ActionMessage:
			if strings.TrimSpace(msg.Message) == "" {
				writeErr = ws.WriteError(conn, response.GetMessage(response.ErrEmptyMessage))
				break
			}
			if h.limiter != nil && !h.limiter.Allow(connID) {
				writeErr = ws.WriteError(conn, response.GetMessage(response.ErrRateLimitExceeded))
				break
			}
			reply, err := h.chat.Converse(ctx, transcript.Ask(msg.Message))
			if err != nil {
				transcript.Forget()
				writeErr = ws.WriteError(conn, service.BusyReply)
				break
			}
			transcript.Answer(reply)
			writeErr = ws.WriteReply(conn, reply)
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			writeErr = ws.WriteError(conn, "unknown action: "+string(msg.Action))
		}

		if writeErr != nil {
			wsLog.Debug().Err(writeErr).Msg("Write failed, closing")
			return
		}
	}
}
