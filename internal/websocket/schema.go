package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionMessage Action = "message"
	ActionReset   Action = "reset"
	ActionPing    Action = "ping"
)

// RequestPayload is every client frame; Message is set for ActionMessage.
type RequestPayload struct {
	Action  Action `json:"action"`
	Message string `json:"message,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventReply Event = "reply"
	EventReset Event = "reset"
	EventError Event = "error"
	EventPong  Event = "pong"
)

type ReplyResponse struct {
	Event Event  `json:"event"`
	Reply string `json:"reply"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

// EventResponse carries events without a body (pong, reset).
type EventResponse struct {
	Event Event `json:"event"`
}
