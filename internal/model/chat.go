package model

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// ChatReply is the body returned by POST /api/chat.
type ChatReply struct {
	Reply string `json:"reply"`
}

// ChatRole identifies who authored a transcript turn.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatTurn is one message in a conversation transcript.
type ChatTurn struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}
