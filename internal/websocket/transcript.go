package websocket

import "github.com/ptit-edu/portal-backend/internal/model"

// DefaultMaxTurns bounds the history sent upstream per message.
const DefaultMaxTurns = 20

// Transcript is the conversation held for one chat connection.
// It is owned by the connection's read loop and not safe for concurrent use.
type Transcript struct {
	turns    []model.ChatTurn
	maxTurns int
}

func NewTranscript(maxTurns int) *Transcript {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Transcript{maxTurns: maxTurns}
}

// Ask appends a user turn and returns the history to send upstream.
func (t *Transcript) Ask(text string) []model.ChatTurn {
	t.append(model.ChatTurn{Role: model.ChatRoleUser, Text: text})
	return append([]model.ChatTurn(nil), t.turns...)
}

// Answer records the model reply to the last question.
func (t *Transcript) Answer(text string) {
	t.append(model.ChatTurn{Role: model.ChatRoleModel, Text: text})
}

// Forget drops the last user turn after a failed upstream call so the
// next question does not follow an unanswered one.
func (t *Transcript) Forget() {
	if n := len(t.turns); n > 0 && t.turns[n-1].Role == model.ChatRoleUser {
		t.turns = t.turns[:n-1]
	}
}

func (t *Transcript) Reset() { t.turns = nil }

func (t *Transcript) Len() int { return len(t.turns) }

func (t *Transcript) append(turn model.ChatTurn) {
	t.turns = append(t.turns, turn)
	if over := len(t.turns) - t.maxTurns; over > 0 {
		// Drop whole exchanges so the history still opens with a user turn.
		if over%2 == 1 {
			over++
		}
		if over > len(t.turns) {
			over = len(t.turns)
		}
		t.turns = append([]model.ChatTurn(nil), t.turns[over:]...)
	}
}
