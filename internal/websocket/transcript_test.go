package websocket

import (
	"testing"

	"github.com/ptit-edu/portal-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptAskAnswer(t *testing.T) {
	tr := NewTranscript(0)

	hist := tr.Ask("Xin chào")
	require.Len(t, hist, 1)
	tr.Answer("Chào bạn")

	hist = tr.Ask("Điểm chuẩn?")
	assert.Equal(t, []model.ChatTurn{
		{Role: model.ChatRoleUser, Text: "Xin chào"},
		{Role: model.ChatRoleModel, Text: "Chào bạn"},
		{Role: model.ChatRoleUser, Text: "Điểm chuẩn?"},
	}, hist)

	hist[0].Text = "mutated"
	assert.Equal(t, "Xin chào", tr.Ask("x")[0].Text)
}

func TestTranscriptForgetAndReset(t *testing.T) {
	tr := NewTranscript(10)
	tr.Ask("a")
	tr.Forget()
	assert.Equal(t, 0, tr.Len())

	tr.Ask("a")
	tr.Answer("b")
	tr.Forget()
	assert.Equal(t, 2, tr.Len())

	tr.Reset()
	assert.Equal(t, 0, tr.Len())
}

func TestTranscriptTrimsWholeExchanges(t *testing.T) {
	tr := NewTranscript(4)
	for _, q := range []string{"q1", "q2", "q3"} {
		tr.Ask(q)
		tr.Answer("a" + q[1:])
	}
	hist := tr.Ask("q4")

	require.LessOrEqual(t, len(hist), 4)
	assert.Equal(t, model.ChatRoleUser, hist[0].Role)
	assert.Equal(t, "q4", hist[len(hist)-1].Text)
}
