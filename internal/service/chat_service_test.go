package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ptit-edu/portal-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	reply  string
	err    error
	system string
	turns  []model.ChatTurn
	hasDL  bool
}

func (g *fakeGenerator) Generate(ctx context.Context, system string, turns []model.ChatTurn) (string, error) {
	g.system = system
	g.turns = turns
	_, g.hasDL = ctx.Deadline()
	return g.reply, g.err
}

func TestChatServiceReplyPrimesConversation(t *testing.T) {
	gen := &fakeGenerator{reply: "  PTIT có hai cơ sở tại Hà Nội.  "}
	svc := NewChatService(gen, 5*time.Second, zerolog.Nop())

	reply, err := svc.Reply(context.Background(), "Trường có mấy cơ sở?")
	require.NoError(t, err)

	assert.Equal(t, "PTIT có hai cơ sở tại Hà Nội.", reply)
	assert.Equal(t, SystemInstruction, gen.system)
	require.Len(t, gen.turns, 3)
	assert.Equal(t, model.ChatRoleUser, gen.turns[0].Role)
	assert.Contains(t, gen.turns[0].Text, SystemInstruction)
	assert.Equal(t, model.ChatRoleModel, gen.turns[1].Role)
	assert.Equal(t, "Trường có mấy cơ sở?", gen.turns[2].Text)
	assert.True(t, gen.hasDL)
}

func TestChatServiceConverseKeepsTranscript(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	svc := NewChatService(gen, 0, zerolog.Nop())

	transcript := []model.ChatTurn{
		{Role: model.ChatRoleUser, Text: "Xin chào"},
		{Role: model.ChatRoleModel, Text: "Chào bạn"},
		{Role: model.ChatRoleUser, Text: "Học phí?"},
	}
	_, err := svc.Converse(context.Background(), transcript)
	require.NoError(t, err)
	assert.Len(t, gen.turns, 5)
	assert.Equal(t, transcript, gen.turns[2:])
	assert.False(t, gen.hasDL)
}

func TestChatServiceErrors(t *testing.T) {
	t.Run("empty message", func(t *testing.T) {
		svc := NewChatService(&fakeGenerator{}, 0, zerolog.Nop())
		_, err := svc.Reply(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrEmptyMessage)
	})

	t.Run("no generator", func(t *testing.T) {
		svc := NewChatService(nil, 0, zerolog.Nop())
		_, err := svc.Reply(context.Background(), "hi")
		assert.ErrorIs(t, err, ErrChatUnavailable)
	})

	t.Run("upstream failure", func(t *testing.T) {
		svc := NewChatService(&fakeGenerator{err: errors.New("quota")}, 0, zerolog.Nop())
		_, err := svc.Reply(context.Background(), "hi")
		assert.ErrorIs(t, err, ErrChatUnavailable)
	})
}
