package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ptit-edu/portal-backend/internal/model"
	"github.com/rs/zerolog"
)

// Sentinel errors for the chatbot.
var (
	ErrEmptyMessage    = errors.New("empty chat message")
	ErrChatUnavailable = errors.New("chat backend unavailable")
)

// BusyReply is returned to the visitor whenever the upstream model fails.
const BusyReply = "Hệ thống đang bận, vui lòng thử lại sau."

// SystemInstruction primes the assistant with the institution facts.
const SystemInstruction = `Bạn là Trợ lý ảo AI của Học viện Công nghệ Bưu chính Viễn thông (PTIT).
Nhiệm vụ: Trả lời ngắn gọn, thân thiện, chính xác cho sinh viên.
Thông tin cơ bản:
- Tên trường: Học viện Công nghệ Bưu chính Viễn thông (PTIT).
- Trường có các cơ sở tại Hà Nội, TP.HCM.
- Cơ sở giảng dạy chính tại Hà Nội là cơ sở Hà Đông, nơi giảng dạy cho sinh viên năm 1, 2, 3, nơi diễn ra các sự kiện lớn và hội thảo ở hội trường A2; cơ sở Ngọc Trục dành cho sinh viên năm 4.
Dữ liệu khác: lấy từ Website: ptit.edu.vn.
Nếu câu hỏi không liên quan đến trường học, hãy từ chối lịch sự.`

const (
	primingPrefix = "Hãy đóng vai trợ lý ảo PTIT và ghi nhớ: "
	primingAck    = "Đã rõ. Tôi là AI của PTIT. Tôi sẵn sàng hỗ trợ."
)

// Generator produces the next model turn for a conversation.
type Generator interface {
	Generate(ctx context.Context, systemInstruction string, turns []model.ChatTurn) (string, error)
}

// ChatService forwards visitor messages to the generative model.
type ChatService struct {
	gen     Generator
	timeout time.Duration
	log     zerolog.Logger
}

// NewChatService creates a ChatService. A nil gen makes every call fail
// with ErrChatUnavailable.
func NewChatService(gen Generator, timeout time.Duration, log zerolog.Logger) *ChatService {
	return &ChatService{
		gen:     gen,
		timeout: timeout,
		log:     log.With().Str("component", "chat_service").Logger(),
	}
}

// Reply answers a single stateless message.
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	return s.Converse(ctx, []model.ChatTurn{{Role: model.ChatRoleUser, Text: message}})
}

// Converse answers the last user turn of transcript, sending the whole
// transcript upstream after the priming exchange.
func (s *ChatService) Converse(ctx context.Context, transcript []model.ChatTurn) (string, error) {
	if len(transcript) == 0 || strings.TrimSpace(transcript[len(transcript)-1].Text) == "" {
		return "", ErrEmptyMessage
	}
	if s.gen == nil {
		return "", ErrChatUnavailable
	}

	turns := make([]model.ChatTurn, 0, len(transcript)+2)
	turns = append(turns,
		model.ChatTurn{Role: model.ChatRoleUser, Text: primingPrefix + SystemInstruction},
		model.ChatTurn{Role: model.ChatRoleModel, Text: primingAck},
	)
	turns = append(turns, transcript...)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	reply, err := s.gen.Generate(ctx, SystemInstruction, turns)
	if err != nil {
		s.log.Error().Err(err).Int("turns", len(turns)).Msg("Generation failed")
		return "", fmt.Errorf("%w: %v", ErrChatUnavailable, err)
	}
	return strings.TrimSpace(reply), nil
}
