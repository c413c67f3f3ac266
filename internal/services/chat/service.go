package chat

import (
	"math/rand/v2"
	"time"

	"ciphergate/internal/domain"
)

// Author is the name the server signs its replies with.
const Author = "Ciphergate"

const echoLen = 10

var sentences = []string{
	"The quick brown fox jumps over the lazy dog.",
	"Every message here was encrypted end to end.",
	"I read that backwards, did you?",
	"Nothing left this session in the clear.",
	"The key was never on the wire.",
	"Try the handshake again if I go quiet.",
}

var emojis = []string{"🦊", "🔐", "🛰️", "🐙", "🌵", "🎲", "🧩", "🚀"}

// Service builds chat replies.
type Service struct {
	now  func() time.Time
	pick func(n int) int
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the reply timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithPicker overrides how canned sentences and emoji are chosen. pick
// returns an index in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(s *Service) { s.pick = pick }
}

// New returns a chat Service.
func New(opts ...Option) *Service {
	s := &Service{now: time.Now, pick: rand.IntN}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reply returns the echo of msg. Color is carried over unchanged.
func (s *Service) Reply(msg domain.ChatMessage) domain.ChatMessage {
	return domain.ChatMessage{
		Content:   reverse(head(msg.Content, echoLen)) + ".\n" + sentences[s.pick(len(sentences))],
		CreatedAt: s.now(),
		Color:     msg.Color,
		Author:    Author,
		Emoji:     emojis[s.pick(len(emojis))],
	}
}

func head(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// Compile-time assertion that Service implements domain.ChatService.
var _ domain.ChatService = (*Service)(nil)
