package chat_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ciphergate/internal/domain"
	"ciphergate/internal/services/chat"
)

func fixed() []chat.Option {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []chat.Option{
		chat.WithClock(func() time.Time { return at }),
		chat.WithPicker(func(int) int { return 0 }),
	}
}

func TestReply(t *testing.T) {
	svc := chat.New(fixed()...)

	cases := []struct {
		in, prefix string
	}{
		{"hello world, this is long", "lrow olleh.\n"},
		{"abc", "cba.\n"},
		{"", ".\n"},
		{"héllo wörld!", "lröw olléh.\n"},
	}
	for _, tc := range cases {
		got := svc.Reply(domain.ChatMessage{Content: tc.in, Color: "#ff0000", Author: "someone"})
		assert.True(t, strings.HasPrefix(got.Content, tc.prefix), "content %q", got.Content)
		assert.Equal(t, "#ff0000", got.Color)
		assert.Equal(t, chat.Author, got.Author)
		assert.NotEmpty(t, got.Emoji)
		assert.Equal(t, 2024, got.CreatedAt.Year())
	}
}

func TestReplyDefaults(t *testing.T) {
	before := time.Now()
	got := chat.New().Reply(domain.ChatMessage{Content: "ping"})
	assert.True(t, strings.HasPrefix(got.Content, "gnip.\n"))
	assert.False(t, got.CreatedAt.Before(before))
}
