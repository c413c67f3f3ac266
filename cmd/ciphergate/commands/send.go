package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ciphergate/internal/domain"
)

var (
	author string
	color  string
)

// send <message...>: handshake, then encrypt and send one message.
func sendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <message...>",
		Short: "Encrypt and send one chat message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := handshake(cmd.Context()); err != nil {
				return err
			}
			reply, err := appCtx.Messages.SendMessage(cmd.Context(), newMessage(strings.Join(args, " ")))
			if err != nil {
				return err
			}
			printReply(cmd.OutOrStdout(), reply)
			return nil
		},
	}
	addMessageFlags(cmd)
	return cmd
}

func addMessageFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&author, "author", "me", "author name sent with each message")
	cmd.Flags().StringVar(&color, "color", "", "optional display color")
}

func newMessage(content string) domain.ChatMessage {
	return domain.ChatMessage{
		Content:   content,
		CreatedAt: time.Now(),
		Author:    author,
		Color:     color,
	}
}

func printReply(w io.Writer, m domain.ChatMessage) {
	prefix := m.Author
	if m.Emoji != "" {
		prefix = m.Emoji + " " + prefix
	}
	fmt.Fprintf(w, "%s> %s\n", prefix, m.Content)
}
