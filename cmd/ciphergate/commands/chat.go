package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// chat: handshake once, then send each stdin line until EOF.
func chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Send every line read from stdin over one session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := handshake(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session %s established. Type a message, Ctrl-D to quit.\n", res.SessionID)

			sc := bufio.NewScanner(cmd.InOrStdin())
			for sc.Scan() {
				line := strings.TrimSpace(sc.Text())
				if line == "" {
					continue
				}
				reply, err := appCtx.Messages.SendMessage(cmd.Context(), newMessage(line))
				if err != nil {
					return err
				}
				printReply(out, reply)
			}
			return sc.Err()
		},
	}
	addMessageFlags(cmd)
	return cmd
}
