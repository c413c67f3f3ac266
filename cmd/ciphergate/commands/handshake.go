package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ciphergate/internal/crypto"
)

func handshakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "handshake",
		Short: "Register fresh keys with the server and print the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := handshake(cmd.Context())
			if err != nil {
				return err
			}
			fp, err := appCtx.Identity.ExchangeFingerprint()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session:            %s\n", res.SessionID)
			fmt.Fprintf(out, "Server fingerprint: %s\n", crypto.Fingerprint(res.ServerKey))
			fmt.Fprintf(out, "Client fingerprint: %s\n", fp)
			return nil
		},
	}
}
