package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sealdm/internal/crypto"
	"sealdm/internal/util/memzero"
)

func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <peer> <message...>",
		Short: "Encrypt and send a message to a peer (id or @handle)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			peer, err := resolvePeer(ctx, args[0])
			if err != nil {
				return err
			}
			key, err := pairwiseKey(peer)
			if err != nil {
				return err
			}
			plaintext := []byte(strings.Join(args[1:], " "))
			ciphertext, nonce, err := crypto.Seal(key, plaintext)
			memzero.Zero(key[:])
			memzero.Zero(plaintext)
			if err != nil {
				return err
			}
			m, err := client.SendMessage(ctx, peer.ID, ciphertext, nonce)
			if err != nil {
				return err
			}
			fmt.Printf("Sent %s at %s.\n", m.ID, m.CreatedAt.Local().Format("15:04:05"))
			return nil
		},
	}
}
