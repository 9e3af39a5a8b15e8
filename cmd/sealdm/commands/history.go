package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sealdm/internal/crypto"
	"sealdm/internal/util/memzero"
)

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <peer>",
		Short: "Fetch and decrypt the conversation with a peer",
		Args:  cobra.ExactArgs(1),
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
			defer memzero.Zero(key[:])

			conv, err := client.ResolveConversation(ctx, peer.ID)
			if err != nil {
				return err
			}
			msgs, err := client.ListMessages(ctx, conv.ID)
			if err != nil {
				return err
			}
			for _, m := range msgs {
				who := "@" + peer.Handle
				if m.SenderID != peer.ID {
					who = "you"
				}
				plaintext, err := crypto.Open(key, m.Ciphertext, m.Nonce)
				if err != nil {
					fmt.Printf("[%s] %s: <undecryptable: %v>\n",
						m.CreatedAt.Local().Format("15:04:05"), who, err)
					continue
				}
				fmt.Printf("[%s] %s: %s\n",
					m.CreatedAt.Local().Format("15:04:05"), who, plaintext)
			}
			return nil
		},
	}
}
