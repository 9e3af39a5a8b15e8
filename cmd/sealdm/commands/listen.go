package commands

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"sealdm/internal/crypto"
	"sealdm/internal/domain"
)

func listenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "Stay connected and print incoming messages as they arrive",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			conn, err := client.OpenChannel(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()
			go func() {
				<-ctx.Done()
				conn.Close()
			}()

			fmt.Println("Listening. Ctrl-C to stop.")

			// Pairwise keys and handles, cached per sender.
			keys := map[domain.IdentityID]domain.SymmetricKey{}
			handles := map[domain.IdentityID]string{}

			for {
				var f domain.Frame
				if err := conn.ReadJSON(&f); err != nil {
					if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
						return nil
					}
					return err
				}
				if f.Type != domain.FrameIncoming || f.Message == nil {
					continue
				}
				sender := f.Message.SenderID
				key, ok := keys[sender]
				if !ok {
					peer, err := resolvePeer(ctx, sender.String())
					if err != nil {
						fmt.Printf("message from %s: lookup failed: %v\n", sender, err)
						continue
					}
					key, err = pairwiseKey(peer)
					if err != nil {
						fmt.Printf("message from %s: %v\n", sender, err)
						continue
					}
					keys[sender] = key
					handles[sender] = peer.Handle
				}
				plaintext, err := crypto.Open(key, f.Message.Ciphertext, f.Message.Nonce)
				if err != nil {
					fmt.Printf("message from @%s: <undecryptable: %v>\n", handles[sender], err)
					continue
				}
				fmt.Printf("[%s] @%s: %s\n",
					f.Message.CreatedAt.Local().Format("15:04:05"), handles[sender], plaintext)
			}
		},
	}
}
