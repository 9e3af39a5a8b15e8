package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func chatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chats",
		Short: "List conversations, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := client.ListConversations(cmd.Context())
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Println("No conversations yet.")
				return nil
			}
			for _, s := range summaries {
				preview := "No messages yet"
				if s.HasMessages {
					// The hub never sees plaintext, so the list shows a
					// fixed placeholder instead of a real preview.
					preview = "Encrypted message"
					if s.LastSenderID != s.Peer.ID {
						preview = "You: " + preview
					}
				}
				fmt.Printf("%s  @%-16s %s  (%s)\n",
					s.LastActivity.Local().Format("2006-01-02 15:04"),
					s.Peer.Handle, preview, s.ConversationID)
			}
			return nil
		},
	}
}
