package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func blockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block <peer>",
		Short: "Block a peer, or show block status with --status",
		Args:  cobra.ExactArgs(1),
	}
	status := cmd.Flags().Bool("status", false, "show block status instead of blocking")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		peer, err := resolvePeer(ctx, args[0])
		if err != nil {
			return err
		}
		if *status {
			st, err := client.BlockStatus(ctx, peer.ID)
			if err != nil {
				return err
			}
			switch {
			case st.BlockedByMe:
				fmt.Printf("You have blocked @%s.\n", peer.Handle)
			case st.Blocked:
				fmt.Printf("Messaging with @%s is blocked.\n", peer.Handle)
			default:
				fmt.Printf("No block with @%s.\n", peer.Handle)
			}
			return nil
		}
		if err := client.Block(ctx, peer.ID); err != nil {
			return err
		}
		fmt.Printf("Blocked @%s.\n", peer.Handle)
		return nil
	}
	return cmd
}

func unblockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unblock <peer>",
		Short: "Remove your block on a peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			peer, err := resolvePeer(ctx, args[0])
			if err != nil {
				return err
			}
			if err := client.Unblock(ctx, peer.ID); err != nil {
				return err
			}
			fmt.Printf("Unblocked @%s.\n", peer.Handle)
			return nil
		},
	}
}
