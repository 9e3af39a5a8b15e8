package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sealdm/internal/crypto"
	"sealdm/internal/domain"
	"sealdm/internal/keyring"
)

// enroll <id> <handle> [name]: publish the public key and profile.
func enrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enroll <id> <handle> [name]",
		Short: "Register this device's public key with the hub",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := keyring.EnsureIdentity(vault)
			if err != nil {
				return err
			}
			name := args[1]
			if len(args) == 3 {
				name = args[2]
			}
			u, err := client.Enroll(cmd.Context(), domain.User{
				ID:        domain.IdentityID(args[0]),
				Handle:    args[1],
				Name:      name,
				PublicKey: crypto.ExportPublic(kp.Public),
			})
			if err != nil {
				return err
			}
			if client.Credential != "" {
				if err := saveCredential(client.Credential); err != nil {
					return err
				}
			}
			fmt.Printf("Enrolled as %s (@%s).\n", u.ID, u.Handle)
			return nil
		},
	}
}
