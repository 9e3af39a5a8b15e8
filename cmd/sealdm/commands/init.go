package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sealdm/internal/crypto"
	"sealdm/internal/keyring"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate identity keys (no-op if they already exist)",
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := keyring.EnsureIdentity(vault)
			if err != nil {
				return err
			}
			fmt.Printf("Identity keys ready.\nFingerprint: %s\n", crypto.FingerprintPublic(kp.Public))
			return nil
		},
	}
}

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the local public key fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, ok, err := vault.LoadKeyPair()
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no identity keys yet; run init first")
			}
			fmt.Println(crypto.FingerprintPublic(kp.Public))
			return nil
		},
	}
}
