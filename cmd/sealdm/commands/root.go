package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sealdm/internal/hub"
	"sealdm/internal/keyring"
)

var (
	home   string
	hubURL string

	vault  *keyring.File
	client *hub.Client
)

const credentialFile = "credential"

func Execute() error {
	root := &cobra.Command{
		Use:           "sealdm",
		Short:         "End-to-end encrypted direct messages",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".sealdm")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			vault = keyring.NewFile(home)
			client = hub.NewClient(hubURL)
			if raw, err := os.ReadFile(filepath.Join(home, credentialFile)); err == nil {
				client.Credential = strings.TrimSpace(string(raw))
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.sealdm)")
	root.PersistentFlags().StringVar(&hubURL, "hub", "http://127.0.0.1:8080", "hub base URL")

	root.AddCommand(
		initCmd(),
		fingerprintCmd(),
		enrollCmd(),
		chatsCmd(),
		historyCmd(),
		sendCmd(),
		listenCmd(),
		blockCmd(),
		unblockCmd(),
	)
	return root.Execute()
}

func saveCredential(credential string) error {
	return os.WriteFile(filepath.Join(home, credentialFile), []byte(credential+"\n"), 0o600)
}
