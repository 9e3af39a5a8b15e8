package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"

	"sealdm/internal/app"
)

var configFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		jww.FATAL.Printf("%+v", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hubd",
		Short: "Delivery hub for end-to-end encrypted direct messages",
		Long: "hubd stores ciphertext, resolves conversations, enforces blocks, " +
			"and pushes new messages to connected recipients. It never holds " +
			"private keys and never reads message content.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	flags := cmd.Flags()
	flags.String("listen", ":8080", "bind address")
	flags.String("db", "sealdm.db", "SQLite database path")
	flags.String("secret", "", "credential signing secret (required)")
	flags.Duration("auth-window", 10*time.Second, "live channel auth window")
	flags.Duration("write-timeout", 5*time.Second, "persistence write timeout")
	flags.Duration("poll-interval", 3*time.Second, "suggested client poll interval")
	flags.StringVarP(&configFile, "config", "c", "", "config file path")

	_ = viper.BindPFlags(flags)
	viper.SetEnvPrefix("sealdm")
	viper.AutomaticEnv()
	return cmd
}

func serve() error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
	}
	if viper.GetString("secret") == "" {
		return errors.New("a credential signing secret is required (--secret or SEALDM_SECRET)")
	}

	jww.SetStdoutThreshold(jww.LevelInfo)

	wire, err := app.NewWire(app.Config{
		ListenAddr:   viper.GetString("listen"),
		DatabasePath: viper.GetString("db"),
		Secret:       viper.GetString("secret"),
		AuthWindow:   viper.GetDuration("auth-window"),
		WriteTimeout: viper.GetDuration("write-timeout"),
		PollInterval: viper.GetDuration("poll-interval"),
	})
	if err != nil {
		return err
	}
	defer wire.Close()

	srv := &http.Server{
		Addr:    viper.GetString("listen"),
		Handler: wire.Server,
	}

	errs := make(chan error, 1)
	go func() {
		jww.INFO.Printf("hub listening on %s", srv.Addr)
		errs <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errs:
		return err
	case sig := <-stop:
		jww.INFO.Printf("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
