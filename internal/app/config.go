package app

import "time"

// Config holds runtime wiring options for building the hub.
type Config struct {
	// ListenAddr is the hub bind address, e.g. ":8080".
	ListenAddr string
	// DatabasePath locates the SQLite file.
	DatabasePath string
	// Secret keys credential minting and verification.
	Secret string
	// AuthWindow bounds live-channel authentication.
	AuthWindow time.Duration
	// WriteTimeout bounds one persistence operation.
	WriteTimeout time.Duration
	// PollInterval is the suggested client re-read cadence. Polling is
	// the correctness floor; this is an explicit option, not a hidden
	// constant.
	PollInterval time.Duration
}

// Defaults fills zero fields with working values.
func (c Config) Defaults() Config {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "sealdm.db"
	}
	if c.AuthWindow <= 0 {
		c.AuthWindow = 10 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 5 * time.Second
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 3 * time.Second
	}
	return c
}
