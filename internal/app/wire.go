package app

import (
	"sealdm/internal/hub"
	"sealdm/internal/services/chatlist"
	"sealdm/internal/services/directory"
	"sealdm/internal/services/resolve"
	"sealdm/internal/store"
)

// Wire bundles the hub's stores, services, and HTTP surface.
type Wire struct {
	Store     *store.Store
	Registry  *hub.Registry
	Auth      *hub.TokenAuthenticator
	Server    *hub.Server
	Directory *directory.Service
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	cfg = cfg.Defaults()

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	auth := hub.NewTokenAuthenticator([]byte(cfg.Secret))
	registry := hub.NewRegistry()
	resolver := resolve.New(st)
	dir := directory.New(st)

	server := hub.NewServer(hub.ServerConfig{
		Auth:          auth,
		Issuer:        auth,
		Coordinator:   hub.NewCoordinator(resolver, st, st, registry, cfg.WriteTimeout),
		Registry:      registry,
		Directory:     dir,
		Aggregator:    chatlist.New(st, st, st),
		Conversations: st,
		Messages:      st,
		Blocks:        st,
		AuthWindow:    cfg.AuthWindow,
	})

	return &Wire{
		Store:     st,
		Registry:  registry,
		Auth:      auth,
		Server:    server,
		Directory: dir,
	}, nil
}

// Close releases held resources.
func (w *Wire) Close() error { return w.Store.Close() }
