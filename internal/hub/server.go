package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"

	"sealdm/internal/domain"
)

// DefaultAuthWindow bounds how long a fresh channel may take to prove its
// identity before it is closed as unauthorized.
const DefaultAuthWindow = 10 * time.Second

const maxFrameBytes = 1 << 20

// TokenIssuer mints credentials at enrollment. Optional: a deployment
// with an external identity provider leaves it nil and the provider's
// tokens are verified by the Authenticator instead.
type TokenIssuer interface {
	Issue(id domain.IdentityID) string
}

// Server exposes the live channel endpoint and the polling/read API over
// one http.Handler.
type Server struct {
	auth        domain.Authenticator
	issuer      TokenIssuer
	coordinator *Coordinator
	registry    domain.LiveRegistry
	directory   domain.Directory
	aggregator  domain.Aggregator
	convs       domain.ConversationStore
	messages    domain.MessageStore
	blocks      domain.BlockStore
	authWindow  time.Duration

	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// ServerConfig collects the server's collaborators.
type ServerConfig struct {
	Auth          domain.Authenticator
	Issuer        TokenIssuer
	Coordinator   *Coordinator
	Registry      domain.LiveRegistry
	Directory     domain.Directory
	Aggregator    domain.Aggregator
	Conversations domain.ConversationStore
	Messages      domain.MessageStore
	Blocks        domain.BlockStore
	// AuthWindow bounds channel authentication; zero means DefaultAuthWindow.
	AuthWindow time.Duration
}

// NewServer builds the hub's HTTP surface.
func NewServer(cfg ServerConfig) *Server {
	s := &Server{
		auth:        cfg.Auth,
		issuer:      cfg.Issuer,
		coordinator: cfg.Coordinator,
		registry:    cfg.Registry,
		directory:   cfg.Directory,
		aggregator:  cfg.Aggregator,
		convs:       cfg.Conversations,
		messages:    cfg.Messages,
		blocks:      cfg.Blocks,
		authWindow:  cfg.AuthWindow,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	if s.authWindow <= 0 {
		s.authWindow = DefaultAuthWindow
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/users", s.handleEnroll)
	mux.HandleFunc("GET /v1/users/{id}", s.handleLookupUser)
	mux.HandleFunc("GET /v1/users", s.handleSearchUser)
	mux.HandleFunc("GET /v1/conversations", s.withIdentity(s.handleListConversations))
	mux.HandleFunc("POST /v1/conversations", s.withIdentity(s.handleResolveConversation))
	mux.HandleFunc("DELETE /v1/conversations/{id}", s.withIdentity(s.handleDeleteConversation))
	mux.HandleFunc("GET /v1/conversations/{id}/messages", s.withIdentity(s.handleListMessages))
	mux.HandleFunc("POST /v1/messages", s.withIdentity(s.handleSendMessage))
	mux.HandleFunc("POST /v1/blocks", s.withIdentity(s.handleAddBlock))
	mux.HandleFunc("DELETE /v1/blocks/{id}", s.withIdentity(s.handleRemoveBlock))
	mux.HandleFunc("GET /v1/blocks/{id}", s.withIdentity(s.handleBlockStatus))
	mux.HandleFunc("GET /v1/ws", s.handleChannel)
	s.mux = mux
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ---------- live channel ----------

func (s *Server) handleChannel(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		return
	}
	conn.SetReadLimit(maxFrameBytes)
	ch := newChannel(conn)

	ctx, cancel := context.WithTimeout(r.Context(), s.authWindow)
	id, err := s.auth.Verify(ctx, r.URL.Query().Get("token"))
	cancel()
	if err != nil {
		jww.INFO.Printf("channel rejected: %v", err)
		_ = ch.Close(closeReasonUnauthorized)
		return
	}
	if err := ch.connect(id); err != nil {
		_ = ch.Close(closeReasonUnauthorized)
		return
	}

	if displaced := s.registry.Register(id, ch); displaced != nil {
		// One channel per identity: the older connection loses.
		_ = displaced.Close(closeReasonReplaced)
	}
	jww.INFO.Printf("channel connected: %s", id)

	defer func() {
		s.registry.Remove(id, ch)
		_ = ch.Close("")
		jww.INFO.Printf("channel closed: %s", id)
	}()

	for {
		var f domain.Frame
		if err := conn.ReadJSON(&f); err != nil {
			return
		}
		switch f.Type {
		case domain.FrameSend:
			s.handleChannelSend(context.Background(), ch, id, f)
		default:
			_ = ch.writeFrame(domain.Frame{Type: domain.FrameError, Reason: "unknown frame type"})
		}
	}
}

func (s *Server) handleChannelSend(ctx context.Context, ch *Channel, sender domain.IdentityID, f domain.Frame) {
	m, err := s.coordinator.Send(ctx, sender, f.PeerID, f.Ciphertext, f.Nonce)
	switch {
	case errors.Is(err, domain.ErrBlocked):
		_ = ch.writeFrame(domain.Frame{Type: domain.FrameBlocked})
	case err != nil:
		jww.ERROR.Printf("send from %s failed: %v", sender, err)
		_ = ch.writeFrame(domain.Frame{Type: domain.FrameError, Reason: "delivery failed"})
	default:
		_ = ch.writeFrame(domain.Frame{Type: domain.FrameSent, Message: &m})
	}
}

// ---------- REST: enrollment and lookup ----------

type enrollRequest struct {
	ID        domain.IdentityID      `json:"id"`
	Handle    string                 `json:"handle"`
	Name      string                 `json:"name"`
	PublicKey domain.PublicKeyRecord `json:"public_key"`
}

type enrollResponse struct {
	User       domain.User `json:"user"`
	Credential string      `json:"credential,omitempty"`
}

func (s *Server) handleEnroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid body")
		return
	}
	u := domain.User{ID: req.ID, Handle: req.Handle, Name: req.Name, PublicKey: req.PublicKey}
	if err := s.directory.Enroll(r.Context(), u); err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp := enrollResponse{User: u}
	if s.issuer != nil {
		resp.Credential = s.issuer.Issue(u.ID)
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLookupUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.directory.Lookup(r.Context(), domain.IdentityID(r.PathValue("id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleSearchUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.directory.Search(r.Context(), r.URL.Query().Get("handle"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// ---------- REST: conversations and messages ----------

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request, me domain.IdentityID) {
	list, err := s.aggregator.ListConversations(r.Context(), me)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"conversations": list})
}

func (s *Server) handleResolveConversation(w http.ResponseWriter, r *http.Request, me domain.IdentityID) {
	var req struct {
		PeerID domain.IdentityID `json:"peer_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PeerID == "" {
		httpError(w, http.StatusBadRequest, "peer_id is required")
		return
	}
	conv, err := s.coordinator.resolver.Resolve(r.Context(), me, req.PeerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request, me domain.IdentityID) {
	conv, err := s.memberConversation(r, me)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.convs.DeleteConversation(r.Context(), conv.ID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request, me domain.IdentityID) {
	conv, err := s.memberConversation(r, me)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	msgs, err := s.messages.ListMessages(r.Context(), conv.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request, me domain.IdentityID) {
	var req struct {
		PeerID     domain.IdentityID `json:"peer_id"`
		Ciphertext []byte            `json:"ciphertext"`
		Nonce      []byte            `json:"nonce"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid body")
		return
	}
	m, err := s.coordinator.Send(r.Context(), me, req.PeerID, req.Ciphertext, req.Nonce)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// memberConversation loads the conversation in the path and checks the
// caller belongs to it. Non-members get ErrNotFound, not a hint that the
// conversation exists.
func (s *Server) memberConversation(r *http.Request, me domain.IdentityID) (domain.Conversation, error) {
	conv, err := s.convs.GetConversation(r.Context(), domain.ConversationID(r.PathValue("id")))
	if err != nil {
		return domain.Conversation{}, err
	}
	if !conv.Has(me) {
		return domain.Conversation{}, domain.ErrNotFound
	}
	return conv, nil
}

// ---------- REST: blocks ----------

func (s *Server) handleAddBlock(w http.ResponseWriter, r *http.Request, me domain.IdentityID) {
	var req struct {
		BlockedID domain.IdentityID `json:"blocked_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BlockedID == "" {
		httpError(w, http.StatusBadRequest, "blocked_id is required")
		return
	}
	if err := s.blocks.AddBlock(r.Context(), me, req.BlockedID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveBlock(w http.ResponseWriter, r *http.Request, me domain.IdentityID) {
	if err := s.blocks.RemoveBlock(r.Context(), me, domain.IdentityID(r.PathValue("id"))); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBlockStatus(w http.ResponseWriter, r *http.Request, me domain.IdentityID) {
	st, err := s.blocks.BlockStatus(r.Context(), me, domain.IdentityID(r.PathValue("id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// ---------- helpers ----------

type identityHandler func(http.ResponseWriter, *http.Request, domain.IdentityID)

// withIdentity authenticates the request and hands the verified identity
// to the wrapped handler.
func (s *Server) withIdentity(h identityHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := s.auth.Verify(r.Context(), bearerToken(r))
		if err != nil {
			httpError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		h(w, r, id)
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		httpError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrBlocked):
		httpError(w, http.StatusForbidden, "blocked")
	case errors.Is(err, domain.ErrUnauthorized):
		httpError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrDeliveryFailed):
		jww.ERROR.Printf("delivery failed: %v", err)
		httpError(w, http.StatusServiceUnavailable, "delivery failed")
	default:
		httpError(w, http.StatusBadRequest, err.Error())
	}
}
