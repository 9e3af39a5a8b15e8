package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"sealdm/internal/domain"
)

// Client talks to a hub from the client side: REST for enrollment,
// lookup, and the polling fallback, websocket for the live channel.
type Client struct {
	Base       string
	Credential string
	HTTP       *http.Client
	Dialer     *websocket.Dialer
}

// NewClient returns a client for the hub at base.
func NewClient(base string) *Client {
	return &Client{
		Base:   strings.TrimRight(base, "/"),
		HTTP:   http.DefaultClient,
		Dialer: websocket.DefaultDialer,
	}
}

// Enroll registers the user and captures the issued credential, if the
// hub minted one.
func (c *Client) Enroll(ctx context.Context, u domain.User) (domain.User, error) {
	var resp struct {
		User       domain.User `json:"user"`
		Credential string      `json:"credential"`
	}
	if err := c.post(ctx, "/v1/users", u, &resp); err != nil {
		return domain.User{}, err
	}
	if resp.Credential != "" {
		c.Credential = resp.Credential
	}
	return resp.User, nil
}

// LookupUser fetches a user's profile and public key record by id.
func (c *Client) LookupUser(ctx context.Context, id domain.IdentityID) (domain.User, error) {
	var u domain.User
	err := c.getJSON(ctx, "/v1/users/"+url.PathEscape(id.String()), &u)
	return u, err
}

// SearchUser finds an enrolled user by handle.
func (c *Client) SearchUser(ctx context.Context, handle string) (domain.User, error) {
	var u domain.User
	err := c.getJSON(ctx, "/v1/users?handle="+url.QueryEscape(handle), &u)
	return u, err
}

// ListConversations fetches the chat list for the authenticated identity.
func (c *Client) ListConversations(ctx context.Context) ([]domain.ConversationSummary, error) {
	var resp struct {
		Conversations []domain.ConversationSummary `json:"conversations"`
	}
	err := c.getJSON(ctx, "/v1/conversations", &resp)
	return resp.Conversations, err
}

// ResolveConversation returns the conversation with peer, creating it on
// first contact.
func (c *Client) ResolveConversation(ctx context.Context, peer domain.IdentityID) (domain.Conversation, error) {
	var conv domain.Conversation
	err := c.post(ctx, "/v1/conversations", map[string]any{"peer_id": peer}, &conv)
	return conv, err
}

// ListMessages polls a conversation's messages. This read is the
// correctness floor; the live channel only accelerates it.
func (c *Client) ListMessages(ctx context.Context, id domain.ConversationID) ([]domain.Message, error) {
	var resp struct {
		Messages []domain.Message `json:"messages"`
	}
	err := c.getJSON(ctx, "/v1/conversations/"+url.PathEscape(id.String())+"/messages", &resp)
	return resp.Messages, err
}

// DeleteConversation removes a conversation and its messages as a unit.
// Either member may delete.
func (c *Client) DeleteConversation(ctx context.Context, id domain.ConversationID) error {
	return c.del(ctx, "/v1/conversations/"+url.PathEscape(id.String()))
}

// SendMessage submits one ciphertext over REST.
func (c *Client) SendMessage(ctx context.Context, peer domain.IdentityID, ciphertext, nonce []byte) (domain.Message, error) {
	var m domain.Message
	err := c.post(ctx, "/v1/messages", map[string]any{
		"peer_id":    peer,
		"ciphertext": ciphertext,
		"nonce":      nonce,
	}, &m)
	return m, err
}

// Block adds a block edge toward peer.
func (c *Client) Block(ctx context.Context, peer domain.IdentityID) error {
	return c.post(ctx, "/v1/blocks", map[string]any{"blocked_id": peer}, nil)
}

// Unblock removes the edge this identity created toward peer.
func (c *Client) Unblock(ctx context.Context, peer domain.IdentityID) error {
	return c.del(ctx, "/v1/blocks/"+url.PathEscape(peer.String()))
}

// BlockStatus reports the block state with peer.
func (c *Client) BlockStatus(ctx context.Context, peer domain.IdentityID) (domain.BlockStatus, error) {
	var st domain.BlockStatus
	err := c.getJSON(ctx, "/v1/blocks/"+url.PathEscape(peer.String()), &st)
	return st, err
}

// OpenChannel dials the live channel, presenting the credential.
func (c *Client) OpenChannel(ctx context.Context) (*websocket.Conn, error) {
	u, err := url.Parse(c.Base)
	if err != nil {
		return nil, errors.Wrap(err, "parse hub URL")
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = "/v1/ws"
	u.RawQuery = "token=" + url.QueryEscape(c.Credential)

	conn, _, err := c.Dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "dial live channel")
	}
	return conn, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) del(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.Base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.Credential != "" {
		req.Header.Set("Authorization", "Bearer "+c.Credential)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		switch resp.StatusCode {
		case http.StatusNotFound:
			return domain.ErrNotFound
		case http.StatusForbidden:
			return domain.ErrBlocked
		case http.StatusUnauthorized:
			return domain.ErrUnauthorized
		case http.StatusServiceUnavailable:
			return domain.ErrDeliveryFailed
		}
		if apiErr.Error != "" {
			return errors.Errorf("hub %s %s: %s", req.Method, req.URL.Path, apiErr.Error)
		}
		return errors.Errorf("hub %s %s: %s", req.Method, req.URL.Path, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
