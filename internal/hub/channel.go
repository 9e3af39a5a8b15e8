package hub

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"sealdm/internal/domain"
)

// Channel states. A channel opens in stateAuthenticating, becomes
// stateConnected once its credential checks out and it is registered, and
// ends in stateClosed. Only a Connected channel accepts sends or pushes.
const (
	stateAuthenticating = iota
	stateConnected
	stateClosed
)

const pushWriteTimeout = 10 * time.Second

// Channel is one live websocket connection. Writes are serialized through
// a mutex; the read loop runs on the serving goroutine.
type Channel struct {
	conn *websocket.Conn

	mu       sync.Mutex
	state    int
	identity domain.IdentityID
}

func newChannel(conn *websocket.Conn) *Channel {
	return &Channel{conn: conn, state: stateAuthenticating}
}

// connect transitions to Connected for id. It fails on a channel that was
// closed while authenticating.
func (c *Channel) connect(id domain.IdentityID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != stateAuthenticating {
		return errors.New("channel is not authenticating")
	}
	c.state = stateConnected
	c.identity = id
	return nil
}

// Identity returns the authenticated identity, empty until connected.
func (c *Channel) Identity() domain.IdentityID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

// Push delivers one persisted message frame to the recipient.
func (c *Channel) Push(m domain.Message) error {
	return c.writeFrame(domain.Frame{Type: domain.FrameIncoming, Message: &m})
}

// writeFrame sends a frame with a bounded write deadline.
func (c *Channel) writeFrame(f domain.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != stateConnected {
		return errors.New("channel is not connected")
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(pushWriteTimeout))
	if err := c.conn.WriteJSON(f); err != nil {
		return errors.Wrap(err, "write frame")
	}
	return nil
}

// Close ends the channel with a close frame carrying reason. Safe to call
// from any state and more than once.
func (c *Channel) Close(reason string) error {
	c.mu.Lock()
	if c.state == stateClosed {
		c.mu.Unlock()
		return nil
	}
	c.state = stateClosed
	c.mu.Unlock()

	code := websocket.CloseNormalClosure
	if reason == closeReasonUnauthorized {
		code = websocket.ClosePolicyViolation
	}
	deadline := time.Now().Add(time.Second)
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason), deadline)
	return c.conn.Close()
}

const (
	closeReasonUnauthorized = "unauthorized"
	closeReasonReplaced     = "replaced"
)

var _ domain.PushChannel = (*Channel)(nil)
