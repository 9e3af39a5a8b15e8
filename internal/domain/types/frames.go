package types

// Frame type values on the live channel.
const (
	FrameSend     = "send"     // client -> hub: deliver a ciphertext
	FrameSent     = "sent"     // hub -> sender: persisted, carries the message
	FrameIncoming = "incoming" // hub -> recipient: new message push
	FrameBlocked  = "blocked"  // hub -> sender: delivery refused
	FrameError    = "error"    // hub -> sender: send failed
)

// Frame is the JSON envelope exchanged on a live channel. Fields are
// populated per Type; the rest stay empty.
type Frame struct {
	Type       string     `json:"type"`
	PeerID     IdentityID `json:"peer_id,omitempty"`
	Ciphertext []byte     `json:"ciphertext,omitempty"`
	Nonce      []byte     `json:"nonce,omitempty"`
	Message    *Message   `json:"message,omitempty"`
	Reason     string     `json:"reason,omitempty"`
}
