package domain

import (
	interfaces "sealdm/internal/domain/interfaces"
	types "sealdm/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	IdentityID          = types.IdentityID
	ConversationID      = types.ConversationID
	MessageID           = types.MessageID
	Fingerprint         = types.Fingerprint
	X25519Public        = types.X25519Public
	X25519Private       = types.X25519Private
	SymmetricKey        = types.SymmetricKey
	PublicKeyRecord     = types.PublicKeyRecord
	PrivateKeyRecord    = types.PrivateKeyRecord
	KeyPair             = types.KeyPair
	User                = types.User
	Conversation        = types.Conversation
	Message             = types.Message
	BlockRelation       = types.BlockRelation
	BlockStatus         = types.BlockStatus
	ConversationSummary = types.ConversationSummary
	Frame               = types.Frame
)

// Frame type re-exports.
const (
	FrameSend     = types.FrameSend
	FrameSent     = types.FrameSent
	FrameIncoming = types.FrameIncoming
	FrameBlocked  = types.FrameBlocked
	FrameError    = types.FrameError
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	UserStore         = interfaces.UserStore
	ConversationStore = interfaces.ConversationStore
	MessageStore      = interfaces.MessageStore
	BlockStore        = interfaces.BlockStore
	KeyVault          = interfaces.KeyVault
	Resolver          = interfaces.Resolver
	Aggregator        = interfaces.Aggregator
	Directory         = interfaces.Directory
	Authenticator     = interfaces.Authenticator
	PushChannel       = interfaces.PushChannel
	LiveRegistry      = interfaces.LiveRegistry
)
