// Package hub implements the delivery coordinator: the live-connection
// registry, the websocket channel state machine, the send path
// (block check, conversation resolution, persistence, best-effort push),
// and the polling HTTP API that is the correctness floor when no live
// channel exists. Push is an optimization; a recipient who missed a push
// discovers messages by re-reading the conversation.
package hub
