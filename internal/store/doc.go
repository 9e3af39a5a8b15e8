// Package store implements the persistence surface on SQLite: enrolled
// users, canonical conversations, opaque message records, and block
// edges. Conversation uniqueness per unordered pair is enforced by the
// schema, so concurrent first contact cannot duplicate a conversation.
package store
