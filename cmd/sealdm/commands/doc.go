// Package commands defines the sealdm CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init         Generate the local identity keys
//   - fingerprint  Print the local public key fingerprint
//   - enroll       Publish the public key and profile to a hub
//   - chats        List conversations, most recent first
//   - history      Fetch and decrypt a conversation
//   - send         Encrypt and send a message
//   - listen       Stay connected and print incoming messages
//   - block        Block a peer, or show block status
//   - unblock      Remove a block
//
// # Implementation
//
// The root command opens the key vault and builds a hub client before any
// subcommand runs, loading the saved credential so authenticated calls and
// the live channel work without re-enrolling. Plaintext exists only on this
// side: send derives the pairwise key locally and ships ciphertext, and
// history and listen decrypt locally on the way in.
package commands
