// Package chatlist builds the most-recent-first conversation view from
// stored metadata without ever decrypting message content.
package chatlist
