// Package directory implements the enrollment surface: identity to
// public-key-record resolution plus handle search for first contact.
package directory
