// Package memzero clears sensitive byte slices after use.
package memzero

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
