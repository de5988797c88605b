// Package memzero wipes sensitive byte slices.
package memzero

import "crypto/subtle"

// Zero overwrites each slice with zeros in a constant-time friendly way.
func Zero(bufs ...[]byte) {
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		zero := make([]byte, len(b))
		subtle.ConstantTimeCopy(1, b, zero)
	}
}
