package crypto

import "runtime"

// Wipe zeroes b in place. Best-effort: the Go runtime may already hold
// copies elsewhere.
//
//go:noinline
func Wipe(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
