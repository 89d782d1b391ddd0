package schnorrkey

import (
	"runtime"

	"github.com/btcsuite/btcd/btcec/v2"
)

// ZeroizeBytes overwrites the provided slice with zeros and prevents compiler
// dead store elimination using runtime.KeepAlive.
//
// This follows the pattern recommended in golang/go#33325. It cannot undo
// copies the garbage collector or callers made earlier; it only guarantees
// that this particular backing array is cleared.
func ZeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}

// zeroizeArray clears a fixed-size secret buffer in place.
func zeroizeArray(buf *[32]byte) {
	ZeroizeBytes(buf[:])
	runtime.KeepAlive(buf)
}

// zeroizeScalar clears the limbs of a scalar in place.
func zeroizeScalar(s *btcec.ModNScalar) {
	s.Zero()
	runtime.KeepAlive(s)
}
