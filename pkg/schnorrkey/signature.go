package schnorrkey

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

// SignatureSize is the length of a serialized BIP-340 signature (R.x || s).
const SignatureSize = schnorr.SignatureSize

// Signature is an immutable BIP-340 signature.
type Signature struct {
	sig *schnorr.Signature
}

// ParseSignature parses a 64-byte BIP-340 signature. It rejects encodings
// whose R.x is not a field element or whose s is not below the curve order.
func ParseSignature(b []byte) (*Signature, error) {
	if len(b) != SignatureSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSignature, len(b), SignatureSize)
	}
	sig, err := schnorr.ParseSignature(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return &Signature{sig: sig}, nil
}

// Bytes returns a fresh copy of the 64-byte encoding, or nil for a zero
// Signature.
func (s *Signature) Bytes() []byte {
	if s == nil || s.sig == nil {
		return nil
	}
	return s.sig.Serialize()
}

// Verify checks the signature over a 32-byte digest against pub.
func (s *Signature) Verify(digest []byte, pub *PublicKey) bool {
	if pub == nil {
		return false
	}
	return pub.Verify(digest, s)
}
