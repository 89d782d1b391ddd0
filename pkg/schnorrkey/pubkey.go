package schnorrkey

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

// PublicKeySize is the length of a BIP-340 x-only public key.
const PublicKeySize = schnorr.PubKeyBytesLen

// PublicKey is a secp256k1 public key as used by BIP-340. It carries the
// full point so that parity can be inspected, but serializes to x-only form.
type PublicKey struct {
	key *btcec.PublicKey
}

// ParsePublicKey parses a 32-byte x-only public key. The even-y lift of the
// x-coordinate is returned, per BIP-340.
func ParsePublicKey(xonly []byte) (*PublicKey, error) {
	if len(xonly) != PublicKeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPublicKey, len(xonly), PublicKeySize)
	}
	pub, err := schnorr.ParsePubKey(xonly)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return &PublicKey{key: pub}, nil
}

// SerializeXOnly returns the 32-byte x-coordinate encoding.
func (p *PublicKey) SerializeXOnly() []byte {
	if p == nil || p.key == nil {
		return nil
	}
	return schnorr.SerializePubKey(p.key)
}

// SerializeCompressed returns the 33-byte SEC1 compressed encoding, whose
// prefix records the parity of y.
func (p *PublicKey) SerializeCompressed() []byte {
	if p == nil || p.key == nil {
		return nil
	}
	return p.key.SerializeCompressed()
}

// HasEvenY reports whether the point's y-coordinate is even. It is false for
// a zero PublicKey.
func (p *PublicKey) HasEvenY() bool {
	if p == nil || p.key == nil {
		return false
	}
	var point btcec.JacobianPoint
	p.key.AsJacobian(&point)
	point.ToAffine()
	return !point.Y.IsOdd()
}

// IsEqual reports whether both keys describe the same point. A nil or zero
// PublicKey is not equal to anything.
func (p *PublicKey) IsEqual(other *PublicKey) bool {
	if p == nil || other == nil || p.key == nil || other.key == nil {
		return false
	}
	return p.key.IsEqual(other.key)
}

// Verify checks a BIP-340 signature over a 32-byte digest.
func (p *PublicKey) Verify(digest []byte, sig *Signature) bool {
	if p == nil || p.key == nil || sig == nil || sig.sig == nil || len(digest) != DigestSize {
		return false
	}
	return sig.sig.Verify(digest, p.key)
}

// BTCEC returns the underlying btcec public key for interoperability with
// other btcsuite packages.
func (p *PublicKey) BTCEC() *btcec.PublicKey {
	if p == nil {
		return nil
	}
	return p.key
}
