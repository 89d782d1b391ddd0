package schnorrkey

import "errors"

var (
	// ErrInvalidSecretKey is returned when the secret is not exactly 32 bytes
	// or its value is outside [1, n-1].
	ErrInvalidSecretKey = errors.New("schnorrkey: invalid secret key")

	// ErrInvalidHex is returned when a hex-encoded secret cannot be decoded.
	// It is deliberately distinct from ErrInvalidPublicKey.
	ErrInvalidHex = errors.New("schnorrkey: invalid hex encoding")

	// ErrInvalidMessage is returned when the digest passed to Sign or Verify
	// is not exactly 32 bytes.
	ErrInvalidMessage = errors.New("schnorrkey: message digest must be 32 bytes")

	// ErrInvalidMerkleRoot is returned when a taproot merkle root is neither
	// nil nor 32 bytes long.
	ErrInvalidMerkleRoot = errors.New("schnorrkey: merkle root must be 32 bytes")

	// ErrInvalidTweak is returned when the TapTweak hash is not a valid scalar
	// or applying it yields the zero scalar.
	ErrInvalidTweak = errors.New("schnorrkey: tweak produced an invalid key")

	// ErrInvalidPublicKey is returned when x-only public key bytes do not
	// describe a point on the curve.
	ErrInvalidPublicKey = errors.New("schnorrkey: invalid public key")

	// ErrInvalidSignature is returned when signature bytes are malformed.
	ErrInvalidSignature = errors.New("schnorrkey: invalid signature")

	// ErrRandomness is returned when the configured randomness source fails.
	ErrRandomness = errors.New("schnorrkey: randomness source failure")

	// ErrKeyClosed is returned by every operation on a key that has been
	// closed, either explicitly or by Tweak.
	ErrKeyClosed = errors.New("schnorrkey: key is closed")
)
