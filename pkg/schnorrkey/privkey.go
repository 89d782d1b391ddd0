package schnorrkey

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"

	"github.com/coinbase/cb-schnorr-go/pkg/logging"
)

const (
	// SecretKeySize is the length of a serialized secret key.
	SecretKeySize = 32

	// DigestSize is the length of the pre-hashed message accepted by Sign.
	DigestSize = 32

	// maxGenerateAttempts bounds rejection sampling in GeneratePrivateKey.
	// A uniformly random 32-byte string falls outside [1, n-1] with
	// probability below 2^-127.
	maxGenerateAttempts = 8
)

// PrivateKey is a BIP-340 Schnorr secret key on secp256k1.
//
// SECURITY WARNING: a PrivateKey owns secret material.
//   - Call Close (typically via defer) when the key is no longer needed; the
//     scalar is zero-filled exactly once. A finalizer is set as a safety net.
//   - Tweak consumes its receiver: the original key is closed and only the
//     returned key remains usable.
//   - Do not share a key between goroutines if any of them may call Close or
//     Tweak. Sign and PublicKey do not modify the key.
//
// Every method on a closed key returns ErrKeyClosed.
type PrivateKey struct {
	// priv is nil once the key has been closed.
	priv *btcec.PrivateKey
	cfg  config
}

// ParsePrivateKey builds a key from exactly 32 big-endian bytes whose value
// lies in [1, n-1], where n is the secp256k1 group order. The input slice is
// not retained or modified.
func ParsePrivateKey(secret []byte, opts ...Option) (*PrivateKey, error) {
	if len(secret) != SecretKeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSecretKey, len(secret), SecretKeySize)
	}

	var scalar btcec.ModNScalar
	defer zeroizeScalar(&scalar)
	if overflow := scalar.SetByteSlice(secret); overflow || scalar.IsZero() {
		return nil, fmt.Errorf("%w: value outside [1, n-1]", ErrInvalidSecretKey)
	}

	return newPrivateKey(&scalar, newConfig(opts), "parsed"), nil
}

// ParsePrivateKeyHex decodes a hex string, with or without a 0x prefix, and
// applies the same rules as ParsePrivateKey. Decoding failures are reported
// as ErrInvalidHex; the intermediate buffers are zeroized before returning.
func ParsePrivateKeyHex(s string, opts ...Option) (*PrivateKey, error) {
	h, err := decodeHexSecret(s)
	defer h.zeroize()
	if err != nil {
		// The decoder error can quote input characters, so it is not wrapped.
		return nil, ErrInvalidHex
	}
	return ParsePrivateKey(h.decoded, opts...)
}

// hexSecret holds the scratch buffers used while decoding a hex secret: a
// copy of the hex text and the decoded bytes.
type hexSecret struct {
	text    []byte
	decoded []byte
}

func decodeHexSecret(s string) (hexSecret, error) {
	h := hexSecret{text: []byte(strings.TrimPrefix(s, "0x"))}
	h.decoded = make([]byte, hex.DecodedLen(len(h.text)))
	n, err := hex.Decode(h.decoded, h.text)
	h.decoded = h.decoded[:n]
	return h, err
}

// zeroize clears both buffers up to their capacity.
func (h hexSecret) zeroize() {
	ZeroizeBytes(h.text[:cap(h.text)])
	ZeroizeBytes(h.decoded[:cap(h.decoded)])
}

// GeneratePrivateKey draws a new key from the configured randomness source
// (crypto/rand.Reader unless WithRandReader is given).
func GeneratePrivateKey(opts ...Option) (*PrivateKey, error) {
	cfg := newConfig(opts)

	var buf [SecretKeySize]byte
	defer zeroizeArray(&buf)
	var scalar btcec.ModNScalar
	defer zeroizeScalar(&scalar)

	for i := 0; i < maxGenerateAttempts; i++ {
		if _, err := io.ReadFull(cfg.rand, buf[:]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRandomness, err)
		}
		if overflow := scalar.SetBytes(&buf); overflow == 0 && !scalar.IsZero() {
			return newPrivateKey(&scalar, cfg, "generated"), nil
		}
	}
	return nil, fmt.Errorf("%w: no valid scalar after %d attempts", ErrRandomness, maxGenerateAttempts)
}

// newPrivateKey copies scalar into a new key. The caller keeps ownership of
// scalar and must zeroize it.
func newPrivateKey(scalar *btcec.ModNScalar, cfg config, origin string) *PrivateKey {
	k := &PrivateKey{
		priv: &btcec.PrivateKey{Key: *scalar},
		cfg:  cfg,
	}
	runtime.SetFinalizer(k, (*PrivateKey).Close)
	cfg.logger.Debug(context.Background(), "private key "+origin,
		logging.Redacted("secret"),
		"deterministic", cfg.deterministic,
	)
	return k
}

// Close zero-fills the secret scalar. It is safe to call Close multiple
// times; only the first call has an effect.
func (k *PrivateKey) Close() error {
	if k == nil || k.priv == nil {
		return nil
	}
	zeroizeScalar(&k.priv.Key)
	k.priv = nil
	runtime.SetFinalizer(k, nil)
	k.cfg.logger.Debug(context.Background(), "private key closed")
	return nil
}

// Deterministic reports whether the key was constructed with
// WithDeterministicNonce.
func (k *PrivateKey) Deterministic() bool {
	return k != nil && k.cfg.deterministic
}

// PublicKey derives the public key. The result is computed on each call.
func (k *PrivateKey) PublicKey() (*PublicKey, error) {
	if k == nil || k.priv == nil {
		return nil, ErrKeyClosed
	}
	pub := k.priv.PubKey()
	runtime.KeepAlive(k)
	return &PublicKey{key: pub}, nil
}

// Sign produces a BIP-340 signature over a 32-byte digest. The digest must
// already be the output of a hash function; Sign never hashes its input.
//
// Unless the key was built WithDeterministicNonce, 32 bytes of auxiliary
// randomness are drawn per call, so repeated calls return different (equally
// valid) signatures. The engine verifies each signature before returning it.
func (k *PrivateKey) Sign(digest []byte) (*Signature, error) {
	if k == nil || k.priv == nil {
		return nil, ErrKeyClosed
	}
	if len(digest) != DigestSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidMessage, len(digest))
	}

	var aux [32]byte
	defer zeroizeArray(&aux)
	if !k.cfg.deterministic {
		if _, err := io.ReadFull(k.cfg.rand, aux[:]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRandomness, err)
		}
	}

	sig, err := schnorr.Sign(k.priv, digest, schnorr.CustomNonce(aux))
	runtime.KeepAlive(k)
	if err != nil {
		k.cfg.logger.Error(context.Background(), "schnorr signing failed", "error", err)
		return nil, fmt.Errorf("schnorrkey: sign: %w", err)
	}
	return &Signature{sig: sig}, nil
}

// Secret exports the raw 32-byte secret as an independent buffer that is
// zero-filled when the returned SecretBytes is closed.
//
// SECURITY WARNING: callers that persist or transmit the exported bytes must
// give every copy equivalent protection.
func (k *PrivateKey) Secret() (*SecretBytes, error) {
	if k == nil || k.priv == nil {
		return nil, ErrKeyClosed
	}
	out := make([]byte, SecretKeySize)
	k.priv.Key.PutBytesUnchecked(out)
	runtime.KeepAlive(k)
	return newSecretBytes(out), nil
}

// String implements fmt.Stringer without revealing the secret.
func (k *PrivateKey) String() string {
	return logging.Placeholder()
}

// GoString implements fmt.GoStringer without revealing the secret.
func (k *PrivateKey) GoString() string {
	return "schnorrkey.PrivateKey{" + logging.Placeholder() + "}"
}

// Format implements fmt.Formatter so that every verb prints the placeholder.
func (k *PrivateKey) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, logging.Placeholder())
}

// LogValue implements slog.LogValuer.
func (k *PrivateKey) LogValue() slog.Value {
	return logging.RedactedValue()
}
