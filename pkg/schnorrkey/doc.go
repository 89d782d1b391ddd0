// Package schnorrkey provides BIP-340 Schnorr private keys on secp256k1 with
// BIP-341 taproot tweaking and prompt erasure of secret material.
//
// Curve arithmetic and the Schnorr signing primitive come from
// github.com/btcsuite/btcd/btcec/v2; this package adds validated
// construction, ownership rules and zeroization on top.
//
// # Key Operations
//
//   - ParsePrivateKey / ParsePrivateKeyHex: build a key from 32 bytes
//   - GeneratePrivateKey: draw a fresh key
//   - Tweak: apply the taproot commitment, consuming the receiver
//   - Sign: sign a 32-byte digest
//   - Secret: export the raw secret as zeroizing SecretBytes
//
// # Memory Management
//
// Keys must be closed when no longer needed:
//
//	key, err := schnorrkey.ParsePrivateKey(secret)
//	if err != nil {
//	    return err
//	}
//	defer key.Close()
//
//	tweaked, err := key.Tweak(nil) // key is closed from here on
//	if err != nil {
//	    return err
//	}
//	defer tweaked.Close()
//
//	sig, err := tweaked.Sign(digest)
//
// A finalizer zero-fills keys that become unreachable without being closed,
// but explicit Close is required to bound how long the secret stays in memory.
//
// # Deterministic Signing
//
// WithDeterministicNonce fixes the auxiliary randomness to zero so that
// signatures can be compared against published BIP-340 vectors. It reduces
// resistance to fault and side-channel attacks and is meant for tests only.
//
// # Errors
//
// All failures are reported as errors wrapping one of the Err* sentinels and
// can be checked with errors.Is. No input causes a panic.
package schnorrkey
