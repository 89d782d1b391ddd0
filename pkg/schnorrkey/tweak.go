package schnorrkey

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Tweak commits merkleRoot into the key per BIP-341 and returns the tweaked
// key. A nil or empty merkleRoot produces the key-path-only commitment,
// hashing just the x-only public key.
//
// The returned key always has an even-y public key and inherits the
// receiver's configuration. Tweak consumes the receiver: once the merkle root
// has been validated, the receiver is closed whether or not tweaking
// succeeds. An invalid merkle root length leaves the receiver untouched.
func (k *PrivateKey) Tweak(merkleRoot []byte) (*PrivateKey, error) {
	if k == nil || k.priv == nil {
		return nil, ErrKeyClosed
	}
	if len(merkleRoot) != 0 && len(merkleRoot) != chainhash.HashSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidMerkleRoot, len(merkleRoot))
	}
	defer func() { _ = k.Close() }()

	cfg := k.cfg
	tweaked, err := tapTweakScalar(&k.priv.Key, merkleRoot)
	defer zeroizeScalar(&tweaked)
	if err != nil {
		cfg.logger.Warn(context.Background(), "taproot tweak rejected", "error", err)
		return nil, err
	}

	return newPrivateKey(&tweaked, cfg, "tweaked"), nil
}

// tapTweakScalar computes the BIP-341 output secret for secret and
// merkleRoot, normalised so that the output point has even y. secret is not
// modified.
func tapTweakScalar(secret *btcec.ModNScalar, merkleRoot []byte) (btcec.ModNScalar, error) {
	d := *secret
	defer zeroizeScalar(&d)

	var internal btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&d, &internal)
	internal.ToAffine()
	if internal.Y.IsOdd() {
		d.Negate()
	}

	var xonly [32]byte
	internal.X.PutBytes(&xonly)
	// With no merkle root only the x-only key is hashed.
	tweakHash := chainhash.TaggedHash(chainhash.TagTapTweak, xonly[:], merkleRoot)

	var t btcec.ModNScalar
	if overflow := t.SetBytes((*[32]byte)(tweakHash)); overflow != 0 {
		return btcec.ModNScalar{}, fmt.Errorf("%w: tweak hash exceeds group order", ErrInvalidTweak)
	}

	d.Add(&t)
	if d.IsZero() {
		return btcec.ModNScalar{}, fmt.Errorf("%w: tweaked scalar is zero", ErrInvalidTweak)
	}

	var output btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&d, &output)
	output.ToAffine()
	if output.Y.IsOdd() {
		d.Negate()
	}
	return d, nil
}
