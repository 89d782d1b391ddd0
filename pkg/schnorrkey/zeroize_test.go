package schnorrkey

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-schnorr-go/pkg/logging"
)

func testSecret(v byte) []byte {
	b := make([]byte, SecretKeySize)
	b[0] = 0x42
	b[31] = v
	return b
}

func TestCloseZeroizesScalar(t *testing.T) {
	k, err := ParsePrivateKey(testSecret(1))
	require.NoError(t, err)

	backing := &k.priv.Key
	require.False(t, backing.IsZero())

	require.NoError(t, k.Close())
	require.True(t, backing.IsZero(), "scalar memory must be zero after Close")
	require.Nil(t, k.priv)

	var raw [32]byte
	backing.PutBytes(&raw)
	require.Equal(t, [32]byte{}, raw)
}

func TestScopeExitZeroizes(t *testing.T) {
	var backing *btcec.ModNScalar
	signInScope := func() error {
		k, err := ParsePrivateKey(testSecret(2))
		if err != nil {
			return err
		}
		defer func() { _ = k.Close() }()
		backing = &k.priv.Key

		// Early return through an error path.
		_, err = k.Sign(make([]byte, 7))
		return err
	}

	require.ErrorIs(t, signInScope(), ErrInvalidMessage)
	require.NotNil(t, backing)
	require.True(t, backing.IsZero())
}

func TestTweakZeroizesReceiver(t *testing.T) {
	k, err := ParsePrivateKey(testSecret(3))
	require.NoError(t, err)
	backing := &k.priv.Key

	tweaked, err := k.Tweak(nil)
	require.NoError(t, err)
	defer func() { _ = tweaked.Close() }()

	require.True(t, backing.IsZero())
	require.False(t, tweaked.priv.Key.IsZero())
	require.NotSame(t, backing, &tweaked.priv.Key)
}

func TestTapTweakScalarLeavesInputIntact(t *testing.T) {
	var s btcec.ModNScalar
	s.SetInt(5)
	before := s

	out, err := tapTweakScalar(&s, nil)
	require.NoError(t, err)
	require.True(t, s.Equals(&before))
	require.False(t, out.Equals(&s))
}

func TestHexSecretZeroizesAllBuffers(t *testing.T) {
	const secretHex = "b7e151628aed2a6abf7158809cf4f3c762e7160f38b4da56a784d9045190cfef"

	cases := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "plain", in: secretHex},
		{name: "prefixed", in: "0x" + secretHex},
		{name: "odd length", in: secretHex[:63], wantErr: true},
		{name: "bad digit", in: secretHex[:40] + "zz" + secretHex[42:], wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, err := decodeHexSecret(tc.in)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.Len(t, h.decoded, SecretKeySize)
			}

			// Keep views over the full backing arrays, including the tail
			// past len that a plain ZeroizeBytes(h.decoded) would miss.
			text := h.text[:cap(h.text)]
			decoded := h.decoded[:cap(h.decoded)]
			require.NotEqual(t, make([]byte, len(text)), text)

			h.zeroize()
			require.Equal(t, make([]byte, len(text)), text)
			require.Equal(t, make([]byte, len(decoded)), decoded)
		})
	}
}

func TestZeroizeHelpers(t *testing.T) {
	arr := [32]byte{1, 2, 3}
	zeroizeArray(&arr)
	require.Equal(t, [32]byte{}, arr)

	var s btcec.ModNScalar
	s.SetInt(99)
	zeroizeScalar(&s)
	require.True(t, s.IsZero())
}

func TestSecretsAreRedacted(t *testing.T) {
	secret := testSecret(4)
	k, err := ParsePrivateKey(secret)
	require.NoError(t, err)
	defer func() { _ = k.Close() }()
	exported, err := k.Secret()
	require.NoError(t, err)
	defer func() { _ = exported.Close() }()

	secretHex := fmt.Sprintf("%x", secret)
	for _, verb := range []string{"%v", "%+v", "%s", "%x", "%X", "%#v", "%q"} {
		for _, v := range []any{k, exported} {
			out := fmt.Sprintf(verb, v)
			require.Equal(t, logging.Placeholder(), out, "verb %s", verb)
		}
	}
	require.Contains(t, k.GoString(), logging.Placeholder())
	require.Contains(t, exported.GoString(), logging.Placeholder())
	require.Equal(t, logging.Placeholder(), k.String())
	require.Equal(t, logging.Placeholder(), exported.String())

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("export", "key", k, "secret", exported)
	require.NotContains(t, buf.String(), secretHex)
	require.Contains(t, buf.String(), `"key":"[redacted]"`)
	require.Contains(t, buf.String(), `"secret":"[redacted]"`)
}

type recordingLogger struct {
	msgs []string
}

func (r *recordingLogger) Debug(_ context.Context, msg string, args ...any) {
	r.record(msg, args)
}
func (r *recordingLogger) Info(_ context.Context, msg string, args ...any) { r.record(msg, args) }
func (r *recordingLogger) Warn(_ context.Context, msg string, args ...any) { r.record(msg, args) }
func (r *recordingLogger) Error(_ context.Context, msg string, args ...any) {
	r.record(msg, args)
}
func (r *recordingLogger) With(...any) logging.Logger { return r }

func (r *recordingLogger) record(msg string, args []any) {
	r.msgs = append(r.msgs, fmt.Sprint(append([]any{msg}, args...)...))
}

func TestLifecycleLogging(t *testing.T) {
	rec := &recordingLogger{}
	k, err := ParsePrivateKey(testSecret(5), WithLogger(rec))
	require.NoError(t, err)
	tweaked, err := k.Tweak(nil)
	require.NoError(t, err)
	require.NoError(t, tweaked.Close())

	joined := fmt.Sprint(rec.msgs)
	require.Contains(t, joined, "private key parsed")
	require.Contains(t, joined, "private key tweaked")
	require.Contains(t, joined, "private key closed")
	require.Contains(t, joined, logging.Placeholder())
	require.NotContains(t, joined, fmt.Sprintf("%x", testSecret(5)))
}
