package schnorrkey

import (
	"crypto/rand"
	"io"

	"github.com/coinbase/cb-schnorr-go/pkg/logging"
)

// Option configures a PrivateKey at construction. The resulting
// configuration is immutable for the lifetime of the key and is carried over
// unchanged by Tweak.
type Option func(*config)

type config struct {
	// deterministic disables auxiliary randomness when signing.
	deterministic bool

	// rand supplies auxiliary signing randomness and key generation entropy.
	rand io.Reader

	logger logging.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		rand:   rand.Reader,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithDeterministicNonce makes Sign derive the nonce from the secret and the
// message alone, using 32 zero bytes in place of auxiliary randomness.
//
// SECURITY WARNING: deterministic nonces weaken resistance to fault injection
// and some side-channel attacks. This option exists to reproduce published
// test vectors and must not be used for production signing.
func WithDeterministicNonce() Option {
	return func(c *config) {
		c.deterministic = true
	}
}

// WithRandReader replaces crypto/rand.Reader as the source of auxiliary
// signing randomness and of GeneratePrivateKey entropy. A nil reader is
// ignored.
func WithRandReader(r io.Reader) Option {
	return func(c *config) {
		if r != nil {
			c.rand = r
		}
	}
}

// WithLogger attaches a logger for key lifecycle events. Secret material is
// never logged. A nil logger is ignored.
func WithLogger(l logging.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
