package schnorrkey

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/coinbase/cb-schnorr-go/pkg/logging"
)

// SecretBytes holds an exported copy of a secret key and zero-fills it when
// closed.
//
// SECURITY WARNING: the slice returned by Bytes aliases the protected buffer.
// Callers that copy it elsewhere, or keep it past Close, are responsible for
// erasing those copies themselves.
type SecretBytes struct {
	buf []byte
}

func newSecretBytes(buf []byte) *SecretBytes {
	s := &SecretBytes{buf: buf}
	runtime.SetFinalizer(s, (*SecretBytes).Close)
	return s
}

// Bytes returns the protected buffer, or nil once closed.
func (s *SecretBytes) Bytes() []byte {
	if s == nil {
		return nil
	}
	return s.buf
}

// Len returns the number of secret bytes still held.
func (s *SecretBytes) Len() int {
	if s == nil {
		return 0
	}
	return len(s.buf)
}

// Close zero-fills the buffer. It is safe to call Close multiple times.
func (s *SecretBytes) Close() error {
	if s == nil || s.buf == nil {
		return nil
	}
	ZeroizeBytes(s.buf)
	s.buf = nil
	runtime.SetFinalizer(s, nil)
	return nil
}

// String implements fmt.Stringer without revealing the secret.
func (s *SecretBytes) String() string {
	return logging.Placeholder()
}

// GoString implements fmt.GoStringer without revealing the secret.
func (s *SecretBytes) GoString() string {
	return "schnorrkey.SecretBytes{" + logging.Placeholder() + "}"
}

// Format implements fmt.Formatter so that every verb, including %x, prints
// the placeholder.
func (s *SecretBytes) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, logging.Placeholder())
}

// LogValue implements slog.LogValuer.
func (s *SecretBytes) LogValue() slog.Value {
	return logging.RedactedValue()
}
