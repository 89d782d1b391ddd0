package cmd

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coinbase/cb-schnorr-go/pkg/logging"
	"github.com/coinbase/cb-schnorr-go/pkg/schnorrkey"
)

const (
	flagDeterministic = "deterministic"
	flagLogLevel      = "log-level"
)

// NewRootCmd builds the schnorrkey command tree. Each call returns an
// independent tree with its own viper instance, so tests can run commands in
// isolation.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("schnorrkey")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:          "schnorrkey",
		Short:        "BIP-340 Schnorr signing and taproot tweaking for secp256k1 keys",
		SilenceUsage: true,
	}

	root.PersistentFlags().Bool(flagDeterministic, false,
		"Sign without auxiliary randomness (test vectors only; env SCHNORRKEY_DETERMINISTIC)")
	root.PersistentFlags().String(flagLogLevel, "info", "Log level: debug, info, warn, error (env SCHNORRKEY_LOG_LEVEL)")
	_ = v.BindPFlag(flagDeterministic, root.PersistentFlags().Lookup(flagDeterministic))
	_ = v.BindPFlag(flagLogLevel, root.PersistentFlags().Lookup(flagLogLevel))

	root.AddCommand(
		pubkeyCmd(v),
		tweakCmd(v),
		signCmd(v),
		verifyCmd(),
		versionCmd(),
	)
	return root
}

func newLogger(cmd *cobra.Command, v *viper.Viper) logging.Logger {
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logging.ParseLevel(v.GetString(flagLogLevel)),
	})
	return logging.New(slog.New(handler)).With("cmd", cmd.Name())
}

func keyOptions(cmd *cobra.Command, v *viper.Viper) []schnorrkey.Option {
	opts := []schnorrkey.Option{schnorrkey.WithLogger(newLogger(cmd, v))}
	if v.GetBool(flagDeterministic) {
		opts = append(opts, schnorrkey.WithDeterministicNonce())
	}
	return opts
}

// maxSecretInput bounds the stdin line holding the secret: 64 hex digits, an
// optional 0x prefix, surrounding whitespace.
const maxSecretInput = 128

var errSecretInputTooLong = errors.New("secret key input too long")

// readKey reads a hex-encoded secret key from the first line of stdin.
// Secrets are never accepted as arguments or flags so they do not end up in
// shell history or process listings.
func readKey(cmd *cobra.Command, v *viper.Viper) (*schnorrkey.PrivateKey, error) {
	buf := make([]byte, maxSecretInput)
	defer schnorrkey.ZeroizeBytes(buf)
	line, err := readSecretLine(cmd.InOrStdin(), buf)
	if err != nil {
		return nil, fmt.Errorf("read secret key from stdin: %w", err)
	}

	trimmed := bytes.TrimPrefix(bytes.TrimSpace(line), []byte("0x"))
	secret := make([]byte, hex.DecodedLen(len(trimmed)))
	defer schnorrkey.ZeroizeBytes(secret)
	if _, err := hex.Decode(secret, trimmed); err != nil {
		return nil, schnorrkey.ErrInvalidHex
	}
	return schnorrkey.ParsePrivateKey(secret, keyOptions(cmd, v)...)
}

// readSecretLine reads r one byte at a time into buf up to the first newline
// or EOF and returns the line without the newline. Nothing past the newline
// is consumed and no bytes are held outside buf.
func readSecretLine(r io.Reader, buf []byte) ([]byte, error) {
	n := 0
	for {
		if n == len(buf) {
			return nil, errSecretInputTooLong
		}
		m, err := r.Read(buf[n : n+1])
		if m == 1 {
			if buf[n] == '\n' {
				return buf[:n], nil
			}
			n++
		}
		if errors.Is(err, io.EOF) {
			return buf[:n], nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func decodeHexFlag(cmd *cobra.Command, name string) ([]byte, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, schnorrkey.ErrInvalidHex)
	}
	return b, nil
}
