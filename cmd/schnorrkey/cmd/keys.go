package cmd

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coinbase/cb-schnorr-go/pkg/schnorrkey"
)

const (
	flagMerkleRoot  = "merkle-root"
	flagPrintSecret = "print-secret"
	flagDigest      = "digest"
	flagPubKey      = "pubkey"
	flagSignature   = "signature"
)

// errVerifyFailed is returned by verify when the signature does not check.
var errVerifyFailed = errors.New("signature verification failed")

func pubkeyCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:     "pubkey",
		Short:   "Print the x-only public key for a secret key read from stdin",
		Example: `echo $SECRET_HEX | schnorrkey pubkey`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := readKey(cmd, v)
			if err != nil {
				return err
			}
			defer func() { _ = key.Close() }()

			pub, err := key.PublicKey()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(pub.SerializeXOnly()))
			return nil
		},
	}
}

func tweakCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tweak",
		Short: "Apply the BIP-341 taproot tweak to a secret key read from stdin",
		Long: `Apply the BIP-341 taproot tweak and print the output (tweaked) x-only public key.
Without --merkle-root the key-path-only commitment is used.`,
		Example: `echo $SECRET_HEX | schnorrkey tweak --merkle-root $ROOT_HEX`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := decodeHexFlag(cmd, flagMerkleRoot)
			if err != nil {
				return err
			}
			key, err := readKey(cmd, v)
			if err != nil {
				return err
			}
			defer func() { _ = key.Close() }()

			tweaked, err := key.Tweak(root)
			if err != nil {
				return err
			}
			defer func() { _ = tweaked.Close() }()

			pub, err := tweaked.PublicKey()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(pub.SerializeXOnly()))

			printSecret, _ := cmd.Flags().GetBool(flagPrintSecret)
			if !printSecret {
				return nil
			}
			secret, err := tweaked.Secret()
			if err != nil {
				return err
			}
			defer func() { _ = secret.Close() }()
			encoded := make([]byte, hex.EncodedLen(secret.Len()))
			defer schnorrkey.ZeroizeBytes(encoded)
			hex.Encode(encoded, secret.Bytes())
			out := cmd.OutOrStdout()
			if _, err := out.Write(encoded); err != nil {
				return err
			}
			_, err = io.WriteString(out, "\n")
			return err
		},
	}
	cmd.Flags().String(flagMerkleRoot, "", "32-byte script tree merkle root, hex")
	cmd.Flags().Bool(flagPrintSecret, false, "Also print the tweaked secret key (hex) on a second line")
	return cmd
}

func signCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sign",
		Short:   "Sign a 32-byte digest with a secret key read from stdin",
		Example: `echo $SECRET_HEX | schnorrkey sign --digest $(sha256sum msg | cut -d' ' -f1)`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			digest, err := decodeHexFlag(cmd, flagDigest)
			if err != nil {
				return err
			}
			key, err := readKey(cmd, v)
			if err != nil {
				return err
			}
			defer func() { _ = key.Close() }()

			sig, err := key.Sign(digest)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(sig.Bytes()))
			return nil
		},
	}
	cmd.Flags().String(flagDigest, "", "32-byte message digest, hex")
	_ = cmd.MarkFlagRequired(flagDigest)
	return cmd
}

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a BIP-340 signature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pubBytes, err := decodeHexFlag(cmd, flagPubKey)
			if err != nil {
				return err
			}
			digest, err := decodeHexFlag(cmd, flagDigest)
			if err != nil {
				return err
			}
			sigBytes, err := decodeHexFlag(cmd, flagSignature)
			if err != nil {
				return err
			}

			pub, err := schnorrkey.ParsePublicKey(pubBytes)
			if err != nil {
				return err
			}
			sig, err := schnorrkey.ParseSignature(sigBytes)
			if err != nil {
				return err
			}
			if len(digest) != schnorrkey.DigestSize {
				return fmt.Errorf("%w: got %d bytes", schnorrkey.ErrInvalidMessage, len(digest))
			}
			if !pub.Verify(digest, sig) {
				return errVerifyFailed
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	cmd.Flags().String(flagPubKey, "", "32-byte x-only public key, hex")
	cmd.Flags().String(flagDigest, "", "32-byte message digest, hex")
	cmd.Flags().String(flagSignature, "", "64-byte signature, hex")
	for _, f := range []string{flagPubKey, flagDigest, flagSignature} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
