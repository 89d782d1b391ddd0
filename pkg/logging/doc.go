// Package logging provides a minimal logging facade for schnorrkey.
//
// The Logger interface wraps a subset of log/slog so applications can plug in
// their own handler, or a test double, without schnorrkey depending on a
// particular logging backend.
//
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})
//	key, err := schnorrkey.ParsePrivateKey(secret,
//	    schnorrkey.WithLogger(logging.New(slog.New(handler))))
//
// # Redaction
//
// Secret values are never passed to a Logger. Where an attribute would name a
// secret, Redacted is used instead:
//
//	logger.Debug(ctx, "key parsed", logging.Redacted("secret"))
//	// secret="[redacted]"
//
// PrivateKey and SecretBytes also implement slog.LogValuer and fmt.Formatter
// so that accidentally logging them prints the placeholder.
package logging
