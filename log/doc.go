// Package log builds [log/slog] loggers from command-line flags.
//
// Records are written as JSON ([FormatJSON]), as logfmt through the slog
// text handler ([FormatLogfmt]), or for terminals through
// [charm.land/log/v2] ([FormatText]). A [Config] registers the
// --log-level and --log-format flags on a cobra command and turns their
// values into a logger:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	logger, err := cfg.NewLogger(os.Stderr)
package log
