package log

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flag names registered by [Config.RegisterFlags].
const (
	FlagLevel  = "log-level"
	FlagFormat = "log-format"
)

// Config holds the logging flag values of a command.
type Config struct {
	Level  string
	Format string
}

// NewConfig returns a [Config] set to info level and text output.
func NewConfig() *Config {
	return &Config{
		Level:  string(LevelInfo),
		Format: string(FormatText),
	}
}

// RegisterFlags adds the logging flags to flags. Commands register them as
// persistent flags so subcommands share them.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, FlagLevel, c.Level,
		fmt.Sprintf("log level, one of: %s", GetAllLevelStrings()))
	flags.StringVar(&c.Format, FlagFormat, c.Format,
		fmt.Sprintf("log format, one of: %s", GetAllFormatStrings()))
}

// RegisterCompletions registers shell completions for the logging flags.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	for _, f := range []struct {
		name   string
		values []string
	}{
		{FlagLevel, GetAllLevelStrings()},
		{FlagFormat, GetAllFormatStrings()},
	} {
		err := cmd.RegisterFlagCompletionFunc(f.name,
			cobra.FixedCompletions(f.values, cobra.ShellCompDirectiveNoFileComp))
		if err != nil {
			return fmt.Errorf("register %s completion: %w", f.name, err)
		}
	}

	return nil
}

// NewLogger returns a logger writing to w at the configured level and
// format. Attributes in attrs are added to every record.
func (c *Config) NewLogger(w io.Writer, attrs ...slog.Attr) (*slog.Logger, error) {
	handler, err := NewHandlerFromStrings(w, c.Level, c.Format)
	if err != nil {
		return nil, err
	}

	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	return slog.New(handler), nil
}
