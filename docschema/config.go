package docschema

import (
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Output formats.
const (
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatSchema = "schema"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	return validate
}

// Flags holds CLI flag names for extraction configuration, allowing callers
// to customize flag names while keeping sensible defaults.
type Flags struct {
	Output      string
	Format      string
	Indent      string
	Name        string
	All         string
	Expect      string
	Extensions  string
	Concurrency string
	Check       string
	ConfigFile  string
}

// Config holds CLI flag values for extraction configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Values from a TOML file are merged with
// [Config.LoadFile]. Use [Config.NewExtractor] to create an [Extractor].
type Config struct {
	Flags       Flags    `toml:"-"`
	Output      string   `toml:"output"`
	Format      string   `toml:"format"      validate:"oneof=json yaml schema"`
	Name        string   `toml:"-"`
	ConfigFile  string   `toml:"-"`
	Expect      []string `toml:"expect"      validate:"dive,required"`
	Extensions  []string `toml:"extensions"  validate:"dive,startswith=."`
	Indent      int      `toml:"indent"      validate:"min=0,max=8"`
	Concurrency int      `toml:"concurrency" validate:"min=0"`
	All         bool     `toml:"all"`
	Check       bool     `toml:"check"`
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Output:      "output",
		Format:      "format",
		Indent:      "indent",
		Name:        "name",
		All:         "all",
		Expect:      "expect",
		Extensions:  "ext",
		Concurrency: "concurrency",
		Check:       "check",
		ConfigFile:  "config",
	}

	return &Config{Flags: f}
}

// RegisterFlags adds extraction flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "-",
		"output file path (- for stdout)")
	flags.StringVarP(&c.Format, c.Flags.Format, "f", FormatJSON,
		"output format: json, yaml or schema")
	flags.IntVar(&c.Indent, c.Flags.Indent, 2,
		"JSON indentation spaces")
	flags.StringVar(&c.Name, c.Flags.Name, "",
		"document name when the comment does not declare one (default: file name)")
	flags.BoolVarP(&c.All, c.Flags.All, "a", false,
		"extract every comment block of a file instead of the first")
	flags.StringSliceVarP(&c.Expect, c.Flags.Expect, "e", nil,
		"expected document names; implies --all")
	flags.StringSliceVar(&c.Extensions, c.Flags.Extensions, []string{".js"},
		"source file extensions read from directories")
	flags.IntVarP(&c.Concurrency, c.Flags.Concurrency, "j", 0,
		"files processed in parallel per directory (0 for GOMAXPROCS)")
	flags.BoolVar(&c.Check, c.Flags.Check, false,
		"compare output with the existing --output file and fail on differences")
	flags.StringVarP(&c.ConfigFile, c.Flags.ConfigFile, "c", "",
		"TOML config file")
}

// RegisterCompletions registers shell completions for extraction flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions([]string{FormatJSON, FormatYAML, FormatSchema},
			cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.ConfigFile,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.ConfigFile, err)
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{
		c.Flags.Indent, c.Flags.Name, c.Flags.Expect, c.Flags.Extensions, c.Flags.Concurrency,
	} {
		regErr := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if regErr != nil {
			return fmt.Errorf("registering %s completion: %w", flag, regErr)
		}
	}

	return nil
}

// LoadFile merges settings from the TOML file named by ConfigFile. A key
// set in the file applies only when its flag was not set explicitly on
// flags. It does nothing when ConfigFile is empty.
func (c *Config) LoadFile(flags *pflag.FlagSet) error {
	if c.ConfigFile == "" {
		return nil
	}

	var fc Config

	md, err := toml.DecodeFile(c.ConfigFile, &fc)
	if err != nil {
		return fmt.Errorf("%w: config %s: %w", ErrReadInput, c.ConfigFile, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: config %s: unknown key %q", ErrInvalidOption, c.ConfigFile, undecoded[0].String())
	}

	apply := func(key, flag string, set func()) {
		if md.IsDefined(key) && (flags == nil || !flags.Changed(flag)) {
			set()
		}
	}

	apply("output", c.Flags.Output, func() { c.Output = fc.Output })
	apply("format", c.Flags.Format, func() { c.Format = fc.Format })
	apply("indent", c.Flags.Indent, func() { c.Indent = fc.Indent })
	apply("all", c.Flags.All, func() { c.All = fc.All })
	apply("expect", c.Flags.Expect, func() { c.Expect = fc.Expect })
	apply("extensions", c.Flags.Extensions, func() { c.Extensions = fc.Extensions })
	apply("concurrency", c.Flags.Concurrency, func() { c.Concurrency = fc.Concurrency })
	apply("check", c.Flags.Check, func() { c.Check = fc.Check })

	return nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	c.Format = strings.ToLower(c.Format)

	err := getValidator().Struct(c)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}

	return nil
}

// NewExtractor creates an [Extractor] using this [Config].
func (c *Config) NewExtractor(opts ...Option) (*Extractor, error) {
	err := c.Validate()
	if err != nil {
		return nil, err
	}

	if len(c.Extensions) > 0 {
		opts = append(opts, WithExtensions(c.Extensions...))
	}

	if c.Concurrency > 0 {
		opts = append(opts, WithConcurrency(c.Concurrency))
	}

	return New(opts...), nil
}
