// Package main provides the CLI entry point for builddocs, a tool that
// extracts structured documentation from annotated JavaScript comments.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/builddocs/docschema"
	"go.jacobcolvin.com/builddocs/log"
	"go.jacobcolvin.com/builddocs/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx)

	stop()

	if err != nil {
		if !errors.Is(err, errDrift) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}

		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cfg := docschema.NewConfig()
	logCfg := log.NewConfig()

	var logger *slog.Logger

	rootCmd := &cobra.Command{
		Use:   "builddocs [flags] <file.js|dir|-> [...]",
		Short: "Extract structured documentation from annotated comments",
		Long: `builddocs reads JavaScript block comments and turns their @param, @returns,
@throws, @error, @secret and @name tags into JSON documents. Directories are
scanned for source files and produce one document per file.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error

			logger, err = logCfg.NewLogger(stderr)
			if err != nil {
				return err
			}

			return cfg.LoadFile(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &runner{cfg: cfg, logger: logger, stdin: stdin, stdout: stdout}

			return r.run(cmd.Context(), args)
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	cfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.PersistentFlags())

	for _, register := range []func(*cobra.Command) error{cfg.RegisterCompletions, logCfg.RegisterCompletions} {
		err := register(rootCmd)
		if err != nil {
			fmt.Fprintf(stderr, "register completions: %v\n", err)
		}
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), version.Get())

			return err
		},
	})

	return rootCmd
}

type runner struct {
	stdin  io.Reader
	stdout io.Writer
	cfg    *docschema.Config
	logger *slog.Logger
}

func (r *runner) run(ctx context.Context, args []string) error {
	ext, err := r.cfg.NewExtractor(docschema.WithLogger(r.logger))
	if err != nil {
		return err
	}

	all := r.cfg.All || len(r.cfg.Expect) > 0

	var (
		docs   []*docschema.Document
		single = len(args) == 1 && !all
	)

	for _, arg := range args {
		found, isDir, err := r.collect(ctx, ext, arg, all)
		if err != nil {
			return err
		}

		if isDir {
			single = false
		}

		docs = append(docs, found...)
	}

	out, err := render(docs, single, r.cfg.Format, r.cfg.Indent)
	if err != nil {
		return err
	}

	if r.cfg.Check {
		return r.check(out)
	}

	return r.write(out)
}

// collect extracts documents from one argument: a file, a directory or "-"
// for stdin.
func (r *runner) collect(
	ctx context.Context,
	ext *docschema.Extractor,
	arg string,
	all bool,
) ([]*docschema.Document, bool, error) {
	var (
		src  []byte
		name = r.cfg.Name
	)

	if arg == "-" {
		data, err := io.ReadAll(r.stdin)
		if err != nil {
			return nil, false, fmt.Errorf("%w: stdin: %w", docschema.ErrReadInput, err)
		}

		src = data
	} else {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w", docschema.ErrReadInput, err)
		}

		if info.IsDir() {
			r.logger.Debug("scan directory", slog.String("path", arg))

			docs, err := ext.ScanDirectory(ctx, arg)

			return docs, true, err
		}

		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w", docschema.ErrReadInput, err)
		}

		src = data

		if name == "" {
			base := filepath.Base(arg)
			name = strings.TrimSuffix(base, filepath.Ext(base))
		}
	}

	if all {
		docs, err := ext.ExtractAll(src, r.cfg.Expect...)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", arg, err)
		}

		if len(docs) == 0 {
			r.logger.Warn("no named comment blocks", slog.String("input", arg))
		}

		return docs, false, nil
	}

	doc, err := ext.ExtractOne(src, name)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", arg, err)
	}

	if doc.IsStub() {
		r.logger.Warn("no comment blocks", slog.String("input", arg))
	}

	return []*docschema.Document{doc}, false, nil
}

func (r *runner) write(out []byte) error {
	if r.cfg.Output == "" || r.cfg.Output == "-" {
		_, err := r.stdout.Write(out)
		if err != nil {
			return fmt.Errorf("%w: %w", docschema.ErrWriteOutput, err)
		}

		return nil
	}

	err := os.WriteFile(r.cfg.Output, out, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", docschema.ErrWriteOutput, err)
	}

	r.logger.Debug("wrote output", slog.String("path", r.cfg.Output))

	return nil
}
