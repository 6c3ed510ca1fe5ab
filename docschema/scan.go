package docschema

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ScanDirectory extracts one document per source file in dir, using the
// first comment block of each file and the file name without its extension
// as the fallback name. Files are returned in directory listing order.
// Subdirectories and files with other extensions are skipped.
func (e *Extractor) ScanDirectory(ctx context.Context, dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	var files []string

	for _, entry := range entries {
		if entry.IsDir() || !e.hasExtension(entry.Name()) {
			e.logger.Debug("skip file", slog.String("path", filepath.Join(dir, entry.Name())))

			continue
		}

		files = append(files, entry.Name())
	}

	docs := make([]*Document, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			path := filepath.Join(dir, file)

			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrReadInput, err)
			}

			e.logger.Debug("scan file", slog.String("path", path))

			doc, err := e.ExtractOne(src, strings.TrimSuffix(file, filepath.Ext(file)))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			docs[i] = doc

			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return nil, err
	}

	return docs, nil
}

func (e *Extractor) hasExtension(name string) bool {
	ext := filepath.Ext(name)

	for _, want := range e.extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}

	return false
}
