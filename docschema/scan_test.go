package docschema_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/builddocs/docschema"
)

func TestScanDirectory(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		opts  []docschema.Option
		names []string
	}{
		"default extension is case-insensitive": {
			names: []string{"farewell", "hello", "plain"},
		},
		"serial": {
			opts:  []docschema.Option{docschema.WithConcurrency(0)},
			names: []string{"farewell", "hello", "plain"},
		},
		"custom extensions": {
			opts:  []docschema.Option{docschema.WithExtensions(".txt")},
			names: []string{"notes"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			docs, err := docschema.New(tc.opts...).ScanDirectory(t.Context(), filepath.Join("testdata", "scan"))
			require.NoError(t, err)

			names := make([]string, 0, len(docs))
			for _, d := range docs {
				names = append(names, d.Name)
			}

			assert.Equal(t, tc.names, names)
		})
	}
}

func TestScanDirectoryDocuments(t *testing.T) {
	t.Parallel()

	docs, err := docschema.New().ScanDirectory(t.Context(), filepath.Join("testdata", "scan"))
	require.NoError(t, err)
	require.Len(t, docs, 3)

	hello, ok := docs[1].Param("who")
	require.True(t, ok)
	assert.Equal(t, "Who to greet", hello.Description)
	assert.Equal(t, "Says hello", docs[1].Description)

	require.NotNil(t, docs[0].Returns)
	assert.Equal(t, "string", docs[0].Returns.Type)

	out, err := json.Marshal(docs[2])
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"plain"}`, string(out))
}

func TestScanDirectoryErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := docschema.New().ScanDirectory(t.Context(), filepath.Join("testdata", "does-not-exist"))
		require.ErrorIs(t, err, docschema.ErrReadInput)
	})

	t.Run("invalid file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.js"), []byte("/* ok: Fine */\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.js"),
			[]byte("/*\n * bad: Bad\n *\n * @param {Date} when When\n */\n"), 0o644))

		_, err := docschema.New().ScanDirectory(t.Context(), dir)
		require.ErrorIs(t, err, docschema.ErrInvalidType)
		assert.Contains(t, err.Error(), "bad.js")
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, err := docschema.New().ScanDirectory(ctx, filepath.Join("testdata", "scan"))
		require.ErrorIs(t, err, context.Canceled)
	})
}
