package quotes

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic_Last(t *testing.T) {
	src := Static{"AAPL": 182.34, "MSFT": 410.0}

	q, err := src.Last(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, 182.34, q.Last)
	assert.Equal(t, "static", q.Source)

	_, err = src.Last(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, ErrNoQuote)
}

func TestFile_Last(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prices.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"AAPL": 182.34, "NVDA": 950.5}`), 0644))

	src, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file", src.Name())

	q, err := src.Last(context.Background(), "NVDA")
	require.NoError(t, err)
	assert.Equal(t, 950.5, q.Last)
	assert.Equal(t, "file", q.Source)

	_, err = src.Last(context.Background(), "TSLA")
	assert.ErrorIs(t, err, ErrNoQuote)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("not an object", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prices.json")
		require.NoError(t, os.WriteFile(path, []byte(`[1, 2, 3]`), 0644))

		_, err := LoadFile(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "parse prices file")
	})
}

// failing is a Source stub that always returns the same error.
type failing struct{ err error }

func (f failing) Name() string { return "failing" }

func (f failing) Last(_ context.Context, _ string) (Quote, error) {
	return Quote{}, f.err
}

func TestChain_Last(t *testing.T) {
	t.Run("first source wins", func(t *testing.T) {
		chain := Chain{
			Static{"AAPL": 182.0},
			Static{"AAPL": 999.0},
		}

		q, err := chain.Last(context.Background(), "AAPL")
		require.NoError(t, err)
		assert.Equal(t, 182.0, q.Last)
	})

	t.Run("falls through failures", func(t *testing.T) {
		chain := Chain{
			failing{err: errors.New("connection refused")},
			Static{"AAPL": 182.0},
		}

		q, err := chain.Last(context.Background(), "AAPL")
		require.NoError(t, err)
		assert.Equal(t, 182.0, q.Last)
		assert.Equal(t, "static", q.Source)
	})

	t.Run("all sources fail", func(t *testing.T) {
		chain := Chain{
			Static{},
			Static{},
		}

		_, err := chain.Last(context.Background(), "AAPL")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoQuote)
		assert.Contains(t, err.Error(), "all quote sources failed for AAPL")
	})

	t.Run("empty chain", func(t *testing.T) {
		_, err := Chain{}.Last(context.Background(), "AAPL")
		assert.ErrorIs(t, err, ErrNoQuote)
	})

	t.Run("cancelled context stops the walk", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		chain := Chain{
			failing{err: errors.New("timeout")},
			Static{"AAPL": 182.0}, // never reached
		}

		_, err := chain.Last(ctx, "AAPL")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
