//go:build unit

package vouchercode_test

import (
	"strings"
	"testing"

	"examgate/internal/pkg/vouchercode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator(t *testing.T) {
	t.Run("positive length OK", func(t *testing.T) {
		g, err := vouchercode.NewGenerator(10)
		require.NoError(t, err)
		assert.Equal(t, 10, g.Length())
	})

	t.Run("zero length NG", func(t *testing.T) {
		_, err := vouchercode.NewGenerator(0)
		assert.ErrorIs(t, err, vouchercode.ErrInvalidLength)
	})

	t.Run("negative length NG", func(t *testing.T) {
		_, err := vouchercode.NewGenerator(-5)
		assert.ErrorIs(t, err, vouchercode.ErrInvalidLength)
	})
}

func TestGenerate(t *testing.T) {
	g, err := vouchercode.NewGenerator(vouchercode.DefaultLength)
	require.NoError(t, err)

	t.Run("codes have the configured length", func(t *testing.T) {
		code, err := g.Generate()
		require.NoError(t, err)
		assert.Len(t, code, vouchercode.DefaultLength)
	})

	t.Run("codes only use the unambiguous alphabet", func(t *testing.T) {
		for range 20 {
			code, err := g.Generate()
			require.NoError(t, err)
			for _, r := range code {
				assert.True(t, strings.ContainsRune(vouchercode.Alphabet, r),
					"unexpected character %q in code %s", r, code)
			}
			assert.NotContains(t, code, "0")
			assert.NotContains(t, code, "O")
			assert.NotContains(t, code, "1")
			assert.NotContains(t, code, "I")
			assert.NotContains(t, code, "L")
		}
	})

	t.Run("consecutive codes differ", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 50 {
			code, err := g.Generate()
			require.NoError(t, err)
			seen[code] = true
		}
		// 31^10 possibilities make a collision across 50 draws vanishingly rare.
		assert.Greater(t, len(seen), 45)
	})
}
