package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCountries(t *testing.T) {
	t.Run("upper-cases and dedupes", func(t *testing.T) {
		got, err := normalizeCountries([]string{"de", " NL ", "DE", "fr"})
		require.NoError(t, err)
		assert.Equal(t, []string{"DE", "NL", "FR"}, got)
	})

	t.Run("rejects non-ISO codes", func(t *testing.T) {
		_, err := normalizeCountries([]string{"DE", "GER"})
		assert.ErrorIs(t, err, ErrInvalid)

		_, err = normalizeCountries([]string{""})
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("empty input yields empty list", func(t *testing.T) {
		got, err := normalizeCountries(nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestNormalizeDegreeLevels(t *testing.T) {
	t.Run("accepts the known levels in any case", func(t *testing.T) {
		got, err := normalizeDegreeLevels([]string{"masters", "PHD", "bachelors", "masters"})
		require.NoError(t, err)
		assert.Equal(t, []string{"MASTERS", "PHD", "BACHELORS"}, got)
	})

	t.Run("rejects unknown levels", func(t *testing.T) {
		_, err := normalizeDegreeLevels([]string{"MASTERS", "POSTDOC"})
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestPaginate(t *testing.T) {
	p := paginate(45, 2, 20)
	assert.Equal(t, int64(45), p.Total)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 3, p.TotalPages)

	assert.Equal(t, 0, paginate(0, 1, 20).TotalPages)
	assert.Equal(t, 1, paginate(20, 1, 20).TotalPages)
}
