package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	t.Run("maps rows by header name", func(t *testing.T) {
		in := "name,country_code,city\nTU Berlin,DE,Berlin\nKU Leuven,BE,Leuven\n"
		rows, err := readCSV(strings.NewReader(in), []string{"name", "country_code", "city"})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "TU Berlin", rows[0]["name"])
		assert.Equal(t, "BE", rows[1]["country_code"])
	})

	t.Run("header is case-insensitive and trimmed", func(t *testing.T) {
		in := " Name , COUNTRY_CODE ,city\nTU Berlin,DE,Berlin\n"
		rows, err := readCSV(strings.NewReader(in), []string{"name", "country_code", "city"})
		require.NoError(t, err)
		assert.Equal(t, "TU Berlin", rows[0]["name"])
	})

	t.Run("values are trimmed", func(t *testing.T) {
		in := "name,country_code,city\n  TU Berlin , DE , Berlin \n"
		rows, err := readCSV(strings.NewReader(in), []string{"name"})
		require.NoError(t, err)
		assert.Equal(t, "TU Berlin", rows[0]["name"])
		assert.Equal(t, "DE", rows[0]["country_code"])
	})

	t.Run("missing required column fails", func(t *testing.T) {
		in := "name,city\nTU Berlin,Berlin\n"
		_, err := readCSV(strings.NewReader(in), []string{"name", "country_code"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "country_code")
	})

	t.Run("header only yields no rows", func(t *testing.T) {
		rows, err := readCSV(strings.NewReader("name,city\n"), []string{"name"})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestCurrencyOrDefault(t *testing.T) {
	assert.Equal(t, "USD", currencyOrDefault("usd"))
	assert.Equal(t, "EUR", currencyOrDefault(""))
	assert.Equal(t, "EUR", currencyOrDefault("EURO"))
}

func TestOptionalInt(t *testing.T) {
	v, err := optionalInt("24")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 24, *v)

	v, err = optionalInt("")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = optionalInt("two")
	assert.Error(t, err)
}

func TestOptionalDate(t *testing.T) {
	v, err := optionalDate("2026-05-01")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), *v)

	v, err = optionalDate("")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = optionalDate("05/01/2026")
	assert.Error(t, err)
}
