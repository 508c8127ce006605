package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Run("parses pt-BR currency text", func(t *testing.T) {
		d, ok := ParseAmount("R$ 1.000,50")
		require.True(t, ok)
		assert.Equal(t, "1000.50", d.StringFixed(2))
	})

	t.Run("comma is the decimal separator", func(t *testing.T) {
		d, ok := ParseAmount("1.234,56")
		require.True(t, ok)
		assert.Equal(t, "1234.56", d.StringFixed(2))
	})

	t.Run("dot-decimal input parses via fallback convention", func(t *testing.T) {
		d, ok := ParseAmount("1000.50")
		require.True(t, ok)
		assert.Equal(t, "1000.50", d.StringFixed(2))
	})

	t.Run("keeps sign", func(t *testing.T) {
		d, ok := ParseAmount("-12,30")
		require.True(t, ok)
		assert.Equal(t, "-12.30", d.StringFixed(2))
	})

	t.Run("strips stray text through the fallback", func(t *testing.T) {
		d, ok := ParseAmount("BRL 99.90 *")
		require.True(t, ok)
		assert.Equal(t, "99.90", d.StringFixed(2))
	})

	t.Run("failure is not an error", func(t *testing.T) {
		for _, s := range []string{"", "   ", "nan", "None", "abc"} {
			_, ok := ParseAmount(s)
			assert.False(t, ok, "input %q", s)
		}
	})
}

func TestParseDate(t *testing.T) {
	t.Run("day-first calendar text", func(t *testing.T) {
		d, ok := ParseDate("01/02/2024", true)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("month-first only as fallback", func(t *testing.T) {
		// Day 25 cannot be a month, so the day-first pass fails and the
		// month-first pass resolves it.
		d, ok := ParseDate("12/25/2023", true)
		require.True(t, ok)
		assert.Equal(t, 2023, d.Year())
		assert.Equal(t, time.December, d.Month())
		assert.Equal(t, 25, d.Day())
	})

	t.Run("spreadsheet serial date", func(t *testing.T) {
		d, ok := ParseDate("44927", true)
		require.True(t, ok)
		assert.Equal(t, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("ISO date", func(t *testing.T) {
		d, ok := ParseDate("2024-03-10", true)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("unparseable text", func(t *testing.T) {
		for _, s := range []string{"", "nan", "amanhã", "1234567"} {
			_, ok := ParseDate(s, true)
			assert.False(t, ok, "input %q", s)
		}
	})
}

func TestOnlyDigits(t *testing.T) {
	t.Run("strips punctuation from tax identifiers", func(t *testing.T) {
		got, ok := OnlyDigits("123.456.789-09")
		require.True(t, ok)
		assert.Equal(t, "12345678909", got)

		got, ok = OnlyDigits("12.345.678/0001-95")
		require.True(t, ok)
		assert.Equal(t, "12345678000195", got)
	})

	t.Run("does not validate length or checksum", func(t *testing.T) {
		got, ok := OnlyDigits("9-9")
		require.True(t, ok)
		assert.Equal(t, "99", got)
	})

	t.Run("empty and placeholder input", func(t *testing.T) {
		for _, s := range []string{"", "  ", "nan"} {
			_, ok := OnlyDigits(s)
			assert.False(t, ok, "input %q", s)
		}
	})
}
