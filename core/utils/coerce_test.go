package utils

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestFloatOrNil(t *testing.T) {
	assert.Nil(t, FloatOrNil(nil))
	assert.Nil(t, FloatOrNil(""))
	assert.Nil(t, FloatOrNil("not a number"))
	assert.Nil(t, FloatOrNil(map[string]any{}))

	if v := FloatOrNil("12.5"); assert.NotNil(t, v) {
		assert.Equal(t, 12.5, *v)
	}
	if v := FloatOrNil(float64(3)); assert.NotNil(t, v) {
		assert.Equal(t, 3.0, *v)
	}
	if v := FloatOrNil(" 0.34 "); assert.NotNil(t, v) {
		assert.Equal(t, 0.34, *v)
	}
}

func TestIntOrNil_RoundsNonIntegers(t *testing.T) {
	if v := IntOrNil("79.6"); assert.NotNil(t, v) {
		assert.Equal(t, 80, *v)
	}
	if v := IntOrNil(2.4); assert.NotNil(t, v) {
		assert.Equal(t, 2, *v)
	}
	assert.Nil(t, IntOrNil("n/a"))
}

func TestCleanString(t *testing.T) {
	assert.Nil(t, CleanString("   "))
	assert.Nil(t, CleanString(nil))
	assert.Nil(t, CleanString(42))
	if v := CleanString("  Aluminium bottle "); assert.NotNil(t, v) {
		assert.Equal(t, "Aluminium bottle", *v)
	}
}

func TestStringifyOrNil(t *testing.T) {
	// JSON numbers decode as float64; integer identifiers must not gain a decimal point.
	if v := StringifyOrNil(float64(40000011)); assert.NotNil(t, v) {
		assert.Equal(t, "40000011", *v)
	}
	if v := StringifyOrNil("AR1249"); assert.NotNil(t, v) {
		assert.Equal(t, "AR1249", *v)
	}
	assert.Nil(t, StringifyOrNil(nil))
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 300)
	got := Truncate(long, 255)
	assert.Len(t, got, 255)
	assert.True(t, strings.HasSuffix(got, "..."))

	assert.Equal(t, "short", Truncate("short", 255))
}

func TestTruncate_NeverSplitsRunes(t *testing.T) {
	// "é" is two bytes; a byte-indexed cut would land mid-rune and leave
	// invalid UTF-8 the database rejects.
	long := "a" + strings.Repeat("é", 300)
	got := Truncate(long, 255)

	assert.LessOrEqual(t, len(got), 255)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))

	tiny := Truncate(strings.Repeat("é", 5), 3)
	assert.LessOrEqual(t, len(tiny), 3)
	assert.True(t, utf8.ValidString(tiny))
}

func TestTimeOrNil(t *testing.T) {
	assert.Nil(t, TimeOrNil(nil))
	assert.Nil(t, TimeOrNil("yesterday-ish"))
	assert.Nil(t, TimeOrNil(""))

	if v := TimeOrNil("2024-03-01T10:30:00Z"); assert.NotNil(t, v) {
		assert.Equal(t, 2024, v.Year())
	}
	if v := TimeOrNil("2024-03-01"); assert.NotNil(t, v) {
		assert.Equal(t, time.March, v.Month())
	}
}
