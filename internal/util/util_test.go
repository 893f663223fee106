package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "odd count", values: []float64{20, 30, 40}, want: 30},
		{name: "even count", values: []float64{20, 30, 40, 50}, want: 35},
		{name: "unsorted input", values: []float64{40, 20, 30}, want: 30},
		{name: "single value", values: []float64{7}, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Median(tt.values)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestMedian_EmptyIsError(t *testing.T) {
	_, err := Median(nil)
	require.Error(t, err)
}

func TestRoundCents(t *testing.T) {
	assert.InDelta(t, 10.56, RoundCents(10.555), 1e-9)
	assert.InDelta(t, 10.55, RoundCents(10.554), 1e-9)
	assert.InDelta(t, 0.00, RoundCents(0.001), 1e-9)
}

func TestMulCents(t *testing.T) {
	assert.InDelta(t, 25.10, MulCents(12.55, 2), 1e-9)
	assert.InDelta(t, 37.65, MulCents(12.55, 3), 1e-9)
}

func TestDivCents(t *testing.T) {
	// 50.00 over quantity 2 must be exactly 25.00.
	assert.InDelta(t, 25.00, DivCents(50.00, 2), 1e-9)
	assert.InDelta(t, 16.67, DivCents(50.00, 3), 1e-9)
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$123.40", FormatCurrency(123.4, "$"))
	assert.Equal(t, "$0.50", FormatCurrency(0.5, "$"))
}

func TestCalculateFileChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

	first, err := CalculateFileChecksum(path)
	require.NoError(t, err)
	second, err := CalculateFileChecksum(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)

	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,3\n"), 0o644))
	changed, err := CalculateFileChecksum(path)
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45s", FormatDuration(45*time.Second))
	assert.Equal(t, "5m10s", FormatDuration(5*time.Minute+10*time.Second))
	assert.Equal(t, "1h30m", FormatDuration(90*time.Minute))
}
