package util

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// CalculateFileChecksum calculates the SHA256 checksum for a file.
func CalculateFileChecksum(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	sha256Hash := sha256.New()

	if _, err := io.Copy(sha256Hash, file); err != nil {
		return "", errors.Wrap(err, "failed to calculate checksum")
	}

	sha256Sum := fmt.Sprintf("%x", sha256Hash.Sum(nil))

	return sha256Sum, nil
}

// RoundCents rounds a currency amount to two decimals using decimal
// arithmetic, avoiding float64 rounding artifacts on .005 boundaries.
func RoundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// MulCents multiplies a unit price by a quantity and rounds to cents.
func MulCents(unitPrice float64, quantity int) float64 {
	return decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2).
		InexactFloat64()
}

// DivCents divides an amount by a quantity and rounds to cents.
func DivCents(amount float64, quantity int) float64 {
	return decimal.NewFromFloat(amount).
		Div(decimal.NewFromInt(int64(quantity))).
		Round(2).
		InexactFloat64()
}

// FormatCurrency formats an amount for display, e.g. "$123.40".
func FormatCurrency(amount float64, symbol string) string {
	return symbol + decimal.NewFromFloat(amount).StringFixed(2)
}

// Median returns the median of values: the middle element for odd counts,
// the mean of the two middle elements for even counts.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, errors.New("median of empty set is undefined")
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}

	return (sorted[mid-1] + sorted[mid]) / 2, nil
}

// FormatDuration formats duration into human readable format (e.g., "1h30m", "5m10s", "45s").
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	m := int(duration.Minutes()) % 60

	return fmt.Sprintf("%dh%dm", h, m)
}
