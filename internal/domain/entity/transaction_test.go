package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2023-03-15 is a Wednesday. The library default (time.Weekday) counts from
// Sunday; our convention counts from Monday. Both are pinned here so any
// drift in the derived column is caught.
func TestDayOfWeek_MondayStartConvention(t *testing.T) {
	wednesday := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Wednesday, wednesday.Weekday())
	assert.Equal(t, 3, int(wednesday.Weekday())) // Go: Sunday=0
	assert.Equal(t, 2, DayOfWeek(wednesday))     // ours: Monday=0

	tests := []struct {
		date time.Time
		want int
	}{
		{time.Date(2023, 3, 13, 0, 0, 0, 0, time.UTC), 0}, // Monday
		{time.Date(2023, 3, 14, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2023, 3, 17, 0, 0, 0, 0, time.UTC), 4},
		{time.Date(2023, 3, 18, 0, 0, 0, 0, time.UTC), 5},
		{time.Date(2023, 3, 19, 0, 0, 0, 0, time.UTC), 6}, // Sunday
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DayOfWeek(tt.date), tt.date.Format("2006-01-02"))
	}
}
