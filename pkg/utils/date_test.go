package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThirdWednesday(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  time.Time
	}{
		{name: "March 2025", year: 2025, month: time.March, want: Date(2025, time.March, 19)},
		{name: "January 2025 starts on a Wednesday", year: 2025, month: time.January, want: Date(2025, time.January, 15)},
		{name: "September 2025", year: 2025, month: time.September, want: Date(2025, time.September, 17)},
		{name: "December 2024", year: 2024, month: time.December, want: Date(2024, time.December, 18)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ThirdWednesday(tt.year, tt.month)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, time.Wednesday, got.Weekday())
		})
	}
}

func TestThirdThursday(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  time.Time
	}{
		{name: "February 2025", year: 2025, month: time.February, want: Date(2025, time.February, 20)},
		{name: "December 2024", year: 2024, month: time.December, want: Date(2024, time.December, 19)},
		{name: "November 2024", year: 2024, month: time.November, want: Date(2024, time.November, 21)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ThirdThursday(tt.year, tt.month)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, time.Thursday, got.Weekday())
		})
	}
}

func TestPrevMonth(t *testing.T) {
	year, month := PrevMonth(2025, time.January)
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.December, month)

	year, month = PrevMonth(2025, time.July)
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.June, month)
}

func TestSameDate(t *testing.T) {
	a := time.Date(2025, time.March, 19, 9, 30, 0, 0, time.UTC)
	b := Date(2025, time.March, 19)
	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(a, Date(2025, time.March, 20)))
}
