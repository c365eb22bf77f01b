package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"under an hour", 30 * time.Minute, "منذ أقل من ساعة"},
		{"five hours", 5 * time.Hour, "منذ 5 ساعة"},
		{"just under a day", 23*time.Hour + 59*time.Minute, "منذ 23 ساعة"},
		{"exactly one day", 24 * time.Hour, "منذ يوم واحد"},
		{"under two days", 47 * time.Hour, "منذ يوم واحد"},
		{"three days", 3 * 24 * time.Hour, "منذ 3 أيام"},
		{"one week", 7 * 24 * time.Hour, "منذ 1 أسبوع"},
		{"two weeks", 15 * 24 * time.Hour, "منذ 2 أسابيع"},
		{"just under a month", 29*24*time.Hour + 23*time.Hour, "منذ 4 أسابيع"},
		{"one month", 30 * 24 * time.Hour, "منذ 1 شهر"},
		{"three months", 90 * 24 * time.Hour, "منذ 3 أشهر"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRelativeTime(now, now.Add(-tt.elapsed))
			assert.Equal(t, tt.want, got)
		})
	}
}
