package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelative(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) string { return now.Add(-d).Format(time.RFC3339) }

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"zero", at(0), "just now"},
		{"four seconds", at(4 * time.Second), "just now"},
		{"five seconds is not just now", at(5 * time.Second), "5 secs ago"},
		{"one minute boundary", at(59 * time.Second), "59 secs ago"},
		{"ninety seconds", at(90 * time.Second), "1 min ago"},
		{"two minutes", at(2 * time.Minute), "2 mins ago"},
		{"one hour", at(time.Hour), "1 hr ago"},
		{"five hours", at(5 * time.Hour), "5 hrs ago"},
		{"one day", at(24 * time.Hour), "1 day ago"},
		{"two days", at(48 * time.Hour), "2 days ago"},
		{"six days", at(6*24*time.Hour + 23*time.Hour), "6 days ago"},
		{"ten days same year", at(10 * 24 * time.Hour), "Jun 5"},
		{"future is just now", now.Add(time.Hour).Format(time.RFC3339), "just now"},
		{"unparseable", "garbage", ""},
		{"empty", "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, FormatRelative(c.raw, now))
		})
	}
}

func TestFormatRelative_PreviousYearIncludesYear(t *testing.T) {
	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	raw := now.Add(-10 * 24 * time.Hour).Format(time.RFC3339)
	assert.Equal(t, "Dec 26, 2023", FormatRelative(raw, now))
}

func TestFormatRelative_OneSecond(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	// exactly one second is still below the five second threshold
	assert.Equal(t, "just now", FormatRelative(now.Add(-time.Second).Format(time.RFC3339), now))
}
