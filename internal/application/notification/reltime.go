package notification

import (
	"fmt"
	"time"

	"github.com/crowdfund-dashboard/internal/pkg/timestamp"
)

// FormatRelative renders raw as a short age label relative to now, e.g.
// "just now", "3 mins ago", "1 day ago". Anything a week or older becomes a
// calendar date, with the year only when it differs from now's year.
// An unparseable timestamp yields "".
func FormatRelative(raw string, now time.Time) string {
	t, ok := timestamp.Parse(raw)
	if !ok {
		return ""
	}
	age := now.Sub(t)
	if age < 0 {
		age = 0
	}
	switch {
	case age < 5*time.Second:
		return "just now"
	case age < time.Minute:
		return ago(int(age/time.Second), "sec")
	case age < time.Hour:
		return ago(int(age/time.Minute), "min")
	case age < 24*time.Hour:
		return ago(int(age/time.Hour), "hr")
	case age < 7*24*time.Hour:
		return ago(int(age/(24*time.Hour)), "day")
	}
	local := t.In(now.Location())
	if local.Year() == now.Year() {
		return local.Format("Jan 2")
	}
	return local.Format("Jan 2, 2006")
}

func ago(n int, unit string) string {
	if n != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}
