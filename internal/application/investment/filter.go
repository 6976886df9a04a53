package investment

import (
	"fmt"
	"strings"
	"time"

	"github.com/crowdfund-dashboard/internal/domain"
	"github.com/crowdfund-dashboard/internal/pkg/timestamp"
)

// DateRange is one of the fixed created-at windows offered by the dashboard.
type DateRange string

const (
	RangeAll         DateRange = ""
	RangeLast30Days  DateRange = "last_30_days"
	RangeLast6Months DateRange = "last_6_months"
	RangeLastYear    DateRange = "last_year"
)

var rangeWindows = map[DateRange]time.Duration{
	RangeLast30Days:  30 * 24 * time.Hour,
	RangeLast6Months: 182 * 24 * time.Hour,
	RangeLastYear:    365 * 24 * time.Hour,
}

var rangeLabels = map[string]DateRange{
	"last 30 days":  RangeLast30Days,
	"last 6 months": RangeLast6Months,
	"last year":     RangeLastYear,
}

// ParseDateRange accepts either the wire value ("last_30_days") or the label
// shown in the UI ("Last 30 Days"). An empty string means no date facet.
func ParseDateRange(s string) (DateRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RangeAll, nil
	}
	if _, ok := rangeWindows[DateRange(s)]; ok {
		return DateRange(s), nil
	}
	if r, ok := rangeLabels[strings.ToLower(s)]; ok {
		return r, nil
	}
	return RangeAll, fmt.Errorf("unknown date range %q: %w", s, domain.ErrBadRequest)
}

// Window returns the maximum record age for r; ok is false for RangeAll.
func (r DateRange) Window() (time.Duration, bool) {
	w, ok := rangeWindows[r]
	return w, ok
}

// Facets are the optional predicates applied after the free-text search.
type Facets struct {
	Range  DateRange
	FundID string
}

// Filter returns the records matching search and facets, in input order.
// Records are copied, never modified. With no search text and no facets the
// input is returned as is.
func Filter(records []domain.InvestmentRecord, search string, facets Facets, now time.Time) []domain.InvestmentRecord {
	needle := strings.ToLower(search)
	window, hasWindow := facets.Range.Window()
	if needle == "" && !hasWindow && facets.FundID == "" {
		return records
	}

	out := make([]domain.InvestmentRecord, 0, len(records))
	for _, rec := range records {
		if needle != "" &&
			!strings.Contains(strings.ToLower(rec.FundName), needle) &&
			!strings.Contains(strings.ToLower(rec.InvestorName), needle) {
			continue
		}
		if hasWindow {
			created, ok := timestamp.Parse(rec.CreatedAt)
			if !ok || now.Sub(created) > window {
				continue
			}
		}
		if facets.FundID != "" && rec.ID != facets.FundID {
			continue
		}
		out = append(out, rec)
	}
	return out
}
