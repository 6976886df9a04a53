package investment

import (
	"testing"
	"time"

	"github.com/crowdfund-dashboard/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) string {
	return now.Add(-time.Duration(d) * 24 * time.Hour).Format(time.RFC3339)
}

func rec(id, fund, investor string, amount int64, createdAt string) domain.InvestmentRecord {
	return domain.InvestmentRecord{
		ID:             id,
		FundName:       fund,
		InvestorName:   investor,
		InvestedAmount: decimal.NewFromInt(amount),
		CreatedAt:      createdAt,
	}
}

func fundIDs(records []domain.InvestmentRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID + "/" + r.InvestorName
	}
	return out
}

func sample() []domain.InvestmentRecord {
	return []domain.InvestmentRecord{
		rec("1", "MyFund", "Alice", 100, daysAgo(10)),
		rec("2", "Green Energy", "Bob", 200, daysAgo(40)),
		rec("1", "MyFund", "Carol", 50, daysAgo(100)),
		rec("3", "Tech Growth", "Fundora Ltd", 300, daysAgo(300)),
		rec("4", "", "", 10, daysAgo(500)),
	}
}

func TestFilter_NoCriteriaReturnsInput(t *testing.T) {
	in := sample()
	out := Filter(in, "", Facets{}, now)
	assert.Equal(t, in, out)
}

func TestFilter_SearchCaseInsensitiveSubstring(t *testing.T) {
	out := Filter(sample(), "fun", Facets{}, now)
	// matches fund name "MyFund" twice and investor "Fundora Ltd"
	assert.Equal(t, []string{"1/Alice", "1/Carol", "3/Fundora Ltd"}, fundIDs(out))
}

func TestFilter_SearchInvestorName(t *testing.T) {
	out := Filter(sample(), "BOB", Facets{}, now)
	assert.Equal(t, []string{"2/Bob"}, fundIDs(out))
}

func TestFilter_MissingNamesNeverMatchSearch(t *testing.T) {
	out := Filter([]domain.InvestmentRecord{rec("4", "", "", 10, daysAgo(1))}, "a", Facets{}, now)
	assert.Empty(t, out)
}

func TestFilter_Last30Days(t *testing.T) {
	records := []domain.InvestmentRecord{
		rec("old", "A", "x", 1, daysAgo(40)),
		rec("new", "B", "y", 1, daysAgo(10)),
	}
	out := Filter(records, "", Facets{Range: RangeLast30Days}, now)
	require.Len(t, out, 1)
	assert.Equal(t, "new", out[0].ID)
}

func TestFilter_DateWindows(t *testing.T) {
	cases := []struct {
		r    DateRange
		want []string
	}{
		{RangeLast30Days, []string{"1/Alice"}},
		{RangeLast6Months, []string{"1/Alice", "2/Bob", "1/Carol"}},
		{RangeLastYear, []string{"1/Alice", "2/Bob", "1/Carol", "3/Fundora Ltd"}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, fundIDs(Filter(sample(), "", Facets{Range: c.r}, now)), "range %s", c.r)
	}
}

func TestFilter_WindowBoundaryInclusive(t *testing.T) {
	records := []domain.InvestmentRecord{rec("edge", "A", "x", 1, daysAgo(30))}
	out := Filter(records, "", Facets{Range: RangeLast30Days}, now)
	assert.Len(t, out, 1)
}

func TestFilter_UnparseableCreatedAtFailsDateFacet(t *testing.T) {
	records := []domain.InvestmentRecord{rec("bad", "A", "x", 1, "soon")}
	assert.Empty(t, Filter(records, "", Facets{Range: RangeLastYear}, now))
	assert.Len(t, Filter(records, "", Facets{}, now), 1)
}

func TestFilter_FundFacetExact(t *testing.T) {
	out := Filter(sample(), "", Facets{FundID: "1"}, now)
	assert.Equal(t, []string{"1/Alice", "1/Carol"}, fundIDs(out))
	assert.Empty(t, Filter(sample(), "", Facets{FundID: "10"}, now))
}

func TestFilter_AllPredicatesCombined(t *testing.T) {
	out := Filter(sample(), "myfund", Facets{Range: RangeLast30Days, FundID: "1"}, now)
	assert.Equal(t, []string{"1/Alice"}, fundIDs(out))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := sample()
	snapshot := sample()
	_ = Filter(in, "bob", Facets{Range: RangeLastYear}, now)
	assert.Equal(t, snapshot, in)
}

func TestParseDateRange(t *testing.T) {
	cases := []struct {
		input string
		want  DateRange
	}{
		{"", RangeAll},
		{"last_30_days", RangeLast30Days},
		{"Last 30 Days", RangeLast30Days},
		{"last_6_months", RangeLast6Months},
		{"Last 6 Months", RangeLast6Months},
		{"last_year", RangeLastYear},
		{"LAST YEAR", RangeLastYear},
	}
	for _, c := range cases {
		got, err := ParseDateRange(c.input)
		require.NoError(t, err, "input: %q", c.input)
		assert.Equal(t, c.want, got, "input: %q", c.input)
	}

	_, err := ParseDateRange("last decade")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}
