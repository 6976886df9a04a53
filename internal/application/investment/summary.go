package investment

import (
	"strconv"
	"strings"

	"github.com/crowdfund-dashboard/internal/domain"
	"github.com/shopspring/decimal"
)

// Summarize computes the KPI cards over exactly the given records.
// An empty set yields all zeros.
func Summarize(records []domain.InvestmentRecord) domain.KPISummary {
	summary := domain.KPISummary{
		TotalInvested:     decimal.Zero,
		AverageInvestment: decimal.Zero,
	}
	if len(records) == 0 {
		return summary
	}

	funds := make(map[string]struct{}, len(records))
	var milestones float64
	for _, rec := range records {
		summary.TotalInvested = summary.TotalInvested.Add(rec.InvestedAmount)
		funds[rec.ID] = struct{}{}
		milestones += parseMilestone(rec.MilestoneReached)
	}
	n := len(records)
	summary.DistinctFundCount = len(funds)
	summary.AverageInvestment = summary.TotalInvested.Div(decimal.NewFromInt(int64(n)))
	summary.AverageMilestonePercent = milestones / float64(n)
	return summary
}

// GroupByFund sums invested amounts per fund id. Groups keep the order in
// which their id first appears and the fund name of that first record.
func GroupByFund(records []domain.InvestmentRecord) []domain.FundSeries {
	index := make(map[string]int)
	series := make([]domain.FundSeries, 0)
	for _, rec := range records {
		i, ok := index[rec.ID]
		if !ok {
			index[rec.ID] = len(series)
			series = append(series, domain.FundSeries{Name: rec.FundName, Amount: rec.InvestedAmount})
			continue
		}
		series[i].Amount = series[i].Amount.Add(rec.InvestedAmount)
	}
	return series
}

// parseMilestone reads "42.5" or "42.5%"; anything else counts as 0.
func parseMilestone(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
