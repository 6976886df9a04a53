package domain

import "github.com/shopspring/decimal"

// InvestmentRecord is one row of the "My Investment" table.
// ID identifies the fund; several records may share it.
type InvestmentRecord struct {
	ID                string          `json:"id" dynamodbav:"fund_id"`
	RecordID          string          `json:"recordId" dynamodbav:"record_id"`
	InvestorID        string          `json:"investorId" dynamodbav:"investor_id"`
	FundName          string          `json:"fundName" dynamodbav:"fund_name"`
	InvestorName      string          `json:"investorName" dynamodbav:"investor_name"`
	NumberOfInvestors int             `json:"numberOfInvestors" dynamodbav:"number_of_investors"`
	StartingDate      string          `json:"startingDate" dynamodbav:"starting_date"`
	ClosingDate       string          `json:"closingDate" dynamodbav:"closing_date"`
	TotalPeriod       int             `json:"totalPeriod" dynamodbav:"total_period"` // days
	MilestoneReached  string          `json:"milestoneReached" dynamodbav:"milestone_reached"`
	InvestedAmount    decimal.Decimal `json:"investedAmount" dynamodbav:"-"` // stored as a string by the repo
	Sector            string          `json:"sector" dynamodbav:"sector"`
	CreatedAt         string          `json:"createdAt" dynamodbav:"created_at"`
}

// KPISummary is the fixed set of aggregates shown above the investment table.
type KPISummary struct {
	TotalInvested           decimal.Decimal `json:"totalInvested"`
	DistinctFundCount       int             `json:"distinctFundCount"`
	AverageInvestment       decimal.Decimal `json:"averageInvestment"`
	AverageMilestonePercent float64         `json:"averageMilestonePercent"`
}

// FundSeries is one bar of the per-fund chart.
type FundSeries struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amt"`
}

// InvestmentDashboard is the payload behind the "My Investment" page.
type InvestmentDashboard struct {
	Records []InvestmentRecord `json:"records"`
	Summary KPISummary         `json:"summary"`
	Series  []FundSeries       `json:"series"`
}
