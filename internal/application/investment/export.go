package investment

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/crowdfund-dashboard/internal/domain"
	"github.com/crowdfund-dashboard/internal/pkg/id"
	"go.uber.org/zap"
)

// ExportResult points at an uploaded CSV export.
type ExportResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Rows      int       `json:"rows"`
	ExpiresAt time.Time `json:"expiresAt"`
}

var exportHeader = []string{
	"fund_id", "fund_name", "investor_name", "number_of_investors",
	"starting_date", "closing_date", "total_period_days",
	"milestone_reached", "invested_amount", "sector", "created_at",
}

func (s *service) Export(ctx context.Context, p domain.Principal, q Query) (*ExportResult, error) {
	if s.objects == nil {
		return nil, errors.New("export storage not configured")
	}
	now := s.now()
	filtered, err := s.filtered(ctx, p, q, now)
	if err != nil {
		return nil, err
	}
	body, err := writeCSV(filtered)
	if err != nil {
		return nil, err
	}
	key := "exports/" + id.NewAt(now) + ".csv"
	if _, err := s.objects.Upload(ctx, key, bytes.NewReader(body), "text/csv"); err != nil {
		return nil, err
	}
	url, err := s.objects.PresignedURL(ctx, key, s.exportTTL)
	if err != nil {
		return nil, err
	}
	s.log.Info("investment export written", zap.String("key", key), zap.Int("rows", len(filtered)), zap.String("user_id", p.UserID))
	return &ExportResult{
		Key:       key,
		URL:       url,
		Rows:      len(filtered),
		ExpiresAt: now.UTC().Add(s.exportTTL),
	}, nil
}

func writeCSV(records []domain.InvestmentRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.ID, r.FundName, r.InvestorName, strconv.Itoa(r.NumberOfInvestors),
			r.StartingDate, r.ClosingDate, strconv.Itoa(r.TotalPeriod),
			r.MilestoneReached, r.InvestedAmount.String(), r.Sector, r.CreatedAt,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
