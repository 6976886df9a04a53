package investment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/crowdfund-dashboard/internal/domain"
	"github.com/crowdfund-dashboard/internal/pkg/validate"
	"go.uber.org/zap"
)

// Query carries the raw filter parameters of the "My Investment" page.
type Query struct {
	Search string `validate:"max=200"`
	Range  string
	FundID string `validate:"max=128"`
}

type Service interface {
	Dashboard(ctx context.Context, p domain.Principal, q Query) (*domain.InvestmentDashboard, error)
	Export(ctx context.Context, p domain.Principal, q Query) (*ExportResult, error)
}

type investmentStore interface {
	List(ctx context.Context) ([]domain.InvestmentRecord, error)
	ListByInvestor(ctx context.Context, investorID string) ([]domain.InvestmentRecord, error)
}

// ObjectStore receives CSV exports.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type ServiceDeps struct {
	Repo         investmentStore
	ObjectStore  ObjectStore // optional; Export fails without it
	ExportURLTTL time.Duration
	Logger       *zap.Logger
	Now          func() time.Time
}

type service struct {
	repo      investmentStore
	objects   ObjectStore
	exportTTL time.Duration
	log       *zap.Logger
	now       func() time.Time
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		repo:      deps.Repo,
		objects:   deps.ObjectStore,
		exportTTL: deps.ExportURLTTL,
		log:       deps.Logger,
		now:       deps.Now,
	}
	if s.exportTTL <= 0 {
		s.exportTTL = 15 * time.Minute
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) Dashboard(ctx context.Context, p domain.Principal, q Query) (*domain.InvestmentDashboard, error) {
	filtered, err := s.filtered(ctx, p, q, s.now())
	if err != nil {
		return nil, err
	}
	return &domain.InvestmentDashboard{
		Records: filtered,
		Summary: Summarize(filtered),
		Series:  GroupByFund(filtered),
	}, nil
}

// filtered loads the records visible to p and applies q as of now.
func (s *service) filtered(ctx context.Context, p domain.Principal, q Query, now time.Time) ([]domain.InvestmentRecord, error) {
	if err := validate.Struct(q); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	dateRange, err := ParseDateRange(q.Range)
	if err != nil {
		return nil, err
	}
	records, err := s.load(ctx, p)
	if err != nil {
		return nil, err
	}
	out := Filter(records, q.Search, Facets{Range: dateRange, FundID: q.FundID}, now)
	if out == nil {
		out = []domain.InvestmentRecord{}
	}
	return out, nil
}

// load picks the record set by role. A missing set is an empty one.
func (s *service) load(ctx context.Context, p domain.Principal) ([]domain.InvestmentRecord, error) {
	var (
		records []domain.InvestmentRecord
		err     error
	)
	switch p.Role {
	case domain.RoleInvestor:
		records, err = s.repo.ListByInvestor(ctx, p.UserID)
	case domain.RoleAdmin, domain.RoleBusiness:
		records, err = s.repo.List(ctx)
	default:
		return nil, fmt.Errorf("role %q cannot view investments: %w", p.Role, domain.ErrForbidden)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		s.log.Error("load investments", zap.String("user_id", p.UserID), zap.String("role", p.Role), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrLoad, err)
	}
	return records, nil
}
