package investment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/crowdfund-dashboard/internal/domain"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockStore struct{ mock.Mock }

func (m *mockStore) List(ctx context.Context) ([]domain.InvestmentRecord, error) {
	args := m.Called(ctx)
	recs, _ := args.Get(0).([]domain.InvestmentRecord)
	return recs, args.Error(1)
}
func (m *mockStore) ListByInvestor(ctx context.Context, investorID string) ([]domain.InvestmentRecord, error) {
	args := m.Called(ctx, investorID)
	recs, _ := args.Get(0).([]domain.InvestmentRecord)
	return recs, args.Error(1)
}

type mockObjects struct {
	mock.Mock
	uploaded string
}

func (m *mockObjects) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	b, _ := io.ReadAll(r)
	m.uploaded = string(b)
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}
func (m *mockObjects) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

// --- helpers ---

func newSvc(store *mockStore, objects ObjectStore) Service {
	return NewService(ServiceDeps{
		Repo:         store,
		ObjectStore:  objects,
		ExportURLTTL: 10 * time.Minute,
		Now:          func() time.Time { return now },
	})
}

var (
	investor = domain.Principal{UserID: "inv-1", Role: domain.RoleInvestor}
	admin    = domain.Principal{UserID: "adm-1", Role: domain.RoleAdmin}
)

// --- Dashboard ---

func TestDashboard_InvestorSeesOwnRecords(t *testing.T) {
	store := &mockStore{}
	store.On("ListByInvestor", mock.Anything, "inv-1").Return(sample(), nil)

	d, err := newSvc(store, nil).Dashboard(context.Background(), investor, Query{Range: "Last 6 Months"})

	require.NoError(t, err)
	assert.Equal(t, []string{"1/Alice", "2/Bob", "1/Carol"}, fundIDs(d.Records))
	assert.True(t, decimal.NewFromInt(350).Equal(d.Summary.TotalInvested))
	assert.Equal(t, 2, d.Summary.DistinctFundCount)
	require.Len(t, d.Series, 2)
	assert.Equal(t, "MyFund", d.Series[0].Name)
	assert.True(t, decimal.NewFromInt(150).Equal(d.Series[0].Amount))
	store.AssertNotCalled(t, "List", mock.Anything)
}

func TestDashboard_AdminAndBusinessSeeAll(t *testing.T) {
	for _, role := range []string{domain.RoleAdmin, domain.RoleBusiness} {
		store := &mockStore{}
		store.On("List", mock.Anything).Return(sample(), nil)

		d, err := newSvc(store, nil).Dashboard(context.Background(), domain.Principal{UserID: "u", Role: role}, Query{})

		require.NoError(t, err, role)
		assert.Len(t, d.Records, 5, role)
	}
}

func TestDashboard_UnknownRoleForbidden(t *testing.T) {
	_, err := newSvc(&mockStore{}, nil).Dashboard(context.Background(), domain.Principal{Role: "guest"}, Query{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDashboard_NotFoundIsEmpty(t *testing.T) {
	store := &mockStore{}
	store.On("ListByInvestor", mock.Anything, "inv-1").Return(nil, domain.ErrNotFound)

	d, err := newSvc(store, nil).Dashboard(context.Background(), investor, Query{})

	require.NoError(t, err)
	assert.NotNil(t, d.Records)
	assert.Empty(t, d.Records)
	assert.Empty(t, d.Series)
	assert.Equal(t, 0, d.Summary.DistinctFundCount)
	assert.True(t, d.Summary.TotalInvested.IsZero())
	assert.True(t, d.Summary.AverageInvestment.IsZero())
	assert.Equal(t, 0.0, d.Summary.AverageMilestonePercent)
}

func TestDashboard_StoreFailureIsLoadError(t *testing.T) {
	store := &mockStore{}
	store.On("List", mock.Anything).Return(nil, errors.New("throttled"))

	_, err := newSvc(store, nil).Dashboard(context.Background(), admin, Query{})

	assert.ErrorIs(t, err, domain.ErrLoad)
}

func TestDashboard_BadRange(t *testing.T) {
	_, err := newSvc(&mockStore{}, nil).Dashboard(context.Background(), admin, Query{Range: "forever"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestDashboard_SearchTooLong(t *testing.T) {
	_, err := newSvc(&mockStore{}, nil).Dashboard(context.Background(), admin, Query{Search: strings.Repeat("x", 201)})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

// --- Export ---

func TestExport_WritesCSVAndPresigns(t *testing.T) {
	store, objects := &mockStore{}, &mockObjects{}
	store.On("List", mock.Anything).Return(sample(), nil)
	objects.On("Upload", mock.Anything, mock.AnythingOfType("string"), "text/csv").Return("s3://bucket/key", nil)
	objects.On("PresignedURL", mock.Anything, mock.AnythingOfType("string"), 10*time.Minute).Return("https://signed", nil)

	res, err := newSvc(store, objects).Export(context.Background(), admin, Query{FundID: "1"})

	require.NoError(t, err)
	assert.Equal(t, "https://signed", res.URL)
	assert.Equal(t, 2, res.Rows)
	assert.True(t, strings.HasPrefix(res.Key, "exports/"))
	assert.True(t, strings.HasSuffix(res.Key, ".csv"))
	assert.Equal(t, now.Add(10*time.Minute), res.ExpiresAt)

	lines := strings.Split(strings.TrimSpace(objects.uploaded), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "fund_id,fund_name,investor_name"))
	assert.Contains(t, lines[1], "1,MyFund,Alice")
	assert.Contains(t, lines[2], "1,MyFund,Carol")
}

func TestExport_UploadFailure(t *testing.T) {
	store, objects := &mockStore{}, &mockObjects{}
	store.On("List", mock.Anything).Return(sample(), nil)
	objects.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("denied"))

	_, err := newSvc(store, objects).Export(context.Background(), admin, Query{})

	assert.Error(t, err)
	objects.AssertNotCalled(t, "PresignedURL", mock.Anything, mock.Anything, mock.Anything)
}

func TestExport_NotConfigured(t *testing.T) {
	_, err := newSvc(&mockStore{}, nil).Export(context.Background(), admin, Query{})
	assert.Error(t, err)
}

func TestExport_ReadsClockOnce(t *testing.T) {
	store, objects := &mockStore{}, &mockObjects{}
	store.On("List", mock.Anything).Return(sample(), nil)
	objects.On("Upload", mock.Anything, mock.Anything, "text/csv").Return("s3://bucket/key", nil)
	objects.On("PresignedURL", mock.Anything, mock.Anything, 10*time.Minute).Return("https://signed", nil)

	tick := now
	svc := NewService(ServiceDeps{
		Repo:         store,
		ObjectStore:  objects,
		ExportURLTTL: 10 * time.Minute,
		Now: func() time.Time {
			cur := tick
			tick = tick.Add(time.Minute)
			return cur
		},
	})

	res, err := svc.Export(context.Background(), admin, Query{})
	require.NoError(t, err)

	assert.Equal(t, now.Add(10*time.Minute), res.ExpiresAt)
	u, err := ulid.ParseStrict(strings.TrimSuffix(strings.TrimPrefix(res.Key, "exports/"), ".csv"))
	require.NoError(t, err)
	assert.True(t, now.Equal(ulid.Time(u.Time())))
}

func TestExportResult_JSONFieldNames(t *testing.T) {
	b, err := json.Marshal(ExportResult{Key: "k", URL: "u", Rows: 1, ExpiresAt: now})
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"k","url":"u","rows":1,"expiresAt":"2024-06-15T12:00:00Z"}`, string(b))
}
