package http

import (
	"context"
	"io"
	"time"

	"github.com/crowdfund-dashboard/internal/domain"
	"github.com/crowdfund-dashboard/internal/transport/http/middleware"
	"go.uber.org/zap"
)

// NotificationRepository is the minimal interface the router requires from a notification store.
type NotificationRepository interface {
	ListPersonal(ctx context.Context, userID string) ([]domain.NotificationRecord, error)
	ListBroadcast(ctx context.Context) ([]domain.NotificationRecord, error)
	Get(ctx context.Context, notificationID string) (*domain.NotificationRecord, error)
	Put(ctx context.Context, n *domain.NotificationRecord) error
	MarkAsRead(ctx context.Context, notificationID string) error
}

// InvestmentRepository is the minimal interface the router requires from an investment store.
type InvestmentRepository interface {
	List(ctx context.Context) ([]domain.InvestmentRecord, error)
	ListByInvestor(ctx context.Context, investorID string) ([]domain.InvestmentRecord, error)
}

// ObjectStore is the minimal interface the router requires from an object storage backend.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// BroadcastPublisher fans new broadcasts out to external subscribers.
type BroadcastPublisher interface {
	PublishBroadcast(ctx context.Context, n *domain.NotificationRecord) error
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	NotificationRepo NotificationRepository
	InvestmentRepo   InvestmentRepository
	ObjectStore      ObjectStore        // nil disables exports
	Publisher        BroadcastPublisher // nil disables fan-out
	Verifier         middleware.TokenVerifier
	Logger           *zap.Logger
	Now              func() time.Time
}
