package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/crowdfund-dashboard/internal/domain"
	"github.com/crowdfund-dashboard/internal/pkg/id"
	"github.com/crowdfund-dashboard/internal/pkg/validate"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	Feed(ctx context.Context, p domain.Principal) ([]domain.NormalizedNotification, error)
	ListPersonal(ctx context.Context, p domain.Principal) ([]domain.NotificationRecord, error)
	ListBroadcast(ctx context.Context) ([]domain.NotificationRecord, error)
	MarkAsRead(ctx context.Context, notificationID string, p domain.Principal) (*domain.NotificationRecord, error)
	PublishBroadcast(ctx context.Context, input domain.BroadcastInput) (*domain.NotificationRecord, error)
}

type notificationStore interface {
	ListPersonal(ctx context.Context, userID string) ([]domain.NotificationRecord, error)
	ListBroadcast(ctx context.Context) ([]domain.NotificationRecord, error)
	Get(ctx context.Context, notificationID string) (*domain.NotificationRecord, error)
	Put(ctx context.Context, n *domain.NotificationRecord) error
	MarkAsRead(ctx context.Context, notificationID string) error
}

// Publisher fans a broadcast out to subscribers outside the dashboard.
type Publisher interface {
	PublishBroadcast(ctx context.Context, n *domain.NotificationRecord) error
}

type ServiceDeps struct {
	Repo      notificationStore
	Publisher Publisher // optional
	Logger    *zap.Logger
	Now       func() time.Time
}

type service struct {
	repo      notificationStore
	publisher Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		repo:      deps.Repo,
		publisher: deps.Publisher,
		log:       deps.Logger,
		now:       deps.Now,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Feed fetches both sources concurrently and merges them. A source that fails
// contributes nothing; the feed itself never fails because of it.
func (s *service) Feed(ctx context.Context, p domain.Principal) ([]domain.NormalizedNotification, error) {
	var personal, broadcast []domain.NotificationRecord

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		recs, err := s.repo.ListPersonal(egCtx, p.UserID)
		if err != nil {
			s.log.Warn("personal notifications unavailable", zap.String("user_id", p.UserID), zap.Error(err))
			return nil
		}
		personal = recs
		return nil
	})
	eg.Go(func() error {
		recs, err := s.repo.ListBroadcast(egCtx)
		if err != nil {
			s.log.Warn("broadcast notifications unavailable", zap.Error(err))
			return nil
		}
		broadcast = recs
		return nil
	})
	_ = eg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	feed := Merge(personal, broadcast)
	now := s.now()
	for i := range feed {
		feed[i].Time = FormatRelative(feed[i].RawTime, now)
	}
	return feed, nil
}

func (s *service) ListPersonal(ctx context.Context, p domain.Principal) ([]domain.NotificationRecord, error) {
	return s.repo.ListPersonal(ctx, p.UserID)
}

func (s *service) ListBroadcast(ctx context.Context) ([]domain.NotificationRecord, error) {
	return s.repo.ListBroadcast(ctx)
}

func (s *service) MarkAsRead(ctx context.Context, notificationID string, p domain.Principal) (*domain.NotificationRecord, error) {
	n, err := s.repo.Get(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if !n.IsPersonal() {
		return nil, fmt.Errorf("broadcast notifications have no read state: %w", domain.ErrBadRequest)
	}
	if *n.ReceiverID != p.UserID {
		return nil, fmt.Errorf("notification belongs to another user: %w", domain.ErrForbidden)
	}
	if n.Read {
		return n, nil
	}
	if err := s.repo.MarkAsRead(ctx, notificationID); err != nil {
		return nil, err
	}
	n.Read = true
	return n, nil
}

func (s *service) PublishBroadcast(ctx context.Context, input domain.BroadcastInput) (*domain.NotificationRecord, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	receiverType := input.ReceiverType
	if receiverType == "" {
		receiverType = domain.DefaultNotificationTitle
	}
	n := &domain.NotificationRecord{
		ID:           id.NewAt(s.now()),
		ReceiverType: receiverType,
		Audience:     domain.AudienceBroadcast,
		Message:      input.Message,
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
	}
	if err := s.repo.Put(ctx, n); err != nil {
		return nil, err
	}
	if s.publisher != nil {
		if err := s.publisher.PublishBroadcast(ctx, n); err != nil {
			s.log.Warn("broadcast fan-out failed", zap.String("notification_id", n.ID), zap.Error(err))
		}
	}
	return n, nil
}
