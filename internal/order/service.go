package order

import (
	"context"
	"storefront-be/internal/events"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type Service interface {
	Checkout(ctx context.Context, userID uint) (*Order, error)
	ListMine(ctx context.Context, userID uint) ([]*Order, error)
	GetForUser(ctx context.Context, orderID, userID uint) (*Order, error)
	GetForAdmin(ctx context.Context, orderID uint) (*Order, error)
	ListAll(ctx context.Context, status string) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status string) (*Order, error)
}

type service struct {
	repo      Repository
	publisher events.Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewService(repo Repository, publisher events.Publisher, m *metrics.Metrics) Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &service{repo: repo, publisher: publisher, metrics: m, now: time.Now}
}

func (s *service) Checkout(ctx context.Context, userID uint) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.Uint("user_id", userID),
	)

	if userID == 0 {
		return nil, ErrUnauthorized
	}

	timer := metrics.StartTimer()
	o, err := s.repo.Checkout(ctx, userID)
	s.metrics.Checkout(err, timer.Duration())
	if err != nil {
		return nil, err
	}

	log.Info("order created",
		zap.Uint("order_id", o.ID),
		zap.Int("items", len(o.Items)),
		zap.Duration("took", timer.Duration()),
	)

	s.publish(ctx, events.TopicOrderCreated, o.ID, toCreatedEvent(o))
	return o, nil
}

func (s *service) ListMine(ctx context.Context, userID uint) ([]*Order, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	return s.repo.ListByUser(ctx, userID)
}

// GetForUser returns the order only to its owner.
func (s *service) GetForUser(ctx context.Context, orderID, userID uint) (*Order, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.UserID != userID {
		logger.FromCtx(ctx).Warn("order access denied",
			zap.Uint("order_id", orderID),
			zap.Uint("user_id", userID),
		)
		return nil, ErrForbidden
	}

	return o, nil
}

// GetForAdmin skips the ownership check; callers are gated on the admin flag.
func (s *service) GetForAdmin(ctx context.Context, orderID uint) (*Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

func (s *service) ListAll(ctx context.Context, status string) ([]*Order, error) {
	return s.repo.ListAll(ctx, status)
}

// UpdateStatus overwrites the order status. Any recognised status may follow
// any other.
func (s *service) UpdateStatus(ctx context.Context, orderID uint, status string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.Uint("order_id", orderID),
	)

	st, err := ParseStatus(status)
	if err != nil {
		log.Info("status update rejected", zap.String("status", status))
		return nil, err
	}

	previous, err := s.repo.UpdateStatus(ctx, orderID, st)
	if err != nil {
		return nil, err
	}
	s.metrics.OrderStatusChanged(string(st))

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	log.Info("order status updated",
		zap.String("from", string(previous)),
		zap.String("to", string(st)),
	)

	s.publish(ctx, events.TopicOrderStatusChanged, o.ID, toStatusChangedEvent(o, previous, s.now()))
	return o, nil
}

// publish runs after commit; a failed publish never undoes the order change.
func (s *service) publish(ctx context.Context, topic string, orderID uint, payload any) {
	err := s.publisher.Publish(ctx, topic, strconv.FormatUint(uint64(orderID), 10), payload)
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to publish order event",
			zap.String("topic", topic),
			zap.Uint("order_id", orderID),
			zap.Error(err),
		)
	}
}
