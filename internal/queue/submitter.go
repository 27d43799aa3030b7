package queue

import (
	"context"
	"time"

	"wulf-order-services/internal/metrics"

	"go.uber.org/zap"
)

type Kind string

const (
	KindReservation   Kind = "reservation.submitted"
	KindCashierOrder  Kind = "order.confirmed"
	KindPayment       Kind = "payment.confirmed"
	KindAdminMutation Kind = "admin.mutation.requested"
)

// Envelope wraps every submitted payload.
type Envelope struct {
	Kind      Kind      `json:"kind"`
	ID        string    `json:"id"`
	ClientID  string    `json:"clientId,omitempty"`
	Payload   any       `json:"payload"`
	CreatedAt time.Time `json:"createdAt"`
}

// Submitter receives confirmed drafts. Nothing downstream persists them.
type Submitter interface {
	Submit(ctx context.Context, env Envelope) error
}

type LogSubmitter struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewLogSubmitter(logger *zap.Logger, m *metrics.Metrics) *LogSubmitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSubmitter{logger: logger, metrics: m}
}

func (s *LogSubmitter) Submit(ctx context.Context, env Envelope) error {
	if env.CreatedAt.IsZero() {
		env.CreatedAt = time.Now().UTC()
	}
	s.logger.Info("submission",
		zap.String("kind", string(env.Kind)),
		zap.String("id", env.ID),
		zap.String("clientId", env.ClientID),
		zap.Any("payload", env.Payload),
	)
	s.metrics.IncSubmission(string(env.Kind), "log")
	return nil
}

// QueueSubmitter logs like LogSubmitter and also publishes the envelope to
// EventsExchange with the kind as routing key.
type QueueSubmitter struct {
	publisher Publisher
	log       *LogSubmitter
	metrics   *metrics.Metrics
}

func NewQueueSubmitter(publisher Publisher, logger *zap.Logger, m *metrics.Metrics) *QueueSubmitter {
	return &QueueSubmitter{publisher: publisher, log: NewLogSubmitter(logger, nil), metrics: m}
}

func (s *QueueSubmitter) Submit(ctx context.Context, env Envelope) error {
	if env.CreatedAt.IsZero() {
		env.CreatedAt = time.Now().UTC()
	}
	_ = s.log.Submit(ctx, env)
	if err := s.publisher.PublishJSON(ctx, EventsExchange, string(env.Kind), env); err != nil {
		s.log.logger.Error("publish submission failed", zap.String("kind", string(env.Kind)), zap.Error(err))
		return err
	}
	s.metrics.IncSubmission(string(env.Kind), "rabbitmq")
	return nil
}
