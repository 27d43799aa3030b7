package queue

import (
	"context"
	"encoding/json"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	EventsExchange = "wulf.events"
	AuditExchange  = "wulf.audit"
	AuditQueue     = "wulf.audit.log"
	AuditDLQ       = "wulf.audit.dlq"
	AuditDeadRK    = "dead"
)

// EnsureEventsTopology declares the events exchange and an audit queue bound
// to every submission, dead-lettering into AuditDLQ.
func EnsureEventsTopology(qc *Client) error {
	if qc == nil {
		return nil
	}
	if err := qc.EnsureExchangeKind(EventsExchange, "topic"); err != nil {
		return err
	}
	if err := qc.EnsureExchangeKind(AuditExchange, "direct"); err != nil {
		return err
	}
	if _, err := qc.EnsureQueueWithArgs(AuditDLQ, nil); err != nil {
		return err
	}
	if err := qc.BindQueue(AuditDLQ, AuditExchange, AuditDeadRK); err != nil {
		return err
	}
	_, err := qc.EnsureQueueWithArgs(AuditQueue, amqp.Table{
		"x-dead-letter-exchange":    AuditExchange,
		"x-dead-letter-routing-key": AuditDeadRK,
	})
	if err != nil {
		return err
	}
	for _, rk := range []string{"reservation.#", "order.#", "payment.#", "admin.#"} {
		if err := qc.BindQueue(AuditQueue, EventsExchange, rk); err != nil {
			return err
		}
	}
	return nil
}

// AuditHandler logs every submission envelope. Envelopes without a kind are
// acknowledged and skipped; undecodable bodies are returned as errors so they
// go through the retry path.
func AuditHandler(logger *zap.Logger) HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, body []byte) error {
		var env Envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return err
		}
		if strings.TrimSpace(string(env.Kind)) == "" {
			return nil
		}
		logger.Info("submission audited",
			zap.String("kind", string(env.Kind)),
			zap.String("id", env.ID),
			zap.String("clientId", env.ClientID),
			zap.Time("createdAt", env.CreatedAt),
		)
		return nil
	}
}
