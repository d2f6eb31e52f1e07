package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Fashion-Store/Aradaa/internal/idempotency"
	"github.com/Fashion-Store/Aradaa/internal/notify"
	"github.com/Fashion-Store/Aradaa/internal/orders"
)

// Deduper remembers which orders already had their confirmation sent.
type Deduper interface {
	Create(ctx context.Context, key, orderID, requestHash string) error
	Get(ctx context.Context, key string) (*idempotency.Record, error)
	MarkDone(ctx context.Context, key, responseBody string, responseStatus int) error
	MarkFailed(ctx context.Context, key, note string) error
}

// Processor sends order confirmations for order-placed events.
type Processor struct {
	notifier notify.Notifier
	dedup    Deduper
	log      *slog.Logger
}

// NewProcessor returns a Processor. dedup may be nil.
func NewProcessor(n notify.Notifier, dedup Deduper, log *slog.Logger) *Processor {
	return &Processor{notifier: n, dedup: dedup, log: log}
}

// Handle processes a batch and reports the records that should be retried.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	p.log.InfoContext(ctx, "received batch", slog.Int("records", len(ev.Records)))

	for _, rec := range ev.Records {
		err := p.processMessage(ctx, rec)
		if err == nil {
			continue
		}
		if errors.Is(err, errPoison) {
			// retrying cannot fix a body we cannot read
			p.log.ErrorContext(ctx, "dropping message", slog.String("message_id", rec.MessageId), slog.Any("err", err))
			continue
		}
		p.log.WarnContext(ctx, "message failed, will retry", slog.String("message_id", rec.MessageId), slog.Any("err", err))
		resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: rec.MessageId})
	}
	return resp, nil
}

var errPoison = errors.New("unprocessable message")

func dedupKey(orderID string) string { return "order-confirmation#" + orderID }

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg orders.PlacedEvent
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("%w: invalid body: %v", errPoison, err)
	}
	if msg.OrderID == "" {
		return fmt.Errorf("%w: missing order_id", errPoison)
	}

	log := p.log.With(
		slog.String("order_id", msg.OrderID),
		slog.String("correlation_id", msg.CorrelationID),
	)

	if msg.CustomerEmail == "" {
		log.InfoContext(ctx, "no customer email, skipping confirmation")
		return nil
	}

	if p.dedup != nil {
		sent, err := p.alreadySent(ctx, msg.OrderID)
		if err != nil {
			return err
		}
		if sent {
			log.InfoContext(ctx, "confirmation already sent")
			return nil
		}
	}

	if err := p.notifier.NotifyOrder(ctx, msg); err != nil {
		if p.dedup != nil {
			_ = p.dedup.MarkFailed(ctx, dedupKey(msg.OrderID), err.Error())
		}
		return fmt.Errorf("notify order: %w", err)
	}

	if p.dedup != nil {
		if err := p.dedup.MarkDone(ctx, dedupKey(msg.OrderID), "", 0); err != nil {
			log.WarnContext(ctx, "could not record confirmation", slog.Any("err", err))
		}
	}
	log.InfoContext(ctx, "confirmation sent")
	return nil
}

// alreadySent claims the order's dedup record. It reports true only when a
// previous delivery completed.
func (p *Processor) alreadySent(ctx context.Context, orderID string) (bool, error) {
	key := dedupKey(orderID)
	err := p.dedup.Create(ctx, key, orderID, "")
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, idempotency.ErrAlreadyExists) {
		return false, fmt.Errorf("dedup create: %w", err)
	}

	rec, err := p.dedup.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("dedup get: %w", err)
	}
	return rec.Status == idempotency.StatusDone, nil
}
