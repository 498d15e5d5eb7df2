package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"karesave-backend/internal/models"
	"karesave-backend/internal/repositories"
	"karesave-backend/pkg/messaging"
)

// OutboxRelay publishes committed outbox rows to Kafka on a ticker. Delivery
// is at least once: a row is marked published only after the broker acks.
type OutboxRelay struct {
	ticker      *time.Ticker
	stopChan    chan bool
	stopOnce    sync.Once
	outboxRepo  repositories.OutboxRepository
	publisher   messaging.Publisher
	topicPrefix string
	interval    time.Duration
	batchSize   int
	log         *zap.Logger
	now         func() time.Time
}

func NewOutboxRelay(
	outboxRepo repositories.OutboxRepository,
	publisher messaging.Publisher,
	topicPrefix string,
	interval time.Duration,
	batchSize int,
	log *zap.Logger,
) *OutboxRelay {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &OutboxRelay{
		stopChan:    make(chan bool),
		outboxRepo:  outboxRepo,
		publisher:   publisher,
		topicPrefix: topicPrefix,
		interval:    interval,
		batchSize:   batchSize,
		log:         log,
		now:         time.Now,
	}
}

func (s *OutboxRelay) Start(ctx context.Context) {
	s.ticker = time.NewTicker(s.interval)

	go func() {
		for {
			select {
			case <-s.ticker.C:
				if _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
					s.log.Warn("outbox relay pass failed", zap.Error(err))
				}
			case <-s.stopChan:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	s.log.Info("outbox relay started", zap.Duration("interval", s.interval))
}

func (s *OutboxRelay) Stop() {
	s.stopOnce.Do(func() {
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.stopChan)
		s.log.Info("outbox relay stopped")
	})
}

// RunOnce publishes one batch in creation order and returns how many rows
// were published. A failed row is recorded and the pass moves on.
func (s *OutboxRelay) RunOnce(ctx context.Context) (int, error) {
	events, err := s.outboxRepo.ListUnpublished(ctx, s.batchSize)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, row := range events {
		if ctx.Err() != nil {
			return published, ctx.Err()
		}
		event, err := toEvent(row)
		if err == nil {
			err = s.publisher.Publish(ctx, messaging.Topic(s.topicPrefix, row.EventType), row.AggregateID, event)
		}
		if err != nil {
			s.log.Warn("outbox publish failed",
				zap.String("event_id", row.ID.String()),
				zap.String("event_type", row.EventType),
				zap.Int("attempts", row.Attempts+1),
				zap.Error(err))
			if markErr := s.outboxRepo.MarkFailed(ctx, row.ID, err.Error()); markErr != nil {
				s.log.Error("failed to record outbox failure", zap.String("event_id", row.ID.String()), zap.Error(markErr))
			}
			continue
		}
		if err := s.outboxRepo.MarkPublished(ctx, row.ID, s.now().UTC()); err != nil {
			// The row will be sent again; consumers dedupe on event ID.
			s.log.Error("failed to mark outbox event published", zap.String("event_id", row.ID.String()), zap.Error(err))
			continue
		}
		published++
	}

	if published > 0 {
		s.log.Debug("outbox events published", zap.Int("count", published))
	}
	return published, nil
}

func toEvent(row models.OutboxEvent) (messaging.Event, error) {
	data, err := json.Marshal(row.Payload)
	if err != nil {
		return messaging.Event{}, err
	}
	return messaging.Event{
		ID:            row.ID.String(),
		Type:          row.EventType,
		AggregateType: row.AggregateType,
		AggregateID:   row.AggregateID,
		OccurredAt:    row.CreatedAt,
		Data:          data,
	}, nil
}
