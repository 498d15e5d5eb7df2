package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher is what the outbox relay needs from a broker.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, event Event) error
}

type KafkaProducer struct {
	brokers []string

	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

type KafkaConsumer struct {
	brokers []string
	groupID string
	log     *zap.Logger

	mu      sync.Mutex
	readers []*kafka.Reader
}

func NewKafkaProducer(brokers []string) *KafkaProducer {
	return &KafkaProducer{
		brokers: brokers,
		writers: make(map[string]*kafka.Writer),
	}
}

func NewKafkaConsumer(brokers []string, groupID string, log *zap.Logger) *KafkaConsumer {
	return &KafkaConsumer{
		brokers: brokers,
		groupID: groupID,
		log:     log,
	}
}

func (kp *KafkaProducer) GetWriter(topic string) *kafka.Writer {
	kp.mu.Lock()
	defer kp.mu.Unlock()

	if writer, exists := kp.writers[topic]; exists {
		return writer
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(kp.brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}
	kp.writers[topic] = writer
	return writer
}

// Publish writes one event keyed by key, so events of one aggregate stay on
// one partition in order.
func (kp *KafkaProducer) Publish(ctx context.Context, topic, key string, event Event) error {
	writer := kp.GetWriter(topic)

	jsonData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	message := kafka.Message{
		Key:   []byte(key),
		Value: jsonData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	return writer.WriteMessages(ctx, message)
}

func (kp *KafkaProducer) Close() {
	kp.mu.Lock()
	defer kp.mu.Unlock()
	for _, writer := range kp.writers {
		writer.Close()
	}
}

// Consume reads topics as one consumer group member until ctx is done. A
// handler error is logged and the message is still committed: the projection
// is best-effort and a poison message must not stall the group.
func (kc *KafkaConsumer) Consume(ctx context.Context, topics []string, handler func(context.Context, Event) error) error {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     kc.brokers,
		GroupID:     kc.groupID,
		GroupTopics: topics,
		MinBytes:    1,
		MaxBytes:    10e6, // 10MB
		MaxWait:     time.Second,
	})
	kc.mu.Lock()
	kc.readers = append(kc.readers, reader)
	kc.mu.Unlock()

	for {
		message, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				return nil
			}
			kc.log.Warn("kafka fetch failed", zap.Strings("topics", topics), zap.Error(err))
			select {
			case <-time.After(time.Second):
				continue
			case <-ctx.Done():
				return nil
			}
		}

		var event Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			kc.log.Warn("dropping undecodable message",
				zap.String("topic", message.Topic), zap.Int64("offset", message.Offset), zap.Error(err))
		} else if err := handler(ctx, event); err != nil {
			kc.log.Warn("event handler failed",
				zap.String("topic", message.Topic), zap.String("event_id", event.ID), zap.Error(err))
		}

		if err := reader.CommitMessages(ctx, message); err != nil && ctx.Err() == nil {
			kc.log.Warn("kafka commit failed", zap.String("topic", message.Topic), zap.Error(err))
		}
	}
}

func (kc *KafkaConsumer) Close() {
	kc.mu.Lock()
	defer kc.mu.Unlock()
	for _, reader := range kc.readers {
		reader.Close()
	}
}

// Event is the envelope for everything the storefront publishes.
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Data          json.RawMessage `json:"data"`
}

// Event types
const (
	EventOrderPlaced          = "order.placed"
	EventContactSubmitted     = "contact.submitted"
	EventVolunteerRegistered  = "volunteer.registered"
	EventDonorRegistered      = "donor.registered"
	EventDonationPledged      = "donation.pledged"
	EventFoodSeekerRegistered = "food_seeker.registered"
	EventSeekerRequested      = "seeker_request.created"
)

// Topic is the Kafka topic for an event type under prefix.
func Topic(prefix, eventType string) string {
	if prefix == "" {
		return eventType
	}
	return prefix + "." + eventType
}

// Topics lists every storefront topic under prefix.
func Topics(prefix string) []string {
	types := []string{
		EventOrderPlaced,
		EventContactSubmitted,
		EventVolunteerRegistered,
		EventDonorRegistered,
		EventDonationPledged,
		EventFoodSeekerRegistered,
		EventSeekerRequested,
	}
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = Topic(prefix, t)
	}
	return out
}
