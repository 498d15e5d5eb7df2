package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"karesave-backend/internal/models"
	"karesave-backend/internal/repositories"
	"karesave-backend/pkg/messaging"
	"karesave-backend/pkg/money"
)

// EventConsumer is the subscribing half of the broker.
type EventConsumer interface {
	Consume(ctx context.Context, topics []string, handler func(context.Context, messaging.Event) error) error
}

// InboxProjector turns storefront events into admin inbox entries.
type InboxProjector struct {
	consumer  EventConsumer
	inboxRepo repositories.InboxRepository
	topics    []string
	log       *zap.Logger
	now       func() time.Time
}

func NewInboxProjector(consumer EventConsumer, inboxRepo repositories.InboxRepository, topicPrefix string, log *zap.Logger) *InboxProjector {
	return &InboxProjector{
		consumer:  consumer,
		inboxRepo: inboxRepo,
		topics:    messaging.Topics(topicPrefix),
		log:       log,
		now:       time.Now,
	}
}

// Run blocks until ctx is done.
func (p *InboxProjector) Run(ctx context.Context) error {
	p.log.Info("inbox projector started", zap.Strings("topics", p.topics))
	return p.consumer.Consume(ctx, p.topics, p.Handle)
}

// Handle upserts one entry. A redelivered event leaves its entry as is.
func (p *InboxProjector) Handle(ctx context.Context, event messaging.Event) error {
	var data map[string]interface{}
	if len(event.Data) > 0 {
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return fmt.Errorf("decode %s payload: %w", event.Type, err)
		}
	}

	entry := &models.InboxEntry{
		EventID:     event.ID,
		EventType:   event.Type,
		AggregateID: event.AggregateID,
		Subject:     subjectFor(event.Type, data),
		Summary:     summaryFor(event.Type, data),
		Data:        data,
		OccurredAt:  event.OccurredAt,
		ReceivedAt:  p.now().UTC(),
	}
	return p.inboxRepo.Upsert(ctx, entry)
}

func subjectFor(eventType string, data map[string]interface{}) string {
	switch eventType {
	case messaging.EventOrderPlaced:
		return "New order from " + str(data, "customer_name")
	case messaging.EventContactSubmitted:
		return "Contact: " + str(data, "subject")
	case messaging.EventVolunteerRegistered:
		return "New volunteer: " + str(data, "name")
	case messaging.EventDonorRegistered:
		return "New donor: " + str(data, "name")
	case messaging.EventDonationPledged:
		return "Donation pledge from " + str(data, "name")
	case messaging.EventFoodSeekerRegistered:
		return "Food seeker registration: " + str(data, "organization")
	case messaging.EventSeekerRequested:
		return "Food request from " + str(data, "organization")
	default:
		return eventType
	}
}

func summaryFor(eventType string, data map[string]interface{}) string {
	switch eventType {
	case messaging.EventOrderPlaced:
		return fmt.Sprintf("%v item(s), total %s, cash on delivery. Phone: %s",
			data["item_count"], paise(data, "grand_total"), str(data, "customer_phone"))
	case messaging.EventContactSubmitted:
		return fmt.Sprintf("%s <%s>: %s", str(data, "name"), str(data, "email"), str(data, "message"))
	case messaging.EventVolunteerRegistered, messaging.EventDonorRegistered:
		return str(data, "summary")
	case messaging.EventDonationPledged:
		if amount, _ := data["amount"].(float64); amount == 0 {
			return "Food donation: " + str(data, "food_amount")
		}
		if food := str(data, "food_amount"); food != "" {
			return fmt.Sprintf("%s towards %s, plus food: %s", paise(data, "amount"), str(data, "purpose"), food)
		}
		return fmt.Sprintf("%s towards %s", paise(data, "amount"), str(data, "purpose"))
	case messaging.EventFoodSeekerRegistered:
		return fmt.Sprintf("Serves %s people. Contact %s, %s", str(data, "people_served"), str(data, "contact"), str(data, "phone"))
	case messaging.EventSeekerRequested:
		return fmt.Sprintf("Needs %s (%s). Contact %s, %s",
			str(data, "food_required"), str(data, "quantity"), str(data, "contact"), str(data, "phone"))
	default:
		return ""
	}
}

func str(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

// paise renders a paise amount that came back from JSON as float64.
func paise(data map[string]interface{}, key string) string {
	v, _ := data[key].(float64)
	return money.Money(int64(v)).String()
}
