package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"karesave-backend/internal/catalog"
)

// ProductDocument model - MongoDB (catalog mirror, keyed by product_id)
type ProductDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Product   catalog.Product    `bson:",inline" json:"product"`
	SortOrder int                `bson:"sort_order" json:"-"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// ChatMessage model - MongoDB (chat history per browsing session)
type ChatMessage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID   string             `bson:"session_id" json:"-"`
	Text        string             `bson:"text" json:"text"`
	IsBot       bool               `bson:"is_bot" json:"is_bot"`
	Language    string             `bson:"language,omitempty" json:"language,omitempty"`
	Suggestions []string           `bson:"suggestions,omitempty" json:"suggestions,omitempty"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}

// InboxEntry model - MongoDB (admin notifications projected from events)
type InboxEntry struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	EventID     string                 `bson:"event_id" json:"event_id"`
	EventType   string                 `bson:"event_type" json:"event_type"`
	AggregateID string                 `bson:"aggregate_id" json:"aggregate_id"`
	Subject     string                 `bson:"subject" json:"subject"`
	Summary     string                 `bson:"summary" json:"summary"`
	Data        map[string]interface{} `bson:"data,omitempty" json:"data"`
	Read        bool                   `bson:"read" json:"read"`
	OccurredAt  time.Time              `bson:"occurred_at" json:"occurred_at"`
	ReceivedAt  time.Time              `bson:"received_at" json:"received_at"`
}
