package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"karesave-backend/internal/models"
)

// Product Repository
type productRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) ProductRepository {
	return &productRepository{
		collection: db.Collection("products"),
	}
}

func (r *productRepository) Upsert(ctx context.Context, doc *models.ProductDocument) error {
	doc.UpdatedAt = time.Now()

	// Seeding must not overwrite stock or prices edited in MongoDB.
	filter := bson.M{"product_id": doc.Product.ID}
	update := bson.M{"$setOnInsert": doc}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *productRepository) List(ctx context.Context) ([]models.ProductDocument, error) {
	var docs []models.ProductDocument

	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

// Chat Message Repository
type chatMessageRepository struct {
	collection *mongo.Collection
}

func NewChatMessageRepository(db *mongo.Database) ChatMessageRepository {
	return &chatMessageRepository{
		collection: db.Collection("messages"),
	}
}

func (r *chatMessageRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, msg)
	if err != nil {
		return err
	}
	msg.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *chatMessageRepository) ListBySession(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage

	filter := bson.M{"session_id": sessionID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

// Inbox Repository
type inboxRepository struct {
	collection *mongo.Collection
}

func NewInboxRepository(db *mongo.Database) InboxRepository {
	return &inboxRepository{
		collection: db.Collection("inbox"),
	}
}

func (r *inboxRepository) Upsert(ctx context.Context, entry *models.InboxEntry) error {
	if entry.ReceivedAt.IsZero() {
		entry.ReceivedAt = time.Now()
	}

	filter := bson.M{"event_id": entry.EventID}
	update := bson.M{"$setOnInsert": entry}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *inboxRepository) List(ctx context.Context, unreadOnly bool, limit, offset int) ([]models.InboxEntry, error) {
	var entries []models.InboxEntry

	filter := bson.M{}
	if unreadOnly {
		filter["read"] = false
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "received_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *inboxRepository) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IsNotFound reports lookups that matched nothing in either store.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, mongo.ErrNoDocuments)
}
