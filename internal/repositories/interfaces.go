package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"karesave-backend/internal/models"
)

// ErrNotFound is returned by every repository lookup that matches nothing.
var ErrNotFound = errors.New("record not found")

// CustomerRepository interface for PostgreSQL customer operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
}

// OrderRepository interface for PostgreSQL order operations
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	CreateItems(ctx context.Context, items []models.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*models.Order, error)
	List(ctx context.Context, limit, offset int) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// OutboxRepository stores events awaiting publication.
type OutboxRepository interface {
	Create(ctx context.Context, event *models.OutboxEvent) error
	ListUnpublished(ctx context.Context, limit int) ([]models.OutboxEvent, error)
	MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}

// RecordRepository covers the append-only outreach tables (contact
// submissions, volunteers, donors, donations, food seekers, seeker requests).
type RecordRepository[T any] interface {
	Create(ctx context.Context, record *T) error
	List(ctx context.Context, limit, offset int) ([]T, error)
}

// AdminUserRepository interface for PostgreSQL admin operations
type AdminUserRepository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// TxRepos are the repositories bound to one open transaction.
type TxRepos interface {
	Customers() CustomerRepository
	Orders() OrderRepository
	Outbox() OutboxRepository
	Contacts() RecordRepository[models.ContactSubmission]
	Volunteers() RecordRepository[models.Volunteer]
	Donors() RecordRepository[models.Donor]
	Donations() RecordRepository[models.Donation]
	FoodSeekers() RecordRepository[models.FoodSeeker]
	SeekerRequests() RecordRepository[models.SeekerRequest]
}

// TransactionManager hides begin/commit/rollback from services. fn's error
// rolls the transaction back and is returned unchanged.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}

// ProductRepository interface for MongoDB catalog operations
type ProductRepository interface {
	// Upsert inserts doc unless a product with the same ID already exists.
	Upsert(ctx context.Context, doc *models.ProductDocument) error
	List(ctx context.Context) ([]models.ProductDocument, error)
}

// ChatMessageRepository interface for MongoDB chat history
type ChatMessageRepository interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error)
}

// InboxRepository interface for the MongoDB admin inbox
type InboxRepository interface {
	// Upsert is keyed by event ID so redelivered events do not duplicate.
	Upsert(ctx context.Context, entry *models.InboxEntry) error
	List(ctx context.Context, unreadOnly bool, limit, offset int) ([]models.InboxEntry, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) error
}
