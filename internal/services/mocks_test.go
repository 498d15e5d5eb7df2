package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"karesave-backend/internal/models"
	"karesave-backend/internal/repositories"
	"karesave-backend/pkg/messaging"
)

// TxManager / TxRepos mocks

// txManagerMock runs fn against fixed repos so unit tests never open a
// transaction.
type txManagerMock struct {
	mock.Mock
	repos repositories.TxRepos
}

func (m *txManagerMock) WithinTx(ctx context.Context, fn func(r repositories.TxRepos) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.repos)
}

type txReposMock struct {
	customers      repositories.CustomerRepository
	orders         repositories.OrderRepository
	outbox         repositories.OutboxRepository
	contacts       repositories.RecordRepository[models.ContactSubmission]
	volunteers     repositories.RecordRepository[models.Volunteer]
	donors         repositories.RecordRepository[models.Donor]
	donations      repositories.RecordRepository[models.Donation]
	foodSeekers    repositories.RecordRepository[models.FoodSeeker]
	seekerRequests repositories.RecordRepository[models.SeekerRequest]
}

func (r *txReposMock) Customers() repositories.CustomerRepository {
	return r.customers
}

func (r *txReposMock) Orders() repositories.OrderRepository {
	return r.orders
}

func (r *txReposMock) Outbox() repositories.OutboxRepository {
	return r.outbox
}

func (r *txReposMock) Contacts() repositories.RecordRepository[models.ContactSubmission] {
	return r.contacts
}

func (r *txReposMock) Volunteers() repositories.RecordRepository[models.Volunteer] {
	return r.volunteers
}

func (r *txReposMock) Donors() repositories.RecordRepository[models.Donor] {
	return r.donors
}

func (r *txReposMock) Donations() repositories.RecordRepository[models.Donation] {
	return r.donations
}

func (r *txReposMock) FoodSeekers() repositories.RecordRepository[models.FoodSeeker] {
	return r.foodSeekers
}

func (r *txReposMock) SeekerRequests() repositories.RecordRepository[models.SeekerRequest] {
	return r.seekerRequests
}

// Repository mocks

type customerRepoMock struct{ mock.Mock }

func (m *customerRepoMock) Create(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	if args.Error(0) == nil {
		customer.ID = uuid.New()
	}
	return args.Error(0)
}

type orderRepoMock struct{ mock.Mock }

func (m *orderRepoMock) Create(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *orderRepoMock) CreateItems(ctx context.Context, items []models.OrderItem) error {
	return m.Called(ctx, items).Error(0)
}

func (m *orderRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *orderRepoMock) GetByIdempotencyKey(ctx context.Context, key string) (*models.Order, error) {
	args := m.Called(ctx, key)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *orderRepoMock) List(ctx context.Context, limit, offset int) ([]models.Order, error) {
	args := m.Called(ctx, limit, offset)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

func (m *orderRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type outboxRepoMock struct{ mock.Mock }

func (m *outboxRepoMock) Create(ctx context.Context, event *models.OutboxEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *outboxRepoMock) ListUnpublished(ctx context.Context, limit int) ([]models.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	events, _ := args.Get(0).([]models.OutboxEvent)
	return events, args.Error(1)
}

func (m *outboxRepoMock) MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *outboxRepoMock) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}

type recordRepoMock[T any] struct{ mock.Mock }

func (m *recordRepoMock[T]) Create(ctx context.Context, record *T) error {
	return m.Called(ctx, record).Error(0)
}

func (m *recordRepoMock[T]) List(ctx context.Context, limit, offset int) ([]T, error) {
	args := m.Called(ctx, limit, offset)
	records, _ := args.Get(0).([]T)
	return records, args.Error(1)
}

type adminRepoMock struct{ mock.Mock }

func (m *adminRepoMock) Create(ctx context.Context, user *models.AdminUser) error {
	return m.Called(ctx, user).Error(0)
}

func (m *adminRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.AdminUser)
	return u, args.Error(1)
}

func (m *adminRepoMock) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.AdminUser)
	return u, args.Error(1)
}

func (m *adminRepoMock) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type productRepoMock struct{ mock.Mock }

func (m *productRepoMock) Upsert(ctx context.Context, doc *models.ProductDocument) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *productRepoMock) List(ctx context.Context) ([]models.ProductDocument, error) {
	args := m.Called(ctx)
	docs, _ := args.Get(0).([]models.ProductDocument)
	return docs, args.Error(1)
}

type chatRepoMock struct{ mock.Mock }

func (m *chatRepoMock) Create(ctx context.Context, msg *models.ChatMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *chatRepoMock) ListBySession(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	args := m.Called(ctx, sessionID, limit)
	msgs, _ := args.Get(0).([]models.ChatMessage)
	return msgs, args.Error(1)
}

type inboxRepoMock struct{ mock.Mock }

func (m *inboxRepoMock) Upsert(ctx context.Context, entry *models.InboxEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *inboxRepoMock) List(ctx context.Context, unreadOnly bool, limit, offset int) ([]models.InboxEntry, error) {
	args := m.Called(ctx, unreadOnly, limit, offset)
	entries, _ := args.Get(0).([]models.InboxEntry)
	return entries, args.Error(1)
}

func (m *inboxRepoMock) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

// Messaging mocks

type publisherMock struct{ mock.Mock }

func (m *publisherMock) Publish(ctx context.Context, topic, key string, event messaging.Event) error {
	return m.Called(ctx, topic, key, event).Error(0)
}

type consumerStub struct {
	topics []string
	events []messaging.Event
}

func (c *consumerStub) Consume(ctx context.Context, topics []string, handler func(context.Context, messaging.Event) error) error {
	c.topics = topics
	for _, e := range c.events {
		_ = handler(ctx, e)
	}
	return nil
}
