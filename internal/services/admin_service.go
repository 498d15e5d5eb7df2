package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"karesave-backend/internal/models"
	"karesave-backend/internal/repositories"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Page is a limit/offset window.
type Page struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func (p Page) normalize() Page {
	if p.Limit <= 0 {
		p.Limit = defaultPageSize
	}
	if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

var orderTransitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:   {models.OrderStatusDelivered},
}

var ErrInvalidStatusTransition = errors.New("invalid order status transition")

// AdminService backs the back office: orders, outreach submissions and the
// event inbox.
type AdminService struct {
	repos     repositories.TxRepos
	inboxRepo repositories.InboxRepository
	log       *zap.Logger
}

// NewAdminService accepts a nil inboxRepo when MongoDB is not configured.
func NewAdminService(repos repositories.TxRepos, inboxRepo repositories.InboxRepository, log *zap.Logger) *AdminService {
	return &AdminService{repos: repos, inboxRepo: inboxRepo, log: log}
}

func (s *AdminService) ListOrders(ctx context.Context, page Page) ([]models.Order, error) {
	page = page.normalize()
	return s.repos.Orders().List(ctx, page.Limit, page.Offset)
}

func (s *AdminService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repos.Orders().GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

// UpdateOrderStatus moves an order forward along
// pending -> confirmed -> shipped -> delivered, or to cancelled before shipping.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !allowedTransition(order.OrderStatus, status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidStatusTransition, order.OrderStatus, status)
	}
	if err := s.repos.Orders().UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.log.Info("order status updated",
		zap.String("order_id", id.String()),
		zap.String("from", order.OrderStatus),
		zap.String("to", status))
	order.OrderStatus = status
	return order, nil
}

func allowedTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *AdminService) ListContacts(ctx context.Context, page Page) ([]models.ContactSubmission, error) {
	page = page.normalize()
	return s.repos.Contacts().List(ctx, page.Limit, page.Offset)
}

func (s *AdminService) ListVolunteers(ctx context.Context, page Page) ([]models.Volunteer, error) {
	page = page.normalize()
	return s.repos.Volunteers().List(ctx, page.Limit, page.Offset)
}

func (s *AdminService) ListDonors(ctx context.Context, page Page) ([]models.Donor, error) {
	page = page.normalize()
	return s.repos.Donors().List(ctx, page.Limit, page.Offset)
}

func (s *AdminService) ListDonations(ctx context.Context, page Page) ([]models.Donation, error) {
	page = page.normalize()
	return s.repos.Donations().List(ctx, page.Limit, page.Offset)
}

func (s *AdminService) ListFoodSeekers(ctx context.Context, page Page) ([]models.FoodSeeker, error) {
	page = page.normalize()
	return s.repos.FoodSeekers().List(ctx, page.Limit, page.Offset)
}

func (s *AdminService) ListSeekerRequests(ctx context.Context, page Page) ([]models.SeekerRequest, error) {
	page = page.normalize()
	return s.repos.SeekerRequests().List(ctx, page.Limit, page.Offset)
}

func (s *AdminService) ListInbox(ctx context.Context, unreadOnly bool, page Page) ([]models.InboxEntry, error) {
	if s.inboxRepo == nil {
		return nil, ErrInboxUnavailable
	}
	page = page.normalize()
	return s.inboxRepo.List(ctx, unreadOnly, page.Limit, page.Offset)
}

func (s *AdminService) MarkInboxRead(ctx context.Context, id string) error {
	if s.inboxRepo == nil {
		return ErrInboxUnavailable
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repositories.ErrNotFound
	}
	return s.inboxRepo.MarkRead(ctx, oid)
}
