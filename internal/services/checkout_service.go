package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"karesave-backend/internal/cart"
	"karesave-backend/internal/forms"
	"karesave-backend/internal/models"
	"karesave-backend/internal/repositories"
	"karesave-backend/pkg/messaging"
)

// CartSessions is the part of cart.Manager checkout uses.
type CartSessions interface {
	Session(ctx context.Context, sessionID string) *cart.Store
}

type CheckoutService struct {
	carts     CartSessions
	txManager repositories.TransactionManager
	orderRepo repositories.OrderRepository
	log       *zap.Logger
}

func NewCheckoutService(
	carts CartSessions,
	txManager repositories.TransactionManager,
	orderRepo repositories.OrderRepository,
	log *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		txManager: txManager,
		orderRepo: orderRepo,
		log:       log,
	}
}

// PlaceOrderResult is a placed order. Replayed is set when the idempotency
// key matched an order placed earlier.
type PlaceOrderResult struct {
	Order    *models.Order
	Replayed bool
}

// PlaceOrder writes customer, order, items and an order.placed outbox event
// in one transaction and clears the session cart after commit. A repeated
// idempotency key returns the original order without writing anything.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID string, form forms.CheckoutForm, idempotencyKey string) (*PlaceOrderResult, error) {
	if idempotencyKey != "" {
		if res, err := s.replay(ctx, sessionID, idempotencyKey); res != nil || err != nil {
			return res, err
		}
	}

	if err := form.Validate(); err != nil {
		return nil, err
	}

	store := s.carts.Session(ctx, sessionID)
	snap := store.Snapshot()
	if snap.Empty() {
		return nil, ErrEmptyCart
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.txManager.WithinTx(ctx, func(r repositories.TxRepos) error {
		var err error
		order, err = writeOrder(ctx, r, sessionID, form, snap, idempotencyKey)
		return err
	})
	if err != nil {
		// A concurrent request with the same key may have won the unique index.
		if idempotencyKey != "" {
			if res, replayErr := s.replay(ctx, sessionID, idempotencyKey); res != nil || replayErr != nil {
				return res, replayErr
			}
		}
		return nil, fmt.Errorf("place order: %w", err)
	}

	// Lines added while the order was being written stay in the cart.
	store.Deduct(snap.Items())
	s.log.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("session_id", sessionID),
		zap.Int("items", order.ItemCount),
		zap.Stringer("grand_total", order.GrandTotal),
	)
	return &PlaceOrderResult{Order: order}, nil
}

func (s *CheckoutService) replay(ctx context.Context, sessionID, key string) (*PlaceOrderResult, error) {
	existing, err := s.orderRepo.GetByIdempotencyKey(ctx, key)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("look up idempotency key: %w", err)
	}
	if existing.SessionID != sessionID {
		return nil, ErrIdempotencyConflict
	}
	return &PlaceOrderResult{Order: existing, Replayed: true}, nil
}

func writeOrder(ctx context.Context, r repositories.TxRepos, sessionID string, form forms.CheckoutForm, snap cart.Snapshot, idempotencyKey string) (*models.Order, error) {
	customer := &models.Customer{
		FullName: form.FullName,
		Email:    form.Email,
		Phone:    form.NormalizedPhone(),
		Address:  form.Address,
		City:     form.City,
		State:    form.State,
		Pincode:  form.Pincode,
	}
	if err := r.Customers().Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	order := &models.Order{
		ID:              uuid.New(),
		CustomerID:      customer.ID,
		SessionID:       sessionID,
		ItemCount:       snap.ItemCount,
		Subtotal:        snap.Subtotal,
		Savings:         snap.Savings,
		DeliveryFee:     snap.DeliveryFee,
		GrandTotal:      snap.GrandTotal,
		OrderStatus:     models.OrderStatusConfirmed,
		PaymentMethod:   models.PaymentMethodCOD,
		ShippingAddress: form.ShippingAddress(),
		Notes:           form.Notes,
	}
	if idempotencyKey != "" {
		key := idempotencyKey
		order.IdempotencyKey = &key
	}
	if err := r.Orders().Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	items := make([]models.OrderItem, 0, len(snap.Lines))
	eventItems := make([]map[string]interface{}, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		items = append(items, models.OrderItem{
			OrderID:     order.ID,
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			UnitPrice:   l.Product.Price,
			Quantity:    l.Quantity,
			LineTotal:   l.LineTotal,
		})
		eventItems = append(eventItems, map[string]interface{}{
			"product_id": l.Product.ID,
			"name":       l.Product.Name,
			"quantity":   l.Quantity,
			"line_total": int64(l.LineTotal),
		})
	}
	if err := r.Orders().CreateItems(ctx, items); err != nil {
		return nil, fmt.Errorf("create order items: %w", err)
	}

	event := newOutboxEvent("order", order.ID.String(), messaging.EventOrderPlaced, models.JSONB{
		"order_id":       order.ID.String(),
		"customer_name":  customer.FullName,
		"customer_email": customer.Email,
		"customer_phone": customer.Phone,
		"item_count":     order.ItemCount,
		"subtotal":       int64(order.Subtotal),
		"delivery_fee":   int64(order.DeliveryFee),
		"grand_total":    int64(order.GrandTotal),
		"payment_method": order.PaymentMethod,
		"items":          eventItems,
	})
	if err := r.Outbox().Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create outbox event: %w", err)
	}

	order.Customer = *customer
	order.Items = items
	return order, nil
}

// GetOrder returns an order only to the session that placed it.
func (s *CheckoutService) GetOrder(ctx context.Context, sessionID string, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.SessionID != sessionID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func newOutboxEvent(aggregateType, aggregateID, eventType string, payload models.JSONB) *models.OutboxEvent {
	return &models.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     time.Now().UTC(),
	}
}
