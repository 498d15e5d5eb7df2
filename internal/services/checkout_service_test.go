package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"karesave-backend/internal/cart"
	"karesave-backend/internal/catalog"
	"karesave-backend/internal/forms"
	"karesave-backend/internal/models"
	"karesave-backend/internal/repositories"
	"karesave-backend/pkg/messaging"
	"karesave-backend/pkg/money"
)

type checkoutFixture struct {
	svc       *CheckoutService
	carts     *cart.Manager
	products  *catalog.Catalog
	tx        *txManagerMock
	customers *customerRepoMock
	orders    *orderRepoMock
	outbox    *outboxRepoMock
}

func newCheckoutFixture() *checkoutFixture {
	products := catalog.New(catalog.SeedProducts())
	carts := cart.NewManager(products, cart.DefaultPricing, nil, 0, zap.NewNop())

	customers := &customerRepoMock{}
	orders := &orderRepoMock{}
	outbox := &outboxRepoMock{}
	tx := &txManagerMock{repos: &txReposMock{customers: customers, orders: orders, outbox: outbox}}

	return &checkoutFixture{
		svc:       NewCheckoutService(carts, tx, orders, zap.NewNop()),
		carts:     carts,
		products:  products,
		tx:        tx,
		customers: customers,
		orders:    orders,
		outbox:    outbox,
	}
}

func (f *checkoutFixture) fill(t *testing.T, sessionID string) *cart.Store {
	t.Helper()
	store := f.carts.Session(context.Background(), sessionID)
	biogas, _ := f.products.ProductByID("gg-001")
	compost, _ := f.products.ProductByID("hr-001")
	_, err := store.AddItem(biogas, 2)
	require.NoError(t, err)
	_, err = store.AddItem(compost, 1)
	require.NoError(t, err)
	return store
}

func checkoutForm() forms.CheckoutForm {
	return forms.CheckoutForm{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Phone:    "+91 98765 43210",
		Address:  "12 Lake View Road",
		City:     "Hyderabad",
		State:    "Telangana",
		Pincode:  "500081",
	}
}

func TestPlaceOrder_CommitsOrderAndClearsCart(t *testing.T) {
	f := newCheckoutFixture()
	store := f.fill(t, "s1")

	f.orders.On("GetByIdempotencyKey", mock.Anything, "key-1").Return(nil, repositories.ErrNotFound).Once()
	f.tx.On("WithinTx", mock.Anything).Return(nil).Once()
	f.customers.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Customer) bool {
		return c.FullName == "Asha Rao" && c.Phone == "+919876543210"
	})).Return(nil).Once()
	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o *models.Order) bool {
		return o.IdempotencyKey != nil && *o.IdempotencyKey == "key-1" && o.SessionID == "s1"
	})).Return(nil).Once()
	f.orders.On("CreateItems", mock.Anything, mock.MatchedBy(func(items []models.OrderItem) bool {
		return len(items) == 2 && items[0].ProductID == "gg-001" && items[0].Quantity == 2
	})).Return(nil).Once()
	f.outbox.On("Create", mock.Anything, mock.MatchedBy(func(e *models.OutboxEvent) bool {
		return e.EventType == messaging.EventOrderPlaced && e.AggregateType == "order"
	})).Return(nil).Once()

	res, err := f.svc.PlaceOrder(context.Background(), "s1", checkoutForm(), "key-1")
	require.NoError(t, err)
	assert.False(t, res.Replayed)

	order := res.Order
	assert.Equal(t, 3, order.ItemCount)
	assert.Equal(t, money.Rupees(260), order.Subtotal)
	assert.Equal(t, money.Rupees(50), order.DeliveryFee)
	assert.Equal(t, money.Rupees(310), order.GrandTotal)
	assert.Equal(t, models.OrderStatusConfirmed, order.OrderStatus)
	assert.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)
	assert.Equal(t, "12 Lake View Road, Hyderabad, Telangana - 500081", order.ShippingAddress)
	assert.Len(t, order.Items, 2)

	assert.True(t, store.Snapshot().Empty())
	f.tx.AssertExpectations(t)
	f.customers.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.outbox.AssertExpectations(t)
}

func TestPlaceOrder_KeepsLinesAddedDuringCommit(t *testing.T) {
	f := newCheckoutFixture()
	store := f.fill(t, "s1")
	compost, _ := f.products.ProductByID("hr-001")
	pots, _ := f.products.ProductByID("sbl-001")

	f.tx.On("WithinTx", mock.Anything).Return(nil).Once()
	f.customers.On("Create", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		// Another tab changes the cart while the order is being written.
		_, _ = store.AddItem(compost, 1)
		_, _ = store.AddItem(pots, 1)
	}).Return(nil).Once()
	f.orders.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	f.orders.On("CreateItems", mock.Anything, mock.Anything).Return(nil).Once()
	f.outbox.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	res, err := f.svc.PlaceOrder(context.Background(), "s1", checkoutForm(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Order.ItemCount)

	assert.Equal(t, []cart.Line{{ProductID: "hr-001", Quantity: 1}, {ProductID: "sbl-001", Quantity: 1}}, store.Lines())
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.svc.PlaceOrder(context.Background(), "s1", checkoutForm(), "")
	assert.ErrorIs(t, err, ErrEmptyCart)
	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestPlaceOrder_InvalidForm(t *testing.T) {
	f := newCheckoutFixture()
	f.fill(t, "s1")

	form := checkoutForm()
	form.Pincode = "12"
	_, err := f.svc.PlaceOrder(context.Background(), "s1", form, "")

	verrs, ok := forms.AsValidationErrors(err)
	require.True(t, ok)
	assert.True(t, verrs.Has("pincode"))
	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestPlaceOrder_ReplaysIdempotencyKey(t *testing.T) {
	f := newCheckoutFixture()
	store := f.fill(t, "s1")
	existing := &models.Order{ID: uuid.New(), SessionID: "s1", GrandTotal: money.Rupees(310)}
	f.orders.On("GetByIdempotencyKey", mock.Anything, "key-1").Return(existing, nil).Once()

	res, err := f.svc.PlaceOrder(context.Background(), "s1", checkoutForm(), "key-1")
	require.NoError(t, err)
	assert.True(t, res.Replayed)
	assert.Equal(t, existing.ID, res.Order.ID)

	// Nothing written, cart untouched.
	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
	assert.Equal(t, 3, store.TotalItemCount())
}

func TestPlaceOrder_KeyFromAnotherSession(t *testing.T) {
	f := newCheckoutFixture()
	f.fill(t, "s1")
	f.orders.On("GetByIdempotencyKey", mock.Anything, "key-1").
		Return(&models.Order{ID: uuid.New(), SessionID: "other"}, nil).Once()

	_, err := f.svc.PlaceOrder(context.Background(), "s1", checkoutForm(), "key-1")
	assert.ErrorIs(t, err, ErrIdempotencyConflict)
}

func TestPlaceOrder_RollbackKeepsCart(t *testing.T) {
	f := newCheckoutFixture()
	store := f.fill(t, "s1")
	f.tx.On("WithinTx", mock.Anything).Return(nil).Once()
	f.customers.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	f.orders.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

	_, err := f.svc.PlaceOrder(context.Background(), "s1", checkoutForm(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, 3, store.TotalItemCount())
	f.outbox.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlaceOrder_CancelledContext(t *testing.T) {
	f := newCheckoutFixture()
	store := f.fill(t, "s1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.svc.PlaceOrder(ctx, "s1", checkoutForm(), "")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, store.TotalItemCount())
}

func TestGetOrder_ScopedToSession(t *testing.T) {
	f := newCheckoutFixture()
	id := uuid.New()
	f.orders.On("GetByID", mock.Anything, id).Return(&models.Order{ID: id, SessionID: "s1"}, nil)
	missing := uuid.New()
	f.orders.On("GetByID", mock.Anything, missing).Return(nil, repositories.ErrNotFound)

	order, err := f.svc.GetOrder(context.Background(), "s1", id)
	require.NoError(t, err)
	assert.Equal(t, id, order.ID)

	_, err = f.svc.GetOrder(context.Background(), "s2", id)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = f.svc.GetOrder(context.Background(), "s1", missing)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
