package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"karesave-backend/internal/cart"
	"karesave-backend/internal/catalog"
	"karesave-backend/internal/forms"
	"karesave-backend/internal/middleware"
	"karesave-backend/internal/models"
	"karesave-backend/internal/services"
	"karesave-backend/pkg/money"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Product{
		{ID: "pot", Name: "Clay Pot", Brand: "Clayer", Category: "Gardening", Price: money.Rupees(300), OriginalPrice: money.Rupees(400), Stock: 10},
		{ID: "comb", Name: "Neem Comb", Brand: "Neem Brush", Category: "Personal Care", Price: money.Rupees(200), Stock: 4},
		{ID: "planter", Name: "Eco Planter", Brand: "SBL Pots", Category: "Gardening", Price: money.Rupees(120), Stock: 32},
		{ID: "gone", Name: "Sold Out Brush", Brand: "Neem Brush", Category: "Personal Care", Price: money.Rupees(80), Stock: 0},
	})
}

func newRouter() *gin.Engine {
	router := gin.New()
	router.Use(middleware.SessionMiddleware(false))
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func newCarts(products *catalog.Catalog) *cart.Manager {
	return cart.NewManager(products, cart.DefaultPricing, nil, 0, zap.NewNop())
}

// Service mocks

type checkoutServiceMock struct{ mock.Mock }

func (m *checkoutServiceMock) PlaceOrder(ctx context.Context, sessionID string, form forms.CheckoutForm, key string) (*services.PlaceOrderResult, error) {
	args := m.Called(ctx, sessionID, form, key)
	res, _ := args.Get(0).(*services.PlaceOrderResult)
	return res, args.Error(1)
}

func (m *checkoutServiceMock) GetOrder(ctx context.Context, sessionID string, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, sessionID, id)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

type outreachServiceMock struct{ mock.Mock }

func (m *outreachServiceMock) SubmitContact(ctx context.Context, form forms.ContactForm) (*models.ContactSubmission, error) {
	args := m.Called(ctx, form)
	r, _ := args.Get(0).(*models.ContactSubmission)
	return r, args.Error(1)
}

func (m *outreachServiceMock) RegisterVolunteer(ctx context.Context, form forms.VolunteerForm) (*models.Volunteer, error) {
	args := m.Called(ctx, form)
	r, _ := args.Get(0).(*models.Volunteer)
	return r, args.Error(1)
}

func (m *outreachServiceMock) RegisterDonor(ctx context.Context, form forms.DonorForm) (*models.Donor, error) {
	args := m.Called(ctx, form)
	r, _ := args.Get(0).(*models.Donor)
	return r, args.Error(1)
}

func (m *outreachServiceMock) PledgeDonation(ctx context.Context, form forms.DonationForm) (*models.Donation, error) {
	args := m.Called(ctx, form)
	r, _ := args.Get(0).(*models.Donation)
	return r, args.Error(1)
}

func (m *outreachServiceMock) RegisterFoodSeeker(ctx context.Context, form forms.FoodSeekerForm) (*models.FoodSeeker, error) {
	args := m.Called(ctx, form)
	r, _ := args.Get(0).(*models.FoodSeeker)
	return r, args.Error(1)
}

func (m *outreachServiceMock) RequestFood(ctx context.Context, form forms.SeekerRequestForm) (*models.SeekerRequest, error) {
	args := m.Called(ctx, form)
	r, _ := args.Get(0).(*models.SeekerRequest)
	return r, args.Error(1)
}

type authServiceMock struct{ mock.Mock }

func (m *authServiceMock) Login(ctx context.Context, req *services.LoginRequest) (*services.AuthResponse, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*services.AuthResponse)
	return r, args.Error(1)
}

func (m *authServiceMock) Refresh(ctx context.Context, token string) (*services.AuthResponse, error) {
	args := m.Called(ctx, token)
	r, _ := args.Get(0).(*services.AuthResponse)
	return r, args.Error(1)
}
