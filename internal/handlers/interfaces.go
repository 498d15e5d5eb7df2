package handlers

import (
	"context"

	"github.com/google/uuid"

	"karesave-backend/internal/cart"
	"karesave-backend/internal/catalog"
	"karesave-backend/internal/forms"
	"karesave-backend/internal/models"
	"karesave-backend/internal/services"
)

// ProductCatalog is the read side of the catalog used by the shop and cart.
type ProductCatalog interface {
	ProductByID(id string) (catalog.Product, bool)
	Find(q catalog.Query) []catalog.Product
	Featured() []catalog.Product
	Related(id string, limit int) []catalog.Product
	Brands() []string
	Categories() []string
	BrandBySlug(slug string) (string, bool)
	ByBrand(brand string) []catalog.Product
}

// CartSessions hands out the cart for a browsing session.
type CartSessions interface {
	Session(ctx context.Context, sessionID string) *cart.Store
}

// CheckoutServiceInterface defines the contract for checkout
type CheckoutServiceInterface interface {
	PlaceOrder(ctx context.Context, sessionID string, form forms.CheckoutForm, idempotencyKey string) (*services.PlaceOrderResult, error)
	GetOrder(ctx context.Context, sessionID string, orderID uuid.UUID) (*models.Order, error)
}

// OutreachServiceInterface defines the contract for the community forms
type OutreachServiceInterface interface {
	SubmitContact(ctx context.Context, form forms.ContactForm) (*models.ContactSubmission, error)
	RegisterVolunteer(ctx context.Context, form forms.VolunteerForm) (*models.Volunteer, error)
	RegisterDonor(ctx context.Context, form forms.DonorForm) (*models.Donor, error)
	PledgeDonation(ctx context.Context, form forms.DonationForm) (*models.Donation, error)
	RegisterFoodSeeker(ctx context.Context, form forms.FoodSeekerForm) (*models.FoodSeeker, error)
	RequestFood(ctx context.Context, form forms.SeekerRequestForm) (*models.SeekerRequest, error)
}

type ChatServiceInterface interface {
	Send(ctx context.Context, sessionID string, req services.SendMessageRequest) (*services.ChatExchange, error)
	History(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	QuickReplies(lang string) []string
}

// AuthServiceInterface defines the contract for admin authentication
type AuthServiceInterface interface {
	Login(ctx context.Context, req *services.LoginRequest) (*services.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*services.AuthResponse, error)
}

type AdminServiceInterface interface {
	ListOrders(ctx context.Context, page services.Page) ([]models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
	ListContacts(ctx context.Context, page services.Page) ([]models.ContactSubmission, error)
	ListVolunteers(ctx context.Context, page services.Page) ([]models.Volunteer, error)
	ListDonors(ctx context.Context, page services.Page) ([]models.Donor, error)
	ListDonations(ctx context.Context, page services.Page) ([]models.Donation, error)
	ListFoodSeekers(ctx context.Context, page services.Page) ([]models.FoodSeeker, error)
	ListSeekerRequests(ctx context.Context, page services.Page) ([]models.SeekerRequest, error)
	ListInbox(ctx context.Context, unreadOnly bool, page services.Page) ([]models.InboxEntry, error)
	MarkInboxRead(ctx context.Context, id string) error
}
