package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"karesave-backend/pkg/money"
)

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, j)
}

// StringArray is stored as a JSONB array.
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, s)
}

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"

	PaymentMethodCOD = "cod"
)

// Customer model - PostgreSQL. One row per placed order; guests are not
// deduplicated.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Email     string    `gorm:"not null;index" json:"email"`
	Phone     string    `gorm:"not null" json:"phone"`
	Address   string    `gorm:"not null" json:"address"`
	City      string    `gorm:"not null" json:"city"`
	State     string    `gorm:"not null" json:"state"`
	Pincode   string    `gorm:"not null" json:"pincode"`
	CreatedAt time.Time `json:"created_at"`
}

// Order model - PostgreSQL (critical transactional data). Amounts are paise.
type Order struct {
	ID              uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID      uuid.UUID   `gorm:"type:uuid;not null" json:"customer_id"`
	Customer        Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	SessionID       string      `gorm:"not null;index" json:"-"`
	IdempotencyKey  *string     `gorm:"uniqueIndex" json:"-"`
	ItemCount       int         `gorm:"not null" json:"item_count"`
	Subtotal        money.Money `gorm:"type:bigint;not null" json:"subtotal"`
	Savings         money.Money `gorm:"type:bigint;not null;default:0" json:"savings"`
	DeliveryFee     money.Money `gorm:"type:bigint;not null" json:"delivery_fee"`
	GrandTotal      money.Money `gorm:"type:bigint;not null" json:"grand_total"`
	OrderStatus     string      `gorm:"default:pending" json:"order_status"` // pending, confirmed, shipped, delivered, cancelled
	PaymentMethod   string      `gorm:"default:cod" json:"payment_method"`
	ShippingAddress string      `gorm:"not null" json:"shipping_address"`
	Notes           string      `json:"notes,omitempty"`
	Items           []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   string      `gorm:"not null" json:"product_id"`
	ProductName string      `gorm:"not null" json:"product_name"`
	UnitPrice   money.Money `gorm:"type:bigint;not null" json:"unit_price"`
	Quantity    int         `gorm:"not null" json:"quantity"`
	LineTotal   money.Money `gorm:"type:bigint;not null" json:"line_total"`
}

// OutboxEvent is written in the same transaction as the state change it
// announces and published later by the relay.
type OutboxEvent struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AggregateType string     `gorm:"not null" json:"aggregate_type"`
	AggregateID   string     `gorm:"not null" json:"aggregate_id"`
	EventType     string     `gorm:"not null;index" json:"event_type"`
	Payload       JSONB      `gorm:"type:jsonb" json:"payload"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	PublishedAt   *time.Time `gorm:"index" json:"published_at"`
	Attempts      int        `gorm:"default:0" json:"attempts"`
	LastError     string     `json:"last_error,omitempty"`
}

// ContactSubmission model - PostgreSQL (contact page messages)
type ContactSubmission struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `gorm:"not null" json:"subject"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type Volunteer struct {
	ID              uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName        string      `gorm:"not null" json:"full_name"`
	Email           string      `gorm:"not null" json:"email"`
	Phone           string      `gorm:"not null" json:"phone"`
	Address         string      `json:"address"`
	City            string      `json:"city"`
	State           string      `json:"state"`
	Pincode         string      `json:"pincode"`
	ExperienceLevel string      `json:"experience_level"`
	Availability    string      `json:"availability"`
	Skills          StringArray `gorm:"type:jsonb" json:"skills"`
	Motivation      string      `json:"motivation"`
	CreatedAt       time.Time   `json:"created_at"`
}

type Donor struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DonorType        string    `gorm:"not null" json:"donor_type"` // individual, corporate, foundation, ngo
	OrganizationName string    `json:"organization_name"`
	ContactPerson    string    `gorm:"not null" json:"contact_person"`
	Email            string    `gorm:"not null" json:"email"`
	Phone            string    `gorm:"not null" json:"phone"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	Pincode          string    `json:"pincode"`
	DonationInterest string    `json:"donation_interest"`
	Message          string    `json:"message"`
	CreatedAt        time.Time `json:"created_at"`
}

type Donation struct {
	ID         uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string      `gorm:"not null" json:"name"`
	Email      string      `gorm:"not null" json:"email"`
	Phone      string      `gorm:"not null" json:"phone"`
	PAN        string      `json:"pan,omitempty"`
	Amount     money.Money `gorm:"type:bigint;not null;default:0" json:"amount"`
	Purpose    string      `json:"purpose"`
	FoodAmount string      `json:"food_amount,omitempty"`
	IsEdible   bool        `json:"is_edible"`
	CreatedAt  time.Time   `json:"created_at"`
}

type FoodSeeker struct {
	ID                  uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationType    string    `gorm:"not null" json:"organization_type"`
	OrganizationName    string    `gorm:"not null" json:"organization_name"`
	ContactPerson       string    `gorm:"not null" json:"contact_person"`
	Email               string    `gorm:"not null" json:"email"`
	Phone               string    `gorm:"not null" json:"phone"`
	Address             string    `json:"address"`
	City                string    `json:"city"`
	State               string    `json:"state"`
	Pincode             string    `json:"pincode"`
	PeopleServed        string    `json:"people_served"`
	FoodRequirement     string    `json:"food_requirement"`
	PreferredTime       string    `json:"preferred_time"`
	SpecialRequirements string    `json:"special_requirements"`
	Message             string    `json:"message"`
	CreatedAt           time.Time `json:"created_at"`
}

type SeekerRequest struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrgName         string    `gorm:"not null" json:"org_name"`
	ContactPerson   string    `gorm:"not null" json:"contact_person"`
	Email           string    `gorm:"not null" json:"email"`
	Phone           string    `gorm:"not null" json:"phone"`
	OrgType         string    `json:"org_type"`
	FoodRequired    string    `gorm:"not null" json:"food_required"`
	Quantity        string    `json:"quantity"`
	IsEdible        bool      `json:"is_edible"`
	AdditionalNotes string    `json:"additional_notes"`
	CreatedAt       time.Time `json:"created_at"`
}

// AdminUser model - PostgreSQL (back office accounts)
type AdminUser struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string      `gorm:"not null" json:"name"`
	Email        string      `gorm:"uniqueIndex;not null" json:"email"`
	Role         string      `gorm:"not null" json:"role"`
	Permissions  StringArray `gorm:"type:jsonb" json:"permissions"`
	PasswordHash string      `gorm:"not null" json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
	LastLoginAt  *time.Time  `json:"last_login_at"`
	IsActive     bool        `gorm:"default:true" json:"is_active"`
}

// AllPostgresModels lists every table for auto-migration.
func AllPostgresModels() []interface{} {
	return []interface{}{
		&Customer{},
		&Order{},
		&OrderItem{},
		&OutboxEvent{},
		&ContactSubmission{},
		&Volunteer{},
		&Donor{},
		&Donation{},
		&FoodSeeker{},
		&SeekerRequest{},
		&AdminUser{},
	}
}
