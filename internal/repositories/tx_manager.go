package repositories

import (
	"context"

	"gorm.io/gorm"

	"karesave-backend/internal/models"
)

type txReposGorm struct {
	customers      CustomerRepository
	orders         OrderRepository
	outbox         OutboxRepository
	contacts       RecordRepository[models.ContactSubmission]
	volunteers     RecordRepository[models.Volunteer]
	donors         RecordRepository[models.Donor]
	donations      RecordRepository[models.Donation]
	foodSeekers    RecordRepository[models.FoodSeeker]
	seekerRequests RecordRepository[models.SeekerRequest]
}

// NewGormRepos binds every repository to db, which may be a transaction.
func NewGormRepos(db *gorm.DB) TxRepos {
	return &txReposGorm{
		customers:      NewCustomerRepository(db),
		orders:         NewOrderRepository(db),
		outbox:         NewOutboxRepository(db),
		contacts:       NewRecordRepository[models.ContactSubmission](db),
		volunteers:     NewRecordRepository[models.Volunteer](db),
		donors:         NewRecordRepository[models.Donor](db),
		donations:      NewRecordRepository[models.Donation](db),
		foodSeekers:    NewRecordRepository[models.FoodSeeker](db),
		seekerRequests: NewRecordRepository[models.SeekerRequest](db),
	}
}

func (r *txReposGorm) Customers() CustomerRepository {
	return r.customers
}

func (r *txReposGorm) Orders() OrderRepository {
	return r.orders
}

func (r *txReposGorm) Outbox() OutboxRepository {
	return r.outbox
}

func (r *txReposGorm) Contacts() RecordRepository[models.ContactSubmission] {
	return r.contacts
}

func (r *txReposGorm) Volunteers() RecordRepository[models.Volunteer] {
	return r.volunteers
}

func (r *txReposGorm) Donors() RecordRepository[models.Donor] {
	return r.donors
}

func (r *txReposGorm) Donations() RecordRepository[models.Donation] {
	return r.donations
}

func (r *txReposGorm) FoodSeekers() RecordRepository[models.FoodSeeker] {
	return r.foodSeekers
}

func (r *txReposGorm) SeekerRequests() RecordRepository[models.SeekerRequest] {
	return r.seekerRequests
}

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormRepos(tx))
	})
}
