package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"karesave-backend/internal/forms"
	"karesave-backend/internal/models"
	"karesave-backend/pkg/messaging"
	"karesave-backend/pkg/money"
)

func outboxOf(eventType string) interface{} {
	return mock.MatchedBy(func(e *models.OutboxEvent) bool { return e.EventType == eventType })
}

func TestSubmitContact(t *testing.T) {
	contacts := &recordRepoMock[models.ContactSubmission]{}
	outbox := &outboxRepoMock{}
	tx := &txManagerMock{repos: &txReposMock{contacts: contacts, outbox: outbox}}
	svc := NewOutreachService(tx, zap.NewNop())

	tx.On("WithinTx", mock.Anything).Return(nil)
	contacts.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	outbox.On("Create", mock.Anything, outboxOf(messaging.EventContactSubmitted)).Return(nil).Once()

	rec, err := svc.SubmitContact(context.Background(), forms.ContactForm{
		Name:    "  Ravi  ",
		Email:   "ravi@example.com",
		Subject: "Bulk order",
		Message: "Do you ship to Vizag?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ravi", rec.Name)
	contacts.AssertExpectations(t)
	outbox.AssertExpectations(t)
}

func TestSubmitContact_Invalid(t *testing.T) {
	tx := &txManagerMock{}
	svc := NewOutreachService(tx, zap.NewNop())

	_, err := svc.SubmitContact(context.Background(), forms.ContactForm{Email: "nope"})
	verrs, ok := forms.AsValidationErrors(err)
	require.True(t, ok)
	assert.True(t, verrs.Has("email"))
	assert.True(t, verrs.Has("message"))
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestPledgeDonation_CustomAmountWins(t *testing.T) {
	donations := &recordRepoMock[models.Donation]{}
	outbox := &outboxRepoMock{}
	tx := &txManagerMock{repos: &txReposMock{donations: donations, outbox: outbox}}
	svc := NewOutreachService(tx, zap.NewNop())

	tx.On("WithinTx", mock.Anything).Return(nil)
	donations.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	outbox.On("Create", mock.Anything, outboxOf(messaging.EventDonationPledged)).Return(nil).Once()

	rec, err := svc.PledgeDonation(context.Background(), forms.DonationForm{
		Name:   "Meera",
		Email:  "meera@example.com",
		Phone:  "9876543210",
		PAN:    "abcde1234f",
		Preset: 1000,
		Custom: 750,
		Cause:  "biogas",
	})
	require.NoError(t, err)
	assert.Equal(t, money.Rupees(750), rec.Amount)
	assert.Equal(t, "biogas", rec.Purpose)
	assert.Equal(t, "ABCDE1234F", rec.PAN)
}

func TestRegisterVolunteer_OutboxFailureRollsBack(t *testing.T) {
	volunteers := &recordRepoMock[models.Volunteer]{}
	outbox := &outboxRepoMock{}
	tx := &txManagerMock{repos: &txReposMock{volunteers: volunteers, outbox: outbox}}
	svc := NewOutreachService(tx, zap.NewNop())

	tx.On("WithinTx", mock.Anything).Return(nil)
	volunteers.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	outbox.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	_, err := svc.RegisterVolunteer(context.Background(), forms.VolunteerForm{
		FullName: "Kiran",
		Email:    "kiran@example.com",
		Phone:    "9876543210",
		Address:  "4 MG Road",
		City:     "Bengaluru",
		State:    "Karnataka",
		Pincode:  "560001",
		Skills:   []string{"Fundraising"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register volunteer")
}

func TestRequestFood(t *testing.T) {
	requests := &recordRepoMock[models.SeekerRequest]{}
	outbox := &outboxRepoMock{}
	tx := &txManagerMock{repos: &txReposMock{seekerRequests: requests, outbox: outbox}}
	svc := NewOutreachService(tx, zap.NewNop())

	tx.On("WithinTx", mock.Anything).Return(nil)
	requests.On("Create", mock.Anything, mock.MatchedBy(func(r *models.SeekerRequest) bool {
		return r.OrgName == "Asha Home" && r.OrgType == "Orphanage"
	})).Return(nil).Once()
	outbox.On("Create", mock.Anything, outboxOf(messaging.EventSeekerRequested)).Return(nil).Once()

	_, err := svc.RequestFood(context.Background(), forms.SeekerRequestForm{
		OrgName:       "Asha Home",
		ContactPerson: "Lata",
		Email:         "lata@example.com",
		Phone:         "9876543210",
		OrgType:       "Orphanage",
		FoodRequired:  "Rice and dal",
		Quantity:      "40 meals",
	})
	require.NoError(t, err)
	requests.AssertExpectations(t)
}
