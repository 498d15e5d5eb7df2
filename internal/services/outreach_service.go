package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"karesave-backend/internal/forms"
	"karesave-backend/internal/models"
	"karesave-backend/internal/repositories"
	"karesave-backend/pkg/messaging"
	"karesave-backend/pkg/money"
)

// OutreachService stores the community forms. Each submission and its
// outbox event commit together.
type OutreachService struct {
	txManager repositories.TransactionManager
	log       *zap.Logger
}

func NewOutreachService(txManager repositories.TransactionManager, log *zap.Logger) *OutreachService {
	return &OutreachService{txManager: txManager, log: log}
}

func (s *OutreachService) SubmitContact(ctx context.Context, form forms.ContactForm) (*models.ContactSubmission, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	record := &models.ContactSubmission{
		Name:    strings.TrimSpace(form.Name),
		Email:   form.Email,
		Phone:   form.Phone,
		Subject: strings.TrimSpace(form.Subject),
		Message: form.Message,
	}
	err := s.txManager.WithinTx(ctx, func(r repositories.TxRepos) error {
		if err := r.Contacts().Create(ctx, record); err != nil {
			return err
		}
		return r.Outbox().Create(ctx, newOutboxEvent("contact", record.ID.String(), messaging.EventContactSubmitted, models.JSONB{
			"name":    record.Name,
			"email":   record.Email,
			"phone":   record.Phone,
			"subject": record.Subject,
			"message": record.Message,
		}))
	})
	if err != nil {
		return nil, fmt.Errorf("submit contact: %w", err)
	}
	s.log.Info("contact message received", zap.String("id", record.ID.String()))
	return record, nil
}

func (s *OutreachService) RegisterVolunteer(ctx context.Context, form forms.VolunteerForm) (*models.Volunteer, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	record := &models.Volunteer{
		FullName:        strings.TrimSpace(form.FullName),
		Email:           form.Email,
		Phone:           form.Phone,
		Address:         form.Address,
		City:            form.City,
		State:           form.State,
		Pincode:         form.Pincode,
		ExperienceLevel: form.ExperienceLevel,
		Availability:    form.Availability,
		Skills:          models.StringArray(form.Skills),
		Motivation:      form.Motivation,
	}
	err := s.txManager.WithinTx(ctx, func(r repositories.TxRepos) error {
		if err := r.Volunteers().Create(ctx, record); err != nil {
			return err
		}
		return r.Outbox().Create(ctx, newOutboxEvent("volunteer", record.ID.String(), messaging.EventVolunteerRegistered, models.JSONB{
			"name":    record.FullName,
			"email":   record.Email,
			"phone":   record.Phone,
			"city":    record.City,
			"summary": form.Summary(),
		}))
	})
	if err != nil {
		return nil, fmt.Errorf("register volunteer: %w", err)
	}
	s.log.Info("volunteer registered", zap.String("id", record.ID.String()))
	return record, nil
}

func (s *OutreachService) RegisterDonor(ctx context.Context, form forms.DonorForm) (*models.Donor, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	record := &models.Donor{
		DonorType:        form.DonorType,
		OrganizationName: strings.TrimSpace(form.OrganizationName),
		ContactPerson:    strings.TrimSpace(form.ContactPerson),
		Email:            form.Email,
		Phone:            form.Phone,
		Address:          form.Address,
		City:             form.City,
		State:            form.State,
		Pincode:          form.Pincode,
		DonationInterest: form.DonationInterest,
		Message:          form.Message,
	}
	err := s.txManager.WithinTx(ctx, func(r repositories.TxRepos) error {
		if err := r.Donors().Create(ctx, record); err != nil {
			return err
		}
		return r.Outbox().Create(ctx, newOutboxEvent("donor", record.ID.String(), messaging.EventDonorRegistered, models.JSONB{
			"name":    record.ContactPerson,
			"email":   record.Email,
			"phone":   record.Phone,
			"summary": form.Summary(),
		}))
	})
	if err != nil {
		return nil, fmt.Errorf("register donor: %w", err)
	}
	s.log.Info("donor registered", zap.String("id", record.ID.String()), zap.String("donor_type", record.DonorType))
	return record, nil
}

func (s *OutreachService) PledgeDonation(ctx context.Context, form forms.DonationForm) (*models.Donation, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	record := &models.Donation{
		Name:       strings.TrimSpace(form.Name),
		Email:      form.Email,
		Phone:      form.Phone,
		PAN:        strings.ToUpper(form.PAN),
		Amount:     money.Rupees(form.Amount()),
		Purpose:    form.Purpose(),
		FoodAmount: form.FoodAmount,
		IsEdible:   form.IsEdible,
	}
	err := s.txManager.WithinTx(ctx, func(r repositories.TxRepos) error {
		if err := r.Donations().Create(ctx, record); err != nil {
			return err
		}
		return r.Outbox().Create(ctx, newOutboxEvent("donation", record.ID.String(), messaging.EventDonationPledged, models.JSONB{
			"name":        record.Name,
			"email":       record.Email,
			"phone":       record.Phone,
			"amount":      int64(record.Amount),
			"purpose":     record.Purpose,
			"food_amount": record.FoodAmount,
		}))
	})
	if err != nil {
		return nil, fmt.Errorf("pledge donation: %w", err)
	}
	s.log.Info("donation pledged", zap.String("id", record.ID.String()), zap.Stringer("amount", record.Amount))
	return record, nil
}

func (s *OutreachService) RegisterFoodSeeker(ctx context.Context, form forms.FoodSeekerForm) (*models.FoodSeeker, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	record := &models.FoodSeeker{
		OrganizationType:    form.OrganizationType,
		OrganizationName:    strings.TrimSpace(form.OrganizationName),
		ContactPerson:       strings.TrimSpace(form.ContactPerson),
		Email:               form.Email,
		Phone:               form.Phone,
		Address:             form.Address,
		City:                form.City,
		State:               form.State,
		Pincode:             form.Pincode,
		PeopleServed:        form.PeopleServed,
		FoodRequirement:     form.FoodRequirement,
		PreferredTime:       form.PreferredTime,
		SpecialRequirements: form.SpecialRequirements,
		Message:             form.Message,
	}
	err := s.txManager.WithinTx(ctx, func(r repositories.TxRepos) error {
		if err := r.FoodSeekers().Create(ctx, record); err != nil {
			return err
		}
		return r.Outbox().Create(ctx, newOutboxEvent("food_seeker", record.ID.String(), messaging.EventFoodSeekerRegistered, models.JSONB{
			"organization":  record.OrganizationName,
			"contact":       record.ContactPerson,
			"email":         record.Email,
			"phone":         record.Phone,
			"people_served": record.PeopleServed,
		}))
	})
	if err != nil {
		return nil, fmt.Errorf("register food seeker: %w", err)
	}
	s.log.Info("food seeker registered", zap.String("id", record.ID.String()))
	return record, nil
}

func (s *OutreachService) RequestFood(ctx context.Context, form forms.SeekerRequestForm) (*models.SeekerRequest, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	record := &models.SeekerRequest{
		OrgName:         strings.TrimSpace(form.OrgName),
		ContactPerson:   strings.TrimSpace(form.ContactPerson),
		Email:           form.Email,
		Phone:           form.Phone,
		OrgType:         form.OrgType,
		FoodRequired:    form.FoodRequired,
		Quantity:        form.Quantity,
		IsEdible:        form.IsEdible,
		AdditionalNotes: form.AdditionalNotes,
	}
	err := s.txManager.WithinTx(ctx, func(r repositories.TxRepos) error {
		if err := r.SeekerRequests().Create(ctx, record); err != nil {
			return err
		}
		return r.Outbox().Create(ctx, newOutboxEvent("seeker_request", record.ID.String(), messaging.EventSeekerRequested, models.JSONB{
			"organization":  record.OrgName,
			"contact":       record.ContactPerson,
			"email":         record.Email,
			"phone":         record.Phone,
			"food_required": record.FoodRequired,
			"quantity":      record.Quantity,
		}))
	})
	if err != nil {
		return nil, fmt.Errorf("request food: %w", err)
	}
	s.log.Info("food request received", zap.String("id", record.ID.String()))
	return record, nil
}
