package forms

import (
	"fmt"
	"strings"
)

// CheckoutForm is the delivery details collected at checkout.
type CheckoutForm struct {
	FullName string `json:"full_name" validate:"notblank,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"phone"`
	Address  string `json:"address" validate:"notblank,max=500"`
	City     string `json:"city" validate:"notblank,max=80"`
	State    string `json:"state" validate:"notblank,max=80"`
	Pincode  string `json:"pincode" validate:"pincode"`
	Notes    string `json:"notes" validate:"max=1000"`
}

func (f CheckoutForm) Validate() error {
	return check(f)
}

// ShippingAddress renders the address the way it is printed on the order.
func (f CheckoutForm) ShippingAddress() string {
	return fmt.Sprintf("%s, %s, %s - %s",
		strings.TrimSpace(f.Address), strings.TrimSpace(f.City),
		strings.TrimSpace(f.State), strings.TrimSpace(f.Pincode))
}

// NormalizedPhone strips spaces and dashes.
func (f CheckoutForm) NormalizedPhone() string {
	return normalizePhone(f.Phone)
}

var SkillOptions = []string{
	"Environmental Education",
	"Composting & Organic Farming",
	"Community Outreach",
	"Event Organization",
	"Social Media Marketing",
	"Photography/Videography",
	"Fundraising",
	"Data Analysis",
	"Technical Support",
	"Translation Services",
}

type VolunteerForm struct {
	FullName        string   `json:"full_name" validate:"notblank,max=120"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone" validate:"phone"`
	Address         string   `json:"address" validate:"notblank,max=500"`
	City            string   `json:"city" validate:"notblank"`
	State           string   `json:"state" validate:"notblank"`
	Pincode         string   `json:"pincode" validate:"pincode"`
	ExperienceLevel string   `json:"experience_level" validate:"omitempty,oneof=beginner intermediate experienced expert"`
	Availability    string   `json:"availability" validate:"omitempty,oneof=weekends weekdays flexible few-hours-week full-time"`
	Skills          []string `json:"skills"`
	Motivation      string   `json:"motivation" validate:"max=2000"`
}

func (f VolunteerForm) Validate() error {
	var extra []ValidationError
	for i, s := range f.Skills {
		if !contains(SkillOptions, s) {
			extra = append(extra, ValidationError{Field: fmt.Sprintf("skills[%d]", i), Reason: "is not a known skill"})
		}
	}
	return check(f, extra...)
}

// Summary is the text forwarded to the admin inbox.
func (f VolunteerForm) Summary() string {
	return fmt.Sprintf("Experience: %s\nAvailability: %s\nSkills: %s\nMotivation: %s",
		f.ExperienceLevel, f.Availability, strings.Join(f.Skills, ", "), f.Motivation)
}

type DonorForm struct {
	DonorType        string `json:"donor_type" validate:"required,oneof=individual corporate foundation ngo"`
	OrganizationName string `json:"organization_name" validate:"max=200"`
	ContactPerson    string `json:"contact_person" validate:"notblank,max=120"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"phone"`
	Address          string `json:"address" validate:"notblank,max=500"`
	City             string `json:"city" validate:"notblank"`
	State            string `json:"state" validate:"notblank"`
	Pincode          string `json:"pincode" validate:"pincode"`
	DonationInterest string `json:"donation_interest" validate:"omitempty,oneof=vermicompost biogas eco-products education community general"`
	Message          string `json:"message" validate:"max=2000"`
}

func (f DonorForm) Validate() error {
	var extra []ValidationError
	if f.DonorType != "" && f.DonorType != "individual" && strings.TrimSpace(f.OrganizationName) == "" {
		extra = append(extra, ValidationError{Field: "organization_name", Reason: "is required for " + f.DonorType + " donors"})
	}
	return check(f, extra...)
}

func (f DonorForm) Summary() string {
	return fmt.Sprintf("Donor type: %s\nOrganization: %s\nInterest: %s\nMessage: %s",
		f.DonorType, f.OrganizationName, f.DonationInterest, f.Message)
}

// PresetAmounts are the one-click donation amounts in rupees.
var PresetAmounts = []int64{500, 1000, 2500, 5000, 10000, 25000}

type DonationForm struct {
	Name   string `json:"name" validate:"notblank,max=120"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone" validate:"phone"`
	PAN    string `json:"pan" validate:"omitempty,pan"`
	Preset int64  `json:"preset_amount"`
	Custom int64  `json:"custom_amount" validate:"gte=0"`
	Cause  string `json:"cause" validate:"omitempty,oneof=vermicompost biogas education community"`
	// FoodAmount describes an in-kind food donation.
	FoodAmount string `json:"food_amount" validate:"max=500"`
	IsEdible   bool   `json:"is_edible"`
}

// Amount is the custom amount when given, otherwise the preset.
func (f DonationForm) Amount() int64 {
	if f.Custom > 0 {
		return f.Custom
	}
	return f.Preset
}

func (f DonationForm) Validate() error {
	var extra []ValidationError
	if f.Preset != 0 && !containsInt(PresetAmounts, f.Preset) {
		extra = append(extra, ValidationError{Field: "preset_amount", Reason: "is not a preset amount"})
	}
	if f.Amount() <= 0 && strings.TrimSpace(f.FoodAmount) == "" {
		extra = append(extra, ValidationError{Field: "amount", Reason: "enter a donation amount or food donation"})
	}
	return check(f, extra...)
}

// Purpose falls back to a food donation when no cause is picked.
func (f DonationForm) Purpose() string {
	if f.Cause == "" {
		return "food"
	}
	return f.Cause
}

type FoodSeekerForm struct {
	OrganizationType    string `json:"organization_type" validate:"required,oneof=ngo orphanage oldage school community religious shelter other"`
	OrganizationName    string `json:"organization_name" validate:"notblank,max=200"`
	ContactPerson       string `json:"contact_person" validate:"notblank,max=120"`
	Email               string `json:"email" validate:"required,email"`
	Phone               string `json:"phone" validate:"phone"`
	Address             string `json:"address" validate:"notblank,max=500"`
	City                string `json:"city" validate:"notblank"`
	State               string `json:"state" validate:"notblank"`
	Pincode             string `json:"pincode" validate:"pincode"`
	PeopleServed        string `json:"people_served" validate:"omitempty,oneof=1-25 26-50 51-100 101-200 200+"`
	FoodRequirement     string `json:"food_requirement" validate:"omitempty,oneof=lunch dinner both breakfast all"`
	PreferredTime       string `json:"preferred_time" validate:"max=120"`
	SpecialRequirements string `json:"special_requirements" validate:"max=1000"`
	Message             string `json:"message" validate:"max=2000"`
}

func (f FoodSeekerForm) Validate() error {
	return check(f)
}

var OrgTypes = []string{"Orphanage", "Old Age Home", "NGO", "Community Center", "Other"}

// SeekerRequestForm is the quick food request form.
type SeekerRequestForm struct {
	OrgName         string `json:"org_name" validate:"notblank,max=200"`
	ContactPerson   string `json:"contact_person" validate:"notblank,max=120"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"phone"`
	OrgType         string `json:"org_type"`
	FoodRequired    string `json:"food_required" validate:"notblank,max=500"`
	Quantity        string `json:"quantity" validate:"max=120"`
	IsEdible        bool   `json:"is_edible"`
	AdditionalNotes string `json:"additional_notes" validate:"max=1000"`
}

func (f SeekerRequestForm) Validate() error {
	var extra []ValidationError
	if f.OrgType != "" && !contains(OrgTypes, f.OrgType) {
		extra = append(extra, ValidationError{Field: "org_type", Reason: "must be one of: " + strings.Join(OrgTypes, ", ")})
	}
	return check(f, extra...)
}

type ContactForm struct {
	Name    string `json:"name" validate:"notblank,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,phone"`
	Subject string `json:"subject" validate:"notblank,max=200"`
	Message string `json:"message" validate:"notblank,max=5000"`
}

func (f ContactForm) Validate() error {
	return check(f)
}

func containsInt(list []int64, v int64) bool {
	for _, n := range list {
		if n == v {
			return true
		}
	}
	return false
}
