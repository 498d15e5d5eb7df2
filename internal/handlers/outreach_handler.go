package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"karesave-backend/internal/forms"
)

type OutreachHandler struct {
	outreachService OutreachServiceInterface
}

func NewOutreachHandler(outreachService OutreachServiceInterface) *OutreachHandler {
	return &OutreachHandler{outreachService: outreachService}
}

func (h *OutreachHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/contact", h.SubmitContact)
	router.POST("/volunteers", h.RegisterVolunteer)
	router.POST("/donors", h.RegisterDonor)
	router.POST("/donations", h.PledgeDonation)
	router.POST("/food-seekers", h.RegisterFoodSeeker)
	router.POST("/seeker-requests", h.RequestFood)

	router.GET("/volunteers/skills", h.SkillOptions)
	router.GET("/donations/presets", h.DonationPresets)
	router.GET("/seeker-requests/org-types", h.OrgTypes)
}

// submit binds F, calls fn and answers 201 with the stored record.
func submit[F any, R any](c *gin.Context, message string, fn func(ctx context.Context, form F) (R, error)) {
	var form F
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}
	record, err := fn(c.Request.Context(), form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": message,
		"data":    record,
	})
}

// @Summary Contact us
// @Tags outreach
// @Accept json
// @Produce json
// @Param request body forms.ContactForm true "Message"
// @Success 201 {object} models.ContactSubmission
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/contact [post]
func (h *OutreachHandler) SubmitContact(c *gin.Context) {
	submit(c, "Thank you for contacting us. We will get back to you soon.", h.outreachService.SubmitContact)
}

func (h *OutreachHandler) RegisterVolunteer(c *gin.Context) {
	submit(c, "Thank you for registering as a volunteer.", h.outreachService.RegisterVolunteer)
}

func (h *OutreachHandler) RegisterDonor(c *gin.Context) {
	submit(c, "Thank you for registering as a donor.", h.outreachService.RegisterDonor)
}

func (h *OutreachHandler) PledgeDonation(c *gin.Context) {
	submit(c, "Thank you for your donation pledge.", h.outreachService.PledgeDonation)
}

func (h *OutreachHandler) RegisterFoodSeeker(c *gin.Context) {
	submit(c, "Registration received. Our team will contact you.", h.outreachService.RegisterFoodSeeker)
}

func (h *OutreachHandler) RequestFood(c *gin.Context) {
	submit(c, "Food request received. We will reach out shortly.", h.outreachService.RequestFood)
}

func (h *OutreachHandler) SkillOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"skills": forms.SkillOptions})
}

func (h *OutreachHandler) DonationPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"amounts": forms.PresetAmounts})
}

func (h *OutreachHandler) OrgTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"org_types": forms.OrgTypes})
}
