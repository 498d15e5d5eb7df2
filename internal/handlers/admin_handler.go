package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"karesave-backend/internal/middleware"
	"karesave-backend/internal/services"
)

type AdminHandler struct {
	adminService AdminServiceInterface
}

func NewAdminHandler(adminService AdminServiceInterface) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// RegisterRoutes registers the back office routes; all require an admin token.
func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	admin := router.Group("/admin", authMiddleware.AuthRequired(), authMiddleware.AdminRequired())
	{
		admin.GET("/orders", h.ListOrders)
		admin.GET("/orders/:id", h.GetOrder)
		admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)

		admin.GET("/contacts", list(h.adminService.ListContacts))
		admin.GET("/volunteers", list(h.adminService.ListVolunteers))
		admin.GET("/donors", list(h.adminService.ListDonors))
		admin.GET("/donations", list(h.adminService.ListDonations))
		admin.GET("/food-seekers", list(h.adminService.ListFoodSeekers))
		admin.GET("/seeker-requests", list(h.adminService.ListSeekerRequests))

		admin.GET("/inbox", h.ListInbox)
		admin.POST("/inbox/:id/read", h.MarkInboxRead)
	}
}

// list adapts a paged lister to a handler answering {"data": [...]}.
func list[T any](fn func(ctx context.Context, page services.Page) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var page services.Page
		if err := c.ShouldBindQuery(&page); err != nil {
			badRequest(c, err)
			return
		}
		records, err := fn(c.Request.Context(), page)
		if err != nil {
			respondError(c, err)
			return
		}
		if records == nil {
			records = []T{}
		}
		c.JSON(http.StatusOK, gin.H{"data": records})
	}
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	list(h.adminService.ListOrders)(c)
}

func (h *AdminHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.adminService.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// @Summary Update order status
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.Order
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/admin/orders/{id}/status [patch]
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.adminService.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *AdminHandler) ListInbox(c *gin.Context) {
	var page services.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		badRequest(c, err)
		return
	}
	entries, err := h.adminService.ListInbox(c.Request.Context(), c.Query("unread") == "true", page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

func (h *AdminHandler) MarkInboxRead(c *gin.Context) {
	if err := h.adminService.MarkInboxRead(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
