package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"karesave-backend/internal/forms"
	"karesave-backend/internal/middleware"
)

const maxIdempotencyKeyLength = 128

type OrderHandler struct {
	checkoutService CheckoutServiceInterface
}

func NewOrderHandler(checkoutService CheckoutServiceInterface) *OrderHandler {
	return &OrderHandler{checkoutService: checkoutService}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/checkout", h.Checkout)
	router.GET("/orders/:id", h.GetOrder)
}

// @Summary Place order
// @Description Cash-on-delivery checkout of the session cart. A repeated Idempotency-Key returns the original order.
// @Tags orders
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client generated key"
// @Param request body forms.CheckoutForm true "Delivery details"
// @Success 201 {object} models.Order
// @Success 200 {object} models.Order "replayed"
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	key := c.GetHeader(middleware.IdempotencyKeyHeader)
	if len(key) > maxIdempotencyKeyLength {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Message: "Idempotency-Key is too long",
		})
		return
	}

	var form forms.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.checkoutService.PlaceOrder(c.Request.Context(), middleware.GetSessionID(c), form, key)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"order":    res.Order,
		"replayed": res.Replayed,
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Not found",
			Message: "order not found",
		})
		return
	}

	order, err := h.checkoutService.GetOrder(c.Request.Context(), middleware.GetSessionID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}
