package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"karesave-backend/internal/cart"
	"karesave-backend/internal/middleware"
)

const cartEventsKeepAlive = 25 * time.Second

type CartHandler struct {
	carts    CartSessions
	products ProductCatalog
}

func NewCartHandler(carts CartSessions, products ProductCatalog) *CartHandler {
	return &CartHandler{
		carts:    carts,
		products: products,
	}
}

// RegisterRoutes registers the routes for the session cart
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	c := router.Group("/cart")
	{
		c.GET("", h.GetCart)
		c.POST("/items", h.AddItem)
		c.PUT("/items/:product_id", h.UpdateItem)
		c.DELETE("/items/:product_id", h.RemoveItem)
		c.DELETE("", h.ClearCart)
		c.GET("/events", h.Events)
	}
}

type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

type UpdateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartResponse is the cart after a request. Notice is set when the change
// applied with a reduced quantity.
type CartResponse struct {
	Cart   cart.Snapshot `json:"cart"`
	Change *cart.Change  `json:"change,omitempty"`
	Notice string        `json:"notice,omitempty"`
}

func (h *CartHandler) store(c *gin.Context) *cart.Store {
	return h.carts.Session(c.Request.Context(), middleware.GetSessionID(c))
}

func respondCart(c *gin.Context, store *cart.Store, change *cart.Change) {
	resp := CartResponse{Cart: store.Snapshot(), Change: change}
	if change != nil && change.Notice != nil {
		resp.Notice = change.Notice.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get cart
// @Description Current session cart with totals
// @Tags cart
// @Produce json
// @Success 200 {object} CartResponse
// @Router /api/v1/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	respondCart(c, h.store(c), nil)
}

// @Summary Add to cart
// @Description Add a product, merging with an existing line. Quantity defaults to 1 and is clamped to stock.
// @Tags cart
// @Accept json
// @Produce json
// @Param request body AddItemRequest true "Product and quantity"
// @Success 200 {object} CartResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	p, ok := h.products.ProductByID(req.ProductID)
	if !ok {
		respondError(c, cart.ErrUnknownProduct)
		return
	}

	store := h.store(c)
	change, err := store.AddItem(p, qty)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCart(c, store, &change)
}

// UpdateItem sets a line's quantity. Zero or less removes the line.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	store := h.store(c)
	change, err := store.UpdateQuantity(c.Param("product_id"), *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCart(c, store, &change)
}

// RemoveItem is idempotent: removing an absent product returns the cart.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	store := h.store(c)
	store.RemoveItem(c.Param("product_id"))
	respondCart(c, store, nil)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	store := h.store(c)
	store.Clear()
	respondCart(c, store, nil)
}

// Events streams the cart as server-sent events: the current snapshot
// first, then one "cart" event per committed change. Slow readers only see
// the newest snapshot.
func (h *CartHandler) Events(c *gin.Context) {
	store := h.store(c)

	updates := make(chan cart.Snapshot, 1)
	unsubscribe := store.Subscribe(func(snap cart.Snapshot) {
		for {
			select {
			case updates <- snap:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	last := store.Snapshot()
	c.SSEvent("cart", last)
	c.Writer.Flush()

	keepAlive := time.NewTicker(cartEventsKeepAlive)
	defer keepAlive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case snap := <-updates:
			if snap.Version <= last.Version {
				return true
			}
			last = snap
			c.SSEvent("cart", snap)
			return true
		case <-keepAlive.C:
			c.SSEvent("ping", gin.H{"version": last.Version})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
