package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"karesave-backend/internal/catalog"
	"karesave-backend/pkg/money"
)

const relatedLimit = 3

type ProductHandler struct {
	catalog ProductCatalog
}

func NewProductHandler(products ProductCatalog) *ProductHandler {
	return &ProductHandler{catalog: products}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/featured", h.FeaturedProducts)
		products.GET("/:id", h.GetProduct)
	}

	router.GET("/brands", h.ListBrands)
	router.GET("/brands/:slug/products", h.BrandProducts)
	router.GET("/categories", h.ListCategories)
}

// ProductView adds the labels the storefront renders next to a product.
type ProductView struct {
	catalog.Product
	PercentOff   int         `json:"percent_off"`
	UnitSavings  money.Money `json:"unit_savings"`
	Availability string      `json:"availability"`
	InStock      bool        `json:"in_stock"`
}

func viewOf(p catalog.Product) ProductView {
	return ProductView{
		Product:      p,
		PercentOff:   p.PercentOff(),
		UnitSavings:  p.UnitSavings(),
		Availability: p.Availability(),
		InStock:      p.Stock > 0,
	}
}

func viewsOf(products []catalog.Product) []ProductView {
	out := make([]ProductView, len(products))
	for i, p := range products {
		out[i] = viewOf(p)
	}
	return out
}

// @Summary List products
// @Description Search, filter and sort the catalog
// @Tags products
// @Produce json
// @Param search query string false "Name or description contains"
// @Param brand query string false "Brand label or all"
// @Param category query string false "Category or all"
// @Param sort query string false "price-low, price-high, name or brand"
// @Success 200 {array} ProductView
// @Router /api/v1/products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var q catalog.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": viewsOf(h.catalog.Find(q))})
}

func (h *ProductHandler) FeaturedProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": viewsOf(h.catalog.Featured())})
}

// @Summary Get product
// @Description Product detail with related products from the same category
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductView
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, ok := h.catalog.ProductByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Product not found",
			Message: "No product with ID " + c.Param("id"),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product": viewOf(p),
		"related": viewsOf(h.catalog.Related(p.ID, relatedLimit)),
	})
}

func (h *ProductHandler) ListBrands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"brands": h.catalog.Brands()})
}

func (h *ProductHandler) BrandProducts(c *gin.Context) {
	brand, ok := h.catalog.BrandBySlug(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Brand not found",
			Message: "No brand page for " + c.Param("slug"),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"brand":    brand,
		"products": viewsOf(h.catalog.ByBrand(brand)),
	})
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.Categories()})
}
