package handlers

import (
	"math"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/errs"
	"storefront/internal/models"
	"storefront/internal/service"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{service: svc}
}

// POST /api/admin/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err, "")
		return
	}

	product, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GET /api/products and GET /api/admin/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	query, err := h.buildQuery(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	page, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, page)
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := parseObjectID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// GET /api/products/categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, categories)
}

// PUT /api/admin/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := parseObjectID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	var update models.ProductUpdate
	if err := bindJSON(c, &update); err != nil {
		respondError(c, err, "")
		return
	}

	product, err := h.service.Update(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// DELETE /api/admin/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := parseObjectID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "product deleted successfully"})
}

// buildQuery reads filter, sort and pagination parameters from the query string.
// Malformed numbers are rejected; malformed page/limit fall back to defaults.
func (h *ProductHandler) buildQuery(c *gin.Context) (models.ProductQuery, error) {
	query := models.ProductQuery{
		Category:    c.Query("category"),
		Search:      c.Query("search"),
		InStockOnly: c.Query("inStock") == "true",
		SortBy:      c.DefaultQuery("sortBy", "price"),
		SortOrder:   c.DefaultQuery("sortOrder", models.SortAsc),
	}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(models.DefaultPage)))
	query.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(models.DefaultLimit)))

	var invalid []string
	for name, dst := range map[string]**float64{
		"priceMin":    &query.PriceMin,
		"priceMax":    &query.PriceMax,
		"ratingMin":   &query.RatingMin,
		"discountMin": &query.DiscountMin,
	} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			invalid = append(invalid, name)
			continue
		}
		*dst = &v
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return query, errs.Invalid(invalid...)
	}

	return query, nil
}
