package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
	"storefront/internal/service"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

type RegisterResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type BlockResponse struct {
	Message   string `json:"message"`
	IsBlocked bool   `json:"isBlocked"`
}

// POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err, "")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{Message: "User registered successfully", ID: user.ID.Hex()})
}

// POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err, "")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GET /api/admin/customers
func (h *UserHandler) ListCustomers(c *gin.Context) {
	customers, err := h.service.ListCustomers(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GET /api/admin/customers/:id
func (h *UserHandler) GetCustomer(c *gin.Context) {
	id, err := parseObjectID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	customer, err := h.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// PUT /api/admin/customers/:id
func (h *UserHandler) UpdateCustomer(c *gin.Context) {
	id, err := parseObjectID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	var update models.CustomerUpdate
	if err := bindJSON(c, &update); err != nil {
		respondError(c, err, "")
		return
	}

	customer, err := h.service.UpdateCustomer(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err, "customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DELETE /api/admin/customers/:id
func (h *UserHandler) DeleteCustomer(c *gin.Context) {
	id, err := parseObjectID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	if err := h.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		respondError(c, err, "customer")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "customer deleted successfully"})
}

// PATCH /api/admin/customers/:id/block
func (h *UserHandler) ToggleBlock(c *gin.Context) {
	id, err := parseObjectID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	customer, err := h.service.ToggleBlocked(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "customer")
		return
	}

	state := "unblocked"
	if customer.IsBlocked {
		state = "blocked"
	}
	c.JSON(http.StatusOK, BlockResponse{Message: "customer " + state + " successfully", IsBlocked: customer.IsBlocked})
}
