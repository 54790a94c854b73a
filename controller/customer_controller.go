package controller

import (
	"net/http"

	"grocerflow-backend/models"
	"grocerflow-backend/repository"
	"grocerflow-backend/services"
	"grocerflow-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type CustomerController struct {
	catalog   services.CatalogServiceInterface
	orders    services.OrderServiceInterface
	discounts repository.DiscountRepositoryInterface
	logger    logger.Logger
}

func NewCustomerController(
	catalog services.CatalogServiceInterface,
	orders services.OrderServiceInterface,
	discounts repository.DiscountRepositoryInterface,
	log logger.Logger,
) *CustomerController {
	return &CustomerController{
		catalog:   catalog,
		orders:    orders,
		discounts: discounts,
		logger:    log,
	}
}

// ListProducts handles GET /api/v1/customer/products
// @Summary Browse the product catalog
// @Tags Customer Portal
// @Security BearerAuth
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {object} models.APIResponse
// @Router /customer/products [get]
func (h *CustomerController) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.logger.Errorf("Failed to list products: %v", err)
		serverError(c, "Failed to list products", err)
		return
	}
	respondOK(c, "Products retrieved successfully", products)
}

// GetProduct handles GET /api/v1/customer/products/:id
func (h *CustomerController) GetProduct(c *gin.Context) {
	product, stock, err := h.catalog.GetProductAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFound(c, "Product not found", err)
		return
	}
	respondOK(c, "Product retrieved successfully", gin.H{
		"product":      product,
		"availability": stock,
	})
}

// ListSlots handles GET /api/v1/customer/slots
func (h *CustomerController) ListSlots(c *gin.Context) {
	pincode := c.Query("pincode")
	if pincode == "" {
		badRequest(c, "pincode query parameter is required", nil)
		return
	}
	slots, err := h.discounts.ListSlotsByPincode(c.Request.Context(), pincode)
	if err != nil {
		h.logger.Errorf("Failed to list slots for %s: %v", pincode, err)
		serverError(c, "Failed to list delivery slots", err)
		return
	}
	respondOK(c, "Delivery slots retrieved successfully", slots)
}

// PlaceOrder handles POST /api/v1/customer/orders
// @Summary Place an order
// @Tags Customer Portal
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.PlaceOrderRequest true "Order payload"
// @Success 201 {object} models.APIResponse
// @Router /customer/orders [post]
func (h *CustomerController) PlaceOrder(c *gin.Context) {
	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		badRequest(c, "Invalid order payload", err)
		return
	}

	customerID := contextString(c, "customer_id")
	if customerID == "" {
		respondError(c, http.StatusForbidden, "AuthorizationError",
			"Account is not linked to a customer profile", nil)
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), customerID, &req)
	if err != nil {
		h.logger.Errorf("Failed to place order for %s: %v", customerID, err)
		badRequest(c, "Failed to place order", err)
		return
	}
	respondCreated(c, "Order placed successfully", order)
}

// ListOrders handles GET /api/v1/customer/orders
func (h *CustomerController) ListOrders(c *gin.Context) {
	customerID := contextString(c, "customer_id")
	if customerID == "" {
		respondError(c, http.StatusForbidden, "AuthorizationError",
			"Account is not linked to a customer profile", nil)
		return
	}
	orders, err := h.orders.ListCustomerOrders(c.Request.Context(), customerID)
	if err != nil {
		serverError(c, "Failed to list orders", err)
		return
	}
	respondOK(c, "Orders retrieved successfully", orders)
}

// GetOrder handles GET /api/v1/customer/orders/:id
func (h *CustomerController) GetOrder(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFound(c, "Order not found", err)
		return
	}
	customerID := contextString(c, "customer_id")
	if customerID != "" && order.CustomerID != customerID {
		respondError(c, http.StatusForbidden, "AuthorizationError",
			"Order belongs to a different customer", nil)
		return
	}
	respondOK(c, "Order retrieved successfully", order)
}
