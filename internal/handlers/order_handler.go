package handlers

import (
	"log"

	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for checkout and order reads.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCheckout)
}

// CheckoutRequest carries the client's payment-method token. Note there
// is no total here: the server recomputes it from the cart.
type CheckoutRequest struct {
	PaymentToken string `json:"payment_token" validate:"required"`
}

// HandleCheckout charges the caller's cart and creates the order.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationResponse(c, err)
	}

	order, err := h.service.Checkout(callerID(c), req.PaymentToken)
	if err != nil {
		log.Printf("Error during checkout: %v", err)
		return errorResponse(c, "Checkout failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrders retrieves the caller's orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetOrders(callerID(c))
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return errorResponse(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(callerID(c), orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return errorResponse(c, "Could not retrieve order", err)
	}
	return c.JSON(order)
}
