package handlers

import (
	"log"

	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddToCart)
	cartRoutes.Delete("/:id", h.HandleRemoveFromCart)
}

// HandleGetCart returns the caller's cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(callerID(c))
	if err != nil {
		log.Printf("Error loading cart: %v", err)
		return errorResponse(c, "Could not load cart", err)
	}
	return c.JSON(cart)
}

// AddToCartRequest represents the request body for adding to the cart.
type AddToCartRequest struct {
	ItemID string `json:"item_id" validate:"required,uuid"`
}

// HandleAddToCart adds one unit of an item to the caller's cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationResponse(c, err)
	}

	line, err := h.service.AddToCart(callerID(c), req.ItemID)
	if err != nil {
		log.Printf("Error adding item %s to cart: %v", req.ItemID, err)
		return errorResponse(c, "Could not add item to cart", err)
	}

	return c.Status(fiber.StatusCreated).JSON(line)
}

// HandleRemoveFromCart deletes one of the caller's cart lines.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	cartItemID := c.Params("id")

	if err := h.service.RemoveFromCart(callerID(c), cartItemID); err != nil {
		log.Printf("Error removing cart item %s: %v", cartItemID, err)
		return errorResponse(c, "Could not remove cart item", err)
	}

	return c.JSON(fiber.Map{
		"message": "Cart item removed",
	})
}
