package handlers

import (
	"log"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ItemHandler handles HTTP requests for items.
type ItemHandler struct {
	service  *services.ItemService
	validate *validator.Validate
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *services.ItemService) *ItemHandler {
	return &ItemHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the read-only item routes.
func (h *ItemHandler) RegisterPublicRoutes(router fiber.Router) {
	itemRoutes := router.Group("/items")
	itemRoutes.Get("/", h.HandleGetItems)
	itemRoutes.Get("/:id", h.HandleGetItemByID)
}

// RegisterRoutes registers the item mutation routes (behind auth).
func (h *ItemHandler) RegisterRoutes(router fiber.Router) {
	itemRoutes := router.Group("/items")
	itemRoutes.Post("/", h.HandleCreateItem)
	itemRoutes.Put("/:id", h.HandleUpdateItem)
	itemRoutes.Delete("/:id", h.HandleDeleteItem)
}

// HandleGetItems retrieves all items.
func (h *ItemHandler) HandleGetItems(c *fiber.Ctx) error {
	items, err := h.service.GetAllItems()
	if err != nil {
		log.Printf("Error getting all items: %v", err)
		return errorResponse(c, "Could not retrieve items", err)
	}
	return c.JSON(items)
}

// HandleGetItemByID retrieves a single item by its ID.
func (h *ItemHandler) HandleGetItemByID(c *fiber.Ctx) error {
	itemID := c.Params("id")
	item, err := h.service.GetItemByID(itemID)
	if err != nil {
		log.Printf("Error getting item by ID %s: %v", itemID, err)
		return errorResponse(c, "Could not retrieve item", err)
	}
	return c.JSON(item)
}

// HandleCreateItem creates a new item owned by the caller.
func (h *ItemHandler) HandleCreateItem(c *fiber.Ctx) error {
	var item models.Item
	if err := c.BodyParser(&item); err != nil {
		log.Printf("Error parsing create item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(item); err != nil {
		return validationResponse(c, err)
	}

	if err := h.service.CreateItem(callerID(c), &item); err != nil {
		log.Printf("Error creating item: %v", err)
		return errorResponse(c, "Could not create item", err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateItem updates an item the caller owns (or administers).
func (h *ItemHandler) HandleUpdateItem(c *fiber.Ctx) error {
	itemID := c.Params("id")

	var updates services.ItemUpdate
	if err := c.BodyParser(&updates); err != nil {
		log.Printf("Error parsing update item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(updates); err != nil {
		return validationResponse(c, err)
	}

	item, err := h.service.UpdateItem(callerID(c), itemID, updates)
	if err != nil {
		log.Printf("Error updating item %s: %v", itemID, err)
		return errorResponse(c, "Could not update item", err)
	}

	return c.JSON(item)
}

// HandleDeleteItem deletes an item the caller owns (or administers).
func (h *ItemHandler) HandleDeleteItem(c *fiber.Ctx) error {
	itemID := c.Params("id")

	if err := h.service.DeleteItem(callerID(c), itemID); err != nil {
		log.Printf("Error deleting item %s: %v", itemID, err)
		return errorResponse(c, "Could not delete item", err)
	}

	return c.JSON(fiber.Map{
		"message": "Item deleted",
	})
}
