package services

import (
	"fmt"
	"log"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/permissions"
	"storefront/internal/repositories"
	"storefront/pkg/payment"
	"storefront/pkg/rabbitmq"
)

// OrderService handles checkout and order reads.
type OrderService struct {
	orderRepo repositories.OrderRepository
	cartRepo  repositories.CartRepository
	userRepo  repositories.UserRepository
	processor payment.Processor
	mqClient  *rabbitmq.Client
	currency  string
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, cartRepo repositories.CartRepository, userRepo repositories.UserRepository, processor payment.Processor, mqClient *rabbitmq.Client, currency string) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
		processor: processor,
		mqClient:  mqClient,
		currency:  currency,
	}
}

// Checkout turns the caller's cart into an order:
//  1. recompute the total server-side from the cart at charge time,
//  2. charge the payment processor,
//  3. create the order with item snapshots and clear the cart in one
//     transaction.
// The charge must succeed before the order exists; a payment failure
// leaves the cart untouched and creates nothing.
func (s *OrderService) Checkout(callerID, paymentToken string) (*models.Order, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	cart, err := s.cartRepo.GetByUser(callerID)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, fmt.Errorf("%w: your cart is empty", apperrors.ErrValidation)
	}

	var total int64
	for _, line := range cart {
		total += line.Item.Price * int64(line.Quantity)
	}

	charge, err := s.processor.Charge(payment.ChargeRequest{
		Amount:   total,
		Currency: s.currency,
		Source:   paymentToken,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPaymentFailed, err)
	}

	order := &models.Order{
		Total:  charge.Amount, // as confirmed by the processor
		Charge: charge.ID,
		UserID: callerID,
	}
	cartItemIDs := make([]string, 0, len(cart))
	for _, line := range cart {
		order.Items = append(order.Items, models.OrderItem{
			Title:       line.Item.Title,
			Description: line.Item.Description,
			Price:       line.Item.Price,
			Image:       line.Item.Image,
			Quantity:    line.Quantity,
			ItemID:      line.Item.ID,
			UserID:      callerID,
		})
		cartItemIDs = append(cartItemIDs, line.ID)
	}

	if err := s.orderRepo.CreateAndClearCart(order, cartItemIDs); err != nil {
		// The charge went through but the order write did not. Surface a
		// distinguishable condition so the charge can be reconciled.
		return nil, fmt.Errorf("charge %s captured but order not recorded: %w", charge.ID, err)
	}

	s.publishOrderCreated(order)

	return order, nil
}

// GetOrders returns the caller's orders.
func (s *OrderService) GetOrders(callerID string) ([]models.Order, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	return s.orderRepo.GetByUser(callerID)
}

// GetOrderByID returns one order if the caller owns it or holds ADMIN.
func (s *OrderService) GetOrderByID(callerID, id string) (*models.Order, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != callerID {
		caller, err := s.userRepo.GetByID(callerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load caller %s: %w", callerID, err)
		}
		if !permissions.HasAny(caller.Permissions, permissions.Admin) {
			return nil, fmt.Errorf("%w: this is not your order", apperrors.ErrForbidden)
		}
	}
	return order, nil
}

// publishOrderCreated emits an order-created event for downstream
// consumers. Publish failures are logged, never fatal: the order is
// already committed.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping order event.")
		return
	}

	event := map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"total":   order.Total,
		"charge":  order.Charge,
	}
	if err := s.mqClient.PublishJSON(rabbitmq.OrderQueue, event); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
		return
	}
	log.Printf("Successfully published order created event for order %s", order.ID)
}
