package services

import (
	"context"
	"errors"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/rabbitmq"

	"go.uber.org/zap"
)

const (
	MsgNoItemsInCart           = "No Items in Cart"
	MsgNoShippingAddressWithID = "No shipping address with that ID"
)

// CheckoutInput selects the shipping details of an order: a saved address, or all seven
// fields inline.
type CheckoutInput struct {
	ShippingID string `json:"shipping_id" validate:"omitempty,uuid"`
	models.ShippingDetails
}

// CheckoutService turns a cart into an order.
type CheckoutService struct {
	orders    repositories.OrderRepository
	addresses repositories.ShippingAddressRepository
	publisher EventPublisher
	log       *zap.Logger
}

// NewCheckoutService creates a new CheckoutService. publisher may be nil, in which case no
// events are sent.
func NewCheckoutService(
	orders repositories.OrderRepository,
	addresses repositories.ShippingAddressRepository,
	publisher EventPublisher,
	log *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		orders:    orders,
		addresses: addresses,
		publisher: publisher,
		log:       log.Named("checkout"),
	}
}

// EnsureCart fails with 404 when userID has nothing in the cart.
func (s *CheckoutService) EnsureCart(ctx context.Context, userID string) error {
	has, err := s.orders.HasCartItems(ctx, userID)
	if err != nil {
		return err
	}
	if !has {
		return apperr.NotFound(MsgNoItemsInCart)
	}
	return nil
}

// ShippingDetails resolves the details an order is created with. A shipping id must name
// an address owned by userID.
func (s *CheckoutService) ShippingDetails(ctx context.Context, userID, shippingID string) (models.ShippingDetails, error) {
	address, err := s.addresses.GetByID(ctx, shippingID)
	if err != nil {
		return models.ShippingDetails{}, translateNotFound(err, MsgNoShippingAddressWithID)
	}
	if address.UserID != userID {
		return models.ShippingDetails{}, apperr.NotFound(MsgNoShippingAddressWithID)
	}
	return models.ShippingDetailsFromAddress(*address), nil
}

// Checkout creates an order for userID from every cart item. Creation and cart reassignment
// commit together or not at all; a cart that is empty inside the transaction is a 404.
func (s *CheckoutService) Checkout(ctx context.Context, userID string, details models.ShippingDetails) (*models.Order, error) {
	order := models.NewOrder(userID, details)
	if err := s.orders.Checkout(ctx, order); err != nil {
		if errors.Is(err, repositories.ErrEmptyCart) {
			return nil, apperr.NotFound(MsgNoItemsInCart)
		}
		s.log.Error("checkout failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("tx_ref", order.TxRef),
		zap.Int("items", len(order.Items)),
	)
	s.publishOrderCreated(order)
	return order, nil
}

func (s *CheckoutService) publishOrderCreated(order *models.Order) {
	if s.publisher == nil {
		s.log.Debug("no message broker configured, skipping order.created event")
		return
	}
	body, err := newOrderCreatedEvent(order).Encode()
	if err != nil {
		s.log.Error("failed to encode order.created event", zap.String("order_id", order.ID), zap.Error(err))
		return
	}
	if err := s.publisher.Publish(rabbitmq.OrdersExchange, rabbitmq.OrderCreatedRoutingKey, body); err != nil {
		s.log.Warn("failed to publish order.created event", zap.String("order_id", order.ID), zap.Error(err))
	}
}

// Orders lists the checked out orders of userID.
func (s *CheckoutService) Orders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.ListOrders(ctx, userID)
}
