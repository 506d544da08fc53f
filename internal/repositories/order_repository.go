package repositories

import (
	"context"
	"errors"

	"storefront/internal/models"
)

// ErrEmptyCart is returned by Checkout when the user has no cart items left to assign.
var ErrEmptyCart = errors.New("cart is empty")

// OrderRepository defines data access for cart items and orders. A cart item is an
// OrderItem whose order_id is NULL.
type OrderRepository interface {
	CartItems(ctx context.Context, userID string) ([]models.OrderItem, error)
	HasCartItems(ctx context.Context, userID string) (bool, error)
	FindCartItem(ctx context.Context, userID, productID string) (*models.OrderItem, error)
	CreateItem(ctx context.Context, item *models.OrderItem) error
	UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error
	DeleteItem(ctx context.Context, itemID string) error
	// HasOrderedProduct reports whether any order item, in cart or checked out, links the user and product.
	HasOrderedProduct(ctx context.Context, userID, productID string) (bool, error)
	// Checkout persists order and moves every cart item of order.UserID onto it, atomically.
	Checkout(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
}
