package services

import (
	"context"
	"errors"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"go.uber.org/zap"
)

const MsgNoProductWithSlug = "No Product with that slug"

// CartOutcome says what a toggle did to the cart.
type CartOutcome int

const (
	CartItemAdded CartOutcome = iota
	CartItemUpdated
	CartItemRemoved
)

// Message is the user facing description of the outcome.
func (o CartOutcome) Message() string {
	switch o {
	case CartItemAdded:
		return "Item Added To Cart"
	case CartItemUpdated:
		return "Item Updated In Cart"
	default:
		return "Item Removed From Cart"
	}
}

// ToggleCartInput is the payload of a cart toggle.
type ToggleCartInput struct {
	Slug     string `json:"slug" validate:"required"`
	Quantity *int   `json:"quantity" validate:"required,min=0"`
}

// CartService manages the items a user has not checked out yet.
type CartService struct {
	orders   repositories.OrderRepository
	products repositories.ProductRepository
	log      *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(orders repositories.OrderRepository, products repositories.ProductRepository, log *zap.Logger) *CartService {
	return &CartService{orders: orders, products: products, log: log.Named("cart")}
}

func (s *CartService) Items(ctx context.Context, userID string) ([]models.OrderItem, error) {
	return s.orders.CartItems(ctx, userID)
}

// Toggle sets the quantity of a product in the cart of userID. A quantity of zero removes
// the line; a positive quantity creates or updates it. The returned item is nil on removal.
func (s *CartService) Toggle(ctx context.Context, userID, productSlug string, quantity int) (*models.OrderItem, CartOutcome, error) {
	product, err := s.products.GetBySlug(ctx, productSlug, repositories.ExcludeDeleted)
	if err != nil {
		return nil, CartItemRemoved, translateNotFound(err, MsgNoProductWithSlug)
	}

	item, err := s.orders.FindCartItem(ctx, userID, product.ID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, CartItemRemoved, err
	}

	switch {
	case quantity == 0:
		if item != nil {
			if err := s.orders.DeleteItem(ctx, item.ID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
				return nil, CartItemRemoved, err
			}
		}
		return nil, CartItemRemoved, nil

	case item == nil:
		item = &models.OrderItem{UserID: userID, ProductID: product.ID, Quantity: quantity}
		if err := s.orders.CreateItem(ctx, item); err != nil {
			return nil, CartItemRemoved, err
		}
		item.Product = *product
		return item, CartItemAdded, nil

	default:
		if err := s.orders.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
			return nil, CartItemRemoved, err
		}
		item.Quantity = quantity
		item.Product = *product
		return item, CartItemUpdated, nil
	}
}
