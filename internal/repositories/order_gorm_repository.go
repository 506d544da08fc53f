package repositories

import (
	"context"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

func withItemProduct(db *gorm.DB) *gorm.DB {
	return db.Preload("Product.Seller").Preload("Product.Category")
}

func withOrderItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("order_items.created_at")
	}).Preload("Items.Product.Seller").Preload("Items.Product.Category")
}

// CartItems returns the user's cart items with their products.
func (r *GORMOrderRepository) CartItems(ctx context.Context, userID string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.WithContext(ctx).
		Scopes(withItemProduct).
		Where("user_id = ? AND order_id IS NULL", userID).
		Order("created_at").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items for user %s: %w", userID, err)
	}
	return items, nil
}

func (r *GORMOrderRepository) HasCartItems(ctx context.Context, userID string) (bool, error) {
	return exists(ctx, r.db, &models.OrderItem{}, "user_id = ? AND order_id IS NULL", userID)
}

// FindCartItem retrieves the cart line of productID for userID.
func (r *GORMOrderRepository) FindCartItem(ctx context.Context, userID, productID string) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.WithContext(ctx).
		Scopes(withItemProduct).
		First(&item, "user_id = ? AND product_id = ? AND order_id IS NULL", userID, productID).Error
	if err != nil {
		return nil, notFound(err, "cart item for product %s", productID)
	}
	return &item, nil
}

func (r *GORMOrderRepository) CreateItem(ctx context.Context, item *models.OrderItem) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create order item: %w", err)
	}
	return nil
}

func (r *GORMOrderRepository) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error {
	res := r.db.WithContext(ctx).Model(&models.OrderItem{}).Where("id = ?", itemID).Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update order item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order item with ID %s not found for update: %w", itemID, ErrNotFound)
	}
	return nil
}

func (r *GORMOrderRepository) DeleteItem(ctx context.Context, itemID string) error {
	res := r.db.WithContext(ctx).Delete(&models.OrderItem{}, "id = ?", itemID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order item with ID %s not found for deletion: %w", itemID, ErrNotFound)
	}
	return nil
}

func (r *GORMOrderRepository) HasOrderedProduct(ctx context.Context, userID, productID string) (bool, error) {
	return exists(ctx, r.db, &models.OrderItem{}, "user_id = ? AND product_id = ?", userID, productID)
}

// Checkout creates the order and reassigns the cart in one transaction. When the
// reassignment fails or finds no cart item the order is rolled back.
func (r *GORMOrderRepository) Checkout(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		res := tx.Model(&models.OrderItem{}).
			Where("user_id = ? AND order_id IS NULL", order.UserID).
			Update("order_id", order.ID)
		if res.Error != nil {
			return fmt.Errorf("failed to assign cart items to order %s: %w", order.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrEmptyCart
		}

		if err := tx.Scopes(withItemProduct).
			Where("order_id = ?", order.ID).
			Order("created_at").
			Find(&order.Items).Error; err != nil {
			return fmt.Errorf("failed to load items of order %s: %w", order.ID, err)
		}
		return nil
	})
}

// GetOrder retrieves an order with its items.
func (r *GORMOrderRepository) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Scopes(withOrderItems).First(&order, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "order with ID %s", id)
	}
	return &order, nil
}

// ListOrders returns the user's orders, newest first.
func (r *GORMOrderRepository) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Scopes(withOrderItems).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	return orders, nil
}
