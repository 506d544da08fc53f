package repositories

import (
	"context"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShippingAddressRepository defines the interface for shipping address data access.
type ShippingAddressRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.ShippingAddress, error)
	GetByID(ctx context.Context, id string) (*models.ShippingAddress, error)
	Create(ctx context.Context, address *models.ShippingAddress) error
	Update(ctx context.Context, address *models.ShippingAddress) error
	Delete(ctx context.Context, id string) error
}

// GORMShippingAddressRepository is a GORM implementation of ShippingAddressRepository.
type GORMShippingAddressRepository struct {
	db *gorm.DB
}

// NewGORMShippingAddressRepository creates a new instance of GORMShippingAddressRepository.
func NewGORMShippingAddressRepository(db *gorm.DB) *GORMShippingAddressRepository {
	return &GORMShippingAddressRepository{db: db}
}

func (r *GORMShippingAddressRepository) ListByUser(ctx context.Context, userID string) ([]models.ShippingAddress, error) {
	var addresses []models.ShippingAddress
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to list shipping addresses for user %s: %w", userID, err)
	}
	return addresses, nil
}

func (r *GORMShippingAddressRepository) GetByID(ctx context.Context, id string) (*models.ShippingAddress, error) {
	var address models.ShippingAddress
	if err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "shipping address with ID %s", id)
	}
	return &address, nil
}

func (r *GORMShippingAddressRepository) Create(ctx context.Context, address *models.ShippingAddress) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(address).Error; err != nil {
		return fmt.Errorf("failed to create shipping address: %w", err)
	}
	return nil
}

func (r *GORMShippingAddressRepository) Update(ctx context.Context, address *models.ShippingAddress) error {
	res := r.db.WithContext(ctx).Omit(clause.Associations).Save(address)
	if res.Error != nil {
		return fmt.Errorf("failed to update shipping address: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("shipping address with ID %s not found for update: %w", address.ID, ErrNotFound)
	}
	return nil
}

// Delete removes the address. Orders keep their own copy of the fields.
func (r *GORMShippingAddressRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.ShippingAddress{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete shipping address: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("shipping address with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
