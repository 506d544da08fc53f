package services

import (
	"context"
	"net/http"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/permissions"
	"storefront/internal/repositories"

	"go.uber.org/zap"
)

const MsgShippingAddressNotFound = "Shipping address does not exist!"

func addressOwner(a *models.ShippingAddress) string {
	return a.UserID
}

// ShippingService manages the reusable shipping addresses of a user.
type ShippingService struct {
	addresses repositories.ShippingAddressRepository
	log       *zap.Logger
}

// NewShippingService creates a new ShippingService.
func NewShippingService(addresses repositories.ShippingAddressRepository, log *zap.Logger) *ShippingService {
	return &ShippingService{addresses: addresses, log: log.Named("shipping")}
}

func (s *ShippingService) List(ctx context.Context, userID string) ([]models.ShippingAddress, error) {
	return s.addresses.ListByUser(ctx, userID)
}

func (s *ShippingService) Create(ctx context.Context, userID string, d models.ShippingDetails) (*models.ShippingAddress, error) {
	address := &models.ShippingAddress{UserID: userID}
	address.Apply(d)
	if err := s.addresses.Create(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

// Get returns an address owned by userID. Addresses of other users are reported as missing.
func (s *ShippingService) Get(ctx context.Context, userID, id string) (*models.ShippingAddress, error) {
	return s.owned(ctx, http.MethodGet, userID, id)
}

func (s *ShippingService) Update(ctx context.Context, userID, id string, d models.ShippingDetails) (*models.ShippingAddress, error) {
	address, err := s.owned(ctx, http.MethodPut, userID, id)
	if err != nil {
		return nil, err
	}
	address.Apply(d)
	if err := s.addresses.Update(ctx, address); err != nil {
		return nil, translateNotFound(err, MsgShippingAddressNotFound)
	}
	return address, nil
}

func (s *ShippingService) Delete(ctx context.Context, userID, id string) error {
	address, err := s.owned(ctx, http.MethodDelete, userID, id)
	if err != nil {
		return err
	}
	if err := s.addresses.Delete(ctx, address.ID); err != nil {
		return translateNotFound(err, MsgShippingAddressNotFound)
	}
	return nil
}

func (s *ShippingService) owned(ctx context.Context, method, userID, id string) (*models.ShippingAddress, error) {
	address, err := s.addresses.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, MsgShippingAddressNotFound)
	}
	// Addresses are private: reads by others look like a miss, writes are forbidden.
	if address.UserID != userID && permissions.IsSafeMethod(method) {
		return nil, apperr.NotFound(MsgShippingAddressNotFound)
	}
	if !permissions.IsOwner(method, userID, address, addressOwner) {
		return nil, apperr.Forbidden(MsgPermissionDenied)
	}
	return address, nil
}
