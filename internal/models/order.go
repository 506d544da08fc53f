package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentPending  = "PENDING"
	DeliveryPending = "PENDING"
)

// ShippingDetails are the seven address fields an order freezes at checkout.
type ShippingDetails struct {
	FullName string `json:"full_name" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,max=30"`
	Address  string `json:"address" validate:"required,max=500"`
	City     string `json:"city" validate:"required,max=100"`
	Country  string `json:"country" validate:"required,max=100"`
	Zipcode  string `json:"zipcode" validate:"required,max=20"`
}

// ShippingDetailsFromAddress copies the shipping fields of a saved address.
func ShippingDetailsFromAddress(a ShippingAddress) ShippingDetails {
	return ShippingDetails{
		FullName: a.FullName,
		Email:    a.Email,
		Phone:    a.Phone,
		Address:  a.Address,
		City:     a.City,
		Country:  a.Country,
		Zipcode:  a.Zipcode,
	}
}

// Order is created once per checkout and owns the cart items that were checked out.
type Order struct {
	Base
	UserID         string      `json:"-" gorm:"type:varchar(36);index;not null"`
	User           User        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	TxRef          string      `json:"tx_ref" gorm:"type:varchar(100);uniqueIndex;not null"`
	PaymentStatus  string      `json:"payment_status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	DeliveryStatus string      `json:"delivery_status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	FullName       string      `json:"full_name" gorm:"type:varchar(150)"`
	Email          string      `json:"email" gorm:"type:varchar(255)"`
	Phone          string      `json:"phone" gorm:"type:varchar(30)"`
	Address        string      `json:"address" gorm:"type:varchar(500)"`
	City           string      `json:"city" gorm:"type:varchar(100)"`
	Country        string      `json:"country" gorm:"type:varchar(100)"`
	Zipcode        string      `json:"zipcode" gorm:"type:varchar(20)"`
	Items          []OrderItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
}

// NewOrder builds an unsaved order for userID with the given shipping details.
func NewOrder(userID string, d ShippingDetails) *Order {
	return &Order{
		UserID:         userID,
		TxRef:          NewTxRef(time.Now().UTC()),
		PaymentStatus:  PaymentPending,
		DeliveryStatus: DeliveryPending,
		FullName:       d.FullName,
		Email:          d.Email,
		Phone:          d.Phone,
		Address:        d.Address,
		City:           d.City,
		Country:        d.Country,
		Zipcode:        d.Zipcode,
	}
}

// NewTxRef returns a unique, time-prefixed order reference such as 20250908130500-<uuid>.
func NewTxRef(at time.Time) string {
	return at.Format("20060102150405") + "-" + uuid.NewString()
}

// Total sums the line totals of the order's items.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Total())
	}
	return total
}

// OrderItem is a cart line while OrderID is nil and an order line afterwards.
type OrderItem struct {
	Base
	UserID    string  `json:"-" gorm:"type:varchar(36);index;not null"`
	User      User    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	OrderID   *string `json:"-" gorm:"type:varchar(36);index"`
	ProductID string  `json:"-" gorm:"type:varchar(36);index;not null"`
	Product   Product `json:"product" gorm:"constraint:OnDelete:CASCADE"`
	Quantity  int     `json:"quantity" gorm:"not null"`
}

// InCart reports whether the item has not been checked out yet.
func (i *OrderItem) InCart() bool {
	return i.OrderID == nil
}

// Total is the current price of the product times the quantity.
func (i *OrderItem) Total() decimal.Decimal {
	return i.Product.PriceCurrent.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
