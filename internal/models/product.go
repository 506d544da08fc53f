package models

import "github.com/shopspring/decimal"

// DefaultStock is the stock count a new product starts with when none is given.
const DefaultStock = 5

// Product represents a product listed for sale.
type Product struct {
	Base
	SoftDelete
	SellerID     *string          `json:"-" gorm:"type:varchar(36);index"`
	Seller       *Seller          `json:"seller,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Name         string           `json:"name" gorm:"type:varchar(100);not null"`
	Slug         string           `json:"slug" gorm:"type:varchar(120);uniqueIndex;not null"`
	Desc         string           `json:"desc" gorm:"type:text"`
	PriceOld     *decimal.Decimal `json:"price_old" gorm:"type:decimal(10,2)"`
	PriceCurrent decimal.Decimal  `json:"price_current" gorm:"type:decimal(10,2);not null"`
	CategoryID   string           `json:"-" gorm:"type:varchar(36);index;not null"`
	Category     Category         `json:"category" gorm:"constraint:OnDelete:CASCADE"`
	InStock      int              `json:"in_stock" gorm:"not null"`
	Image1       string           `json:"image1" gorm:"type:varchar(255);not null"`
	Image2       string           `json:"image2" gorm:"type:varchar(255)"`
	Image3       string           `json:"image3" gorm:"type:varchar(255)"`
}
