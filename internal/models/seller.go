package models

// Seller is a user who lists products in the store.
type Seller struct {
	Base
	UserID       string `json:"-" gorm:"type:varchar(36);uniqueIndex;not null"`
	User         User   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	BusinessName string `json:"business_name" gorm:"type:varchar(255);not null"`
	Slug         string `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	Avatar       string `json:"avatar" gorm:"type:varchar(255)"`
	Phone        string `json:"phone" gorm:"type:varchar(30)"`
	City         string `json:"city" gorm:"type:varchar(100)"`
	Country      string `json:"country" gorm:"type:varchar(100)"`
}
