package models

// Category groups products.
type Category struct {
	Base
	Name  string `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Slug  string `json:"slug" gorm:"type:varchar(120);uniqueIndex;not null"`
	Image string `json:"image" gorm:"type:varchar(255)"`
}
