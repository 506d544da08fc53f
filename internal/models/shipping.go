package models

// ShippingAddress is a reusable address owned by a user.
type ShippingAddress struct {
	Base
	UserID   string `json:"-" gorm:"type:varchar(36);index;not null"`
	User     User   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	FullName string `json:"full_name" gorm:"type:varchar(150)"`
	Email    string `json:"email" gorm:"type:varchar(255)"`
	Phone    string `json:"phone" gorm:"type:varchar(30)"`
	Address  string `json:"address" gorm:"type:varchar(500)"`
	City     string `json:"city" gorm:"type:varchar(100)"`
	Country  string `json:"country" gorm:"type:varchar(100)"`
	Zipcode  string `json:"zipcode" gorm:"type:varchar(20)"`
}

// Apply overwrites the address fields with d.
func (a *ShippingAddress) Apply(d ShippingDetails) {
	a.FullName = d.FullName
	a.Email = d.Email
	a.Phone = d.Phone
	a.Address = d.Address
	a.City = d.City
	a.Country = d.Country
	a.Zipcode = d.Zipcode
}

// All returns every model the schema is migrated from, parents first.
func All() []any {
	return []any{
		&User{},
		&Seller{},
		&Category{},
		&Product{},
		&Review{},
		&ShippingAddress{},
		&Order{},
		&OrderItem{},
	}
}
