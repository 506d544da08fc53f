package models

// User represents a user of the store.
type User struct {
	Base
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(100)"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password string `json:"-" gorm:"type:varchar(255)"`
	FullName string `json:"full_name" gorm:"type:varchar(150)"`
	IsStaff  bool   `json:"is_staff" gorm:"not null;default:false"`
}
