package models

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of a product they ordered.
type Review struct {
	Base
	SoftDelete
	UserID    string  `json:"-" gorm:"type:varchar(36);index;not null"`
	User      User    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ProductID string  `json:"-" gorm:"type:varchar(36);index;not null"`
	Product   Product `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Rating    int     `json:"rating" gorm:"not null"`
	Text      string  `json:"text" gorm:"type:text;not null"`
}
