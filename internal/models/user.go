package models

// User represents a registered shop owner.
type User struct {
	Base
	Username     string        `gorm:"uniqueIndex;not null" json:"username"`
	Name         string        `gorm:"not null" json:"name"`
	Password     string        `gorm:"not null" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}
