package models

// User represents a registered account. The password is stored only as
// a bcrypt hash and never serialized.
type User struct {
	Base
	Username     string   `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string   `gorm:"size:100;not null" json:"-"`
	Entries      []Entry  `gorm:"foreignKey:UserID" json:"-"`
	Budgets      []Budget `gorm:"foreignKey:UserID" json:"-"`
}
