package models

// Budget is a per-user monthly spending limit. At most one budget may
// exist per (user, month, year); the service layer and a unique index
// both enforce this.
type Budget struct {
	Base
	UserID      uint    `gorm:"not null;uniqueIndex:idx_budgets_user_month_year,priority:1" json:"user_id"`
	Month       int     `gorm:"not null;uniqueIndex:idx_budgets_user_month_year,priority:2" json:"month"`
	Year        int     `gorm:"not null;uniqueIndex:idx_budgets_user_month_year,priority:3" json:"year"`
	LimitAmount float64 `gorm:"column:limit_amount;type:numeric(14,2);not null" json:"limit"`
}
