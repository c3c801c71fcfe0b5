package models

// Entry is a single ledger transaction. Positive amounts are income,
// negative amounts are expenses; zero is rejected at the service layer.
type Entry struct {
	Base
	UserID      uint    `gorm:"not null;index:idx_entries_user_date,priority:1;index:idx_entries_user_category,priority:1" json:"user_id"`
	Amount      float64 `gorm:"type:numeric(14,2);not null" json:"amount"`
	Category    string  `gorm:"size:100;not null;index:idx_entries_user_category,priority:2" json:"category"`
	Description string  `json:"description"`
	Date        Date    `gorm:"type:date;not null;index:idx_entries_user_date,priority:2" json:"date"`
}
