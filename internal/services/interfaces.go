package services

import (
	"finledger/internal/models"
	"finledger/internal/pagination"
)

// UserServicer defines the contract for registration and credential checks.
type UserServicer interface {
	Register(username, password string) (*models.User, error)
	VerifyLogin(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
}

// EntryServicer defines the contract for ledger entry CRUD. Every
// operation is scoped to the owning user; an entry belonging to another
// user is indistinguishable from a missing one.
type EntryServicer interface {
	CreateEntry(userID uint, amount float64, category, description string, date models.Date) (*models.Entry, error)
	ListEntries(userID uint, category string, page pagination.PageRequest) (*pagination.PageResponse[models.Entry], error)
	UpdateEntry(userID, entryID uint, amount float64, category, description string, date models.Date) (*models.Entry, error)
	DeleteEntry(userID, entryID uint) error
}

// BudgetServicer defines the contract for monthly budgets.
type BudgetServicer interface {
	CreateBudget(userID uint, month, year int, limit float64) (*models.Budget, error)
	// GetBudget returns (nil, nil) when no budget exists for the month.
	GetBudget(userID uint, month, year int) (*models.Budget, error)
}

// MonthlySummary totals one month's income and expenses.
type MonthlySummary struct {
	Month   int     `json:"month"`
	Year    int     `json:"year"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

// CategoryExpense is one category's expense total within a month.
type CategoryExpense struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// DaySpending is the expense total for one calendar day.
type DaySpending struct {
	Day   int     `json:"day"`
	Total float64 `json:"total"`
}

// MonthSpending is the expense total for one calendar month.
type MonthSpending struct {
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

// ReportServicer defines the read-side aggregation contract. Windows
// with no matching entries yield zero-valued aggregates, never errors.
type ReportServicer interface {
	MonthlySummary(userID uint, month, year int) (*MonthlySummary, error)
	CategoryExpenses(userID uint, month, year int) ([]CategoryExpense, error)
	DailySpending(userID uint, month, year int) ([]DaySpending, error)
	YearlyExpenses(userID uint, year int) ([]MonthSpending, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}

// SchemaResetter drops and rebuilds the database schema.
type SchemaResetter interface {
	Reset() error
}

// AdminServicer defines the contract for administrative operations.
type AdminServicer interface {
	ResetSchema() error
}
