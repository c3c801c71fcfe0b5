package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
)

type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new report service.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// monthWindow returns the half-open [start, end) range covering the month.
func monthWindow(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// yearWindow returns the half-open [start, end) range covering the year.
func yearWindow(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// MonthlySummary totals the month's income, expenses and net position.
// A month with no entries yields all zeros.
func (s *reportService) MonthlySummary(userID uint, month, year int) (*MonthlySummary, error) {
	start, end := monthWindow(month, year)

	var income float64
	if err := s.db.Model(&models.Entry{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND amount > 0 AND date >= ? AND date < ?", userID, start, end).
		Scan(&income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expense float64
	if err := s.db.Model(&models.Entry{}).
		Select("COALESCE(SUM(-amount), 0)").
		Where("user_id = ? AND amount < 0 AND date >= ? AND date < ?", userID, start, end).
		Scan(&expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &MonthlySummary{
		Month:   month,
		Year:    year,
		Income:  income,
		Expense: expense,
		Net:     income - expense,
	}, nil
}

// CategoryExpenses breaks the month's expenses down by category,
// largest total first. Expense totals are reported as positive values.
func (s *reportService) CategoryExpenses(userID uint, month, year int) ([]CategoryExpense, error) {
	start, end := monthWindow(month, year)

	rows := []CategoryExpense{}
	if err := s.db.Model(&models.Entry{}).
		Select("category, COALESCE(SUM(-amount), 0) AS total").
		Where("user_id = ? AND amount < 0 AND date >= ? AND date < ?", userID, start, end).
		Group("category").
		Order("total DESC").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return rows, nil
}

// DailySpending returns one bucket per calendar day of the month, in
// order, with days that saw no spending reported as zero. Bucketing
// happens in Go because day extraction syntax differs across SQL
// dialects.
func (s *reportService) DailySpending(userID uint, month, year int) ([]DaySpending, error) {
	start, end := monthWindow(month, year)

	entries, err := s.expensesInWindow(userID, start, end)
	if err != nil {
		return nil, err
	}

	days := end.AddDate(0, 0, -1).Day()
	buckets := make([]DaySpending, days)
	for i := range buckets {
		buckets[i].Day = i + 1
	}
	for _, entry := range entries {
		buckets[entry.Date.Day()-1].Total += -entry.Amount
	}

	return buckets, nil
}

// YearlyExpenses returns twelve month buckets for the year, in order,
// with months that saw no spending reported as zero.
func (s *reportService) YearlyExpenses(userID uint, year int) ([]MonthSpending, error) {
	start, end := yearWindow(year)

	entries, err := s.expensesInWindow(userID, start, end)
	if err != nil {
		return nil, err
	}

	buckets := make([]MonthSpending, 12)
	for i := range buckets {
		buckets[i].Month = i + 1
	}
	for _, entry := range entries {
		buckets[int(entry.Date.Month())-1].Total += -entry.Amount
	}

	return buckets, nil
}

func (s *reportService) expensesInWindow(userID uint, start, end time.Time) ([]models.Entry, error) {
	var entries []models.Entry
	if err := s.db.
		Where("user_id = ? AND amount < 0 AND date >= ? AND date < ?", userID, start, end).
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}
