package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
)

type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new budget service.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget sets the spending limit for one month. At most one
// budget may exist per user and month.
func (s *budgetService) CreateBudget(userID uint, month, year int, limit float64) (*models.Budget, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	if year < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "year must be positive")
	}
	if limit <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be greater than zero")
	}

	var count int64
	if err := s.db.Model(&models.Budget{}).
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateBudget
	}

	budget := &models.Budget{
		UserID:      userID,
		Month:       month,
		Year:        year,
		LimitAmount: limit,
	}
	if err := s.db.Create(budget).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent create for the same month.
			return nil, apperrors.ErrDuplicateBudget
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// GetBudget returns the budget for the month, or (nil, nil) when none
// has been set so the handler can render an explicit null.
func (s *budgetService) GetBudget(userID uint, month, year int) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}
