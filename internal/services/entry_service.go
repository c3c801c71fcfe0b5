package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/pagination"
)

type entryService struct {
	db *gorm.DB
}

// NewEntryService creates a new ledger entry service.
func NewEntryService(db *gorm.DB) EntryServicer {
	return &entryService{db: db}
}

// CreateEntry records a signed ledger entry. Positive amounts are
// income, negative amounts are expenses. A zero date defaults to today.
func (s *entryService) CreateEntry(userID uint, amount float64, category, description string, date models.Date) (*models.Entry, error) {
	if amount == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be non-zero")
	}
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if date.IsZero() {
		date = models.DateOf(time.Now().UTC())
	}

	entry := &models.Entry{
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return entry, nil
}

// ListEntries returns the user's entries, newest first, optionally
// filtered to a single category.
func (s *entryService) ListEntries(userID uint, category string, page pagination.PageRequest) (*pagination.PageResponse[models.Entry], error) {
	page.Defaults()

	query := s.db.Model(&models.Entry{}).Where("user_id = ?", userID)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.Entry
	if err := query.
		Order("date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	response := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &response, nil
}

// getEntryByID loads an entry only when it belongs to the user, so a
// foreign id behaves exactly like a missing one.
func (s *entryService) getEntryByID(userID, entryID uint) (*models.Entry, error) {
	var entry models.Entry
	if err := s.db.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

// UpdateEntry replaces the mutable fields of an entry the user owns.
func (s *entryService) UpdateEntry(userID, entryID uint, amount float64, category, description string, date models.Date) (*models.Entry, error) {
	if amount == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be non-zero")
	}
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}

	entry, err := s.getEntryByID(userID, entryID)
	if err != nil {
		return nil, err
	}

	entry.Amount = amount
	entry.Category = category
	entry.Description = description
	if !date.IsZero() {
		entry.Date = date
	}

	if err := s.db.Save(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return entry, nil
}

// DeleteEntry soft deletes an entry the user owns.
func (s *entryService) DeleteEntry(userID, entryID uint) error {
	entry, err := s.getEntryByID(userID, entryID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return nil
}
