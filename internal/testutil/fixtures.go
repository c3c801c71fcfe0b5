package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"finledger/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	username := fmt.Sprintf("user%d", nextID())
	return CreateTestUserWithUsername(t, db, username)
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestEntry creates a ledger entry with the given signed amount on
// the given date.
func CreateTestEntry(t *testing.T, db *gorm.DB, userID uint, amount float64, category string, date models.Date) *models.Entry {
	t.Helper()

	entry := &models.Entry{
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: fmt.Sprintf("Test entry %d", nextID()),
		Date:        date,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test entry: %v", err)
	}
	return entry
}

// CreateTestBudget creates a budget for the given month.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint, month, year int, limit float64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:      userID,
		Month:       month,
		Year:        year,
		LimitAmount: limit,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
