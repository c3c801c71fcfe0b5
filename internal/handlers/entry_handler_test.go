package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/pagination"
)

func setupEntryRouter(handler *EntryHandler) *gin.Engine {
	r := gin.New()
	ledger := r.Group("/ledger", injectUserID(1))
	ledger.POST("/", handler.CreateEntry)
	ledger.GET("/", handler.ListEntries)
	ledger.PUT("/:id", handler.UpdateEntry)
	ledger.DELETE("/:id", handler.DeleteEntry)
	return r
}

func TestEntryHandler_CreateEntry(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		entrySvc := &mockEntryService{
			createEntryFn: func(userID uint, amount float64, category, description string, date models.Date) (*models.Entry, error) {
				return &models.Entry{
					Base:     models.Base{ID: 5},
					UserID:   userID,
					Amount:   amount,
					Category: category,
					Date:     date,
				}, nil
			},
		}
		handler := NewEntryHandler(entrySvc, &mockAuditService{})
		r := setupEntryRouter(handler)

		rec := doRequest(r, "POST", "/ledger/", `{"amount":-42.5,"category":"food","date":"2024-01-05"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["amount"] != -42.5 {
			t.Errorf("expected amount -42.5, got %v", result["amount"])
		}
		if result["category"] != "food" {
			t.Errorf("expected category food, got %v", result["category"])
		}
		if result["date"] != "2024-01-05" {
			t.Errorf("expected date 2024-01-05, got %v", result["date"])
		}
	})

	t.Run("passes parsed date to the service", func(t *testing.T) {
		var gotDate models.Date
		entrySvc := &mockEntryService{
			createEntryFn: func(_ uint, _ float64, _, _ string, date models.Date) (*models.Entry, error) {
				gotDate = date
				return &models.Entry{}, nil
			},
		}
		handler := NewEntryHandler(entrySvc, &mockAuditService{})
		r := setupEntryRouter(handler)

		doRequest(r, "POST", "/ledger/", `{"amount":10,"category":"salary","date":"2024-03-15"}`)

		if !gotDate.Equal(models.NewDate(2024, 3, 15).Time) {
			t.Errorf("expected date 2024-03-15, got %s", gotDate)
		}
	})

	t.Run("returns 400 on missing amount", func(t *testing.T) {
		handler := NewEntryHandler(&mockEntryService{}, &mockAuditService{})
		r := setupEntryRouter(handler)

		rec := doRequest(r, "POST", "/ledger/", `{"category":"food"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on malformed date", func(t *testing.T) {
		handler := NewEntryHandler(&mockEntryService{}, &mockAuditService{})
		r := setupEntryRouter(handler)

		rec := doRequest(r, "POST", "/ledger/", `{"amount":10,"category":"food","date":"15/03/2024"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 when service rejects amount", func(t *testing.T) {
		entrySvc := &mockEntryService{
			createEntryFn: func(_ uint, _ float64, _, _ string, _ models.Date) (*models.Entry, error) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be non-zero")
			},
		}
		handler := NewEntryHandler(entrySvc, &mockAuditService{})
		r := setupEntryRouter(handler)

		rec := doRequest(r, "POST", "/ledger/", `{"amount":-1,"category":"food"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestEntryHandler_ListEntries(t *testing.T) {
	t.Run("returns paginated entries", func(t *testing.T) {
		entrySvc := &mockEntryService{
			listEntriesFn: func(userID uint, _ string, page pagination.PageRequest) (*pagination.PageResponse[models.Entry], error) {
				page.Defaults()
				resp := pagination.NewPageResponse([]models.Entry{
					{Base: models.Base{ID: 1}, UserID: userID, Amount: -10, Category: "food"},
				}, page.Page, page.PageSize, 1)
				return &resp, nil
			},
		}
		handler := NewEntryHandler(entrySvc, &mockAuditService{})
		r := setupEntryRouter(handler)

		rec := doRequest(r, "GET", "/ledger/", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		if len(data) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(data))
		}
		if result["total_items"] != float64(1) {
			t.Errorf("expected total_items 1, got %v", result["total_items"])
		}
	})

	t.Run("forwards category filter", func(t *testing.T) {
		var gotCategory string
		entrySvc := &mockEntryService{
			listEntriesFn: func(_ uint, category string, _ pagination.PageRequest) (*pagination.PageResponse[models.Entry], error) {
				gotCategory = category
				resp := pagination.NewPageResponse([]models.Entry{}, 1, 20, 0)
				return &resp, nil
			},
		}
		handler := NewEntryHandler(entrySvc, &mockAuditService{})
		r := setupEntryRouter(handler)

		doRequest(r, "GET", "/ledger/?category=rent", "")

		if gotCategory != "rent" {
			t.Errorf("expected category rent, got %q", gotCategory)
		}
	})

	t.Run("returns 400 on invalid page_size", func(t *testing.T) {
		handler := NewEntryHandler(&mockEntryService{}, &mockAuditService{})
		r := setupEntryRouter(handler)

		rec := doRequest(r, "GET", "/ledger/?page_size=9999", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestEntryHandler_UpdateEntry(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		entrySvc := &mockEntryService{
			updateEntryFn: func(userID, entryID uint, amount float64, category, description string, date models.Date) (*models.Entry, error) {
				return &models.Entry{
					Base:     models.Base{ID: entryID},
					UserID:   userID,
					Amount:   amount,
					Category: category,
				}, nil
			},
		}
		handler := NewEntryHandler(entrySvc, &mockAuditService{})
		r := setupEntryRouter(handler)

		rec := doRequest(r, "PUT", "/ledger/5", `{"amount":-99,"category":"dining"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["amount"] != float64(-99) {
			t.Errorf("expected amount -99, got %v", result["amount"])
		}
	})

	t.Run("returns 404 when entry is missing or foreign", func(t *testing.T) {
		entrySvc := &mockEntryService{
			updateEntryFn: func(_, _ uint, _ float64, _, _ string, _ models.Date) (*models.Entry, error) {
				return nil, apperrors.ErrEntryNotFound
			},
		}
		handler := NewEntryHandler(entrySvc, &mockAuditService{})
		r := setupEntryRouter(handler)

		rec := doRequest(r, "PUT", "/ledger/999", `{"amount":-99,"category":"dining"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ENTRY_NOT_FOUND")
	})

	t.Run("returns 400 on non-numeric id", func(t *testing.T) {
		handler := NewEntryHandler(&mockEntryService{}, &mockAuditService{})
		r := setupEntryRouter(handler)

		rec := doRequest(r, "PUT", "/ledger/abc", `{"amount":-99,"category":"dining"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestEntryHandler_DeleteEntry(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var deletedID uint
		entrySvc := &mockEntryService{
			deleteEntryFn: func(_, entryID uint) error {
				deletedID = entryID
				return nil
			},
		}
		handler := NewEntryHandler(entrySvc, &mockAuditService{})
		r := setupEntryRouter(handler)

		rec := doRequest(r, "DELETE", "/ledger/5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if deletedID != 5 {
			t.Errorf("expected entry 5 deleted, got %d", deletedID)
		}
	})

	t.Run("returns 404 when entry is missing or foreign", func(t *testing.T) {
		entrySvc := &mockEntryService{
			deleteEntryFn: func(_, _ uint) error {
				return apperrors.ErrEntryNotFound
			},
		}
		handler := NewEntryHandler(entrySvc, &mockAuditService{})
		r := setupEntryRouter(handler)

		rec := doRequest(r, "DELETE", "/ledger/999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
