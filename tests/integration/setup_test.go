package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"finledger/internal/auth"
	"finledger/internal/handlers"
	"finledger/internal/logger"
	"finledger/internal/middleware"
	"finledger/internal/models"
	"finledger/internal/services"
	"finledger/internal/validator"
)

// testAdminKey gates the admin routes inside integration tests.
const testAdminKey = "integration-admin-key"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

var allModels = []interface{}{
	&models.User{},
	&models.Entry{},
	&models.Budget{},
	&models.AuditLog{},
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// sqliteSchemaResetter rebuilds the in-memory schema the way the SQL
// migrations rebuild the real one.
type sqliteSchemaResetter struct {
	db *gorm.DB
}

func (r *sqliteSchemaResetter) Reset() error {
	if err := r.db.Migrator().DropTable(allModels...); err != nil {
		return err
	}
	return r.db.AutoMigrate(allModels...)
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	entryService := services.NewEntryService(db)
	budgetService := services.NewBudgetService(db)
	reportService := services.NewReportService(db)
	auditService := services.NewAuditService(db)
	adminService := services.NewAdminService(&sqliteSchemaResetter{db: db})

	tokens := auth.NewTokenIssuer("integration-test-secret", 30*time.Minute)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, tokens)
	entryHandler := handlers.NewEntryHandler(entryService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	reportHandler := handlers.NewReportHandler(reportService)
	adminHandler := handlers.NewAdminHandler(adminService, auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	// Public routes
	router.POST("/register", authHandler.Register)
	router.POST("/token", authHandler.Login)

	// Protected routes
	protected := router.Group("/")
	protected.Use(middleware.Auth(tokens, userService))

	ledger := protected.Group("/ledger")
	ledger.POST("/", entryHandler.CreateEntry)
	ledger.GET("/", entryHandler.ListEntries)
	ledger.PUT("/:id", entryHandler.UpdateEntry)
	ledger.DELETE("/:id", entryHandler.DeleteEntry)

	api := protected.Group("/api")
	api.GET("/users/me", authHandler.Me)
	api.GET("/summary", reportHandler.GetSummary)
	api.GET("/category-expenses", reportHandler.GetCategoryExpenses)
	api.GET("/budget", budgetHandler.GetBudget)
	api.POST("/budget", budgetHandler.CreateBudget)
	api.GET("/daily-spending", reportHandler.GetDailySpending)
	api.GET("/yearly-expenses", reportHandler.GetYearlyExpenses)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminKey(testAdminKey))
	admin.POST("/reset", adminHandler.ResetSchema)

	return &testApp{DB: db, Router: router}
}

// request makes a JSON HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// requestForm makes a form-encoded HTTP request to the test router.
func (app *testApp) requestForm(method, path, form, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseJSONList parses an array response body into target.
func parseJSONList(t *testing.T, rec *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
}

// registerUser registers a new user and returns its ID.
func (app *testApp) registerUser(t *testing.T, username, password string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["id"].(float64)
}

// loginUser logs in and returns the access token.
func (app *testApp) loginUser(t *testing.T, username, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/token", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string)
}

// signupUser registers a new user and returns a fresh access token for it.
func (app *testApp) signupUser(t *testing.T, username string) string {
	t.Helper()
	app.registerUser(t, username, "password123")
	return app.loginUser(t, username, "password123")
}

// createEntry creates a ledger entry and returns its ID.
func (app *testApp) createEntry(t *testing.T, token string, amount float64, category, date string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"amount":%g,"category":%q,"date":%q}`, amount, category, date)
	rec := app.request("POST", "/ledger/", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create entry failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["id"].(float64)
}
