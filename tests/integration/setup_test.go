package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"captable/internal/handlers"
	"captable/internal/logger"
	"captable/internal/middleware"
	"captable/internal/models"
	"captable/internal/services"
	"captable/internal/validator"
)

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

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Project{},
		&models.Investor{},
		&models.Subscription{},
		&models.Allocation{},
		&models.Token{},
		&models.Distribution{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	projectService := services.NewProjectService(db)
	investorService := services.NewInvestorService(db, projectService)
	subscriptionService := services.NewSubscriptionService(db, projectService, investorService)
	tokenService := services.NewTokenService(db, projectService)
	allocationService := services.NewAllocationService(db, projectService)
	mintingService := services.NewMintingService(db, projectService)
	distributionService := services.NewDistributionService(db, projectService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	projectHandler := handlers.NewProjectHandler(projectService, auditService)
	investorHandler := handlers.NewInvestorHandler(investorService, auditService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, auditService)
	tokenHandler := handlers.NewTokenHandler(tokenService, auditService)
	allocationHandler := handlers.NewAllocationHandler(allocationService, auditService)
	mintingHandler := handlers.NewMintingHandler(mintingService, distributionService, auditService)
	exportHandler := handlers.NewExportHandler(allocationService, investorService, auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	projects := protected.Group("/projects")
	projects.POST("", projectHandler.CreateProject)
	projects.GET("", projectHandler.GetProjects)
	projects.GET("/:id", projectHandler.GetProject)
	projects.PUT("/:id", projectHandler.UpdateProject)
	projects.DELETE("/:id", projectHandler.DeleteProject)
	projects.POST("/:id/investors", investorHandler.CreateInvestor)
	projects.GET("/:id/investors", investorHandler.GetInvestors)
	projects.GET("/:id/subscriptions", subscriptionHandler.GetSubscriptions)
	projects.POST("/:id/tokens", tokenHandler.CreateToken)
	projects.GET("/:id/tokens", tokenHandler.GetTokens)
	projects.GET("/:id/allocations", allocationHandler.GetAllocations)
	projects.GET("/:id/summary", allocationHandler.GetSummary)
	projects.GET("/:id/distributions", mintingHandler.GetDistributions)
	projects.POST("/:id/mint", mintingHandler.MintTokens)
	projects.POST("/:id/allocations/bulk/status", allocationHandler.BulkUpdateStatus)
	projects.POST("/:id/allocations/bulk/token-type", allocationHandler.BulkSetTokenType)
	projects.POST("/:id/allocations/bulk/delete", allocationHandler.BulkDeleteAllocations)
	projects.POST("/:id/allocations/bulk/mint", mintingHandler.MintAllocations)
	projects.POST("/:id/allocations/bulk/distribute", mintingHandler.DistributeAllocations)
	projects.GET("/:id/export/allocations", exportHandler.ExportAllocations)
	projects.GET("/:id/export/investors", exportHandler.ExportInvestors)

	investors := protected.Group("/investors")
	investors.GET("/:id", investorHandler.GetInvestor)
	investors.PUT("/:id", investorHandler.UpdateInvestor)
	investors.DELETE("/:id", investorHandler.DeleteInvestor)
	investors.POST("/:id/subscriptions", subscriptionHandler.CreateSubscription)

	subscriptions := protected.Group("/subscriptions")
	subscriptions.GET("/:id", subscriptionHandler.GetSubscription)
	subscriptions.POST("/:id/confirm", subscriptionHandler.ConfirmSubscription)
	subscriptions.DELETE("/:id", subscriptionHandler.DeleteSubscription)
	subscriptions.POST("/:id/allocations", allocationHandler.CreateAllocation)

	allocations := protected.Group("/allocations")
	allocations.GET("/:id", allocationHandler.GetAllocation)
	allocations.PUT("/:id", allocationHandler.UpdateAllocation)
	allocations.DELETE("/:id", allocationHandler.DeleteAllocation)
	allocations.POST("/:id/confirm", allocationHandler.ConfirmAllocation)
	allocations.POST("/:id/unconfirm", allocationHandler.UnconfirmAllocation)

	tokens := protected.Group("/tokens")
	tokens.DELETE("/:id", tokenHandler.DeleteToken)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
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

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (token string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(float64)
}

// setupProject registers a user and creates a project, returning the token and project ID.
func (app *testApp) setupProject(t *testing.T, email string) (token string, projectID float64) {
	t.Helper()
	token, _ = app.registerUser(t, email, "password123")
	rec := app.request("POST", "/api/v1/projects",
		`{"name":"Token Sale","description":"Seed round"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project failed: %d %s", rec.Code, rec.Body.String())
	}
	project := parseJSON(t, rec)["project"].(map[string]interface{})
	return token, project["id"].(float64)
}

// setupSubscription creates an investor and a confirmed subscription under the
// project, returning the investor and subscription IDs.
func (app *testApp) setupSubscription(t *testing.T, token string, projectID float64, name, wallet string, amount int64) (investorID, subscriptionID float64) {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"email":"inv@test.com","wallet_address":%q,"kyc_status":"approved","payment_status":"paid"}`, name, wallet)
	rec := app.request("POST", fmt.Sprintf("/api/v1/projects/%.0f/investors", projectID), body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create investor failed: %d %s", rec.Code, rec.Body.String())
	}
	investor := parseJSON(t, rec)["investor"].(map[string]interface{})
	investorID = investor["id"].(float64)

	body = fmt.Sprintf(`{"currency":"USD","amount":%d}`, amount)
	rec = app.request("POST", fmt.Sprintf("/api/v1/investors/%.0f/subscriptions", investorID), body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create subscription failed: %d %s", rec.Code, rec.Body.String())
	}
	sub := parseJSON(t, rec)["subscription"].(map[string]interface{})
	subscriptionID = sub["id"].(float64)

	rec = app.request("POST", fmt.Sprintf("/api/v1/subscriptions/%.0f/confirm", subscriptionID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm subscription failed: %d %s", rec.Code, rec.Body.String())
	}
	return investorID, subscriptionID
}

// createAllocation adds an allocation to the subscription and returns its ID and version.
func (app *testApp) createAllocation(t *testing.T, token string, subscriptionID float64, tokenType string, amount float64) (allocationID, version float64) {
	t.Helper()
	body := fmt.Sprintf(`{"token_type":%q,"amount":%g}`, tokenType, amount)
	rec := app.request("POST", fmt.Sprintf("/api/v1/subscriptions/%.0f/allocations", subscriptionID), body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create allocation failed: %d %s", rec.Code, rec.Body.String())
	}
	alloc := parseJSON(t, rec)["allocation"].(map[string]interface{})
	return alloc["id"].(float64), alloc["version"].(float64)
}

// confirmAllocation stamps the allocation date.
func (app *testApp) confirmAllocation(t *testing.T, token string, allocationID float64) {
	t.Helper()
	rec := app.request("POST", fmt.Sprintf("/api/v1/allocations/%.0f/confirm", allocationID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm allocation failed: %d %s", rec.Code, rec.Body.String())
	}
}
