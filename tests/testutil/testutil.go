package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/abhiraj-restaurant/restaurant-api/config"
	"github.com/abhiraj-restaurant/restaurant-api/models"
	"github.com/abhiraj-restaurant/restaurant-api/services"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against production or development databases.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in TestMain or suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}
	RequireTestEnvironment(t)
}

// TestConfig returns the configuration shared by the HTTP level suites
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "8080",
		GoEnv:              "test",
		JWTSecret:          "integration-test-secret",
		JWTIssuer:          "restaurant-api",
		JWTAudience:        "restaurant-clients",
		CORSAllowedOrigins: []string{"*"},
		Notifier:           config.NotifierLog,
		PublicBaseURL:      "https://restaurant.example.com",
		Timezone:           "UTC",
	}
}

// SetupTestDB opens a migrated in-memory SQLite database and installs it
// together with cfg, a mock notifier and no image storage.
func SetupTestDB(t *testing.T, cfg *config.Config) (*gorm.DB, *services.MockNotifier) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// Every connection to :memory: is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.Migrate(db))

	config.SetDB(db)
	config.SetConfig(cfg)

	notifier := services.NewMockNotifier()
	notifier.SetAsMockForTesting()
	services.SetImageService(nil)

	return db, notifier
}

// CreateUser inserts a user with the given role
func CreateUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()

	user := &models.User{Name: name, Email: email, Phone: "+15550100", Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateMenuItem inserts a menu item
func CreateMenuItem(t *testing.T, db *gorm.DB, name string, price float64, available bool) *models.MenuItem {
	t.Helper()

	item := &models.MenuItem{
		Name:            name,
		Description:     name + " from the kitchen",
		Price:           price,
		Category:        models.CategoryMains,
		IsAvailable:     available,
		PreparationTime: 20,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

// NewJSONRequest builds a request with an optional JSON body and bearer token
func NewJSONRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// Serve runs a request through the router
func Serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// DecodeBody unmarshals a JSON envelope
func DecodeBody(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &response))
	return response
}

// ErrorCode extracts error.code from a failure envelope
func ErrorCode(t *testing.T, body []byte) string {
	t.Helper()

	response := DecodeBody(t, body)
	errObj, ok := response["error"].(map[string]interface{})
	require.True(t, ok, "response has no error object: %s", string(body))
	return errObj["code"].(string)
}

// Data extracts the data object from a success envelope
func Data(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()

	data, ok := DecodeBody(t, body)["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", string(body))
	return data
}
