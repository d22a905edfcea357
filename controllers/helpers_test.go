package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/abhiraj-restaurant/restaurant-api/config"
	"github.com/abhiraj-restaurant/restaurant-api/middleware"
	"github.com/abhiraj-restaurant/restaurant-api/models"
	"github.com/abhiraj-restaurant/restaurant-api/services"
)

// setupTestDB installs a migrated in-memory database, a recording notifier
// and a test configuration as the process globals used by handlers
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := models.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	config.SetConfig(&config.Config{
		GoEnv:         "test",
		Timezone:      "UTC",
		PublicBaseURL: "https://restaurant.example.com",
	})
	services.NewMockNotifier().SetAsMockForTesting()
	services.SetImageService(nil)

	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// mockAuthMiddleware stands in for EnsureValidToken + LoadPrincipal.
// It sets up the context exactly as the real chain does.
func mockAuthMiddleware(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", strconv.FormatUint(uint64(user.ID), 10))
		c.Set("validated_claims", &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{Subject: strconv.FormatUint(uint64(user.ID), 10)},
			CustomClaims:     &middleware.CustomClaims{},
		})
		middleware.SetPrincipal(c, user)
		c.Next()
	}
}

func createUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	user := &models.User{Name: name, Email: email, Phone: "+1234567890", Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createMenuItem(t *testing.T, db *gorm.DB, name string, price float64, category string, available bool) *models.MenuItem {
	item := &models.MenuItem{
		Name:            name,
		Description:     name + " description",
		Price:           price,
		Category:        category,
		IsAvailable:     available,
		PreparationTime: services.DefaultPreparationTime,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func createReservation(t *testing.T, db *gorm.DB, customerID *uint, date, slot, status string) *models.Reservation {
	reservation := &models.Reservation{
		CustomerID: customerID,
		Name:       "Guest",
		Email:      "guest@example.com",
		Phone:      "+1234567890",
		Date:       date,
		TimeSlot:   slot,
		Guests:     2,
		Status:     status,
	}
	require.NoError(t, db.Create(reservation).Error)
	return reservation
}

func createOrder(t *testing.T, db *gorm.DB, customerID uint, status string) *models.Order {
	order := &models.Order{
		CustomerID:    customerID,
		TotalAmount:   12.5,
		Status:        status,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: models.PaymentMethodCash,
		OrderType:     models.OrderTypePickup,
		Items:         []models.OrderItem{{MenuItemID: 1, Name: "Soup", Quantity: 1, UnitPrice: 12.5}},
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func performJSONRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return response
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	response := decodeResponse(t, w)
	errObj, ok := response["error"].(map[string]interface{})
	require.True(t, ok, "response has no error object: %s", w.Body.String())
	return errObj["code"].(string)
}
