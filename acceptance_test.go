package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhiraj-restaurant/restaurant-api/models"
	"github.com/abhiraj-restaurant/restaurant-api/tests/testutil"
)

// doRequest sends a real HTTP request to the test server
func doRequest(t *testing.T, server *httptest.Server, method, path string, body interface{}, token string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBody
}

// TestServerStartup verifies the full router can be built
func TestServerStartup(t *testing.T) {
	router, _, _ := setupTestApp(t)
	assert.NotNil(t, router, "Router should be initialized")
}

// TestReservationScenario walks a table booking from request to confirmation
func TestReservationScenario(t *testing.T) {
	router, db, cfg := setupTestApp(t)
	server := httptest.NewServer(router)
	defer server.Close()

	admin := testutil.CreateUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	adminToken := testutil.TokenFor(t, cfg, admin)

	// Step 1: a guest reserves a table
	status, body := doRequest(t, server, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"name":   "Ada Lovelace",
		"email":  "ada@example.com",
		"phone":  "+15550101",
		"date":   "2099-01-01",
		"time":   "7:00 PM",
		"guests": 4,
	}, "")
	require.Equal(t, http.StatusCreated, status, string(body))
	booking := testutil.Data(t, body)
	assert.Equal(t, "pending", booking["status"])
	assert.Equal(t, "2099-01-01", booking["date"])
	assert.Equal(t, "7:00 PM", booking["time"])
	assert.Equal(t, float64(4), booking["guests"])

	// Step 2: the same seating cannot be taken twice
	status, body = doRequest(t, server, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"name":   "Charles Babbage",
		"email":  "charles@example.com",
		"phone":  "+15550102",
		"date":   "2099-01-01",
		"time":   "7:00 PM",
		"guests": 2,
	}, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "SLOT_UNAVAILABLE", testutil.ErrorCode(t, body))

	// Step 3: an administrator confirms the first booking
	path := fmt.Sprintf("/api/v1/admin/bookings/%d", int(booking["id"].(float64)))
	status, body = doRequest(t, server, http.MethodPut, path, map[string]interface{}{"status": "confirmed"}, adminToken)
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = doRequest(t, server, http.MethodGet, path, nil, adminToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "confirmed", testutil.Data(t, body)["status"])
}

// TestUnauthenticatedCheckout verifies orders require a signed-in customer
func TestUnauthenticatedCheckout(t *testing.T) {
	router, db, _ := setupTestApp(t)
	server := httptest.NewServer(router)
	defer server.Close()

	item := testutil.CreateMenuItem(t, db, "Burger", 12, true)

	status, body := doRequest(t, server, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"items":         []map[string]interface{}{{"menuItem": item.ID, "quantity": 1}},
		"totalAmount":   12,
		"orderType":     "pickup",
		"paymentMethod": "card",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", testutil.ErrorCode(t, body))

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

// TestCheckoutScenario verifies pricing and fulfillment estimates end to end
func TestCheckoutScenario(t *testing.T) {
	router, db, cfg := setupTestApp(t)
	server := httptest.NewServer(router)
	defer server.Close()

	customer := testutil.CreateUser(t, db, "Customer", "customer@example.com", models.RoleCustomer)
	token := testutil.TokenFor(t, cfg, customer)
	itemA := testutil.CreateMenuItem(t, db, "Pasta", 10, true)
	itemB := testutil.CreateMenuItem(t, db, "Salad", 5, true)

	status, body := doRequest(t, server, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"menuItem": itemA.ID, "quantity": 2},
			{"menuItem": itemB.ID, "quantity": 1},
		},
		"totalAmount":   25,
		"orderType":     "pickup",
		"paymentMethod": "cash",
	}, token)
	require.Equal(t, http.StatusCreated, status, string(body))

	order := testutil.Data(t, body)
	assert.Equal(t, 25.0, order["totalAmount"])
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, "pending", order["paymentStatus"])

	createdAt, err := time.Parse(time.RFC3339, order["createdAt"].(string))
	require.NoError(t, err)
	eta, err := time.Parse(time.RFC3339, order["estimatedDeliveryTime"].(string))
	require.NoError(t, err)
	assert.InDelta(t, (30 * time.Minute).Seconds(), eta.Sub(createdAt).Seconds(), 5)

	// The order is visible to its owner
	status, body = doRequest(t, server, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", int(order["id"].(float64))), nil, token)
	require.Equal(t, http.StatusOK, status)
	items := testutil.Data(t, body)["items"].([]interface{})
	assert.Len(t, items, 2)
}
