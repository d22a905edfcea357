package acceptance

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/abhiraj-restaurant/restaurant-api/config"
	"github.com/abhiraj-restaurant/restaurant-api/controllers"
	"github.com/abhiraj-restaurant/restaurant-api/middleware"
	"github.com/abhiraj-restaurant/restaurant-api/models"
)

// createRouter mirrors the production route table
func createRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/menu", controllers.GetMenu)
		v1.POST("/bookings", middleware.OptionalToken(cfg), middleware.LoadOptionalPrincipal(), controllers.CreateBooking)

		customer := v1.Group("")
		customer.Use(middleware.EnsureValidToken(cfg), middleware.LoadPrincipal())
		{
			customer.GET("/bookings/user", controllers.GetMyBookings)
			customer.POST("/orders", controllers.CreateOrder)
			customer.GET("/orders/user", controllers.GetMyOrders)
			customer.GET("/orders/:id", controllers.GetOrder)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.EnsureValidToken(cfg), middleware.LoadPrincipal(), middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/bookings", controllers.ListBookings)
			admin.POST("/bookings", controllers.AdminCreateBooking)
			admin.GET("/bookings/:id", controllers.GetBooking)
			admin.PUT("/bookings/:id", controllers.UpdateBookingStatus)
			admin.DELETE("/bookings/:id", controllers.DeleteBooking)

			admin.GET("/menu", controllers.AdminListMenu)
			admin.POST("/menu", controllers.CreateMenuItem)
			admin.GET("/menu/:id", controllers.GetMenuItem)
			admin.PUT("/menu/:id", controllers.UpdateMenuItem)
			admin.DELETE("/menu/:id", controllers.DeleteMenuItem)
			admin.POST("/menu/:id/image", controllers.UploadMenuItemImage)

			admin.GET("/orders", controllers.ListOrders)
			admin.GET("/orders/:id", controllers.AdminGetOrder)
			admin.PUT("/orders/:id", controllers.UpdateOrder)
			admin.DELETE("/orders/:id", controllers.DeleteOrder)
		}
	}

	return router
}

// doJSON sends a JSON request to a running test server
func doJSON(t *testing.T, server *httptest.Server, method, path string, body interface{}, token string) (int, []byte) {
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
	return send(t, server, req, token)
}

// doUpload posts a single file in the "image" form field
func doUpload(t *testing.T, server *httptest.Server, path, filename string, content []byte, token string) (int, []byte) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return send(t, server, req, token)
}

func send(t *testing.T, server *httptest.Server, req *http.Request, token string) (int, []byte) {
	t.Helper()

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
