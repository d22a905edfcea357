package acceptance

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/abhiraj-restaurant/restaurant-api/config"
	"github.com/abhiraj-restaurant/restaurant-api/models"
	"github.com/abhiraj-restaurant/restaurant-api/services"
	"github.com/abhiraj-restaurant/restaurant-api/tests/testutil"
)

// MenuAcceptanceTestSuite covers catalog management by the kitchen
type MenuAcceptanceTestSuite struct {
	suite.Suite
	server        *httptest.Server
	db            *gorm.DB
	cfg           *config.Config
	mockS3        *services.MockS3Service
	adminToken    string
	customerToken string
}

// SetupSuite runs once before all tests
func (suite *MenuAcceptanceTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	testutil.MustSetTestEnvironment(suite.T())
	suite.cfg = testutil.TestConfig()
}

// SetupTest runs before each test
func (suite *MenuAcceptanceTestSuite) SetupTest() {
	suite.db, _ = testutil.SetupTestDB(suite.T(), suite.cfg)

	// Real image service on top of in-memory object storage
	suite.mockS3 = services.NewMockS3Service()
	suite.mockS3.SetAsMockForTesting()
	services.InitImageService(suite.mockS3)

	admin := testutil.CreateUser(suite.T(), suite.db, "Admin", "admin@example.com", models.RoleAdmin)
	customer := testutil.CreateUser(suite.T(), suite.db, "Customer", "customer@example.com", models.RoleCustomer)
	suite.adminToken = testutil.TokenFor(suite.T(), suite.cfg, admin)
	suite.customerToken = testutil.TokenFor(suite.T(), suite.cfg, customer)

	suite.server = httptest.NewServer(createRouter(suite.cfg))
}

// TearDownTest runs after each test
func (suite *MenuAcceptanceTestSuite) TearDownTest() {
	suite.server.Close()
	services.SetImageService(nil)
	services.SetS3Service(nil)
}

func (suite *MenuAcceptanceTestSuite) publicMenuNames() []string {
	status, body := doJSON(suite.T(), suite.server, http.MethodGet, "/api/v1/menu", nil, "")
	suite.Require().Equal(http.StatusOK, status)

	names := []string{}
	for _, raw := range testutil.DecodeBody(suite.T(), body)["data"].([]interface{}) {
		names = append(names, raw.(map[string]interface{})["name"].(string))
	}
	return names
}

func (suite *MenuAcceptanceTestSuite) TestKitchenManagesMenu() {
	status, body := doJSON(suite.T(), suite.server, http.MethodPost, "/api/v1/admin/menu", map[string]interface{}{
		"name":        "Margherita",
		"description": "Tomato, mozzarella, basil",
		"price":       11.5,
		"category":    "mains",
	}, suite.adminToken)
	suite.Require().Equal(http.StatusCreated, status, string(body))
	item := testutil.Data(suite.T(), body)
	suite.Equal(float64(services.DefaultPreparationTime), item["preparationTime"])
	path := fmt.Sprintf("/api/v1/admin/menu/%d", int(item["id"].(float64)))

	suite.Equal([]string{"Margherita"}, suite.publicMenuNames())

	// Upload a photo; the menu then serves a signed URL for it
	status, body = doUpload(suite.T(), suite.server, path+"/image", "pizza.png", []byte("png"), suite.adminToken)
	suite.Require().Equal(http.StatusOK, status, string(body))
	suite.Contains(testutil.Data(suite.T(), body)["imageUrl"], "mock=true")
	suite.Equal(1, suite.mockS3.Count())

	status, body = doJSON(suite.T(), suite.server, http.MethodGet, "/api/v1/menu", nil, "")
	suite.Require().Equal(http.StatusOK, status)
	listed := testutil.DecodeBody(suite.T(), body)["data"].([]interface{})[0].(map[string]interface{})
	suite.NotEmpty(listed["imageUrl"])

	// Sold out items disappear from the public menu but stay in the admin list
	status, _ = doJSON(suite.T(), suite.server, http.MethodPut, path, map[string]interface{}{"isAvailable": false}, suite.adminToken)
	suite.Require().Equal(http.StatusOK, status)
	suite.Empty(suite.publicMenuNames())

	status, body = doJSON(suite.T(), suite.server, http.MethodGet, "/api/v1/admin/menu", nil, suite.adminToken)
	suite.Require().Equal(http.StatusOK, status)
	suite.Len(testutil.DecodeBody(suite.T(), body)["data"], 1)

	// Deleting the item also removes its photo
	status, _ = doJSON(suite.T(), suite.server, http.MethodDelete, path, nil, suite.adminToken)
	suite.Require().Equal(http.StatusOK, status)
	suite.Equal(0, suite.mockS3.Count())

	status, _ = doJSON(suite.T(), suite.server, http.MethodGet, path, nil, suite.adminToken)
	suite.Equal(http.StatusNotFound, status)
}

func (suite *MenuAcceptanceTestSuite) TestRejectsUnsupportedImages() {
	item := testutil.CreateMenuItem(suite.T(), suite.db, "Soup", 6, true)
	path := fmt.Sprintf("/api/v1/admin/menu/%d/image", item.ID)

	status, body := doUpload(suite.T(), suite.server, path, "soup.bmp", []byte("bmp"), suite.adminToken)
	suite.Equal(http.StatusBadRequest, status)
	suite.Equal("INVALID_FILE_FORMAT", testutil.ErrorCode(suite.T(), body))
	suite.Equal(0, suite.mockS3.Count())
}

func (suite *MenuAcceptanceTestSuite) TestCustomersCannotEditMenu() {
	status, body := doJSON(suite.T(), suite.server, http.MethodPost, "/api/v1/admin/menu", map[string]interface{}{
		"name": "Sneaky", "description": "Not allowed", "price": 1, "category": "beverages",
	}, suite.customerToken)
	suite.Equal(http.StatusForbidden, status)
	suite.Equal("FORBIDDEN", testutil.ErrorCode(suite.T(), body))
}

func (suite *MenuAcceptanceTestSuite) TestSoldOutItemCannotBeOrdered() {
	item := testutil.CreateMenuItem(suite.T(), suite.db, "Lobster", 55, true)

	status, _ := doJSON(suite.T(), suite.server, http.MethodPut, fmt.Sprintf("/api/v1/admin/menu/%d", item.ID),
		map[string]interface{}{"isAvailable": false}, suite.adminToken)
	suite.Require().Equal(http.StatusOK, status)

	status, body := doJSON(suite.T(), suite.server, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"items":         []map[string]interface{}{{"menuItem": item.ID, "quantity": 1}},
		"totalAmount":   55,
		"orderType":     "pickup",
		"paymentMethod": "card",
	}, suite.customerToken)
	suite.Equal(http.StatusBadRequest, status)
	suite.Equal("ITEM_UNAVAILABLE", testutil.ErrorCode(suite.T(), body))
}

func TestMenuAcceptanceTestSuite(t *testing.T) {
	suite.Run(t, new(MenuAcceptanceTestSuite))
}
