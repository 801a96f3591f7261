package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/printshop-task-api/internal/derivation"
	"github.com/yukikurage/printshop-task-api/internal/dto"
	"github.com/yukikurage/printshop-task-api/internal/repository"
	"github.com/yukikurage/printshop-task-api/internal/services"
	"github.com/yukikurage/printshop-task-api/internal/testutil"
)

// HandlerTestSuite drives the API end to end against an in-memory database
type HandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db := testutil.NewSQLiteDB(suite.T())
	engine := derivation.New()
	orderRepo := repository.NewOrderRepository(db)
	productService := services.NewProductService(repository.NewProductRepository(db), engine)
	orderService := services.NewOrderService(orderRepo, productService, engine)
	taskTreeService := services.NewTaskTreeService(orderRepo, 3)

	suite.router = gin.New()
	RegisterRoutes(suite.router,
		NewProductHandler(productService),
		NewOrderHandler(orderService),
		NewTaskHandler(taskTreeService),
		orderService,
	)
}

func (suite *HandlerTestSuite) do(method, url string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, out interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out))
}

func (suite *HandlerTestSuite) createProduct(name string, templates ...string) dto.ProductDTO {
	tmpls := make([]map[string]interface{}, len(templates))
	for i, title := range templates {
		tmpls[i] = map[string]interface{}{"title": title}
	}
	w := suite.do(http.MethodPost, "/api/products", map[string]interface{}{
		"name": name,
		"recipe": []map[string]interface{}{{
			"ingredient_id":  "paper",
			"quantity":       1,
			"unit":           "sheet",
			"task_templates": tmpls,
		}},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var product dto.ProductDTO
	suite.decode(w, &product)
	return product
}

type createOrderResponse struct {
	Order       dto.OrderDTO            `json:"order"`
	Diagnostics []derivation.Diagnostic `json:"diagnostics"`
}

func (suite *HandlerTestSuite) createOrder(productIDs ...string) createOrderResponse {
	items := make([]map[string]interface{}, len(productIDs))
	for i, id := range productIDs {
		items[i] = map[string]interface{}{"product_id": id, "quantity": 10}
	}
	w := suite.do(http.MethodPost, "/api/orders", map[string]interface{}{
		"customer_name": "Budi",
		"delivery_date": "2024-07-01",
		"items":         items,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp createOrderResponse
	suite.decode(w, &resp)
	return resp
}

// TestHandlerTestSuite runs the test suite
func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
