package handlers

import (
	"net/http"

	"github.com/yukikurage/printshop-task-api/internal/dto"
)

func (suite *HandlerTestSuite) TestCreateProduct_Success() {
	product := suite.createProduct("Brosur A5", "Cetak", "Potong")

	suite.NotEmpty(product.ID)
	suite.Equal("Brosur A5", product.Name)
	suite.Require().Len(product.Recipe, 1)
	suite.Require().Len(product.Recipe[0].TaskTemplates, 2)
	suite.Equal("paper", product.Recipe[0].TaskTemplates[0].IngredientID)
}

func (suite *HandlerTestSuite) TestCreateProduct_InvalidRequest() {
	w := suite.do(http.MethodPost, "/api/products", map[string]interface{}{
		"recipe": []map[string]interface{}{},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCreateProduct_InvalidTemplatePriority() {
	w := suite.do(http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Kartu Nama",
		"recipe": []map[string]interface{}{{
			"ingredient_id":  "paper",
			"task_templates": []map[string]interface{}{{"title": "Cetak", "priority": "urgent"}},
		}},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListProducts_Paginated() {
	suite.createProduct("B")
	suite.createProduct("A")
	suite.createProduct("C")

	w := suite.do(http.MethodGet, "/api/products?page=1&limit=2", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.PaginatedResponse[dto.ProductDTO]
	suite.decode(w, &resp)
	suite.Equal(int64(3), resp.Pagination.Total)
	suite.Require().Len(resp.Data, 2)
	suite.Equal("A", resp.Data[0].Name)
	suite.Equal("B", resp.Data[1].Name)
}

func (suite *HandlerTestSuite) TestGetProduct_NotFound() {
	w := suite.do(http.MethodGet, "/api/products/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateProduct_Success() {
	product := suite.createProduct("Old")

	w := suite.do(http.MethodPut, "/api/products/"+product.ID, map[string]interface{}{
		"name":   "New",
		"recipe": []map[string]interface{}{},
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var updated dto.ProductDTO
	suite.decode(w, &updated)
	suite.Equal("New", updated.Name)
	suite.Empty(updated.Recipe)
}

func (suite *HandlerTestSuite) TestDeleteProduct() {
	product := suite.createProduct("Gone")

	w := suite.do(http.MethodDelete, "/api/products/"+product.ID, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodDelete, "/api/products/"+product.ID, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestPreviewProductTask() {
	product := suite.createProduct("Stiker", "Cetak", "Laminasi")

	w := suite.do(http.MethodGet, "/api/products/"+product.ID+"/task-preview?quantity=25&deadline=2024-08-01", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Task        *dto.TaskDTO  `json:"task"`
		Diagnostics []interface{} `json:"diagnostics"`
	}
	suite.decode(w, &resp)
	suite.Require().NotNil(resp.Task)
	suite.Equal("Stiker (25 pcs)", resp.Task.Title)
	suite.Equal("2024-08-01", resp.Task.Deadline)
	suite.Len(resp.Task.Subtasks, 2)
	suite.Empty(resp.Diagnostics)
}

func (suite *HandlerTestSuite) TestPreviewProductTask_InvalidQuantity() {
	product := suite.createProduct("Stiker", "Cetak")

	w := suite.do(http.MethodGet, "/api/products/"+product.ID+"/task-preview?quantity=abc", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/products/"+product.ID+"/task-preview?quantity=0", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}
