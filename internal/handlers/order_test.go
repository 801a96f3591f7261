package handlers

import (
	"net/http"

	"github.com/yukikurage/printshop-task-api/internal/derivation"
	"github.com/yukikurage/printshop-task-api/internal/dto"
	"github.com/yukikurage/printshop-task-api/internal/models"
)

func (suite *HandlerTestSuite) TestCreateOrder_DerivesTaskTree() {
	p1 := suite.createProduct("P1", "Cetak", "Potong")
	p2 := suite.createProduct("P2", "Jilid")

	resp := suite.createOrder(p1.ID, p2.ID)

	suite.Empty(resp.Diagnostics)
	suite.Equal(models.OrderStatusPending, resp.Order.Status)
	suite.Equal(int64(1), resp.Order.Version)
	suite.Require().Len(resp.Order.Tasks, 1)
	root := resp.Order.Tasks[0]
	suite.Equal("Order #"+derivation.ShortID(resp.Order.ID)+" - Budi", root.Title)
	suite.Require().Len(root.Subtasks, 2)
	suite.Len(root.Subtasks[0].Subtasks, 2)
	suite.Len(root.Subtasks[1].Subtasks, 1)
}

func (suite *HandlerTestSuite) TestCreateOrder_UnknownProductReportsDiagnostics() {
	resp := suite.createOrder("does-not-exist")

	root := resp.Order.Tasks[0]
	suite.Require().Len(root.Subtasks, 1)
	suite.Equal("Process order #"+derivation.ShortID(resp.Order.ID), root.Subtasks[0].Title)
	suite.True(derivation.HasKind(resp.Diagnostics, derivation.KindProductNotFound))
	suite.True(derivation.HasKind(resp.Diagnostics, derivation.KindPlaceholderSubstituted))
}

func (suite *HandlerTestSuite) TestCreateOrder_InvalidRequest() {
	cases := []map[string]interface{}{
		{"items": []map[string]interface{}{{"product_id": "x", "quantity": 1}}},
		{"customer_name": "Budi", "items": []map[string]interface{}{}},
		{"customer_name": "Budi", "items": []map[string]interface{}{{"product_id": "x", "quantity": 0}}},
	}
	for _, body := range cases {
		w := suite.do(http.MethodPost, "/api/orders", body)
		suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())
	}
}

func (suite *HandlerTestSuite) TestGetOrder() {
	created := suite.createOrder(suite.createProduct("P1", "Cetak").ID)

	w := suite.do(http.MethodGet, "/api/orders/"+created.Order.ID, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var order dto.OrderDTO
	suite.decode(w, &order)
	suite.Equal(created.Order.ID, order.ID)
	suite.Equal(created.Order.Tasks[0].ID, order.Tasks[0].ID)

	w = suite.do(http.MethodGet, "/api/orders/missing", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListOrders_FilterByStatus() {
	p := suite.createProduct("P1", "Cetak")
	first := suite.createOrder(p.ID)
	suite.createOrder(p.ID)

	w := suite.do(http.MethodPatch, "/api/orders/"+first.Order.ID+"/status", map[string]string{"status": "in_production"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.do(http.MethodGet, "/api/orders?status=in_production", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.PaginatedResponse[dto.OrderListItemDTO]
	suite.decode(w, &resp)
	suite.Equal(int64(1), resp.Pagination.Total)
	suite.Require().Len(resp.Data, 1)
	suite.Equal(first.Order.ID, resp.Data[0].ID)
	suite.Equal(3, resp.Data[0].TaskCount)

	w = suite.do(http.MethodGet, "/api/orders?status=lost", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateOrderStatus_RejectsInvalidTransition() {
	created := suite.createOrder(suite.createProduct("P1", "Cetak").ID)

	w := suite.do(http.MethodPatch, "/api/orders/"+created.Order.ID+"/status", map[string]string{"status": "completed"})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	w = suite.do(http.MethodPatch, "/api/orders/missing/status", map[string]string{"status": "cancelled"})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestPreviewOrderTasks_DoesNotPersist() {
	p := suite.createProduct("P1", "Cetak")
	created := suite.createOrder(p.ID)

	w := suite.do(http.MethodPost, "/api/orders/"+created.Order.ID+"/tasks/preview", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var preview dto.DerivationDTO
	suite.decode(w, &preview)
	suite.Require().Len(preview.Tasks, 1)
	suite.NotEqual(created.Order.Tasks[0].ID, preview.Tasks[0].ID)

	w = suite.do(http.MethodGet, "/api/orders/"+created.Order.ID, nil)
	var order dto.OrderDTO
	suite.decode(w, &order)
	suite.Equal(created.Order.Tasks[0].ID, order.Tasks[0].ID)
	suite.Equal(int64(1), order.Version)
}

func (suite *HandlerTestSuite) TestDeleteOrder() {
	created := suite.createOrder(suite.createProduct("P1", "Cetak").ID)

	w := suite.do(http.MethodDelete, "/api/orders/"+created.Order.ID, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/orders/"+created.Order.ID, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodDelete, "/api/orders/"+created.Order.ID, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}
