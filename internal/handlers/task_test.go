package handlers

import (
	"net/http"

	"github.com/yukikurage/printshop-task-api/internal/dto"
	"github.com/yukikurage/printshop-task-api/internal/models"
)

type taskListResponse struct {
	OrderID string        `json:"order_id"`
	Version int64         `json:"version"`
	Tasks   []dto.TaskDTO `json:"tasks"`
}

func (suite *HandlerTestSuite) listTasks(orderID string) taskListResponse {
	w := suite.do(http.MethodGet, "/api/orders/"+orderID+"/tasks", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp taskListResponse
	suite.decode(w, &resp)
	return resp
}

func (suite *HandlerTestSuite) TestAttachTask_WithSubtasks() {
	created := suite.createOrder(suite.createProduct("P1", "Cetak").ID)

	w := suite.do(http.MethodPost, "/api/orders/"+created.Order.ID+"/tasks", map[string]interface{}{
		"title":    "Quality check",
		"priority": "low",
		"subtasks": []map[string]interface{}{{"title": "Count sheets"}},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var task dto.TaskDTO
	suite.decode(w, &task)
	suite.NotEmpty(task.ID)
	suite.Equal(created.Order.ID, task.OrderID)
	suite.Equal(models.TaskStatusTodo, task.Status)
	suite.Require().Len(task.Subtasks, 1)
	suite.Equal(task.ID, task.Subtasks[0].ParentTaskID)

	list := suite.listTasks(created.Order.ID)
	suite.Len(list.Tasks, 2)
	suite.Equal(int64(2), list.Version)
}

func (suite *HandlerTestSuite) TestAttachTask_Validation() {
	created := suite.createOrder(suite.createProduct("P1", "Cetak").ID)

	w := suite.do(http.MethodPost, "/api/orders/"+created.Order.ID+"/tasks", map[string]interface{}{"description": "no title"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/orders/"+created.Order.ID+"/tasks", map[string]interface{}{"title": "x", "status": "archived"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/orders/missing/tasks", map[string]interface{}{"title": "x"})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestReplaceTask_Nested() {
	created := suite.createOrder(suite.createProduct("P1", "Cetak").ID)
	leaf := created.Order.Tasks[0].Subtasks[0].Subtasks[0]

	w := suite.do(http.MethodPut, "/api/orders/"+created.Order.ID+"/tasks/"+leaf.ID, map[string]interface{}{
		"title":  "Cetak ulang",
		"status": "in_progress",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var task dto.TaskDTO
	suite.decode(w, &task)
	suite.Equal(leaf.ID, task.ID)
	suite.Equal(leaf.ParentTaskID, task.ParentTaskID)
	suite.Equal(models.TaskStatusInProgress, task.Status)

	list := suite.listTasks(created.Order.ID)
	suite.Equal("Cetak ulang", list.Tasks[0].Subtasks[0].Subtasks[0].Title)
}

func (suite *HandlerTestSuite) TestReplaceTask_UnknownTask() {
	created := suite.createOrder(suite.createProduct("P1", "Cetak").ID)

	w := suite.do(http.MethodPut, "/api/orders/"+created.Order.ID+"/tasks/nope", map[string]interface{}{"title": "x"})
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal(int64(1), suite.listTasks(created.Order.ID).Version)
}

func (suite *HandlerTestSuite) TestRemoveTask() {
	created := suite.createOrder(suite.createProduct("P1", "Cetak").ID)
	product := created.Order.Tasks[0].Subtasks[0]

	w := suite.do(http.MethodDelete, "/api/orders/"+created.Order.ID+"/tasks/"+product.ID, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	list := suite.listTasks(created.Order.ID)
	suite.Require().Len(list.Tasks, 1)
	suite.Empty(list.Tasks[0].Subtasks)

	w = suite.do(http.MethodDelete, "/api/orders/"+created.Order.ID+"/tasks/"+product.ID, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListTasks_UnknownOrder() {
	w := suite.do(http.MethodGet, "/api/orders/missing/tasks", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}
