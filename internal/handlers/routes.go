package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/printshop-task-api/internal/middleware"
)

// RegisterRoutes mounts the catalog, order and task endpoints under /api
func RegisterRoutes(r gin.IRouter, products *ProductHandler, orders *OrderHandler, tasks *TaskHandler, loader middleware.OrderLoader) {
	api := r.Group("/api")
	{
		// Product catalog routes
		catalog := api.Group("/products")
		{
			catalog.POST("", products.CreateProduct)
			catalog.GET("", products.ListProducts)
			catalog.GET("/:id", products.GetProduct)
			catalog.PUT("/:id", products.UpdateProduct)
			catalog.DELETE("/:id", products.DeleteProduct)
			catalog.GET("/:id/task-preview", products.PreviewProductTask)
		}

		// Order routes
		orderRoutes := api.Group("/orders")
		{
			orderRoutes.POST("", orders.CreateOrder)
			orderRoutes.GET("", orders.ListOrders)
			orderRoutes.GET("/:id", middleware.LoadOrder(loader), orders.GetOrder)
			orderRoutes.PATCH("/:id/status", orders.UpdateOrderStatus)
			orderRoutes.DELETE("/:id", orders.DeleteOrder)
			orderRoutes.POST("/:id/tasks/preview", orders.PreviewOrderTasks)

			// Task tree routes
			orderRoutes.GET("/:id/tasks", middleware.LoadOrder(loader), tasks.ListTasks)
			orderRoutes.POST("/:id/tasks", tasks.AttachTask)
			orderRoutes.PUT("/:id/tasks/:task_id", tasks.ReplaceTask)
			orderRoutes.DELETE("/:id/tasks/:task_id", tasks.RemoveTask)
		}
	}
}
