package middleware

import (
	"context"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/printshop-task-api/internal/constants"
	apierrors "github.com/yukikurage/printshop-task-api/internal/errors"
	"github.com/yukikurage/printshop-task-api/internal/models"
	"github.com/yukikurage/printshop-task-api/internal/services"
)

// OrderLoader fetches an order by id
type OrderLoader interface {
	GetOrder(ctx context.Context, id string) (*models.Order, error)
}

// LoadOrder resolves the :id path parameter to an order and stores it in the context.
// Requests for unknown orders stop here with a 404.
func LoadOrder(loader OrderLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id")
		if orderID == "" {
			apierrors.BadRequest(c, "Invalid order ID")
			c.Abort()
			return
		}

		order, err := loader.GetOrder(c.Request.Context(), orderID)
		if err != nil {
			if errors.Is(err, services.ErrOrderNotFound) {
				apierrors.NotFound(c, "Order not found")
			} else {
				log.Printf("failed to load order %s: %v", orderID, err)
				apierrors.InternalError(c, "Failed to load order")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyOrder, *order)
		c.Next()
	}
}

// GetOrder returns the order stored by LoadOrder
func GetOrder(c *gin.Context) (models.Order, bool) {
	value, exists := c.Get(constants.ContextKeyOrder)
	if !exists {
		return models.Order{}, false
	}
	order, ok := value.(models.Order)
	return order, ok
}
