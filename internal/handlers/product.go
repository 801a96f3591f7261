package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/printshop-task-api/internal/dto"
	apierrors "github.com/yukikurage/printshop-task-api/internal/errors"
	"github.com/yukikurage/printshop-task-api/internal/services"
	"github.com/yukikurage/printshop-task-api/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// CreateProduct adds a product and its recipe to the catalog
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), services.ProductInput{
		Name:   req.Name,
		Recipe: dto.ToRecipe(req.Recipe),
	})
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProductDTO(*product))
}

// ListProducts returns a page of products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.productService.ListProducts(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedResponse[dto.ProductDTO]{
		Data: dto.ToProductDTOs(products),
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetProduct returns a single product
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProductDTO(*product))
}

// UpdateProduct replaces a product's name and recipe.
// Orders created earlier keep the tasks they were derived with.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), services.ProductInput{
		Name:   req.Name,
		Recipe: dto.ToRecipe(req.Recipe),
	})
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProductDTO(*product))
}

// DeleteProduct removes a product from the catalog
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// PreviewProductTask shows the task one order line for this product would produce
func (h *ProductHandler) PreviewProductTask(c *gin.Context) {
	quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid quantity")
		return
	}

	preview, err := h.productService.PreviewProductTask(c.Request.Context(), c.Param("id"), quantity, c.Query("deadline"))
	if err != nil {
		respondProductError(c, err)
		return
	}

	var task *dto.TaskDTO
	if preview.Task != nil {
		converted := dto.ToTaskDTO(*preview.Task)
		task = &converted
	}

	c.JSON(http.StatusOK, gin.H{
		"task":        task,
		"diagnostics": nonNilDiagnostics(preview.Diagnostics),
	})
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		apierrors.NotFound(c, "Product not found")
	case errors.Is(err, services.ErrProductNameRequired),
		errors.Is(err, services.ErrIngredientIDMissing),
		errors.Is(err, services.ErrTemplateTitleEmpty),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidQuantity):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Printf("product request failed: %v", err)
		apierrors.InternalError(c, "Internal server error")
	}
}
