package dto

import (
	"time"

	"github.com/yukikurage/printshop-task-api/internal/models"
)

// TaskTemplateDTO represents a task template in requests and responses
type TaskTemplateDTO struct {
	Title         string              `json:"title" binding:"required"`
	Description   string              `json:"description"`
	Priority      models.TaskPriority `json:"priority,omitempty"`
	EstimatedTime int                 `json:"estimated_time,omitempty" binding:"gte=0"`
	IngredientID  string              `json:"ingredient_id,omitempty"`
}

// RecipeIngredientDTO represents a recipe line in requests and responses
type RecipeIngredientDTO struct {
	IngredientID   string            `json:"ingredient_id" binding:"required"`
	IngredientName string            `json:"ingredient_name,omitempty"`
	Quantity       float64           `json:"quantity" binding:"gte=0"`
	Unit           string            `json:"unit"`
	Price          float64           `json:"price" binding:"gte=0"`
	TaskTemplates  []TaskTemplateDTO `json:"task_templates" binding:"dive"`
}

// ProductDTO represents a product in API responses
type ProductDTO struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Recipe    []RecipeIngredientDTO `json:"recipe"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// ProductRequest is the request body for creating or updating a product
type ProductRequest struct {
	Name   string                `json:"name" binding:"required"`
	Recipe []RecipeIngredientDTO `json:"recipe" binding:"dive"`
}

// ToProductDTO converts a Product model to ProductDTO
func ToProductDTO(product models.Product) ProductDTO {
	recipe := make([]RecipeIngredientDTO, len(product.Recipe))
	for i, ingredient := range product.Recipe {
		templates := make([]TaskTemplateDTO, len(ingredient.TaskTemplates))
		for j, tmpl := range ingredient.TaskTemplates {
			templates[j] = TaskTemplateDTO{
				Title:         tmpl.Title,
				Description:   tmpl.Description,
				Priority:      tmpl.Priority,
				EstimatedTime: tmpl.EstimatedTime,
				IngredientID:  tmpl.IngredientID,
			}
		}
		recipe[i] = RecipeIngredientDTO{
			IngredientID:   ingredient.IngredientID,
			IngredientName: ingredient.IngredientName,
			Quantity:       ingredient.Quantity,
			Unit:           ingredient.Unit,
			Price:          ingredient.Price,
			TaskTemplates:  templates,
		}
	}

	return ProductDTO{
		ID:        product.ID,
		Name:      product.Name,
		Recipe:    recipe,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}

// ToProductDTOs converts a page of products
func ToProductDTOs(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, len(products))
	for i, p := range products {
		out[i] = ToProductDTO(p)
	}
	return out
}

// ToRecipe converts request recipe lines to models
func ToRecipe(recipe []RecipeIngredientDTO) []models.RecipeIngredient {
	out := make([]models.RecipeIngredient, len(recipe))
	for i, ingredient := range recipe {
		templates := make([]models.TaskTemplate, len(ingredient.TaskTemplates))
		for j, tmpl := range ingredient.TaskTemplates {
			templates[j] = models.TaskTemplate{
				Title:         tmpl.Title,
				Description:   tmpl.Description,
				Priority:      tmpl.Priority,
				EstimatedTime: tmpl.EstimatedTime,
				IngredientID:  tmpl.IngredientID,
			}
		}
		out[i] = models.RecipeIngredient{
			IngredientID:   ingredient.IngredientID,
			IngredientName: ingredient.IngredientName,
			Quantity:       ingredient.Quantity,
			Unit:           ingredient.Unit,
			Price:          ingredient.Price,
			TaskTemplates:  templates,
		}
	}
	return out
}
