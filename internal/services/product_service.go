package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yukikurage/printshop-task-api/internal/derivation"
	"github.com/yukikurage/printshop-task-api/internal/models"
	"github.com/yukikurage/printshop-task-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNameRequired = errors.New("product name is required")
	ErrIngredientIDMissing = errors.New("every recipe ingredient needs an ingredient_id")
	ErrTemplateTitleEmpty  = errors.New("task template title cannot be empty")
	ErrInvalidPriority     = errors.New("priority must be one of low, medium, high")
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
)

// ProductService handles product catalog business logic
type ProductService struct {
	productRepo repository.ProductRepository
	engine      *derivation.Engine
}

// NewProductService creates a new ProductService
func NewProductService(productRepo repository.ProductRepository, engine *derivation.Engine) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		engine:      engine,
	}
}

// ProductInput represents input for creating or updating a product
type ProductInput struct {
	Name   string
	Recipe []models.RecipeIngredient
}

// CreateProduct validates and stores a new product
func (s *ProductService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	recipe, err := normalizeRecipe(input.Recipe)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProductNameRequired
	}

	product := &models.Product{
		ID:     uuid.NewString(),
		Name:   name,
		Recipe: recipe,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return product, nil
}

// ListProducts returns a page of products ordered by name
func (s *ProductService) ListProducts(ctx context.Context, page, pageSize int) ([]models.Product, int64, error) {
	products, total, err := s.productRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// UpdateProduct replaces a product's name and recipe
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input ProductInput) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	recipe, err := normalizeRecipe(input.Recipe)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProductNameRequired
	}

	product.Name = name
	product.Recipe = recipe

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// DeleteProduct removes a product. Orders already referencing it keep their
// tasks; future derivations treat it as a catalog miss.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// ProductTaskPreview is the task a single order line would generate
type ProductTaskPreview struct {
	Task        *models.Task
	Diagnostics []derivation.Diagnostic
}

// PreviewProductTask derives the task tree for quantity units of a product
// without touching any order.
func (s *ProductService) PreviewProductTask(ctx context.Context, productID string, quantity int, deadline string) (*ProductTaskPreview, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	catalog := derivation.NewProductIndex([]models.Product{*product})
	task, diags := s.engine.DeriveProductTask(catalog, product.ID, quantity, deadline, "", "")

	return &ProductTaskPreview{
		Task:        task,
		Diagnostics: diags,
	}, nil
}

// Catalog loads the products referenced by items into an in-memory catalog
func (s *ProductService) Catalog(ctx context.Context, items []models.OrderItem) (derivation.ProductIndex, error) {
	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	return derivation.NewProductIndex(products), nil
}

// normalizeRecipe validates a recipe and stamps each template with its owning ingredient
func normalizeRecipe(recipe []models.RecipeIngredient) ([]models.RecipeIngredient, error) {
	out := make([]models.RecipeIngredient, len(recipe))
	for i, ingredient := range recipe {
		if strings.TrimSpace(ingredient.IngredientID) == "" {
			return nil, ErrIngredientIDMissing
		}

		templates := make([]models.TaskTemplate, len(ingredient.TaskTemplates))
		for j, tmpl := range ingredient.TaskTemplates {
			if strings.TrimSpace(tmpl.Title) == "" {
				return nil, ErrTemplateTitleEmpty
			}
			if tmpl.Priority != "" && !tmpl.Priority.Valid() {
				return nil, ErrInvalidPriority
			}
			tmpl.IngredientID = ingredient.IngredientID
			templates[j] = tmpl
		}

		ingredient.TaskTemplates = templates
		out[i] = ingredient
	}
	return out, nil
}
