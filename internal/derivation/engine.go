// Package derivation expands a customer order into a tree of production tasks.
//
// The tree has at most three levels: one root task per order, one task per
// ordered product, and one task per task template found on the product's
// recipe ingredients. Derivation is pure: it reads the order and a product
// catalog, mints fresh ids and timestamps through injected collaborators and
// never touches storage.
package derivation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/printshop-task-api/internal/constants"
	"github.com/yukikurage/printshop-task-api/internal/models"
)

// Catalog resolves product ids to products.
type Catalog interface {
	Product(id string) (models.Product, bool)
}

// ProductIndex is an in-memory Catalog keyed by product id.
type ProductIndex map[string]models.Product

// NewProductIndex indexes products by id. Later duplicates win.
func NewProductIndex(products []models.Product) ProductIndex {
	index := make(ProductIndex, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index
}

// Product implements Catalog.
func (idx ProductIndex) Product(id string) (models.Product, bool) {
	p, ok := idx[id]
	return p, ok
}

// IDFunc mints a fresh task id.
type IDFunc func() string

// ClockFunc returns the current time.
type ClockFunc func() time.Time

// Engine derives task trees. The zero value is not usable; call New.
type Engine struct {
	newID IDFunc
	now   ClockFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDFunc overrides the id source.
func WithIDFunc(fn IDFunc) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// WithClock overrides the timestamp source.
func WithClock(fn ClockFunc) Option {
	return func(e *Engine) {
		e.now = fn
	}
}

// New creates an Engine backed by random UUIDs and the wall clock unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of deriving an order's tasks.
type Result struct {
	Tasks       []models.Task `json:"tasks"`
	Diagnostics []Diagnostic  `json:"diagnostics"`
}

// DeriveOrderTasks builds the task forest for order. The forest currently always
// holds exactly one root, and the root always has at least one subtask.
func (e *Engine) DeriveOrderTasks(order models.Order, catalog Catalog) Result {
	root := e.newTask(order.ID, order.DeliveryDate)
	root.Title = fmt.Sprintf("Order #%s - %s", ShortID(order.ID), order.CustomerName)
	root.Description = fmt.Sprintf("Production for order %s, to be delivered by %s", order.ID, order.DeliveryDate)
	root.Priority = models.TaskPriorityHigh
	root.EstimatedTime = constants.OrderTaskEstimatedMinutes

	var diags []Diagnostic
	for i, item := range order.Items {
		task, itemDiags := e.DeriveProductTask(catalog, item.ProductID, item.Quantity, order.DeliveryDate, order.ID, root.ID)
		for _, d := range itemDiags {
			d.ItemIndex = i
			diags = append(diags, d)
		}
		if task != nil {
			root.Subtasks = append(root.Subtasks, *task)
		}
	}

	if len(root.Subtasks) == 0 {
		root.Subtasks = append(root.Subtasks, e.placeholderTask(order, catalog, root.ID))
		diags = append(diags, Diagnostic{
			Kind:      KindPlaceholderSubstituted,
			ItemIndex: -1,
			Message:   "no product tasks could be derived; substituted a default task",
		})
	}

	return Result{
		Tasks:       []models.Task{root},
		Diagnostics: diags,
	}
}

// DeriveProductTask builds the task for one ordered product. It returns a nil
// task, never an error, when the product is unknown or has an empty recipe.
// The returned task may have no subtasks when no ingredient carries templates.
func (e *Engine) DeriveProductTask(catalog Catalog, productID string, quantity int, deadline, orderID, parentTaskID string) (*models.Task, []Diagnostic) {
	product, ok := catalog.Product(productID)
	if !ok {
		return nil, []Diagnostic{{
			Kind:      KindProductNotFound,
			ProductID: productID,
			Message:   fmt.Sprintf("skipped product %s: not found in catalog", productID),
		}}
	}
	if len(product.Recipe) == 0 {
		return nil, []Diagnostic{{
			Kind:      KindEmptyRecipe,
			ProductID: productID,
			Message:   fmt.Sprintf("skipped product %s (%s): recipe has no ingredients", productID, product.Name),
		}}
	}

	task := e.newTask(orderID, deadline)
	task.Title = fmt.Sprintf("%s (%d pcs)", product.Name, quantity)
	task.Description = fmt.Sprintf("Produce %d pcs of %s for order %s", quantity, product.Name, orderID)
	task.Priority = models.TaskPriorityHigh
	task.EstimatedTime = constants.ProductTaskEstimatedMinutes
	task.ParentTaskID = parentTaskID

	var diags []Diagnostic
	for _, ingredient := range product.Recipe {
		if len(ingredient.TaskTemplates) == 0 {
			diags = append(diags, Diagnostic{
				Kind:         KindIngredientWithoutTemplates,
				ProductID:    productID,
				IngredientID: ingredient.IngredientID,
				Message:      fmt.Sprintf("ingredient %s of product %s has no task templates", ingredient.IngredientID, product.Name),
			})
			continue
		}
		for _, tmpl := range ingredient.TaskTemplates {
			task.Subtasks = append(task.Subtasks, e.templateTask(tmpl, ingredient, product, quantity, deadline, orderID, task.ID))
		}
	}

	return &task, diags
}

func (e *Engine) templateTask(tmpl models.TaskTemplate, ingredient models.RecipeIngredient, product models.Product, quantity int, deadline, orderID, parentTaskID string) models.Task {
	task := e.newTask(orderID, deadline)
	task.Title = fmt.Sprintf("%s - %s (%d pcs)", tmpl.Title, product.Name, quantity)
	task.Description = fmt.Sprintf("%s\nProduct: %s\nOrder: %s\nQuantity: %d pcs", tmpl.Description, product.Name, orderID, quantity)
	task.Priority = tmpl.Priority
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	task.EstimatedTime = tmpl.EstimatedTime
	if task.EstimatedTime <= 0 {
		task.EstimatedTime = constants.DefaultTemplateEstimatedMinutes
	}
	task.IngredientID = ingredient.IngredientID
	if task.IngredientID == "" {
		task.IngredientID = tmpl.IngredientID
	}
	task.ParentTaskID = parentTaskID
	return task
}

func (e *Engine) placeholderTask(order models.Order, catalog Catalog, parentTaskID string) models.Task {
	lines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("- %s x %d", itemName(item, catalog), item.Quantity))
	}

	task := e.newTask(order.ID, order.DeliveryDate)
	task.Title = fmt.Sprintf("Process order #%s", ShortID(order.ID))
	task.Description = "Items:\n" + strings.Join(lines, "\n")
	task.Priority = models.TaskPriorityHigh
	task.EstimatedTime = constants.PlaceholderTaskEstimatedMinutes
	task.ParentTaskID = parentTaskID
	return task
}

func (e *Engine) newTask(orderID, deadline string) models.Task {
	now := e.now()
	return models.Task{
		ID:        e.newID(),
		Status:    models.TaskStatusTodo,
		Deadline:  deadline,
		OrderID:   orderID,
		Subtasks:  []models.Task{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// itemName prefers the catalog name, then the name captured on the order, then the raw id.
func itemName(item models.OrderItem, catalog Catalog) string {
	if p, ok := catalog.Product(item.ProductID); ok && p.Name != "" {
		return p.Name
	}
	if item.ProductName != "" {
		return item.ProductName
	}
	return item.ProductID
}

// ShortID truncates an id for display in task titles.
func ShortID(id string) string {
	if len(id) <= constants.ShortOrderIDLength {
		return id
	}
	return id[:constants.ShortOrderIDLength]
}
