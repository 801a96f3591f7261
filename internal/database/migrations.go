package database

import (
	"fmt"
	"log"

	"github.com/yukikurage/printshop-task-api/internal/models"
	"gorm.io/gorm"
)

type indexSpec struct {
	model interface{}
	name  string
}

// Every index listed here must also be declared in the model's gorm tags so
// the migrator can resolve its columns.
var indexes = []indexSpec{
	{&models.Order{}, "idx_orders_status"},
	{&models.Order{}, "idx_orders_delivery_date"},
	{&models.Order{}, "idx_orders_created_at"},
	{&models.Product{}, "idx_products_name"},
}

// AddIndexes creates any listed index missing from an existing schema
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		if err := migrator.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index for %s", idx.name)
	}

	return nil
}
