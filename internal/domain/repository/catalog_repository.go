package repository

import (
	"context"
	"time"

	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	Update(ctx context.Context, id int64, patch entity.CategoryPatch) (*entity.Category, error)
	// Delete removes the row; a category still referenced by a product
	// fails with a ReferentialIntegrity apperr.
	Delete(ctx context.Context, id int64) error
}

type ProductRepository interface {
	Create(ctx context.Context, patch entity.ProductPatch) (*entity.Product, error)
	// GetByID hides soft-deleted rows unless withDeleted is set.
	GetByID(ctx context.Context, id int64, withDeleted bool) (*entity.Product, error)
	// Update only touches live rows.
	Update(ctx context.Context, id int64, patch entity.ProductPatch) (*entity.Product, error)
	// SoftDelete stamps deleted_at once and returns the stored marker.
	// Repeated calls return the original timestamp.
	SoftDelete(ctx context.Context, id int64) (time.Time, error)
}

// AuditEntry is one recorded mutation with before/after snapshots.
type AuditEntry struct {
	ActorID    int64
	Action     string
	Resource   string
	ResourceID int64
	Before     any
	After      any
}

type AuditRepository interface {
	Record(ctx context.Context, e AuditEntry) error
}
