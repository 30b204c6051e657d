package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
	"github.com/oksasatya/catalog-backoffice/internal/domain/repository"
)

const productColumns = `product_id, product_name, price, description, size, stock, pict, rating,
	categories_id, created_at, updated_at, deleted_at`

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	p := &entity.Product{}
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Size, &p.Stock, &p.Pict,
		&p.Rating, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func productColumnSet(patch entity.ProductPatch) columnSet {
	var set columnSet
	addField(&set, "product_name", patch.Name)
	addField(&set, "price", patch.Price)
	addField(&set, "description", patch.Description)
	addField(&set, "size", patch.Size)
	addField(&set, "stock", patch.Stock)
	addField(&set, "pict", patch.Pict)
	addField(&set, "rating", patch.Rating)
	addField(&set, "categories_id", patch.CategoryID)
	return set
}

// Create inserts a product. A dangling categories_id fails on the foreign key
// and nothing is persisted.
func (r *ProductRepository) Create(ctx context.Context, patch entity.ProductPatch) (*entity.Product, error) {
	set := productColumnSet(patch)
	q, args := set.insertSQL("product", productColumns)
	p, err := scanProduct(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		return nil, translate(err, "product not found")
	}
	return p, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64, withDeleted bool) (*entity.Product, error) {
	q := `SELECT ` + productColumns + ` FROM product WHERE product_id = $1`
	if !withDeleted {
		q += ` AND deleted_at IS NULL`
	}
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, translate(err, "product not found")
	}
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, id int64, patch entity.ProductPatch) (*entity.Product, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id, false)
	}
	set := productColumnSet(patch)
	q, args := set.updateSQL("product", "product_id", id, "deleted_at IS NULL", productColumns)
	p, err := scanProduct(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		return nil, translate(err, "product not found")
	}
	return p, nil
}

func (r *ProductRepository) SoftDelete(ctx context.Context, id int64) (time.Time, error) {
	var deletedAt time.Time
	err := r.pool.QueryRow(ctx, `
		UPDATE product
		SET deleted_at = COALESCE(deleted_at, now()),
		    updated_at = CASE WHEN deleted_at IS NULL THEN GREATEST(now(), updated_at) ELSE updated_at END
		WHERE product_id = $1
		RETURNING deleted_at
	`, id).Scan(&deletedAt)
	if err != nil {
		return time.Time{}, translate(err, "product not found")
	}
	return deletedAt, nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
