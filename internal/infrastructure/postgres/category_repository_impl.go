package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/catalog-backoffice/internal/domain/apperr"
	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
	"github.com/oksasatya/catalog-backoffice/internal/domain/repository"
)

const categoryColumns = `categories_id, name, created_at, updated_at`

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	c := &entity.Category{}
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name) VALUES ($1)
		RETURNING categories_id, created_at, updated_at
	`, c.Name)
	return translate(row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt), "category not found")
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := scanCategory(r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE categories_id = $1`, id))
	if err != nil {
		return nil, translate(err, "category not found")
	}
	return c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id int64, patch entity.CategoryPatch) (*entity.Category, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}
	var set columnSet
	addField(&set, "name", patch.Name)
	q, args := set.updateSQL("categories", "categories_id", id, "", categoryColumns)
	c, err := scanCategory(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		return nil, translate(err, "category not found")
	}
	return c, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE categories_id = $1`, id)
	if err != nil {
		return translate(err, "category not found")
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("category not found")
	}
	return nil
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
