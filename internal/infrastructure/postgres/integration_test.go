//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/oksasatya/catalog-backoffice/internal/domain/apperr"
	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
	"github.com/oksasatya/catalog-backoffice/internal/domain/repository"
	"github.com/oksasatya/catalog-backoffice/pkg/optional"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "backoffice",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	}
	c, err := testcontainers.GenericContainer(ctx, req)
	testcontainers.CleanupContainer(t, c)
	require.NoError(t, err)

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/backoffice?sslmode=disable", host, port.Port())

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	require.NoError(t, err)
	m, err := migrate.NewWithDatabaseInstance("file://../../../db/migrations", "postgres", driver)
	require.NoError(t, err)
	require.NoError(t, m.Up())

	pool, err := NewPool(ctx, dsn, PoolOptions{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestRepositoriesAgainstPostgres(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()

	users := NewUserRepository(pool)
	categories := NewCategoryRepository(pool)
	products := NewProductRepository(pool)
	audit := NewAuditRepository(pool)

	t.Run("partial user update keeps omitted columns and password", func(t *testing.T) {
		u := &entity.User{Name: "Alice", Address: "Jl. Merdeka 1", Phone: "0800", Email: "a@x.com", Password: "hash-1", Role: entity.RoleMember}
		require.NoError(t, users.Create(ctx, u))

		updated, err := users.Update(ctx, u.ID, entity.UserPatch{Phone: optional.Of("0811")})
		require.NoError(t, err)
		assert.Equal(t, "0811", updated.Phone)
		assert.Equal(t, "Alice", updated.Name)
		assert.Equal(t, "Jl. Merdeka 1", updated.Address)
		assert.Equal(t, "hash-1", updated.Password)
		assert.False(t, updated.UpdatedAt.Before(u.UpdatedAt))

		dup := &entity.User{Name: "Bob", Email: "a@x.com", Password: "x", Role: entity.RoleMember}
		err = users.Create(ctx, dup)
		assert.Equal(t, map[string]string{"email": "is already taken"}, apperr.FieldsOf(err))
	})

	t.Run("product with unknown category is not persisted", func(t *testing.T) {
		_, err := products.Create(ctx, entity.ProductPatch{Name: optional.Of("Ghost"), CategoryID: optional.Of(int64(9999))})
		assert.Equal(t, apperr.KindReferentialIntegrity, apperr.KindOf(err))

		var n int
		require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM product WHERE product_name = 'Ghost'`).Scan(&n))
		assert.Zero(t, n)
	})

	t.Run("soft delete is idempotent and hides the row", func(t *testing.T) {
		cat := &entity.Category{Name: "Shirts"}
		require.NoError(t, categories.Create(ctx, cat))
		p, err := products.Create(ctx, entity.ProductPatch{
			Name:       optional.Of("Linen shirt"),
			Price:      optional.Of(int64(250000)),
			Stock:      optional.Of(int64(3)),
			Rating:     optional.Of(4),
			CategoryID: optional.Of(cat.ID),
		})
		require.NoError(t, err)

		first, err := products.SoftDelete(ctx, p.ID)
		require.NoError(t, err)
		second, err := products.SoftDelete(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, first.Equal(second))

		_, err = products.GetByID(ctx, p.ID, false)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		kept, err := products.GetByID(ctx, p.ID, true)
		require.NoError(t, err)
		assert.True(t, kept.Deleted())

		_, err = products.Update(ctx, p.ID, entity.ProductPatch{Stock: optional.Of(int64(9))})
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

		err = categories.Delete(ctx, cat.ID)
		assert.Equal(t, apperr.KindReferentialIntegrity, apperr.KindOf(err))
	})

	t.Run("check constraint surfaces as validation", func(t *testing.T) {
		cat := &entity.Category{Name: "Hats"}
		require.NoError(t, categories.Create(ctx, cat))
		_, err := products.Create(ctx, entity.ProductPatch{
			Name:       optional.Of("Cap"),
			Price:      optional.Of(int64(-5)),
			CategoryID: optional.Of(cat.ID),
		})
		assert.Equal(t, map[string]string{"price": "is out of range"}, apperr.FieldsOf(err))
	})

	t.Run("audit entry is stored", func(t *testing.T) {
		err := audit.Record(ctx, repository.AuditEntry{
			Action:     "update",
			Resource:   "categories",
			ResourceID: 1,
			Before:     map[string]any{"name": "Shirts"},
			After:      map[string]any{"name": "Tops"},
		})
		require.NoError(t, err)
	})
}
