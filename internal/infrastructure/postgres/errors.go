package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/catalog-backoffice/internal/domain/apperr"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

// constraintFields maps named constraints to the API field they guard.
var constraintFields = map[string]string{
	"users_email_key":            "email",
	"users_email_not_blank":      "email",
	"users_role_check":           "role",
	"product_price_check":        "price",
	"product_stock_check":        "stock",
	"product_rating_check":       "rating",
	"product_categories_id_fkey": "categories_id",
}

// translate converts pgx errors into application errors.
// notFound is the message used when the statement matched no row.
func translate(err error, notFound string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(notFound)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return apperr.Unexpected(err)
	}
	switch pgErr.Code {
	case pgForeignKeyViolation:
		if pgErr.TableName == "categories" {
			return apperr.ReferentialIntegrity("category is still referenced by products", err)
		}
		return apperr.ReferentialIntegrity("category does not exist", err)
	case pgUniqueViolation:
		return apperr.ValidationField(fieldFor(pgErr), "is already taken")
	case pgCheckViolation:
		return apperr.ValidationField(fieldFor(pgErr), "is out of range")
	case pgNotNullViolation:
		return apperr.ValidationField(fieldFor(pgErr), "is required")
	}
	return apperr.Unexpected(err)
}

func fieldFor(pgErr *pgconn.PgError) string {
	if f, ok := constraintFields[pgErr.ConstraintName]; ok {
		return f
	}
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	return "payload"
}
