package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/catalog-backoffice/config"
	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
	"github.com/oksasatya/catalog-backoffice/pkg/helpers"
)

type seedUser struct {
	email, password, name string
	role                  entity.Role
}

var users = []seedUser{
	{email: "admin@example.com", password: "password123", name: "Admin", role: entity.RoleAdmin},
	{email: "member@example.com", password: "password123", name: "Member", role: entity.RoleMember},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	for _, u := range users {
		id, err := upsertUser(ctx, db, u)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", u.email, err)
		}
		fmt.Printf("seeded user: id=%d email=%s role=%s password=%s\n", id, u.email, u.role, u.password)
	}

	categoryID, err := ensureCategory(ctx, db, "General")
	if err != nil {
		log.Fatalf("failed to seed category: %v", err)
	}
	fmt.Printf("seeded category: id=%d\n", categoryID)

	productID, err := ensureProduct(ctx, db, "Sample T-Shirt", categoryID)
	if err != nil {
		log.Fatalf("failed to seed product: %v", err)
	}
	fmt.Printf("seeded product: id=%d\n", productID)
}

func upsertUser(ctx context.Context, db *sql.DB, u seedUser) (int64, error) {
	hash, err := helpers.HashPassword(u.password)
	if err != nil {
		return 0, err
	}
	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO users (email, password, name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role
		RETURNING id
	`, u.email, hash, u.name, string(u.role)).Scan(&id)
	return id, err
}

// categories has no natural key, so the name is matched explicitly.
func ensureCategory(ctx context.Context, db *sql.DB, name string) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, `SELECT categories_id FROM categories WHERE name = $1 ORDER BY categories_id LIMIT 1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	err = db.QueryRowContext(ctx, `INSERT INTO categories (name) VALUES ($1) RETURNING categories_id`, name).Scan(&id)
	return id, err
}

func ensureProduct(ctx context.Context, db *sql.DB, name string, categoryID int64) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, `SELECT product_id FROM product WHERE product_name = $1 AND deleted_at IS NULL LIMIT 1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	err = db.QueryRowContext(ctx, `
		INSERT INTO product (product_name, price, description, size, stock, rating, categories_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING product_id
	`, name, 150000, "Cotton tee for local testing", "M", 10, 4, categoryID).Scan(&id)
	return id, err
}
