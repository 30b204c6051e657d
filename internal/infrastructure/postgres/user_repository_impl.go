package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
	"github.com/oksasatya/catalog-backoffice/internal/domain/repository"
)

const userColumns = `id, name, address, phone, email, password, role, pict, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Address, &u.Phone, &u.Email, &u.Password,
		&role, &u.Pict, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, address, phone, email, password, role, pict)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Address, u.Phone, u.Email, u.Password, string(u.Role), u.Pict)

	return translate(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt), "user not found")
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, "user not found")
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, translate(err, "user not found")
	}
	return u, nil
}

// Update writes only the supplied columns. An empty patch returns the stored row untouched.
func (r *UserRepository) Update(ctx context.Context, id int64, patch entity.UserPatch) (*entity.User, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}
	var set columnSet
	addField(&set, "name", patch.Name)
	addField(&set, "address", patch.Address)
	addField(&set, "phone", patch.Phone)
	addField(&set, "email", patch.Email)
	addField(&set, "password", patch.PasswordHash)
	if v, ok := patch.Role.Get(); ok {
		set.add("role", string(v))
	}
	if patch.Pict.Set {
		if v, ok := patch.Pict.Get(); ok && v != "" {
			set.add("pict", v)
		} else {
			set.add("pict", nil)
		}
	}

	q, args := set.updateSQL("users", "id", id, "", userColumns)
	u, err := scanUser(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		return nil, translate(err, "user not found")
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
