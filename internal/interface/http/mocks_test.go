package handlers

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, id int64, patch entity.UserPatch) (*entity.User, error) {
	args := m.Called(ctx, id, patch)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) Create(ctx context.Context, patch entity.ProductPatch) (*entity.Product, error) {
	args := m.Called(ctx, patch)
	if p := args.Get(0); p != nil {
		return p.(*entity.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64, withDeleted bool) (*entity.Product, error) {
	args := m.Called(ctx, id, withDeleted)
	if p := args.Get(0); p != nil {
		return p.(*entity.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, id int64, patch entity.ProductPatch) (*entity.Product, error) {
	args := m.Called(ctx, id, patch)
	if p := args.Get(0); p != nil {
		return p.(*entity.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) SoftDelete(ctx context.Context, id int64) (time.Time, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(time.Time), args.Error(1)
}

type mockCategoryRepo struct{ mock.Mock }

func (m *mockCategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*entity.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) Update(ctx context.Context, id int64, patch entity.CategoryPatch) (*entity.Category, error) {
	args := m.Called(ctx, id, patch)
	if c := args.Get(0); c != nil {
		return c.(*entity.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// memAssets keeps uploaded objects in memory.
type memAssets struct {
	objects map[string][]byte
}

func (a *memAssets) Put(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if a.objects == nil {
		a.objects = map[string][]byte{}
	}
	a.objects[objectPath] = b
	return "https://cdn.test/" + objectPath, nil
}

func (a *memAssets) Delete(_ context.Context, objectPath string) error {
	delete(a.objects, objectPath)
	return nil
}
