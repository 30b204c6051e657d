package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/catalog-backoffice/internal/domain/apperr"
	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
	"github.com/oksasatya/catalog-backoffice/pkg/optional"
)

func TestCategoryCreate(t *testing.T) {
	h := newHarness()
	r := &mockCategoryRepo{}
	svc := NewCategoryService(h.support, r)
	r.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Category) bool { return c.Name == "Shirts" })).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.Category).ID = 3 }).
		Return(nil).Once()

	res, err := svc.Create(context.Background(), admin(), entity.CategoryPatch{Name: optional.Of("  Shirts ")})
	require.NoError(t, err)
	assert.Equal(t, "Category created", res.Message)
	assert.Equal(t, int64(3), res.Data.ID)

	events := h.published("admin.events")
	require.Len(t, events, 1)
	assert.Equal(t, "create", events[0].(EntityChanged).Action)
}

func TestCategoryCreateRequiresName(t *testing.T) {
	svc := NewCategoryService(newHarness().support, &mockCategoryRepo{})
	_, err := svc.Create(context.Background(), admin(), entity.CategoryPatch{})
	assert.Equal(t, map[string]string{"name": "is required"}, apperr.FieldsOf(err))
}

func TestCategoryUpdate(t *testing.T) {
	r := &mockCategoryRepo{}
	svc := NewCategoryService(newHarness().support, r)
	r.On("GetByID", mock.Anything, int64(3)).Return(&entity.Category{ID: 3, Name: "Shirts"}, nil)
	r.On("Update", mock.Anything, int64(3), entity.CategoryPatch{Name: optional.Of("Tees")}).
		Return(&entity.Category{ID: 3, Name: "Tees"}, nil).Once()

	res, err := svc.Update(context.Background(), admin(), 3, entity.CategoryPatch{Name: optional.Of("Tees")})
	require.NoError(t, err)
	assert.Equal(t, "Category updated", res.Message)
	assert.Equal(t, "Tees", res.Data.Name)
}

func TestCategoryUpdateTrimsName(t *testing.T) {
	r := &mockCategoryRepo{}
	svc := NewCategoryService(newHarness().support, r)
	r.On("GetByID", mock.Anything, int64(3)).Return(&entity.Category{ID: 3, Name: "Shirts"}, nil)
	r.On("Update", mock.Anything, int64(3), entity.CategoryPatch{Name: optional.Of("Tees")}).
		Return(&entity.Category{ID: 3, Name: "Tees"}, nil).Once()

	_, err := svc.Update(context.Background(), admin(), 3, entity.CategoryPatch{Name: optional.Of("  Tees\t")})
	require.NoError(t, err)
	r.AssertExpectations(t)

	_, err = svc.Update(context.Background(), admin(), 3, entity.CategoryPatch{Name: optional.Of("   ")})
	assert.Equal(t, map[string]string{"name": "is required"}, apperr.FieldsOf(err))
}

func TestCategoryRejectedFieldsReportedAfterAuthorization(t *testing.T) {
	r := &mockCategoryRepo{}
	svc := NewCategoryService(newHarness().support, r)
	patch := entity.CategoryPatch{Name: optional.Of(""), Rejected: map[string]string{"name": "must be a string"}}

	_, err := svc.Update(context.Background(), member(), 3, patch)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = svc.Update(context.Background(), admin(), 3, patch)
	assert.Equal(t, map[string]string{"name": "must be a string"}, apperr.FieldsOf(err))
	r.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestCategoryMemberMayReadButNotWrite(t *testing.T) {
	r := &mockCategoryRepo{}
	svc := NewCategoryService(newHarness().support, r)
	r.On("GetByID", mock.Anything, int64(3)).Return(&entity.Category{ID: 3, Name: "Shirts"}, nil)

	res, err := svc.GetOne(context.Background(), member(), 3)
	require.NoError(t, err)
	assert.Equal(t, "OK", res.Message)

	_, err = svc.Delete(context.Background(), member(), 3)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
	r.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCategoryDeleteWhileReferenced(t *testing.T) {
	h := newHarness()
	r := &mockCategoryRepo{}
	svc := NewCategoryService(h.support, r)
	r.On("GetByID", mock.Anything, int64(3)).Return(&entity.Category{ID: 3, Name: "Shirts"}, nil)
	r.On("Delete", mock.Anything, int64(3)).
		Return(apperr.ReferentialIntegrity("category is still referenced by products", nil)).Once()

	_, err := svc.Delete(context.Background(), admin(), 3)
	assert.True(t, apperr.Is(err, apperr.KindReferentialIntegrity))
	assert.Empty(t, h.published("admin.events"))
}

func TestCategoryDelete(t *testing.T) {
	r := &mockCategoryRepo{}
	svc := NewCategoryService(newHarness().support, r)
	r.On("GetByID", mock.Anything, int64(3)).Return(&entity.Category{ID: 3}, nil)
	r.On("Delete", mock.Anything, int64(3)).Return(nil).Once()

	res, err := svc.Delete(context.Background(), admin(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Category deleted", res.Message)
	assert.Nil(t, res.Data)
}
