package application

import (
	"context"

	"github.com/oksasatya/catalog-backoffice/internal/domain/apperr"
	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
	"github.com/oksasatya/catalog-backoffice/internal/domain/policy"
	repo "github.com/oksasatya/catalog-backoffice/internal/domain/repository"
)

type CategoryService struct {
	*Support
	Repo repo.CategoryRepository
}

func NewCategoryService(support *Support, r repo.CategoryRepository) *CategoryService {
	return &CategoryService{Support: support, Repo: r}
}

func (s *CategoryService) GetOne(ctx context.Context, caller *entity.Caller, id int64) (Result[*entity.Category], error) {
	if err := policy.Authorize(caller, policy.Target{Resource: policy.ResourceCategories, ID: id}, policy.OpRead); err != nil {
		return Result[*entity.Category]{}, err
	}
	if c, ok := cacheGet[entity.Category](ctx, s.Cache, policy.ResourceCategories, id); ok {
		return Result[*entity.Category]{Data: c, Message: "OK"}, nil
	}
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Result[*entity.Category]{}, err
	}
	s.Cache.Set(ctx, policy.ResourceCategories, id, c)
	return Result[*entity.Category]{Data: c, Message: "OK"}, nil
}

func (s *CategoryService) Create(ctx context.Context, caller *entity.Caller, patch entity.CategoryPatch) (res Result[*entity.Category], err error) {
	defer func() { countMutation(policy.ResourceCategories, ActionCreate, err) }()

	if err := policy.Authorize(caller, policy.Target{Resource: policy.ResourceCategories}, policy.OpCreate); err != nil {
		return res, err
	}
	patch = patch.Normalized()
	errs := patch.Validate()
	if !patch.Name.Set {
		errs = withField(errs, "name", "is required")
	}
	if len(errs) > 0 {
		return res, apperr.Validation(errs)
	}
	c := &entity.Category{Name: patch.Name.Value}
	if err := s.Repo.Create(ctx, c); err != nil {
		return res, err
	}
	s.afterMutation(ctx, mutation{
		caller:   caller,
		resource: policy.ResourceCategories,
		id:       c.ID,
		action:   ActionCreate,
		after:    c,
	})
	return Result[*entity.Category]{Data: c, Message: "Category created"}, nil
}

func (s *CategoryService) Update(ctx context.Context, caller *entity.Caller, id int64, patch entity.CategoryPatch) (res Result[*entity.Category], err error) {
	defer func() { countMutation(policy.ResourceCategories, ActionUpdate, err) }()

	if err := policy.Authorize(caller, policy.Target{Resource: policy.ResourceCategories, ID: id}, policy.OpUpdate); err != nil {
		return res, err
	}
	patch = patch.Normalized()
	if errs := patch.Validate(); errs != nil {
		return res, apperr.Validation(errs)
	}
	cur, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return res, err
	}
	var changed []string
	if v, ok := patch.Name.Get(); ok && v != cur.Name {
		changed = append(changed, "name")
	}
	c, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		return res, err
	}
	s.afterMutation(ctx, mutation{
		caller:   caller,
		resource: policy.ResourceCategories,
		id:       id,
		action:   ActionUpdate,
		before:   cur,
		after:    c,
		changed:  changed,
	})
	return Result[*entity.Category]{Data: c, Message: "Category updated"}, nil
}

// Delete removes a category. It fails with a referential integrity error while
// any product, soft-deleted ones included, still points at it.
func (s *CategoryService) Delete(ctx context.Context, caller *entity.Caller, id int64) (res Result[*entity.Category], err error) {
	defer func() { countMutation(policy.ResourceCategories, ActionDelete, err) }()

	if err := policy.Authorize(caller, policy.Target{Resource: policy.ResourceCategories, ID: id}, policy.OpDelete); err != nil {
		return res, err
	}
	cur, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return res, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return res, err
	}
	s.afterMutation(ctx, mutation{
		caller:   caller,
		resource: policy.ResourceCategories,
		id:       id,
		action:   ActionDelete,
		before:   cur,
	})
	return Result[*entity.Category]{Data: nil, Message: "Category deleted"}, nil
}
