package application

import (
	"context"
	"time"

	"github.com/oksasatya/catalog-backoffice/internal/domain/apperr"
	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
	"github.com/oksasatya/catalog-backoffice/internal/domain/policy"
	repo "github.com/oksasatya/catalog-backoffice/internal/domain/repository"
	"github.com/oksasatya/catalog-backoffice/pkg/optional"
)

// ProductDeleted is the soft-delete acknowledgement.
type ProductDeleted struct {
	ProductID int64     `json:"product_id"`
	Present   bool      `json:"present"`
	DeletedAt time.Time `json:"deleted_at"`
}

type ProductService struct {
	*Support
	Repo repo.ProductRepository
}

func NewProductService(support *Support, r repo.ProductRepository) *ProductService {
	return &ProductService{Support: support, Repo: r}
}

// GetOne hides soft-deleted products unless withDeleted is set, which only admins may use.
func (s *ProductService) GetOne(ctx context.Context, caller *entity.Caller, id int64, withDeleted bool) (Result[*entity.Product], error) {
	target := policy.Target{Resource: policy.ResourceProducts, ID: id, IncludeDeleted: withDeleted}
	if err := policy.Authorize(caller, target, policy.OpRead); err != nil {
		return Result[*entity.Product]{}, err
	}
	if !withDeleted {
		if p, ok := cacheGet[entity.Product](ctx, s.Cache, policy.ResourceProducts, id); ok {
			return Result[*entity.Product]{Data: p, Message: "OK"}, nil
		}
	}
	p, err := s.Repo.GetByID(ctx, id, withDeleted)
	if err != nil {
		return Result[*entity.Product]{}, err
	}
	if !p.Deleted() {
		s.Cache.Set(ctx, policy.ResourceProducts, id, p)
	}
	return Result[*entity.Product]{Data: p, Message: "OK"}, nil
}

func (s *ProductService) Create(ctx context.Context, caller *entity.Caller, patch entity.ProductPatch, upload *FileUpload) (res Result[*entity.Product], err error) {
	defer func() { countMutation(policy.ResourceProducts, ActionCreate, err) }()

	if err := policy.Authorize(caller, policy.Target{Resource: policy.ResourceProducts}, policy.OpCreate); err != nil {
		return res, err
	}
	errs := patch.ValidateCreate()
	checked, err := s.checkUpload(upload, &errs)
	if err != nil {
		return res, err
	}
	if checked == nil && patch.Pict.Set {
		if patch.Pict, err = resolveAssetField("pict", patch.Pict, "", false); err != nil {
			errs = withField(errs, "pict", apperr.FieldsOf(err)["pict"])
		}
	}
	if len(errs) > 0 {
		return res, apperr.Validation(errs)
	}
	discard := func() {}
	if checked != nil {
		url, d, sErr := s.storeUpload(ctx, policy.ResourceProducts, 0, checked)
		if sErr != nil {
			return res, sErr
		}
		patch.Pict, discard = optional.Of(url), d
	}

	p, err := s.Repo.Create(ctx, patch)
	if err != nil {
		discard()
		return res, err
	}
	s.afterMutation(ctx, mutation{
		caller:   caller,
		resource: policy.ResourceProducts,
		id:       p.ID,
		action:   ActionCreate,
		after:    p,
	})
	s.index(ctx, s.productIndex(), p.ID, p)
	return Result[*entity.Product]{Data: p, Message: "Product created"}, nil
}

func (s *ProductService) Update(ctx context.Context, caller *entity.Caller, id int64, patch entity.ProductPatch, upload *FileUpload) (res Result[*entity.Product], err error) {
	defer func() { countMutation(policy.ResourceProducts, ActionUpdate, err) }()

	if err := policy.Authorize(caller, policy.Target{Resource: policy.ResourceProducts, ID: id}, policy.OpUpdate); err != nil {
		return res, err
	}
	errs := patch.Validate()
	checked, err := s.checkUpload(upload, &errs)
	if err != nil {
		return res, err
	}
	if len(errs) > 0 {
		return res, apperr.Validation(errs)
	}

	cur, err := s.Repo.GetByID(ctx, id, false)
	if err != nil {
		return res, err
	}
	discard := func() {}
	if checked != nil {
		url, d, sErr := s.storeUpload(ctx, policy.ResourceProducts, id, checked)
		if sErr != nil {
			return res, sErr
		}
		patch.Pict, discard = optional.Of(url), d
	} else if patch.Pict, err = resolveAssetField("pict", patch.Pict, cur.Pict, false); err != nil {
		return res, err
	}

	changed := patch.ChangedFields(cur)
	p, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		discard()
		return res, err
	}
	s.afterMutation(ctx, mutation{
		caller:   caller,
		resource: policy.ResourceProducts,
		id:       id,
		action:   ActionUpdate,
		before:   cur,
		after:    p,
		changed:  changed,
	})
	s.index(ctx, s.productIndex(), p.ID, p)
	return Result[*entity.Product]{Data: p, Message: "Product updated"}, nil
}

// Delete soft-deletes a product. Repeating it returns the original marker and
// emits no further events.
func (s *ProductService) Delete(ctx context.Context, caller *entity.Caller, id int64) (res Result[ProductDeleted], err error) {
	defer func() { countMutation(policy.ResourceProducts, ActionDelete, err) }()

	if err := policy.Authorize(caller, policy.Target{Resource: policy.ResourceProducts, ID: id}, policy.OpDelete); err != nil {
		return res, err
	}
	before, err := s.Repo.GetByID(ctx, id, true)
	if err != nil {
		return res, err
	}
	deletedAt, err := s.Repo.SoftDelete(ctx, id)
	if err != nil {
		return res, err
	}
	if !before.Deleted() {
		after := *before
		after.DeletedAt = &deletedAt
		s.afterMutation(ctx, mutation{
			caller:   caller,
			resource: policy.ResourceProducts,
			id:       id,
			action:   ActionDelete,
			before:   before,
			after:    &after,
			changed:  []string{"deleted_at"},
		})
		s.unindex(ctx, s.productIndex(), id)
	}
	return Result[ProductDeleted]{
		Data:    ProductDeleted{ProductID: id, Present: false, DeletedAt: deletedAt},
		Message: "Product deleted",
	}, nil
}

func (s *ProductService) productIndex() string {
	if s.Config == nil {
		return ""
	}
	return s.Config.ESProductsIndex
}
