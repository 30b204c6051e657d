package entity

import (
	"maps"
	"strings"
	"time"

	"github.com/oksasatya/catalog-backoffice/pkg/optional"
)

const (
	MinRating = 0
	MaxRating = 5
)

// Product is soft-deletable: a non-nil DeletedAt hides it from default reads.
type Product struct {
	ID          int64      `json:"product_id"`
	Name        string     `json:"product_name"`
	Price       int64      `json:"price"`
	Description string     `json:"description"`
	Size        string     `json:"size"`
	Stock       int64      `json:"stock"`
	Pict        string     `json:"pict"`
	Rating      int        `json:"rating"`
	CategoryID  int64      `json:"categories_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
}

func (p *Product) Deleted() bool { return p.DeletedAt != nil }

type ProductPatch struct {
	Name        optional.Field[string]
	Price       optional.Field[int64]
	Description optional.Field[string]
	Size        optional.Field[string]
	Stock       optional.Field[int64]
	Pict        optional.Field[string]
	Rating      optional.Field[int]
	CategoryID  optional.Field[int64]

	// Rejected holds per-field reasons found while decoding the request.
	Rejected map[string]string
}

func (p ProductPatch) Empty() bool {
	return !p.Name.Set && !p.Price.Set && !p.Description.Set && !p.Size.Set &&
		!p.Stock.Set && !p.Pict.Set && !p.Rating.Set && !p.CategoryID.Set
}

func (p ProductPatch) ChangedFields(cur *Product) []string {
	var out []string
	if v, ok := p.Name.Get(); ok && v != cur.Name {
		out = append(out, "product_name")
	}
	if v, ok := p.Price.Get(); ok && v != cur.Price {
		out = append(out, "price")
	}
	if v, ok := p.Description.Get(); ok && v != cur.Description {
		out = append(out, "description")
	}
	if v, ok := p.Size.Get(); ok && v != cur.Size {
		out = append(out, "size")
	}
	if v, ok := p.Stock.Get(); ok && v != cur.Stock {
		out = append(out, "stock")
	}
	if p.Pict.Set && p.Pict.OrElse("") != cur.Pict {
		out = append(out, "pict")
	}
	if v, ok := p.Rating.Get(); ok && v != cur.Rating {
		out = append(out, "rating")
	}
	if v, ok := p.CategoryID.Get(); ok && v != cur.CategoryID {
		out = append(out, "categories_id")
	}
	return out
}

// Validate enforces the non-negative and bounded columns. Null is rejected
// for every non-nullable column.
func (p ProductPatch) Validate() map[string]string {
	errs := maps.Clone(p.Rejected)
	if errs == nil {
		errs = map[string]string{}
	}
	set := func(field, reason string) {
		if _, ok := errs[field]; !ok {
			errs[field] = reason
		}
	}
	if p.Name.Set && strings.TrimSpace(p.Name.OrElse("")) == "" {
		set("product_name", "is required")
	}
	if p.Price.Set {
		if v, ok := p.Price.Get(); !ok {
			set("price", "is required")
		} else if v < 0 {
			set("price", "must be at least 0")
		}
	}
	if p.Stock.Set {
		if v, ok := p.Stock.Get(); !ok {
			set("stock", "is required")
		} else if v < 0 {
			set("stock", "must be at least 0")
		}
	}
	if p.Rating.Set {
		if v, ok := p.Rating.Get(); !ok {
			set("rating", "is required")
		} else if v < MinRating || v > MaxRating {
			set("rating", "must be between 0 and 5")
		}
	}
	if p.CategoryID.Set {
		if v, ok := p.CategoryID.Get(); !ok || v <= 0 {
			set("categories_id", "is required")
		}
	}
	if p.Description.Set && p.Description.Null {
		set("description", "must not be null")
	}
	if p.Size.Set && p.Size.Null {
		set("size", "must not be null")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateCreate additionally requires the columns without defaults.
func (p ProductPatch) ValidateCreate() map[string]string {
	errs := p.Validate()
	if errs == nil {
		errs = map[string]string{}
	}
	if !p.Name.Set {
		errs["product_name"] = "is required"
	}
	if !p.CategoryID.Set {
		errs["categories_id"] = "is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
