package entity

import (
	"maps"
	"strings"
	"time"

	"github.com/oksasatya/catalog-backoffice/pkg/optional"
)

type Category struct {
	ID        int64     `json:"categories_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CategoryPatch struct {
	Name optional.Field[string]

	// Rejected holds per-field reasons found while decoding the request.
	Rejected map[string]string
}

func (p CategoryPatch) Empty() bool { return !p.Name.Set }

// Normalized returns the patch with surrounding whitespace removed from the name.
func (p CategoryPatch) Normalized() CategoryPatch {
	if p.Name.Set && !p.Name.Null {
		p.Name.Value = strings.TrimSpace(p.Name.Value)
	}
	return p
}

func (p CategoryPatch) Validate() map[string]string {
	errs := maps.Clone(p.Rejected)
	if _, seen := errs["name"]; !seen && p.Name.Set && strings.TrimSpace(p.Name.OrElse("")) == "" {
		if errs == nil {
			errs = map[string]string{}
		}
		errs["name"] = "is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
