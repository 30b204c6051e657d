package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/catalog-backoffice/internal/domain/apperr"
	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
)

func TestAuthorize(t *testing.T) {
	admin := &entity.Caller{UserID: 1, Role: entity.RoleAdmin}
	member := &entity.Caller{UserID: 42, Role: entity.RoleMember}

	tests := []struct {
		name   string
		caller *entity.Caller
		target Target
		op     Operation
		want   apperr.Kind
	}{
		{"anonymous update", nil, Target{Resource: ResourceProducts, ID: 7}, OpUpdate, apperr.KindUnauthenticated},
		{"zero id caller", &entity.Caller{Role: entity.RoleAdmin}, Target{Resource: ResourceUsers, ID: 1}, OpRead, apperr.KindUnauthenticated},
		{"admin deletes product", admin, Target{Resource: ResourceProducts, ID: 7}, OpDelete, ""},
		{"admin changes role", admin, Target{Resource: ResourceUsers, ID: 42, RoleChange: true}, OpUpdate, ""},
		{"admin reads deleted", admin, Target{Resource: ResourceProducts, ID: 7, IncludeDeleted: true}, OpRead, ""},
		{"member updates self", member, Target{Resource: ResourceUsers, ID: 42}, OpUpdate, ""},
		{"member escalates self", member, Target{Resource: ResourceUsers, ID: 42, RoleChange: true}, OpUpdate, apperr.KindForbidden},
		{"member escalates other", member, Target{Resource: ResourceUsers, ID: 9, RoleChange: true}, OpUpdate, apperr.KindForbidden},
		{"member updates other", member, Target{Resource: ResourceUsers, ID: 9}, OpUpdate, apperr.KindForbidden},
		{"member reads other", member, Target{Resource: ResourceUsers, ID: 9}, OpRead, apperr.KindForbidden},
		{"member reads product", member, Target{Resource: ResourceProducts, ID: 7}, OpRead, ""},
		{"member reads deleted product", member, Target{Resource: ResourceProducts, ID: 7, IncludeDeleted: true}, OpRead, apperr.KindForbidden},
		{"member creates category", member, Target{Resource: ResourceCategories}, OpCreate, apperr.KindForbidden},
		{"member deletes product", member, Target{Resource: ResourceProducts, ID: 7}, OpDelete, apperr.KindForbidden},
		{"unknown role", &entity.Caller{UserID: 3, Role: "guest"}, Target{Resource: ResourceProducts, ID: 7}, OpRead, apperr.KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.caller, tt.target, tt.op)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, apperr.KindOf(err))
		})
	}
}
