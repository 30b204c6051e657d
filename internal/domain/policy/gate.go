package policy

import (
	"github.com/oksasatya/catalog-backoffice/internal/domain/apperr"
	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
)

type Resource string

const (
	ResourceUsers      Resource = "users"
	ResourceProducts   Resource = "products"
	ResourceCategories Resource = "categories"
)

type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Target describes what an operation touches.
// RoleChange is true when an update would set a role different from the caller's own.
// IncludeDeleted marks reads that ask for soft-deleted rows.
type Target struct {
	Resource       Resource
	ID             int64
	RoleChange     bool
	IncludeDeleted bool
}

// Authorize is the single access decision for every resource operation.
// It returns nil when allowed, otherwise an Unauthenticated or Forbidden apperr.
func Authorize(caller *entity.Caller, target Target, op Operation) error {
	if !caller.Authenticated() {
		return apperr.Unauthenticated("authentication required")
	}
	switch caller.Role {
	case entity.RoleAdmin:
		return nil
	case entity.RoleMember:
		return authorizeMember(caller, target, op)
	default:
		return apperr.Forbidden("unknown role")
	}
}

func authorizeMember(caller *entity.Caller, target Target, op Operation) error {
	if target.IncludeDeleted {
		return apperr.Forbidden("deleted records require admin")
	}
	switch target.Resource {
	case ResourceProducts, ResourceCategories:
		if op == OpRead {
			return nil
		}
		return apperr.Forbidden("catalog changes require admin")
	case ResourceUsers:
		if target.ID != caller.UserID {
			return apperr.Forbidden("members may only access their own account")
		}
		switch op {
		case OpRead:
			return nil
		case OpUpdate:
			if target.RoleChange {
				return apperr.Forbidden("role changes require admin")
			}
			return nil
		default:
			return apperr.Forbidden("operation not allowed")
		}
	}
	return apperr.Forbidden("operation not allowed")
}
