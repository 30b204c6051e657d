package application

import (
	"context"
	"maps"
	"slices"

	"github.com/oksasatya/catalog-backoffice/internal/domain/apperr"
	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
	"github.com/oksasatya/catalog-backoffice/internal/domain/policy"
	repo "github.com/oksasatya/catalog-backoffice/internal/domain/repository"
	"github.com/oksasatya/catalog-backoffice/pkg/helpers"
	"github.com/oksasatya/catalog-backoffice/pkg/optional"
)

const MinPasswordLen = 8

// UserInput is a partial update as received from a client. Password is plain
// text; empty or null means leave unchanged.
type UserInput struct {
	Name     optional.Field[string]
	Address  optional.Field[string]
	Phone    optional.Field[string]
	Email    optional.Field[string]
	Password optional.Field[string]
	Role     optional.Field[entity.Role]
	Pict     optional.Field[string]

	// Rejected holds per-field reasons found while decoding the request.
	// They are reported only once the caller is authorized.
	Rejected map[string]string
}

type UserService struct {
	*Support
	Repo     repo.UserRepository
	Sessions *SessionStore
}

func NewUserService(support *Support, r repo.UserRepository, sessions *SessionStore) *UserService {
	return &UserService{Support: support, Repo: r, Sessions: sessions}
}

func (s *UserService) GetOne(ctx context.Context, caller *entity.Caller, id int64) (Result[*entity.User], error) {
	if err := policy.Authorize(caller, policy.Target{Resource: policy.ResourceUsers, ID: id}, policy.OpRead); err != nil {
		return Result[*entity.User]{}, err
	}
	if u, ok := cacheGet[entity.User](ctx, s.Cache, policy.ResourceUsers, id); ok {
		return Result[*entity.User]{Data: u, Message: "OK"}, nil
	}
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Result[*entity.User]{}, err
	}
	s.Cache.Set(ctx, policy.ResourceUsers, id, u)
	return Result[*entity.User]{Data: u, Message: "OK"}, nil
}

// Update applies a partial update. The role, when it changes, is also written
// to the user's live session so the next request sees it.
func (s *UserService) Update(ctx context.Context, caller *entity.Caller, id int64, in UserInput, upload *FileUpload) (res Result[*entity.User], err error) {
	defer func() { countMutation(policy.ResourceUsers, ActionUpdate, err) }()

	target := policy.Target{Resource: policy.ResourceUsers, ID: id}
	if r, ok := in.Role.Get(); ok && caller != nil && r != caller.Role {
		target.RoleChange = true
	}
	if err := policy.Authorize(caller, target, policy.OpUpdate); err != nil {
		return res, err
	}

	patch := entity.UserPatch{
		Name:    in.Name,
		Address: in.Address,
		Phone:   in.Phone,
		Email:   in.Email,
		Role:    in.Role,
	}
	errs := maps.Clone(in.Rejected)
	for field, reason := range patch.Validate() {
		errs = withField(errs, field, reason)
	}
	if pw, ok := in.Password.Get(); ok && pw != "" && errs["password"] == "" {
		if len(pw) < MinPasswordLen {
			errs = withField(errs, "password", "must be at least 8 characters")
		} else {
			hash, hErr := helpers.HashPassword(pw)
			if hErr != nil {
				return res, apperr.Unexpected(hErr)
			}
			patch.PasswordHash = optional.Of(hash)
		}
	}
	checked, err := s.checkUpload(upload, &errs)
	if err != nil {
		return res, err
	}
	if len(errs) > 0 {
		return res, apperr.Validation(errs)
	}

	cur, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return res, err
	}
	discard := func() {}
	if checked != nil {
		url, d, sErr := s.storeUpload(ctx, policy.ResourceUsers, id, checked)
		if sErr != nil {
			return res, sErr
		}
		patch.Pict, discard = optional.Of(url), d
	} else {
		curPict := ""
		if cur.Pict != nil {
			curPict = *cur.Pict
		}
		if patch.Pict, err = resolveAssetField("pict", in.Pict, curPict, true); err != nil {
			return res, err
		}
	}

	changed := patch.ChangedFields(cur)
	u, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		discard()
		return res, err
	}

	if u.Role != cur.Role || slices.Contains(changed, "email") || slices.Contains(changed, "name") {
		if sErr := s.Sessions.Refresh(ctx, u); sErr != nil {
			s.warn(sErr, mutation{resource: policy.ResourceUsers, id: id, action: ActionUpdate}, "session refresh failed")
		}
	}
	s.afterMutation(ctx, mutation{
		caller:   caller,
		resource: policy.ResourceUsers,
		id:       id,
		action:   ActionUpdate,
		before:   cur,
		after:    u,
		changed:  changed,
	})
	if s.Config != nil {
		s.index(ctx, s.Config.ESUsersIndex, u.ID, userDoc(u))
	}
	s.notifyProfileUpdated(ctx, u, changed)

	return Result[*entity.User]{Data: u, Message: "User updated"}, nil
}

func userDoc(u *entity.User) map[string]any {
	return map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"role":       u.Role,
		"pict":       u.Pict,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

func withField(errs map[string]string, field, reason string) map[string]string {
	if errs == nil {
		errs = map[string]string{}
	}
	if _, exists := errs[field]; !exists {
		errs[field] = reason
	}
	return errs
}
