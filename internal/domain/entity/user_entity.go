package entity

import (
	"net/mail"
	"strings"
	"time"

	"github.com/oksasatya/catalog-backoffice/pkg/optional"
)

// User is the aggregate root for back-office accounts.
// Password holds the bcrypt hash and is never serialized.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	Pict      *string   `json:"pict"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserPatch lists the columns an update may touch. Unset fields are left as stored.
// PasswordHash is filled by the service after hashing; it is never bound from input.
type UserPatch struct {
	Name         optional.Field[string]
	Address      optional.Field[string]
	Phone        optional.Field[string]
	Email        optional.Field[string]
	PasswordHash optional.Field[string]
	Role         optional.Field[Role]
	Pict         optional.Field[string]
}

func (p UserPatch) Empty() bool {
	return !p.Name.Set && !p.Address.Set && !p.Phone.Set && !p.Email.Set &&
		!p.PasswordHash.Set && !p.Role.Set && !p.Pict.Set
}

// ChangedFields names the patched columns whose value differs from u.
func (p UserPatch) ChangedFields(u *User) []string {
	var out []string
	if v, ok := p.Name.Get(); ok && v != u.Name {
		out = append(out, "name")
	}
	if v, ok := p.Address.Get(); ok && v != u.Address {
		out = append(out, "address")
	}
	if v, ok := p.Phone.Get(); ok && v != u.Phone {
		out = append(out, "phone")
	}
	if v, ok := p.Email.Get(); ok && v != u.Email {
		out = append(out, "email")
	}
	if p.PasswordHash.Set {
		out = append(out, "password")
	}
	if v, ok := p.Role.Get(); ok && v != u.Role {
		out = append(out, "role")
	}
	if p.Pict.Set {
		cur := ""
		if u.Pict != nil {
			cur = *u.Pict
		}
		if p.Pict.OrElse("") != cur {
			out = append(out, "pict")
		}
	}
	return out
}

// Validate checks the domain rules that struct tags cannot express.
func (p UserPatch) Validate() map[string]string {
	errs := map[string]string{}
	if p.Name.Set && strings.TrimSpace(p.Name.OrElse("")) == "" {
		errs["name"] = "is required"
	}
	if p.Email.Set {
		email := strings.TrimSpace(p.Email.OrElse(""))
		if email == "" {
			errs["email"] = "is required"
		} else if _, err := mail.ParseAddress(email); err != nil {
			errs["email"] = "must be a valid email"
		}
	}
	if p.Role.Set {
		if r, ok := p.Role.Get(); !ok || !r.Valid() {
			errs["role"] = "must be one of: admin, member"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
