package entity

// Role is the authorization role carried by every user and session.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Caller is the authenticated identity attached to a request.
type Caller struct {
	UserID int64
	Role   Role
}

func (c *Caller) Authenticated() bool {
	return c != nil && c.UserID > 0
}

func (c *Caller) IsAdmin() bool {
	return c.Authenticated() && c.Role == RoleAdmin
}
