package auth

import "campus-prep/internal/domain/user"

type State string

const (
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

// StateOf reports the flow state for a session user, nil meaning no session.
func StateOf(u *user.User) State {
	if u == nil {
		return StateAnonymous
	}
	return StateAuthenticated
}

// CanAccess reports whether u may enter an area that requires role. An empty
// role admits any authenticated user.
func CanAccess(u *user.User, required user.Role) bool {
	if u == nil || !u.Role.Valid() {
		return false
	}
	if required == "" {
		return true
	}
	return u.Role == required
}

// DashboardPath is where a signed-in user lands.
func DashboardPath(role user.Role) string {
	if role == user.RoleAdmin {
		return "/admin"
	}
	return "/dashboard"
}
