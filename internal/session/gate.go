package session

import (
	"strings"

	"github.com/google/uuid"

	"github.com/EduPort-F-2025/portfolio-service/internal/models"
)

// AdminEmail is the sentinel login that always yields the fixed admin
// identity, regardless of the role selected in the login form.
const AdminEmail = "admin@edu.com"

// Surface is the top-level view reachable for a session.
type Surface string

const (
	SurfaceLogin   Surface = "login"
	SurfaceTeacher Surface = "teacher"
	SurfaceAdmin   Surface = "admin"
)

// Identify maps the session input boundary (email + role selection) to
// a User. There is no credential check: any email is accepted and an
// identity is synthesized for it, with the admin sentinel email pinned
// to a fixed identity.
func Identify(email string, role models.Role) models.User {
	if email == AdminEmail {
		return models.User{
			ID:    "admin-1",
			Name:  "Super Admin",
			Email: AdminEmail,
			Role:  models.RoleAdmin,
		}
	}

	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}

	return models.User{
		ID:    "t-" + uuid.New().String(),
		Name:  strings.ToUpper(local),
		Email: email,
		Role:  role,
	}
}

// ReachableSurface decides which top-level view the current session may
// reach. No session user means only the login surface.
func ReachableSurface(current *models.User) Surface {
	switch {
	case current == nil:
		return SurfaceLogin
	case current.Role == models.RoleAdmin:
		return SurfaceAdmin
	default:
		return SurfaceTeacher
	}
}

// TeacherView is the data slice a teacher session receives: only
// records owned by that teacher.
type TeacherView struct {
	User      models.User       `json:"user"`
	Practices []models.Practice `json:"practices"`
	Seminars  []models.Seminar  `json:"seminars"`
}

// AdminView is the full, unfiltered data slice. The admin surface is
// read-only: it issues no mutations.
type AdminView struct {
	Teachers  []models.User     `json:"teachers"`
	Practices []models.Practice `json:"practices"`
	Seminars  []models.Seminar  `json:"seminars"`
}

// TeacherViewFor filters the state down to the session user's records.
// This is the only ownership-enforcement layer; the store itself never
// re-checks record ownership.
func TeacherViewFor(state *models.SystemState, user models.User) TeacherView {
	view := TeacherView{
		User:      user,
		Practices: []models.Practice{},
		Seminars:  []models.Seminar{},
	}
	for _, p := range state.Practices {
		if p.TeacherID == user.ID {
			view.Practices = append(view.Practices, p)
		}
	}
	for _, s := range state.Seminars {
		if s.TeacherID == user.ID {
			view.Seminars = append(view.Seminars, s)
		}
	}
	return view
}

// AdminViewFor exposes the full roster and both full collections.
func AdminViewFor(state *models.SystemState) AdminView {
	return AdminView{
		Teachers:  state.Teachers,
		Practices: state.Practices,
		Seminars:  state.Seminars,
	}
}
