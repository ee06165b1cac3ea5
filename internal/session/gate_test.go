package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EduPort-F-2025/portfolio-service/internal/models"
)

func TestIdentify(t *testing.T) {
	tests := []struct {
		name  string
		email string
		role  models.Role
		check func(t *testing.T, u models.User)
	}{
		{
			name:  "admin sentinel email",
			email: "admin@edu.com",
			role:  models.RoleTeacher, // role selection is ignored for the sentinel
			check: func(t *testing.T, u models.User) {
				assert.Equal(t, models.User{
					ID: "admin-1", Name: "Super Admin", Email: "admin@edu.com", Role: models.RoleAdmin,
				}, u)
			},
		},
		{
			name:  "teacher synthesized from email",
			email: "bob@x.com",
			role:  models.RoleTeacher,
			check: func(t *testing.T, u models.User) {
				assert.Equal(t, "BOB", u.Name)
				assert.Equal(t, models.RoleTeacher, u.Role)
				assert.Equal(t, "bob@x.com", u.Email)
				assert.NotEmpty(t, u.ID)
			},
		},
		{
			name:  "admin role selection for other email",
			email: "carol@edu.com",
			role:  models.RoleAdmin,
			check: func(t *testing.T, u models.User) {
				assert.Equal(t, "CAROL", u.Name)
				assert.Equal(t, models.RoleAdmin, u.Role)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Identify(tt.email, tt.role))
		})
	}
}

func TestIdentify_FreshIDs(t *testing.T) {
	seen := map[string]bool{"t1": true, "t2": true, "admin-1": true}
	for i := 0; i < 50; i++ {
		u := Identify("bob@x.com", models.RoleTeacher)
		assert.False(t, seen[u.ID], "id %q already issued", u.ID)
		seen[u.ID] = true
	}
}

func TestReachableSurface(t *testing.T) {
	assert.Equal(t, SurfaceLogin, ReachableSurface(nil))
	assert.Equal(t, SurfaceTeacher, ReachableSurface(&models.User{ID: "t1", Role: models.RoleTeacher}))
	assert.Equal(t, SurfaceAdmin, ReachableSurface(&models.User{ID: "admin-1", Role: models.RoleAdmin}))
}

func TestTeacherViewFor_ScopesToOwner(t *testing.T) {
	state := &models.SystemState{
		Teachers: models.SeedTeachers(),
		Practices: []models.Practice{
			{ID: "p1", TeacherID: "t1", Title: "A", Date: "2024-01-01"},
			{ID: "p2", TeacherID: "t2", Title: "B", Date: "2024-01-02"},
			{ID: "p3", TeacherID: "t1", Title: "C", Date: "2024-01-03"},
		},
		Seminars: []models.Seminar{
			{ID: "s1", TeacherID: "t2", Title: "D", FromDate: "2024-02-01", ToDate: "2024-02-02"},
		},
	}

	view := TeacherViewFor(state, models.User{ID: "t1", Role: models.RoleTeacher})

	ids := []string{}
	for _, p := range view.Practices {
		assert.Equal(t, "t1", p.TeacherID)
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p1", "p3"}, ids)
	assert.Empty(t, view.Seminars)
}

func TestAdminViewFor_IsUnfiltered(t *testing.T) {
	state := &models.SystemState{
		Teachers: models.SeedTeachers(),
		Practices: []models.Practice{
			{ID: "p1", TeacherID: "t1", Title: "A", Date: "2024-01-01"},
			{ID: "p2", TeacherID: "t2", Title: "B", Date: "2024-01-02"},
		},
		Seminars: []models.Seminar{
			{ID: "s1", TeacherID: "t1", Title: "C", FromDate: "2024-02-01", ToDate: "2024-02-02"},
		},
	}

	view := AdminViewFor(state)
	assert.Len(t, view.Teachers, 2)
	assert.Len(t, view.Practices, 2)
	assert.Len(t, view.Seminars, 1)
}
