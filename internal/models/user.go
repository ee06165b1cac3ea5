package models

type UserRole string
type Role = UserRole // Alias for compatibility

const (
	RoleTeacher UserRole = "TEACHER"
	RoleAdmin   UserRole = "ADMIN"
)

// User is an identity in the portfolio system. Teachers own activity
// records; the single admin identity only reads aggregated data.
type User struct {
	ID    string   `json:"id" validate:"required"`
	Name  string   `json:"name" validate:"required,max=100"`
	Email string   `json:"email" validate:"required,email"`
	Role  UserRole `json:"role" validate:"required,oneof=TEACHER ADMIN"`

	// Profile info, editable only by the owning teacher
	ContactInfo    string `json:"contactInfo,omitempty"`
	Qualifications string `json:"qualifications,omitempty"`
}

// UserUpdate carries a partial profile change. Nil fields are left
// untouched; ID, Email and Role are not updatable after login.
type UserUpdate struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=100"`
	ContactInfo    *string `json:"contactInfo" validate:"omitempty,max=200"`
	Qualifications *string `json:"qualifications" validate:"omitempty,max=500"`
}

// ApplyTo merges the update into u, field by field. This is the only
// mutation path for profile data.
func (upd UserUpdate) ApplyTo(u *User) {
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.ContactInfo != nil {
		u.ContactInfo = *upd.ContactInfo
	}
	if upd.Qualifications != nil {
		u.Qualifications = *upd.Qualifications
	}
}

// SeedTeachers is the fixed roster installed on first startup when no
// durable snapshot exists.
func SeedTeachers() []User {
	return []User{
		{
			ID:             "t1",
			Name:           "Dr. Sarah Smith",
			Email:          "sarah@edu.com",
			Role:           RoleTeacher,
			ContactInfo:    "555-0101",
			Qualifications: "PhD in Computer Science",
		},
		{
			ID:             "t2",
			Name:           "Prof. James Wilson",
			Email:          "james@edu.com",
			Role:           RoleTeacher,
			ContactInfo:    "555-0102",
			Qualifications: "MSc in Mathematics",
		},
	}
}
