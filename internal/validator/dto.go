package validator

import (
	"github.com/EduPort-F-2025/portfolio-service/internal/models"
)

// LoginRequest is the session input boundary: an email plus a role
// selection. No credential is checked; the password field from the
// login form never reaches this service.
type LoginRequest struct {
	Email string      `json:"email" validate:"required,email"`
	Role  models.Role `json:"role" validate:"required,oneof=TEACHER ADMIN"`
}

// ProfileUpdateRequest carries a partial profile change for the session
// user. Absent fields stay untouched.
type ProfileUpdateRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=100"`
	ContactInfo    *string `json:"contactInfo" validate:"omitempty,max=200"`
	Qualifications *string `json:"qualifications" validate:"omitempty,max=500"`
}

// PracticeCreateRequest creates a single-date activity record without a
// proof document. Proof-bearing records go through the upload pipeline.
type PracticeCreateRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Date        string `json:"date" validate:"required,record_date"`
}

// SeminarCreateRequest creates a date-range activity record.
type SeminarCreateRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=1000"`
	FromDate    string `json:"fromDate" validate:"required,record_date"`
	ToDate      string `json:"toDate" validate:"required,record_date"`
}

// ProofUploadRequest describes one uploaded file. MIME type must be
// exactly application/pdf; anything else aborts the upload before any
// state change.
type ProofUploadRequest struct {
	FileName string `json:"file_name" validate:"required,max=255"`
	MimeType string `json:"mime_type" validate:"required,pdf_mime"`
	Data     []byte `json:"-" validate:"required"`
}
