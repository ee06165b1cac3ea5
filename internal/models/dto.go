package models

import "time"

// ===== ACTIVITY SUMMARY DTOs =====

// TeacherActivitySummary is one row of the admin overview: per-teacher
// counts across both record collections.
type TeacherActivitySummary struct {
	TeacherID      string `json:"teacher_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	PracticeCount  int    `json:"practice_count"`
	SeminarCount   int    `json:"seminar_count"`
	ProofCount     int    `json:"proof_count"`
	ExtractedCount int    `json:"extracted_count"`
}

// ===== ERROR RESPONSES =====

type ErrorResponse struct {
	Error     string      `json:"error,omitempty"`
	Message   string      `json:"message"`
	Code      string      `json:"code,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Path      string      `json:"path,omitempty"`
}

type SuccessResponse struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
