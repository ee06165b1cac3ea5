package services

import (
	"context"

	"github.com/EduPort-F-2025/portfolio-service/internal/models"
	"github.com/EduPort-F-2025/portfolio-service/internal/session"
	"github.com/EduPort-F-2025/portfolio-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use validator request types
type LoginRequest = validator.LoginRequest
type ProfileUpdateRequest = validator.ProfileUpdateRequest
type PracticeCreateRequest = validator.PracticeCreateRequest
type SeminarCreateRequest = validator.SeminarCreateRequest
type ProofUploadRequest = validator.ProofUploadRequest

// UploadAccepted acknowledges an enqueued proof upload. The record is
// created asynchronously once extraction completes.
type UploadAccepted struct {
	JobID    string            `json:"job_id"`
	Kind     models.RecordKind `json:"kind"`
	FileName string            `json:"file_name"`
}

// AdminOverview aggregates activity across all teachers.
type AdminOverview struct {
	Teachers       []models.TeacherActivitySummary `json:"teachers"`
	TotalPractices int                             `json:"total_practices"`
	TotalSeminars  int                             `json:"total_seminars"`
	TotalProofs    int                             `json:"total_proofs"`
}

// ===== SERVICE INTERFACES =====

// PortfolioService is the session-scoped surface: everything the login
// and teacher views can do. The session/role gate is applied here; the
// state store underneath never re-checks ownership.
type PortfolioService interface {
	Login(ctx context.Context, req *LoginRequest) (*models.User, error)
	Logout(ctx context.Context) error
	ReachableSurface(ctx context.Context) session.Surface

	Dashboard(ctx context.Context) (*session.TeacherView, error)
	UpdateProfile(ctx context.Context, req *ProfileUpdateRequest) (*models.User, error)

	CreatePractice(ctx context.Context, req *PracticeCreateRequest) (*models.Practice, error)
	DeletePractice(ctx context.Context, id string) error
	CreateSeminar(ctx context.Context, req *SeminarCreateRequest) (*models.Seminar, error)
	DeleteSeminar(ctx context.Context, id string) error

	UploadProof(ctx context.Context, kind models.RecordKind, req *ProofUploadRequest) (*UploadAccepted, error)
}

// AdminService is the read-only admin surface.
type AdminService interface {
	View(ctx context.Context) (*session.AdminView, error)
	Overview(ctx context.Context) (*AdminOverview, error)
	ExportActivityReport(ctx context.Context) ([]byte, error)
}

// ServiceManager wires and manages all services.
type ServiceManager interface {
	Portfolio() PortfolioService
	Admin() AdminService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
