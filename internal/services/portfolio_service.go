package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/EduPort-F-2025/portfolio-service/internal/cache"
	"github.com/EduPort-F-2025/portfolio-service/internal/events"
	"github.com/EduPort-F-2025/portfolio-service/internal/models"
	"github.com/EduPort-F-2025/portfolio-service/internal/session"
	"github.com/EduPort-F-2025/portfolio-service/internal/store"
	"github.com/EduPort-F-2025/portfolio-service/internal/validator"
)

type portfolioService struct {
	store      *store.Store
	enrichment *ProofEnrichmentService
	publisher  events.EventPublisher
	overview   *cache.CacheHelper
	logger     *slog.Logger
	validator  *validator.Validator
}

func NewPortfolioService(
	store *store.Store,
	enrichment *ProofEnrichmentService,
	publisher events.EventPublisher,
	overview *cache.CacheHelper,
	logger *slog.Logger,
	validator *validator.Validator,
) PortfolioService {
	return &portfolioService{
		store:      store,
		enrichment: enrichment,
		publisher:  publisher,
		overview:   overview,
		logger:     logger,
		validator:  validator,
	}
}

// ===== SESSION OPERATIONS =====

func (s *portfolioService) Login(ctx context.Context, req *LoginRequest) (*models.User, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	user := session.Identify(req.Email, req.Role)
	s.logger.Info("Logging in", "user_id", user.ID, "role", user.Role)

	// Synthesized teachers are registered in the roster so that every
	// record's teacher id keeps referencing a roster entry. The seed
	// roster and returning teachers are left untouched.
	if user.Role == models.RoleTeacher && s.store.State().TeacherByID(user.ID) == nil {
		if err := s.store.RegisterTeacher(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to register teacher: %w", err)
		}
	}

	if err := s.store.Login(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *portfolioService) Logout(ctx context.Context) error {
	s.logger.Info("Logging out")
	return s.store.Logout(ctx)
}

func (s *portfolioService) ReachableSurface(ctx context.Context) session.Surface {
	return session.ReachableSurface(s.store.Current())
}

// ===== TEACHER VIEW =====

func (s *portfolioService) Dashboard(ctx context.Context) (*session.TeacherView, error) {
	current, err := s.requireTeacher("dashboard", "read")
	if err != nil {
		return nil, err
	}

	view := session.TeacherViewFor(s.store.State(), *current)
	return &view, nil
}

func (s *portfolioService) UpdateProfile(ctx context.Context, req *ProfileUpdateRequest) (*models.User, error) {
	current, err := s.requireTeacher("profile", "update")
	if err != nil {
		return nil, err
	}

	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	upd := models.UserUpdate{
		Name:           req.Name,
		ContactInfo:    req.ContactInfo,
		Qualifications: req.Qualifications,
	}
	if err := s.store.UpdateProfile(ctx, upd); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.EventProfileUpdated, map[string]string{"teacher_id": current.ID})
	s.logger.Info("Profile updated", "teacher_id", current.ID)

	return s.store.Current(), nil
}

// ===== RECORD OPERATIONS =====

func (s *portfolioService) CreatePractice(ctx context.Context, req *PracticeCreateRequest) (*models.Practice, error) {
	current, err := s.requireTeacher("practice", "create")
	if err != nil {
		return nil, err
	}

	if errs := s.validator.GetBusinessValidator().ValidatePracticeCreate(req); len(errs) > 0 {
		return nil, errs
	}
	if errs := s.validator.GetBusinessValidator().ValidateRecordOwner(s.store.State(), current.ID); len(errs) > 0 {
		return nil, errs
	}

	practice := models.Practice{
		ID:          uuid.New().String(),
		TeacherID:   current.ID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
	}
	if err := s.store.AddPractice(ctx, practice); err != nil {
		return nil, err
	}

	s.invalidateOverview(ctx)
	s.publishEvent(ctx, events.EventPracticeCreated, map[string]string{
		"practice_id": practice.ID,
		"teacher_id":  current.ID,
	})
	s.logger.Info("Practice created", "practice_id", practice.ID, "teacher_id", current.ID)

	return &practice, nil
}

func (s *portfolioService) DeletePractice(ctx context.Context, id string) error {
	current, err := s.requireTeacher("practice", "delete")
	if err != nil {
		return err
	}

	for _, p := range s.store.State().Practices {
		if p.ID == id && p.TeacherID != current.ID {
			return NewPermissionError(current.ID, id, "practice", "delete", "not the owning teacher")
		}
	}

	// Deleting an absent id stays a no-op
	if err := s.store.DeletePractice(ctx, id); err != nil {
		return err
	}

	s.invalidateOverview(ctx)
	s.publishEvent(ctx, events.EventPracticeDeleted, map[string]string{
		"practice_id": id,
		"teacher_id":  current.ID,
	})
	return nil
}

func (s *portfolioService) CreateSeminar(ctx context.Context, req *SeminarCreateRequest) (*models.Seminar, error) {
	current, err := s.requireTeacher("seminar", "create")
	if err != nil {
		return nil, err
	}

	if errs := s.validator.GetBusinessValidator().ValidateSeminarCreate(req); len(errs) > 0 {
		return nil, errs
	}
	if errs := s.validator.GetBusinessValidator().ValidateRecordOwner(s.store.State(), current.ID); len(errs) > 0 {
		return nil, errs
	}

	seminar := models.Seminar{
		ID:          uuid.New().String(),
		TeacherID:   current.ID,
		Title:       req.Title,
		Description: req.Description,
		FromDate:    req.FromDate,
		ToDate:      req.ToDate,
	}
	if err := s.store.AddSeminar(ctx, seminar); err != nil {
		return nil, err
	}

	s.invalidateOverview(ctx)
	s.publishEvent(ctx, events.EventSeminarCreated, map[string]string{
		"seminar_id": seminar.ID,
		"teacher_id": current.ID,
	})
	s.logger.Info("Seminar created", "seminar_id", seminar.ID, "teacher_id", current.ID)

	return &seminar, nil
}

func (s *portfolioService) DeleteSeminar(ctx context.Context, id string) error {
	current, err := s.requireTeacher("seminar", "delete")
	if err != nil {
		return err
	}

	for _, sem := range s.store.State().Seminars {
		if sem.ID == id && sem.TeacherID != current.ID {
			return NewPermissionError(current.ID, id, "seminar", "delete", "not the owning teacher")
		}
	}

	if err := s.store.DeleteSeminar(ctx, id); err != nil {
		return err
	}

	s.invalidateOverview(ctx)
	s.publishEvent(ctx, events.EventSeminarDeleted, map[string]string{
		"seminar_id": id,
		"teacher_id": current.ID,
	})
	return nil
}

// ===== PROOF UPLOAD =====

func (s *portfolioService) UploadProof(ctx context.Context, kind models.RecordKind, req *ProofUploadRequest) (*UploadAccepted, error) {
	current, err := s.requireTeacher("proof", "upload")
	if err != nil {
		return nil, err
	}

	// Input rejection: a non-PDF upload aborts here with no state change
	if errs := s.validator.GetBusinessValidator().ValidateProofUpload(req); len(errs) > 0 {
		return nil, errs
	}
	if kind != models.KindPractice && kind != models.KindSeminar {
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}

	job := ProofUploadJob{
		ID:        uuid.New().String(),
		Kind:      kind,
		TeacherID: current.ID,
		FileName:  req.FileName,
		MimeType:  req.MimeType,
		Data:      req.Data,
	}
	if err := s.enrichment.Enqueue(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to enqueue proof upload: %w", err)
	}

	s.logger.Info("Proof upload accepted", "job_id", job.ID, "kind", kind, "file", req.FileName)
	return &UploadAccepted{JobID: job.ID, Kind: kind, FileName: req.FileName}, nil
}

// ===== HELPERS =====

// requireTeacher applies the session gate for teacher-only operations.
func (s *portfolioService) requireTeacher(resource, action string) (*models.User, error) {
	current := s.store.Current()
	if current == nil {
		return nil, ErrNotAuthenticated
	}
	if current.Role != models.RoleTeacher {
		return nil, NewPermissionError(current.ID, "", resource, action, "teacher role required")
	}
	return current, nil
}

func (s *portfolioService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Error("Failed to publish event", "event_type", eventType, "error", err)
	}
}

func (s *portfolioService) invalidateOverview(ctx context.Context) {
	cache.SafeDelete(ctx, s.overview, overviewCacheKey)
}
