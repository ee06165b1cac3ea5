package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/EduPort-F-2025/portfolio-service/internal/cache"
	"github.com/EduPort-F-2025/portfolio-service/internal/models"
	"github.com/EduPort-F-2025/portfolio-service/internal/session"
	"github.com/EduPort-F-2025/portfolio-service/internal/store"
)

const overviewCacheKey = "activity"

type adminService struct {
	store    *store.Store
	overview *cache.CacheHelper
	logger   *slog.Logger
}

func NewAdminService(store *store.Store, overview *cache.CacheHelper, logger *slog.Logger) AdminService {
	return &adminService{
		store:    store,
		overview: overview,
		logger:   logger,
	}
}

// View returns the full, unfiltered data slice. Admin role only.
func (s *adminService) View(ctx context.Context) (*session.AdminView, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	view := session.AdminViewFor(s.store.State())
	return &view, nil
}

// Overview aggregates per-teacher activity, cached briefly and
// invalidated by record mutations.
func (s *adminService) Overview(ctx context.Context) (*AdminOverview, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}

	var cached AdminOverview
	if err := s.overview.Get(ctx, overviewCacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheNotFound) && !errors.Is(err, cache.ErrCacheNotAvailable) {
		s.logger.Warn("Overview cache read failed", "error", err)
	}

	overview := buildOverview(s.store.State())
	if err := s.overview.Set(ctx, overviewCacheKey, overview, cache.OverviewCacheConfig.TTL); err != nil {
		s.logger.Warn("Overview cache write failed", "error", err)
	}
	return overview, nil
}

// ExportActivityReport renders the overview as an xlsx workbook with
// one summary sheet and one row per teacher.
func (s *adminService) ExportActivityReport(ctx context.Context) ([]byte, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}

	overview := buildOverview(s.store.State())

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Teacher Activity"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create report sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []string{"Teacher ID", "Name", "Email", "Practices", "Seminars", "Proofs", "Extracted Summaries"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write report header: %w", err)
		}
	}

	for row, t := range overview.Teachers {
		values := []interface{}{t.TeacherID, t.Name, t.Email, t.PracticeCount, t.SeminarCount, t.ProofCount, t.ExtractedCount}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write report row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	s.logger.Info("Exported activity report", "teachers", len(overview.Teachers))
	return buf.Bytes(), nil
}

func (s *adminService) requireAdmin() error {
	current := s.store.Current()
	if current == nil {
		return ErrNotAuthenticated
	}
	if current.Role != models.RoleAdmin {
		return NewPermissionError(current.ID, "", "admin", "read", "admin role required")
	}
	return nil
}

func buildOverview(state *models.SystemState) *AdminOverview {
	overview := &AdminOverview{
		Teachers: make([]models.TeacherActivitySummary, 0, len(state.Teachers)),
	}

	byTeacher := make(map[string]*models.TeacherActivitySummary, len(state.Teachers))
	for _, t := range state.Teachers {
		if t.Role != models.RoleTeacher {
			continue
		}
		summary := models.TeacherActivitySummary{TeacherID: t.ID, Name: t.Name, Email: t.Email}
		overview.Teachers = append(overview.Teachers, summary)
		byTeacher[t.ID] = &overview.Teachers[len(overview.Teachers)-1]
	}

	for _, p := range state.Practices {
		overview.TotalPractices++
		if p.Proof != nil {
			overview.TotalProofs++
		}
		if summary := byTeacher[p.TeacherID]; summary != nil {
			summary.PracticeCount++
			countProof(summary, p.Proof)
		}
	}
	for _, sem := range state.Seminars {
		overview.TotalSeminars++
		if sem.Proof != nil {
			overview.TotalProofs++
		}
		if summary := byTeacher[sem.TeacherID]; summary != nil {
			summary.SeminarCount++
			countProof(summary, sem.Proof)
		}
	}

	return overview
}

func countProof(summary *models.TeacherActivitySummary, proof *models.Proof) {
	if proof == nil {
		return
	}
	summary.ProofCount++
	if proof.ExtractedInfo != "" {
		summary.ExtractedCount++
	}
}
