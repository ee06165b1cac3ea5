package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EduPort-F-2025/portfolio-service/internal/cache"
	"github.com/EduPort-F-2025/portfolio-service/internal/events"
	"github.com/EduPort-F-2025/portfolio-service/internal/models"
	"github.com/EduPort-F-2025/portfolio-service/internal/repositories"
	"github.com/EduPort-F-2025/portfolio-service/internal/session"
	"github.com/EduPort-F-2025/portfolio-service/internal/store"
	"github.com/EduPort-F-2025/portfolio-service/internal/validator"
)

// stubExtractor returns a fixed summary, or a fixed error.
type stubExtractor struct {
	summary string
	err     error
}

func (s stubExtractor) Extract(ctx context.Context, pdf []byte) (string, error) {
	return s.summary, s.err
}

type serviceFixture struct {
	store      *store.Store
	portfolio  PortfolioService
	admin      AdminService
	enrichment *ProofEnrichmentService
	publisher  *events.MockEventPublisher
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	st := store.New(repositories.NewMemorySnapshotStore(), logger)
	require.NoError(t, st.Initialize(context.Background()))

	publisher := events.NewMockEventPublisher(logger)
	overview := cache.NewCacheHelper(nil, cache.OverviewCacheConfig.Prefix)
	enrichment := NewProofEnrichmentService(
		events.NewGoChannelBus(logger),
		st,
		stubExtractor{summary: "extracted summary"},
		publisher,
		logger,
	)
	v := validator.New()

	return &serviceFixture{
		store:      st,
		portfolio:  NewPortfolioService(st, enrichment, publisher, overview, logger, v),
		admin:      NewAdminService(st, overview, logger),
		enrichment: enrichment,
		publisher:  publisher,
	}
}

func (f *serviceFixture) loginTeacher(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := f.portfolio.Login(context.Background(), &LoginRequest{
		Email: email,
		Role:  models.RoleTeacher,
	})
	require.NoError(t, err)
	return user
}

func (f *serviceFixture) loginAdmin(t *testing.T) *models.User {
	t.Helper()
	user, err := f.portfolio.Login(context.Background(), &LoginRequest{
		Email: session.AdminEmail,
		Role:  models.RoleAdmin,
	})
	require.NoError(t, err)
	return user
}

// ===== SESSION =====

func TestPortfolioService_LoginTeacher(t *testing.T) {
	f := newServiceFixture(t)

	user := f.loginTeacher(t, "bob@example.com")

	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.Equal(t, "BOB", user.Name)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.Contains(t, user.ID, "t-")

	// The synthesized teacher joins the roster alongside the seed pair
	state := f.store.State()
	require.Len(t, state.Teachers, 3)
	assert.NotNil(t, state.TeacherByID(user.ID))
	require.NotNil(t, state.CurrentUser)
	assert.Equal(t, user.ID, state.CurrentUser.ID)
}

func TestPortfolioService_LoginAdminSentinel(t *testing.T) {
	f := newServiceFixture(t)

	// The sentinel email wins even when the teacher role is selected
	user, err := f.portfolio.Login(context.Background(), &LoginRequest{
		Email: session.AdminEmail,
		Role:  models.RoleTeacher,
	})
	require.NoError(t, err)

	assert.Equal(t, "admin-1", user.ID)
	assert.Equal(t, "Super Admin", user.Name)
	assert.Equal(t, models.RoleAdmin, user.Role)

	// The admin identity never joins the teacher roster
	assert.Len(t, f.store.State().Teachers, 2)
	assert.Equal(t, session.SurfaceAdmin, f.portfolio.ReachableSurface(context.Background()))
}

func TestPortfolioService_LoginValidation(t *testing.T) {
	f := newServiceFixture(t)

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{"missing email", LoginRequest{Role: models.RoleTeacher}},
		{"malformed email", LoginRequest{Email: "not-an-email", Role: models.RoleTeacher}},
		{"unknown role", LoginRequest{Email: "bob@example.com", Role: "SUPERUSER"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.portfolio.Login(context.Background(), &tt.req)
			require.Error(t, err)
			assert.Nil(t, f.store.Current())
		})
	}
}

func TestPortfolioService_LogoutReturnsToLoginSurface(t *testing.T) {
	f := newServiceFixture(t)
	f.loginTeacher(t, "bob@example.com")

	require.NoError(t, f.portfolio.Logout(context.Background()))
	assert.Nil(t, f.store.Current())
	assert.Equal(t, session.SurfaceLogin, f.portfolio.ReachableSurface(context.Background()))
}

// ===== GATE =====

func TestPortfolioService_TeacherOperationsRequireTeacherSession(t *testing.T) {
	ctx := context.Background()

	t.Run("no session", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.portfolio.Dashboard(ctx)
		assert.ErrorIs(t, err, ErrNotAuthenticated)

		_, err = f.portfolio.CreatePractice(ctx, &PracticeCreateRequest{Title: "x", Date: "2024-01-01"})
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("admin session", func(t *testing.T) {
		f := newServiceFixture(t)
		f.loginAdmin(t)

		_, err := f.portfolio.Dashboard(ctx)
		assert.True(t, IsPermissionError(err))

		_, err = f.portfolio.CreateSeminar(ctx, &SeminarCreateRequest{
			Title: "x", FromDate: "2024-01-01", ToDate: "2024-01-02",
		})
		assert.True(t, IsPermissionError(err))
		assert.Empty(t, f.store.State().Seminars)
	})
}

// ===== DASHBOARD =====

func TestPortfolioService_DashboardScopesToSessionTeacher(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	alice := f.loginTeacher(t, "alice@example.com")
	_, err := f.portfolio.CreatePractice(ctx, &PracticeCreateRequest{
		Title: "Alice practice", Date: "2024-03-01",
	})
	require.NoError(t, err)

	bob := f.loginTeacher(t, "bob@example.com")
	_, err = f.portfolio.CreatePractice(ctx, &PracticeCreateRequest{
		Title: "Bob practice", Date: "2024-03-02",
	})
	require.NoError(t, err)

	view, err := f.portfolio.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, view.User.ID)
	require.Len(t, view.Practices, 1)
	assert.Equal(t, "Bob practice", view.Practices[0].Title)
	assert.NotEqual(t, alice.ID, view.Practices[0].TeacherID)
	assert.Empty(t, view.Seminars)
}

// ===== PROFILE =====

func TestPortfolioService_UpdateProfileMergesPartialFields(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	bob := f.loginTeacher(t, "bob@example.com")

	name := "Robert"
	updated, err := f.portfolio.UpdateProfile(ctx, &ProfileUpdateRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, "bob@example.com", updated.Email)

	// The roster entry and the session user change together
	roster := f.store.State().TeacherByID(bob.ID)
	require.NotNil(t, roster)
	assert.Equal(t, "Robert", roster.Name)
}

// ===== RECORDS =====

func TestPortfolioService_CreatePractice(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	bob := f.loginTeacher(t, "bob@example.com")
	f.publisher.ClearEvents()

	practice, err := f.portfolio.CreatePractice(ctx, &PracticeCreateRequest{
		Title:       "Grading workshop",
		Description: "Half day",
		Date:        "2024-05-10",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, practice.ID)
	assert.Equal(t, bob.ID, practice.TeacherID)
	require.Len(t, f.store.State().Practices, 1)

	published := f.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventPracticeCreated, published[0].Type)
}

func TestPortfolioService_CreatePracticeRejectsBadDate(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	f.loginTeacher(t, "bob@example.com")

	_, err := f.portfolio.CreatePractice(ctx, &PracticeCreateRequest{
		Title: "Workshop", Date: "10/05/2024",
	})
	require.Error(t, err)
	assert.Empty(t, f.store.State().Practices)
}

func TestPortfolioService_CreateSeminarRejectsInvertedRange(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	f.loginTeacher(t, "bob@example.com")

	_, err := f.portfolio.CreateSeminar(ctx, &SeminarCreateRequest{
		Title: "Conf", FromDate: "2024-06-10", ToDate: "2024-06-01",
	})
	require.Error(t, err)
	assert.Empty(t, f.store.State().Seminars)
}

func TestPortfolioService_DeletePractice(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		f := newServiceFixture(t)
		f.loginTeacher(t, "bob@example.com")
		practice, err := f.portfolio.CreatePractice(ctx, &PracticeCreateRequest{
			Title: "Workshop", Date: "2024-05-10",
		})
		require.NoError(t, err)

		require.NoError(t, f.portfolio.DeletePractice(ctx, practice.ID))
		assert.Empty(t, f.store.State().Practices)
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		f := newServiceFixture(t)
		f.loginTeacher(t, "bob@example.com")
		assert.NoError(t, f.portfolio.DeletePractice(ctx, "missing"))
	})

	t.Run("other teacher's record is refused", func(t *testing.T) {
		f := newServiceFixture(t)
		f.loginTeacher(t, "alice@example.com")
		practice, err := f.portfolio.CreatePractice(ctx, &PracticeCreateRequest{
			Title: "Alice workshop", Date: "2024-05-10",
		})
		require.NoError(t, err)

		f.loginTeacher(t, "bob@example.com")
		err = f.portfolio.DeletePractice(ctx, practice.ID)
		assert.True(t, IsPermissionError(err))
		assert.Len(t, f.store.State().Practices, 1)
	})
}

func TestPortfolioService_DeleteSeminarOwnership(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	f.loginTeacher(t, "alice@example.com")
	seminar, err := f.portfolio.CreateSeminar(ctx, &SeminarCreateRequest{
		Title: "Conf", FromDate: "2024-06-01", ToDate: "2024-06-03",
	})
	require.NoError(t, err)

	f.loginTeacher(t, "bob@example.com")
	err = f.portfolio.DeleteSeminar(ctx, seminar.ID)
	assert.True(t, IsPermissionError(err))
	assert.Len(t, f.store.State().Seminars, 1)
}

// ===== PROOF UPLOAD =====

func TestPortfolioService_UploadProofRejectsNonPDF(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	f.loginTeacher(t, "bob@example.com")

	before := f.store.State()
	_, err := f.portfolio.UploadProof(ctx, models.KindPractice, &ProofUploadRequest{
		FileName: "notes.txt",
		MimeType: "text/plain",
		Data:     []byte("just text"),
	})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	// The rejected upload leaves no trace in the state
	assert.Equal(t, before, f.store.State())
}

func TestPortfolioService_UploadProofAccepted(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	f.loginTeacher(t, "bob@example.com")

	accepted, err := f.portfolio.UploadProof(ctx, models.KindSeminar, &ProofUploadRequest{
		FileName: "certificate.pdf",
		MimeType: validator.PDFMimeType,
		Data:     []byte("%PDF-1.4 fake"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, accepted.JobID)
	assert.Equal(t, models.KindSeminar, accepted.Kind)
	assert.Equal(t, "certificate.pdf", accepted.FileName)

	// The record only appears once the enrichment worker runs
	assert.Empty(t, f.store.State().Seminars)
}

func TestPortfolioService_UploadProofUnknownKind(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	f.loginTeacher(t, "bob@example.com")

	_, err := f.portfolio.UploadProof(ctx, models.RecordKind("lecture"), &ProofUploadRequest{
		FileName: "certificate.pdf",
		MimeType: validator.PDFMimeType,
		Data:     []byte("%PDF-1.4 fake"),
	})
	assert.Error(t, err)
}
