package services

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EduPort-F-2025/portfolio-service/internal/events"
	"github.com/EduPort-F-2025/portfolio-service/internal/extraction"
	"github.com/EduPort-F-2025/portfolio-service/internal/models"
	"github.com/EduPort-F-2025/portfolio-service/internal/repositories"
	"github.com/EduPort-F-2025/portfolio-service/internal/store"
)

func newEnrichmentFixture(t *testing.T, extractor extraction.Extractor) (*ProofEnrichmentService, *store.Store, *events.MockEventPublisher) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	st := store.New(repositories.NewMemorySnapshotStore(), logger)
	require.NoError(t, st.Initialize(context.Background()))

	publisher := events.NewMockEventPublisher(logger)
	svc := NewProofEnrichmentService(events.NewGoChannelBus(logger), st, extractor, publisher, logger)
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = svc.Shutdown(ctx)
	})
	return svc, st, publisher
}

func waitForPractices(t *testing.T, st *store.Store, n int) []models.Practice {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(st.State().Practices) == n
	}, 2*time.Second, 10*time.Millisecond)
	return st.State().Practices
}

func TestEnrichment_PracticeRecordFromUpload(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake body")
	svc, st, publisher := newEnrichmentFixture(t, stubExtractor{summary: "Course completion certificate"})

	job := ProofUploadJob{
		ID:        "job-1",
		Kind:      models.KindPractice,
		TeacherID: "t1",
		FileName:  "certificate.pdf",
		MimeType:  "application/pdf",
		Data:      pdf,
	}
	require.NoError(t, svc.Enqueue(context.Background(), job))

	practices := waitForPractices(t, st, 1)
	p := practices[0]
	assert.Equal(t, "job-1", p.ID)
	assert.Equal(t, "t1", p.TeacherID)
	assert.Equal(t, "Practice - certificate.pdf", p.Title)
	assert.Equal(t, "Uploaded via proof document", p.Description)
	assert.Equal(t, time.Now().Format("2006-01-02"), p.Date)

	require.NotNil(t, p.Proof)
	assert.Equal(t, "certificate.pdf", p.Proof.FileName)
	assert.Equal(t, "application/pdf", p.Proof.MimeType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(pdf), p.Proof.Data)
	assert.Equal(t, "Course completion certificate", p.Proof.ExtractedInfo)

	types := make([]string, 0, 2)
	for _, e := range publisher.GetPublishedEvents() {
		types = append(types, e.Type)
	}
	assert.Contains(t, types, events.EventProofExtracted)
	assert.Contains(t, types, events.EventPracticeCreated)
}

func TestEnrichment_SeminarRecordFromUpload(t *testing.T) {
	svc, st, _ := newEnrichmentFixture(t, stubExtractor{summary: "Two day seminar"})

	job := ProofUploadJob{
		ID:        "job-2",
		Kind:      models.KindSeminar,
		TeacherID: "t2",
		FileName:  "attendance.pdf",
		MimeType:  "application/pdf",
		Data:      []byte("%PDF-1.4"),
	}
	require.NoError(t, svc.Enqueue(context.Background(), job))

	require.Eventually(t, func() bool {
		return len(st.State().Seminars) == 1
	}, 2*time.Second, 10*time.Millisecond)

	sem := st.State().Seminars[0]
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "Seminar - attendance.pdf", sem.Title)
	assert.Equal(t, today, sem.FromDate)
	assert.Equal(t, today, sem.ToDate)
	require.NotNil(t, sem.Proof)
	assert.Equal(t, "Two day seminar", sem.Proof.ExtractedInfo)
}

func TestEnrichment_ExtractionFailureStillCreatesRecord(t *testing.T) {
	svc, st, _ := newEnrichmentFixture(t, stubExtractor{err: errors.New("model unavailable")})

	job := ProofUploadJob{
		ID:        "job-3",
		Kind:      models.KindPractice,
		TeacherID: "t1",
		FileName:  "broken.pdf",
		MimeType:  "application/pdf",
		Data:      []byte("not really a pdf"),
	}
	require.NoError(t, svc.Enqueue(context.Background(), job))

	practices := waitForPractices(t, st, 1)
	require.NotNil(t, practices[0].Proof)
	assert.Equal(t, extraction.FailureSentinel, practices[0].Proof.ExtractedInfo)
}

func TestEnrichment_EmptyExtractionYieldsNoContentSentinel(t *testing.T) {
	svc, st, _ := newEnrichmentFixture(t, stubExtractor{err: extraction.ErrNoContent})

	job := ProofUploadJob{
		ID:        "job-4",
		Kind:      models.KindPractice,
		TeacherID: "t1",
		FileName:  "empty.pdf",
		MimeType:  "application/pdf",
		Data:      []byte("%PDF-1.4"),
	}
	require.NoError(t, svc.Enqueue(context.Background(), job))

	practices := waitForPractices(t, st, 1)
	require.NotNil(t, practices[0].Proof)
	assert.Equal(t, extraction.NoContentSentinel, practices[0].Proof.ExtractedInfo)
}

func TestEnrichment_SequentialJobsAllLand(t *testing.T) {
	svc, st, _ := newEnrichmentFixture(t, stubExtractor{summary: "ok"})

	for i := 0; i < 5; i++ {
		job := ProofUploadJob{
			ID:        "job-" + string(rune('a'+i)),
			Kind:      models.KindPractice,
			TeacherID: "t1",
			FileName:  "doc.pdf",
			MimeType:  "application/pdf",
			Data:      []byte("%PDF-1.4"),
		}
		require.NoError(t, svc.Enqueue(context.Background(), job))
	}

	waitForPractices(t, st, 5)
}

func TestEnrichment_StartTwiceFails(t *testing.T) {
	svc, _, _ := newEnrichmentFixture(t, stubExtractor{summary: "ok"})
	assert.Error(t, svc.Start(context.Background()))
}
