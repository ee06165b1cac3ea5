package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/EduPort-F-2025/portfolio-service/internal/events"
	"github.com/EduPort-F-2025/portfolio-service/internal/extraction"
	"github.com/EduPort-F-2025/portfolio-service/internal/models"
	"github.com/EduPort-F-2025/portfolio-service/internal/store"
)

// ProofUploadJob is the message carried from the upload boundary to the
// enrichment worker.
type ProofUploadJob struct {
	ID        string            `json:"id"`
	Kind      models.RecordKind `json:"kind"`
	TeacherID string            `json:"teacher_id"`
	FileName  string            `json:"file_name"`
	MimeType  string            `json:"mime_type"`
	Data      []byte            `json:"data"`
}

// ProofEnrichmentService consumes upload jobs sequentially: extract the
// document summary, build the immutable proof, then perform exactly one
// store mutation per job. Running a single subscriber keeps extraction
// completions from racing on the store even when uploads overlap.
type ProofEnrichmentService struct {
	bus       *gochannel.GoChannel
	store     *store.Store
	extractor extraction.Extractor
	publisher events.EventPublisher
	logger    *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

func NewProofEnrichmentService(
	bus *gochannel.GoChannel,
	store *store.Store,
	extractor extraction.Extractor,
	publisher events.EventPublisher,
	logger *slog.Logger,
) *ProofEnrichmentService {
	return &ProofEnrichmentService{
		bus:       bus,
		store:     store,
		extractor: extractor,
		publisher: publisher,
		logger:    logger,
	}
}

// Enqueue publishes one upload job to the enrichment queue.
func (s *ProofEnrichmentService) Enqueue(ctx context.Context, job ProofUploadJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal upload job: %w", err)
	}

	msg := message.NewMessage(job.ID, payload)
	msg.SetContext(ctx)
	return s.bus.Publish(events.ProofUploadedTopic, msg)
}

// Start subscribes the single worker. Must be called once before any
// Enqueue is expected to take effect.
func (s *ProofEnrichmentService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return fmt.Errorf("enrichment service already started")
	}

	workerCtx, cancel := context.WithCancel(ctx)
	messages, err := s.bus.Subscribe(workerCtx, events.ProofUploadedTopic)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to subscribe to enrichment queue: %w", err)
	}

	s.cancel = cancel
	s.done = make(chan struct{})
	s.started = true

	go func() {
		defer close(s.done)
		for msg := range messages {
			s.process(workerCtx, msg)
			msg.Ack()
		}
	}()

	s.logger.Info("Proof enrichment worker started")
	return nil
}

// Shutdown stops the worker and waits for the in-flight job, if any.
func (s *ProofEnrichmentService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return nil
	}
	s.cancel()
	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	s.started = false
	return nil
}

func (s *ProofEnrichmentService) process(ctx context.Context, msg *message.Message) {
	var job ProofUploadJob
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		s.logger.Error("Dropping malformed upload job", "message_id", msg.UUID, "error", err)
		return
	}

	s.logger.Info("Enriching proof", "job_id", job.ID, "kind", job.Kind, "file", job.FileName)

	// Extraction never fails from the pipeline's perspective: the
	// summary string may be a sentinel, and the record is created
	// either way.
	summary := extraction.Summarize(ctx, s.extractor, s.logger, job.Data)

	proof := &models.Proof{
		FileName:      job.FileName,
		MimeType:      job.MimeType,
		Data:          base64.StdEncoding.EncodeToString(job.Data),
		ExtractedInfo: summary,
	}

	record := s.buildRecord(job, proof)
	if err := s.store.AddRecord(ctx, record); err != nil {
		s.logger.Error("Failed to persist enriched record", "job_id", job.ID, "error", err)
		return
	}

	s.publishCompletion(ctx, job, record)
}

// buildRecord wraps the proof in a record of the requested kind, dated
// today, titled after the uploaded file.
func (s *ProofEnrichmentService) buildRecord(job ProofUploadJob, proof *models.Proof) models.Record {
	today := time.Now().Format("2006-01-02")

	if job.Kind == models.KindSeminar {
		return models.SeminarRecord(models.Seminar{
			ID:          job.ID,
			TeacherID:   job.TeacherID,
			Title:       "Seminar - " + job.FileName,
			Description: "Uploaded via proof document",
			FromDate:    today,
			ToDate:      today,
			Proof:       proof,
		})
	}
	return models.PracticeRecord(models.Practice{
		ID:          job.ID,
		TeacherID:   job.TeacherID,
		Title:       "Practice - " + job.FileName,
		Description: "Uploaded via proof document",
		Date:        today,
		Proof:       proof,
	})
}

func (s *ProofEnrichmentService) publishCompletion(ctx context.Context, job ProofUploadJob, record models.Record) {
	if s.publisher == nil {
		return
	}

	eventType := events.EventPracticeCreated
	if record.Kind == models.KindSeminar {
		eventType = events.EventSeminarCreated
	}
	data := map[string]string{
		"record_id":  job.ID,
		"teacher_id": job.TeacherID,
		"file_name":  job.FileName,
	}

	for _, typ := range []string{events.EventProofExtracted, eventType} {
		if err := s.publisher.Publish(ctx, events.NewEvent(typ, data)); err != nil {
			s.logger.Error("Failed to publish event", "event_type", typ, "error", err)
		}
	}
}
