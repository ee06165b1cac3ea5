package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/EduPort-F-2025/portfolio-service/internal/models"
	"github.com/EduPort-F-2025/portfolio-service/internal/repositories"
)

// Store holds the single SystemState and is its only write surface.
// Mutations are serialized by a mutex, so overlapping callers (HTTP
// requests, the enrichment worker) never interleave an apply with a
// persist. Every mutation ends with a full-snapshot write to durable
// storage; a failed write is surfaced to the caller while the in-memory
// state keeps the mutation, diverging until the next successful write.
type Store struct {
	mu        sync.RWMutex
	state     *models.SystemState
	snapshots repositories.SnapshotStore
	logger    *slog.Logger
}

func New(snapshots repositories.SnapshotStore, logger *slog.Logger) *Store {
	return &Store{
		snapshots: snapshots,
		logger:    logger,
	}
}

// Initialize loads the persisted snapshot verbatim when one exists and
// seeds a fresh state otherwise. A corrupt payload is not adopted: it
// is logged and replaced by the seed state on the next write.
func (s *Store) Initialize(ctx context.Context) error {
	state, found, err := s.snapshots.Load(ctx)
	switch {
	case errors.Is(err, repositories.ErrSnapshotCorrupt):
		s.logger.Error("Stored snapshot is corrupt, starting from seed state")
		state, found = nil, false
	case err != nil:
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if found {
		s.state = state
		s.logger.Info("Adopted persisted snapshot",
			"teachers", len(state.Teachers),
			"practices", len(state.Practices),
			"seminars", len(state.Seminars))
	} else {
		s.state = models.NewSeedState()
		s.logger.Info("No snapshot found, seeded initial state")
	}
	return nil
}

// State returns a deep copy of the current snapshot. Readers never
// share memory with the live state.
func (s *Store) State() *models.SystemState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Current returns a copy of the session user, or nil when logged out.
func (s *Store) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.CurrentUser == nil {
		return nil
	}
	u := *s.state.CurrentUser
	return &u
}

// Login sets the session user. Any caller-constructed identity is
// accepted; the credential check belongs to the (excluded) login UI.
func (s *Store) Login(ctx context.Context, user models.User) error {
	return s.mutate(ctx, func(state *models.SystemState) {
		state.CurrentUser = &user
	})
}

// Logout clears the session user without touching any collection.
func (s *Store) Logout(ctx context.Context) error {
	return s.mutate(ctx, func(state *models.SystemState) {
		state.CurrentUser = nil
	})
}

// RegisterTeacher adds an identity to the roster unless it is already
// present. Used when a freshly synthesized teacher logs in, so record
// ownership always resolves to a roster entry.
func (s *Store) RegisterTeacher(ctx context.Context, user models.User) error {
	return s.mutate(ctx, func(state *models.SystemState) {
		if state.TeacherByID(user.ID) == nil {
			state.Teachers = append(state.Teachers, user)
		}
	})
}

// UpdateProfile merges the partial update into the roster entry
// matching the session user and into the session user itself. Without a
// session it is a no-op.
func (s *Store) UpdateProfile(ctx context.Context, upd models.UserUpdate) error {
	return s.mutate(ctx, func(state *models.SystemState) {
		if state.CurrentUser == nil {
			return
		}
		if entry := state.TeacherByID(state.CurrentUser.ID); entry != nil {
			upd.ApplyTo(entry)
		}
		upd.ApplyTo(state.CurrentUser)
	})
}

// AddPractice appends a practice record. Ownership is not re-checked
// here; the session gate is the enforcement layer.
func (s *Store) AddPractice(ctx context.Context, practice models.Practice) error {
	return s.mutate(ctx, func(state *models.SystemState) {
		state.Practices = append(state.Practices, practice)
	})
}

// DeletePractice removes a practice by id. Deleting an absent id is a
// no-op. Removing the record also removes its proof; proofs never
// outlive their owner.
func (s *Store) DeletePractice(ctx context.Context, id string) error {
	return s.mutate(ctx, func(state *models.SystemState) {
		out := state.Practices[:0]
		for _, p := range state.Practices {
			if p.ID != id {
				out = append(out, p)
			}
		}
		state.Practices = out
	})
}

// AddSeminar appends a seminar record.
func (s *Store) AddSeminar(ctx context.Context, seminar models.Seminar) error {
	return s.mutate(ctx, func(state *models.SystemState) {
		state.Seminars = append(state.Seminars, seminar)
	})
}

// DeleteSeminar removes a seminar by id, idempotently.
func (s *Store) DeleteSeminar(ctx context.Context, id string) error {
	return s.mutate(ctx, func(state *models.SystemState) {
		out := state.Seminars[:0]
		for _, sem := range state.Seminars {
			if sem.ID != id {
				out = append(out, sem)
			}
		}
		state.Seminars = out
	})
}

// AddRecord dispatches on the tagged record union.
func (s *Store) AddRecord(ctx context.Context, record models.Record) error {
	switch record.Kind {
	case models.KindPractice:
		return s.AddPractice(ctx, *record.Practice)
	case models.KindSeminar:
		return s.AddSeminar(ctx, *record.Seminar)
	default:
		return fmt.Errorf("unknown record kind %q", record.Kind)
	}
}

// mutate applies one transformation to a copy of the state, swaps it
// in, then persists the full snapshot.
func (s *Store) mutate(ctx context.Context, apply func(*models.SystemState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	apply(next)
	s.state = next

	if err := s.snapshots.Save(ctx, next); err != nil {
		s.logger.Error("Failed to persist snapshot, in-memory state diverges", "error", err)
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return nil
}
