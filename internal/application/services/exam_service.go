package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pruefungsplaner/core/internal/domain/calendar"
	"github.com/pruefungsplaner/core/internal/domain/entities"
	"github.com/pruefungsplaner/core/internal/infrastructure/logger"
	"github.com/pruefungsplaner/core/internal/ports"
)

// ExamService exposes the exam engine to the transport layer: one ExamStore
// per authenticated user, created lazily and primed with LoadAll on first
// touch, plus the calendar and upcoming projections over the store snapshot.
type ExamService struct {
	repo     ports.ExamRepository
	subjects entities.SubjectSet
	logger   *logger.Logger

	mu     sync.RWMutex
	stores map[uuid.UUID]*storeEntry
}

// storeEntry gates access to a user's store behind its initial load. The
// store field is only set after a successful prime, so no caller can observe
// an unprimed store.
type storeEntry struct {
	once  sync.Once
	store *ExamStore
	err   error
}

// NewExamService creates a new exam service.
func NewExamService(repo ports.ExamRepository, subjects entities.SubjectSet, logger *logger.Logger) *ExamService {
	return &ExamService{
		repo:     repo,
		subjects: subjects,
		logger:   logger,
		stores:   make(map[uuid.UUID]*storeEntry),
	}
}

// storeFor returns the user's store, loading it from the adapter the first
// time. Concurrent first touches of the same user wait for the one in-flight
// prime instead of seeing an empty store. The persistence adapter is never
// touched while the user id is unresolved.
func (s *ExamService) storeFor(ctx context.Context, userID uuid.UUID) (*ExamStore, error) {
	if userID == uuid.Nil {
		return nil, entities.ErrUserUnresolved
	}

	s.mu.RLock()
	entry, ok := s.stores[userID]
	s.mu.RUnlock()

	if !ok {
		s.mu.Lock()
		entry, ok = s.stores[userID]
		if !ok {
			entry = &storeEntry{}
			s.stores[userID] = entry
		}
		s.mu.Unlock()
	}

	entry.once.Do(func() {
		store := NewExamStore(s.repo, userID, s.subjects, s.logger.WithUserID(userID.String()))
		if _, err := store.LoadAll(ctx); err != nil {
			entry.err = err
			return
		}
		entry.store = store
	})

	if entry.err != nil {
		// Drop the failed entry so the next request retries the load; keep
		// any newer entry another caller may have registered since.
		s.mu.Lock()
		if cur, ok := s.stores[userID]; ok && cur == entry {
			delete(s.stores, userID)
		}
		s.mu.Unlock()
		return nil, entry.err
	}
	return entry.store, nil
}

// refreshOnStale re-loads the user's collection after a NotFound, which
// indicates the in-memory view went stale. The original error is still
// surfaced to the caller.
func (s *ExamService) refreshOnStale(ctx context.Context, store *ExamStore, err error) error {
	if errors.Is(err, entities.ErrExamNotFound) {
		if _, loadErr := store.LoadAll(ctx); loadErr != nil {
			s.logger.Warn("Reload after stale view failed", "error", loadErr)
		}
	}
	return err
}

func draftFromRequest(req ports.ExamRequest) (entities.Exam, error) {
	date, err := entities.ParseExamDate(req.Date)
	if err != nil {
		return entities.Exam{}, &entities.ValidationError{Field: "date", Reason: err.Error()}
	}
	return entities.Exam{
		Title:       req.Title,
		Subject:     req.Subject,
		Date:        date,
		Description: req.Description,
		Priority:    entities.Priority(req.Priority),
	}, nil
}

// ListExams returns the user's records in store iteration order.
func (s *ExamService) ListExams(ctx context.Context, userID uuid.UUID) ([]entities.Exam, error) {
	store, err := s.storeFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return store.All(), nil
}

// CreateExam records a new exam for the user.
func (s *ExamService) CreateExam(ctx context.Context, userID uuid.UUID, req ports.ExamRequest) (*entities.Exam, error) {
	store, err := s.storeFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	draft, err := draftFromRequest(req)
	if err != nil {
		return nil, err
	}
	created, err := store.Create(ctx, draft)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateExam replaces the record with the given id.
func (s *ExamService) UpdateExam(ctx context.Context, userID uuid.UUID, id string, req ports.ExamRequest) (*entities.Exam, error) {
	store, err := s.storeFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	draft, err := draftFromRequest(req)
	if err != nil {
		return nil, err
	}
	updated, err := store.Update(ctx, id, draft)
	if err != nil {
		return nil, s.refreshOnStale(ctx, store, err)
	}
	return &updated, nil
}

// DeleteExam removes the record with the given id.
func (s *ExamService) DeleteExam(ctx context.Context, userID uuid.UUID, id string) error {
	store, err := s.storeFor(ctx, userID)
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, id); err != nil {
		return s.refreshOnStale(ctx, store, err)
	}
	return nil
}

// MonthView projects the user's exams onto the month grid.
func (s *ExamService) MonthView(ctx context.Context, userID uuid.UUID, year int, month time.Month, firstWeekday time.Weekday) ([]calendar.DayView, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month %d", month)
	}
	store, err := s.storeFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return calendar.MonthView(year, month, firstWeekday, store.All()), nil
}

// Upcoming returns the user's exams inside the inclusive window
// [today, today+windowDays], soonest first. windowDays < 0 lifts the upper
// bound.
func (s *ExamService) Upcoming(ctx context.Context, userID uuid.UUID, today entities.ExamDate, windowDays int) ([]entities.Exam, error) {
	store, err := s.storeFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return calendar.Upcoming(store.All(), today, windowDays), nil
}

// CachedUsers reports how many per-user stores are currently held. Used by
// the metrics collector.
func (s *ExamService) CachedUsers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stores)
}
