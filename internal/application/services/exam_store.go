package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/pruefungsplaner/core/internal/domain/entities"
	"github.com/pruefungsplaner/core/internal/infrastructure/logger"
	"github.com/pruefungsplaner/core/internal/ports"
)

// ExamStore is the single authoritative in-memory view of one user's exam
// records, synchronized with an ExamRepository. Mutations are applied
// optimistically and rolled back when the adapter rejects them. Mutations on
// the same record id are serialized: a second one waits until the in-flight
// one resolves, so a late rollback cannot clobber a newer record. Mutations on
// different ids proceed concurrently.
type ExamStore struct {
	repo     ports.ExamRepository
	userID   uuid.UUID
	subjects entities.SubjectSet
	logger   *logger.Logger

	mu    sync.RWMutex
	exams map[string]entities.Exam
	order []string

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewExamStore creates an empty store for the given user. Call LoadAll to
// populate it from the adapter.
func NewExamStore(repo ports.ExamRepository, userID uuid.UUID, subjects entities.SubjectSet, logger *logger.Logger) *ExamStore {
	return &ExamStore{
		repo:     repo,
		userID:   userID,
		subjects: subjects,
		logger:   logger,
		exams:    make(map[string]entities.Exam),
		locks:    make(map[string]*sync.Mutex),
	}
}

// recordLock returns the mutation lock for an id, creating it on first use.
func (s *ExamStore) recordLock(id string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// LoadAll fetches the full collection from the adapter and replaces the
// in-memory set. On failure the previous set is kept untouched.
func (s *ExamStore) LoadAll(ctx context.Context) ([]entities.Exam, error) {
	loaded, err := s.repo.LoadAll(ctx, s.userID)
	if err != nil {
		return nil, &entities.PersistenceError{Op: "load", Err: err}
	}

	s.mu.Lock()
	s.exams = make(map[string]entities.Exam, len(loaded))
	s.order = make([]string, 0, len(loaded))
	for _, e := range loaded {
		if _, dup := s.exams[e.ID]; dup {
			continue
		}
		s.exams[e.ID] = e
		s.order = append(s.order, e.ID)
	}
	s.mu.Unlock()

	return s.All(), nil
}

// All returns a snapshot of the current in-memory set in the store's stable
// iteration order. Ordering beyond stability is the projectors' business.
func (s *ExamStore) All() []entities.Exam {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Exam, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.exams[id])
	}
	return out
}

// Get returns the record with the given id, if present.
func (s *ExamStore) Get(id string) (entities.Exam, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.exams[id]
	return e, ok
}

// Len reports the number of records currently held.
func (s *ExamStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Create validates the draft, assigns an id when the adapter does not bring
// its own, applies the addition optimistically, and persists it. A rejected
// adapter call rolls the addition back.
func (s *ExamStore) Create(ctx context.Context, draft entities.Exam) (entities.Exam, error) {
	if err := draft.Validate(s.subjects); err != nil {
		return entities.Exam{}, err
	}
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}

	lock := s.recordLock(draft.ID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	if _, exists := s.exams[draft.ID]; exists {
		s.mu.Unlock()
		return entities.Exam{}, &entities.ValidationError{Field: "id", Reason: "already exists"}
	}
	s.exams[draft.ID] = draft
	s.order = append(s.order, draft.ID)
	s.mu.Unlock()

	stored, err := s.repo.Create(ctx, s.userID, draft)
	if err != nil {
		s.removeLocked(draft.ID)
		return entities.Exam{}, &entities.PersistenceError{Op: "create", Err: err}
	}

	// The adapter's record wins; a remote store may have assigned the id.
	s.mu.Lock()
	if stored.ID != draft.ID {
		delete(s.exams, draft.ID)
		for i, id := range s.order {
			if id == draft.ID {
				s.order[i] = stored.ID
				break
			}
		}
	}
	s.exams[stored.ID] = stored
	s.mu.Unlock()

	s.logger.Info("Exam created", "exam_id", stored.ID, "subject", stored.Subject, "date", stored.Date.String())
	return stored, nil
}

// Update replaces the record with the same id. It fails with ErrExamNotFound
// when the id is absent and rolls back to the previous record when the
// adapter rejects the replacement.
func (s *ExamStore) Update(ctx context.Context, id string, draft entities.Exam) (entities.Exam, error) {
	lock := s.recordLock(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	prev, ok := s.exams[id]
	s.mu.RUnlock()
	if !ok {
		return entities.Exam{}, entities.ErrExamNotFound
	}

	draft.ID = id
	if err := draft.Validate(s.subjects); err != nil {
		return entities.Exam{}, err
	}

	s.mu.Lock()
	s.exams[id] = draft
	s.mu.Unlock()

	stored, err := s.repo.Update(ctx, s.userID, draft)
	if err != nil {
		s.mu.Lock()
		s.exams[id] = prev
		s.mu.Unlock()
		return entities.Exam{}, &entities.PersistenceError{Op: "update", Err: err}
	}

	s.mu.Lock()
	s.exams[id] = stored
	s.mu.Unlock()

	s.logger.Info("Exam updated", "exam_id", id, "subject", stored.Subject, "date", stored.Date.String())
	return stored, nil
}

// Delete removes the record with the given id, re-inserting it at its
// original position when the adapter rejects the removal.
func (s *ExamStore) Delete(ctx context.Context, id string) error {
	lock := s.recordLock(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	prev, ok := s.exams[id]
	if !ok {
		s.mu.Unlock()
		return entities.ErrExamNotFound
	}
	pos := -1
	for i, oid := range s.order {
		if oid == id {
			pos = i
			break
		}
	}
	delete(s.exams, id)
	s.order = append(s.order[:pos], s.order[pos+1:]...)
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, s.userID, id); err != nil {
		s.mu.Lock()
		s.exams[id] = prev
		if pos > len(s.order) {
			pos = len(s.order)
		}
		s.order = append(s.order[:pos], append([]string{id}, s.order[pos:]...)...)
		s.mu.Unlock()
		return &entities.PersistenceError{Op: "delete", Err: err}
	}

	s.logger.Info("Exam deleted", "exam_id", id)
	return nil
}

// removeLocked drops a record from map and order under the store lock.
func (s *ExamStore) removeLocked(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.exams, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
