package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/pruefungsplaner/core/internal/domain/entities"
	"github.com/pruefungsplaner/core/internal/ports"
)

// FileExamRepository is the synchronous local-store variant of the
// persistence adapter: a single JSON document keyed by user id. It echoes
// created records back with their client-generated id. Writes go through a
// temp file and rename so a crash never leaves a torn document.
type FileExamRepository struct {
	path string

	mu    sync.Mutex
	users map[string][]entities.Exam
}

// NewFileExamRepository opens (or creates) the JSON store at path.
func NewFileExamRepository(path string) (*FileExamRepository, error) {
	r := &FileExamRepository{
		path:  path,
		users: make(map[string][]entities.Exam),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return r, nil
		}
		return nil, fmt.Errorf("open exam store: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &r.users); err != nil {
			return nil, fmt.Errorf("parse exam store %s: %w", path, err)
		}
	}

	return r, nil
}

func (r *FileExamRepository) LoadAll(_ context.Context, userID uuid.UUID) ([]entities.Exam, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.users[userID.String()]
	out := make([]entities.Exam, len(stored))
	copy(out, stored)
	return out, nil
}

func (r *FileExamRepository) Create(_ context.Context, userID uuid.UUID, exam entities.Exam) (entities.Exam, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if exam.ID == "" {
		exam.ID = uuid.NewString()
	}
	for _, e := range r.users[userID.String()] {
		if e.ID == exam.ID {
			return entities.Exam{}, fmt.Errorf("exam %s already exists", exam.ID)
		}
	}

	r.users[userID.String()] = append(r.users[userID.String()], exam)
	if err := r.save(); err != nil {
		// Keep the in-file view consistent with what we report.
		list := r.users[userID.String()]
		r.users[userID.String()] = list[:len(list)-1]
		return entities.Exam{}, err
	}

	return exam, nil
}

func (r *FileExamRepository) Update(_ context.Context, userID uuid.UUID, exam entities.Exam) (entities.Exam, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.users[userID.String()]
	for i, e := range list {
		if e.ID == exam.ID {
			prev := list[i]
			list[i] = exam
			if err := r.save(); err != nil {
				list[i] = prev
				return entities.Exam{}, err
			}
			return exam, nil
		}
	}

	return entities.Exam{}, entities.ErrExamNotFound
}

func (r *FileExamRepository) Delete(_ context.Context, userID uuid.UUID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.users[userID.String()]
	for i, e := range list {
		if e.ID == id {
			removed := list[i]
			r.users[userID.String()] = append(list[:i], list[i+1:]...)
			if err := r.save(); err != nil {
				rest := r.users[userID.String()]
				r.users[userID.String()] = append(rest[:i], append([]entities.Exam{removed}, rest[i:]...)...)
				return err
			}
			return nil
		}
	}

	return entities.ErrExamNotFound
}

// save writes the document atomically. Caller must hold r.mu.
func (r *FileExamRepository) save() error {
	data, err := json.MarshalIndent(r.users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode exam store: %w", err)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write exam store: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace exam store: %w", err)
	}

	return nil
}

var _ ports.ExamRepository = (*FileExamRepository)(nil)
