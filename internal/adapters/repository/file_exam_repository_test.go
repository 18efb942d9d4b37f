package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pruefungsplaner/core/internal/domain/entities"
)

func fileRepoExam(id, title string) entities.Exam {
	return entities.Exam{
		ID:      id,
		Title:   title,
		Subject: "Mathematik",
		Date:    entities.NewExamDate(2024, time.May, 10),
	}
}

func TestFileExamRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exams.json")
	repo, err := NewFileExamRepository(path)
	require.NoError(t, err)

	userID := uuid.New()
	ctx := context.Background()

	created, err := repo.Create(ctx, userID, fileRepoExam("", "Matrix"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID, "adapter assigns an id when the draft has none")

	loaded, err := repo.LoadAll(ctx, userID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, created, loaded[0])

	changed := created
	changed.Title = "Matrizen"
	updated, err := repo.Update(ctx, userID, changed)
	require.NoError(t, err)
	assert.Equal(t, "Matrizen", updated.Title)

	require.NoError(t, repo.Delete(ctx, userID, created.ID))
	loaded, err = repo.LoadAll(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFileExamRepositoryPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exams.json")
	userID := uuid.New()
	ctx := context.Background()

	repo, err := NewFileExamRepository(path)
	require.NoError(t, err)
	created, err := repo.Create(ctx, userID, fileRepoExam("", "Matrix"))
	require.NoError(t, err)

	reopened, err := NewFileExamRepository(path)
	require.NoError(t, err)
	loaded, err := reopened.LoadAll(ctx, userID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, created, loaded[0])
}

func TestFileExamRepositoryScopesByUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exams.json")
	repo, err := NewFileExamRepository(path)
	require.NoError(t, err)

	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	created, err := repo.Create(ctx, alice, fileRepoExam("", "Matrix"))
	require.NoError(t, err)

	bobsView, err := repo.LoadAll(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, bobsView)

	// Records of one user are invisible to the other's mutations.
	_, err = repo.Update(ctx, bob, created)
	assert.ErrorIs(t, err, entities.ErrExamNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, bob, created.ID), entities.ErrExamNotFound)

	alicesView, err := repo.LoadAll(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, alicesView, 1)
}

func TestFileExamRepositoryNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exams.json")
	repo, err := NewFileExamRepository(path)
	require.NoError(t, err)

	ctx := context.Background()
	userID := uuid.New()

	_, err = repo.Update(ctx, userID, fileRepoExam("missing", "Matrix"))
	assert.ErrorIs(t, err, entities.ErrExamNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, userID, "missing"), entities.ErrExamNotFound)
}

func TestFileExamRepositoryDuplicateID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exams.json")
	repo, err := NewFileExamRepository(path)
	require.NoError(t, err)

	ctx := context.Background()
	userID := uuid.New()

	_, err = repo.Create(ctx, userID, fileRepoExam("fixed", "Matrix"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, userID, fileRepoExam("fixed", "Again"))
	assert.Error(t, err)
}

func TestFileExamRepositoryCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "exams.json")
	repo, err := NewFileExamRepository(path)
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), uuid.New(), fileRepoExam("", "Matrix"))
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileExamRepositoryRejectsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exams.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileExamRepository(path)
	assert.Error(t, err)
}
