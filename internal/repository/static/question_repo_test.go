package static

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-pwa/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-pwa/internal/pkg/errors"
)

var _ repository.QuestionRepository = (*QuestionRepo)(nil)

func TestLoadQuestionRepo_Embedded(t *testing.T) {
	repo, err := LoadQuestionRepo("")

	require.NoError(t, err)
	assert.Greater(t, repo.Count(), 0, "Встроенный каталог не должен быть пустым")

	q, err := repo.GetByID(2)
	require.NoError(t, err)
	assert.True(t, q.KatexEnabled())
}

func TestLoadQuestionRepo_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":10,"question":"Q?","options":["a","b"],"answer":0}]`), 0o600))

	repo, err := LoadQuestionRepo(path)

	require.NoError(t, err)
	assert.Equal(t, 1, repo.Count())
}

func TestLoadQuestionRepo_MissingFile(t *testing.T) {
	_, err := LoadQuestionRepo(filepath.Join(t.TempDir(), "nope.json"))

	assert.Error(t, err)
}

func TestNewQuestionRepo_PreservesOrder(t *testing.T) {
	repo, err := NewQuestionRepo([]byte(`[
		{"id":3,"question":"c"},
		{"id":1,"question":"a"},
		{"id":2,"question":"b"}
	]`))
	require.NoError(t, err)

	all := repo.GetAll()
	require.Len(t, all, 3)
	assert.Equal(t, uint(3), all[0].ID)
	assert.Equal(t, uint(1), all[1].ID)
	assert.Equal(t, uint(2), all[2].ID)
}

func TestNewQuestionRepo_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "битый JSON", data: `[{"id":1,`},
		{name: "нулевой id", data: `[{"id":0,"question":"q"}]`},
		{name: "пустой текст", data: `[{"id":1,"question":""}]`},
		{name: "ответ вне диапазона", data: `[{"id":1,"question":"q","options":["a","b"],"answer":2}]`},
		{name: "отрицательный ответ", data: `[{"id":1,"question":"q","answer":-1}]`},
		{name: "пустой вариант", data: `[{"id":1,"question":"q","options":["a",""],"answer":0}]`},
		{name: "дубликат id", data: `[{"id":1,"question":"a"},{"id":1,"question":"b"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuestionRepo([]byte(tt.data))
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestNewQuestionRepo_DuplicateIDSentinel(t *testing.T) {
	_, err := NewQuestionRepo([]byte(`[{"id":1,"question":"a"},{"id":1,"question":"b"}]`))

	assert.ErrorIs(t, err, repository.ErrDuplicateQuestionID)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, err := NewQuestionRepo([]byte(`[{"id":1,"question":"a"}]`))
	require.NoError(t, err)

	_, err = repo.GetByID(99)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// TestGetAll_DoesNotExposeInternalState — изменение результата не меняет каталог
func TestGetAll_DoesNotExposeInternalState(t *testing.T) {
	repo, err := NewQuestionRepo([]byte(`[{"id":1,"question":"a"}]`))
	require.NoError(t, err)

	all := repo.GetAll()
	all[0].Text = "mutated"

	q, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "a", q.Text)
}
