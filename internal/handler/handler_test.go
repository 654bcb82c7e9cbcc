package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-pwa/internal/middleware"
	"github.com/yourusername/quiz-pwa/internal/repository/memory"
	"github.com/yourusername/quiz-pwa/internal/repository/static"
	"github.com/yourusername/quiz-pwa/internal/service"
	"github.com/yourusername/quiz-pwa/internal/service/quizmanager"
)

const testCatalog = `[
	{"id":1,"question":"2+2?","options":["3","4"],"answer":1,"explanation":"арифметика"},
	{"id":2,"question":"=SUM(A1)?","options":["да","нет"],"answer":0,"useKatex":true},
	{"id":3,"question":"FIFO?","options":["stack","queue"],"answer":1}
]`

func setupRouter(t *testing.T, catalog string) (*gin.Engine, *memory.KVStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := static.NewQuestionRepo([]byte(catalog))
	require.NoError(t, err)

	store := memory.NewKVStore()
	sessions := service.NewSessionFactory(repo, store, "test:", nil, quizmanager.NewLockedRandom(42))

	router := gin.New()
	RegisterRoutes(router, NewQuizHandler(sessions), NewHistoryHandler(sessions), nil)
	return router, store
}

func doRequest(router *gin.Engine, method, path, clientID string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if clientID != "" {
		req.Header.Set(middleware.ClientIDHeader, clientID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router, _ := setupRouter(t, testCatalog)

	w := doRequest(router, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestClientID(t *testing.T) {
	router, _ := setupRouter(t, testCatalog)

	t.Run("generated when absent", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/history", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		_, err := uuid.Parse(w.Header().Get(middleware.ClientIDHeader))
		assert.NoError(t, err)
	})

	t.Run("echoed when valid", func(t *testing.T) {
		id := uuid.NewString()
		w := doRequest(router, http.MethodGet, "/api/history", id, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, id, w.Header().Get(middleware.ClientIDHeader))
	})

	t.Run("rejected when not a uuid", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/history", "not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_client_id")
	})
}

func TestGetQuestions(t *testing.T) {
	router, _ := setupRouter(t, testCatalog)
	client := uuid.NewString()

	t.Run("answers hidden by default", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/questions", client, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body, 3)
		assert.EqualValues(t, 1, body[0]["id"])
		assert.NotContains(t, body[0], "answer")
		assert.Equal(t, false, body[0]["useKatex"])
		assert.Equal(t, true, body[1]["useKatex"])
	})

	t.Run("with answers", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/questions?with_answers=true", client, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body, 3)
		assert.EqualValues(t, 1, body[0]["answer"])
		assert.Equal(t, "арифметика", body[0]["explanation"])
	})
}

func TestGetQuestion(t *testing.T) {
	router, _ := setupRouter(t, testCatalog)
	client := uuid.NewString()

	tests := []struct {
		name string
		path string
		code int
	}{
		{"existing", "/api/questions/2", http.StatusOK},
		{"unknown", "/api/questions/99", http.StatusNotFound},
		{"zero id", "/api/questions/0", http.StatusBadRequest},
		{"not a number", "/api/questions/abc", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, tt.path, client, nil)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestGetNextQuestion(t *testing.T) {
	t.Run("returns a catalog question", func(t *testing.T) {
		router, store := setupRouter(t, testCatalog)
		client := uuid.NewString()

		w := doRequest(router, http.MethodGet, "/api/questions/next", client, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, []float64{1, 2, 3}, body["id"])

		// Выбор сохраняется в recentQuestions клиента
		raw, err := store.Get("test:client:" + client + ":" + quizmanager.RecentKey)
		require.NoError(t, err)
		assert.NotEmpty(t, raw)
	})

	t.Run("empty catalog gives 204", func(t *testing.T) {
		router, store := setupRouter(t, `[]`)

		w := doRequest(router, http.MethodGet, "/api/questions/next", uuid.NewString(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, 0, store.Len())
	})
}

func TestSubmitAnswer(t *testing.T) {
	router, _ := setupRouter(t, testCatalog)
	client := uuid.NewString()

	w := doRequest(router, http.MethodPost, "/api/questions/1/answer", client, gin.H{"selected_option": 1})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["is_correct"])
	assert.EqualValues(t, 1, resp["correct_option"])
	assert.Equal(t, map[string]interface{}{"correct": float64(1), "wrong": float64(0)}, resp["stat"])

	// Вариант 0 — неправильный, считается в wrong
	w = doRequest(router, http.MethodPost, "/api/questions/1/answer", client, gin.H{"selected_option": 0})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/history", client, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"1":{"correct":1,"wrong":1}}`, w.Body.String())

	t.Run("option out of range", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/questions/1/answer", client, gin.H{"selected_option": 5})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("missing option", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/questions/1/answer", client, gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown question", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/questions/42/answer", client, gin.H{"selected_option": 0})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHistory_ScopedPerClient(t *testing.T) {
	router, _ := setupRouter(t, testCatalog)
	alice := uuid.NewString()
	bob := uuid.NewString()

	w := doRequest(router, http.MethodPost, "/api/history/3", alice, gin.H{"is_correct": false})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/history", alice, nil)
	assert.JSONEq(t, `{"3":{"correct":0,"wrong":1}}`, w.Body.String())

	w = doRequest(router, http.MethodGet, "/api/history", bob, nil)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestRecordAnswer_Validation(t *testing.T) {
	router, _ := setupRouter(t, testCatalog)
	client := uuid.NewString()

	w := doRequest(router, http.MethodPost, "/api/history/3", client, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPost, "/api/history/77", client, gin.H{"is_correct": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResetHistoryAndRecent(t *testing.T) {
	router, store := setupRouter(t, testCatalog)
	client := uuid.NewString()

	doRequest(router, http.MethodPost, "/api/history/1", client, gin.H{"is_correct": true})
	doRequest(router, http.MethodGet, "/api/questions/next", client, nil)
	require.Equal(t, 2, store.Len())

	w := doRequest(router, http.MethodDelete, "/api/history", client, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, store.Len())

	w = doRequest(router, http.MethodDelete, "/api/history/recent", client, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, store.Len())

	w = doRequest(router, http.MethodGet, "/api/history", client, nil)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestGetStats(t *testing.T) {
	router, _ := setupRouter(t, testCatalog)
	client := uuid.NewString()

	doRequest(router, http.MethodPost, "/api/history/1", client, gin.H{"is_correct": true})
	doRequest(router, http.MethodPost, "/api/history/2", client, gin.H{"is_correct": false})
	doRequest(router, http.MethodPost, "/api/history/2", client, gin.H{"is_correct": false})

	w := doRequest(router, http.MethodGet, "/api/history/stats", client, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 3, body["total_questions"])
	assert.EqualValues(t, 2, body["answered"])
	assert.EqualValues(t, 1, body["unanswered"])
	assert.EqualValues(t, 1, body["correct"])
	assert.EqualValues(t, 2, body["wrong"])
	assert.Equal(t, "33.3%", body["accuracy_text"])
	assert.Equal(t, quizmanager.StrategyWeighted, body["strategy"])

	weakest := body["weakest"].([]interface{})
	require.Len(t, weakest, 1)
	assert.EqualValues(t, 2, weakest[0].(map[string]interface{})["id"])

	w = doRequest(router, http.MethodGet, "/api/history/stats?weakest=-1", client, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportHistory(t *testing.T) {
	router, _ := setupRouter(t, testCatalog)
	client := uuid.NewString()
	doRequest(router, http.MethodPost, "/api/history/2", client, gin.H{"is_correct": false})

	t.Run("csv", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/history/export", client, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

		body := strings.TrimPrefix(w.Body.String(), "\uFEFF")
		lines := strings.Split(strings.TrimSpace(body), "\n")
		require.Len(t, lines, 4)
		assert.True(t, strings.HasPrefix(lines[0], "ID,"))
		// Текст, начинающийся с "=", экранируется
		assert.Contains(t, lines[2], "'=SUM(A1)?")
		assert.Contains(t, lines[2], ",0,1,")
	})

	t.Run("xlsx", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/history/export?format=xlsx", client, nil)
		require.Equal(t, http.StatusOK, w.Code)

		f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("История")
		require.NoError(t, err)
		require.Len(t, rows, 4)
		assert.Equal(t, "ID", rows[0][0])
		assert.Equal(t, "2", rows[2][0])
		assert.Equal(t, "1", rows[2][3])
	})

	t.Run("unsupported format", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/history/export?format=pdf", client, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSanitizeForExcel(t *testing.T) {
	assert.Equal(t, "", sanitizeForExcel(""))
	assert.Equal(t, "'=1+1", sanitizeForExcel("=1+1"))
	assert.Equal(t, "'@cmd", sanitizeForExcel("@cmd"))
	assert.Equal(t, "plain", sanitizeForExcel("plain"))
}

func TestHistory_NegativeCountersIgnored(t *testing.T) {
	router, store := setupRouter(t, testCatalog)
	client := uuid.NewString()
	require.NoError(t, store.Set("test:client:"+client+":"+service.HistoryKey, `{"1":{"correct":-1,"wrong":0}}`))

	w := doRequest(router, http.MethodGet, "/api/history", client, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())

	w = doRequest(router, http.MethodGet, "/api/history/stats", client, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.EqualValues(t, 0, stats["correct"])
	assert.EqualValues(t, 0, stats["answered"])

	// Недавние вопросы исключаются, поэтому три выбора подряд дают три разных вопроса
	seen := make(map[float64]bool)
	for i := 0; i < 3; i++ {
		w = doRequest(router, http.MethodGet, "/api/questions/next", client, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		seen[body["id"].(float64)] = true
	}
	assert.Len(t, seen, 3)
}
