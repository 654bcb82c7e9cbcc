package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/quiz-pwa/internal/domain/entity"
	"github.com/yourusername/quiz-pwa/internal/handler/dto"
	"github.com/yourusername/quiz-pwa/internal/service"
)

// QuizHandler обрабатывает запросы, связанные с вопросами каталога
type QuizHandler struct {
	sessions *service.SessionFactory
}

// NewQuizHandler создает новый обработчик вопросов
func NewQuizHandler(sessions *service.SessionFactory) *QuizHandler {
	return &QuizHandler{sessions: sessions}
}

// withAnswers сообщает, запросил ли клиент вопросы вместе с ответами (?with_answers=true)
func withAnswers(c *gin.Context) bool {
	v, err := strconv.ParseBool(c.DefaultQuery("with_answers", "false"))
	return err == nil && v
}

// GetQuestions возвращает весь каталог в исходном порядке
func (h *QuizHandler) GetQuestions(c *gin.Context) {
	svc := clientService(c, h.sessions, "QuizHandler")
	if svc == nil {
		return
	}

	questions := svc.GetAllQuestions()
	if withAnswers(c) {
		result := make([]dto.QuestionWithAnswerResponse, 0, len(questions))
		for i := range questions {
			result = append(result, dto.NewQuestionWithAnswerResponse(&questions[i]))
		}
		c.JSON(http.StatusOK, result)
		return
	}
	c.JSON(http.StatusOK, dto.NewListQuestionResponse(questions))
}

// GetNextQuestion выбирает следующий вопрос для клиента.
// Пустой каталог отдаёт 204 No Content.
func (h *QuizHandler) GetNextQuestion(c *gin.Context) {
	svc := clientService(c, h.sessions, "QuizHandler")
	if svc == nil {
		return
	}

	question := svc.SelectNextQuestion()
	if question == nil {
		c.Status(http.StatusNoContent)
		return
	}
	h.writeQuestion(c, question)
}

// GetQuestion возвращает один вопрос
func (h *QuizHandler) GetQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	svc := clientService(c, h.sessions, "QuizHandler")
	if svc == nil {
		return
	}

	question, err := svc.GetQuestion(questionID)
	if err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}
	h.writeQuestion(c, question)
}

// SubmitAnswer проверяет выбранный вариант и обновляет историю клиента
func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	var req dto.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := clientService(c, h.sessions, "QuizHandler")
	if svc == nil {
		return
	}

	result, err := svc.SubmitAnswer(questionID, *req.SelectedOption)
	if err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAnswerResponse(result))
}

func (h *QuizHandler) writeQuestion(c *gin.Context, q *entity.Question) {
	if withAnswers(c) {
		c.JSON(http.StatusOK, dto.NewQuestionWithAnswerResponse(q))
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionResponse(q))
}
