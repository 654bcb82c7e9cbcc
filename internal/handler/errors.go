package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/quiz-pwa/internal/middleware"
	apperrors "github.com/yourusername/quiz-pwa/internal/pkg/errors"
	"github.com/yourusername/quiz-pwa/internal/service"
)

// handleServiceError преобразует ошибки сервисов в HTTP-ответы
func handleServiceError(c *gin.Context, component string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: Internal server error in %s: %v", component, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// clientService возвращает сервис вопросов для клиента из контекста.
// При ошибке ответ уже отправлен и возвращается nil.
func clientService(c *gin.Context, sessions *service.SessionFactory, component string) *service.QuestionService {
	svc, err := sessions.ForClient(c.GetString(middleware.ClientIDKey))
	if err != nil {
		log.Printf("[%s] Failed to open client session: %v", component, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Client ID is required", "error_type": "invalid_client_id"})
		return nil
	}
	return svc
}
