package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/quiz-pwa/internal/middleware"
)

// RegisterRoutes регистрирует /health и группу /api.
// answerLimiter может быть nil: тогда запись ответов не ограничивается.
func RegisterRoutes(router *gin.Engine, quizHandler *QuizHandler, historyHandler *HistoryHandler, answerLimiter gin.HandlerFunc) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Цепочка для маршрутов записи ответа: id из URL, затем лимитер
	answerChain := func(h gin.HandlerFunc) []gin.HandlerFunc {
		chain := []gin.HandlerFunc{middleware.ExtractUintParam("id", "questionID")}
		if answerLimiter != nil {
			chain = append(chain, answerLimiter)
		}
		return append(chain, h)
	}

	api := router.Group("/api")
	api.Use(middleware.ClientID())
	{
		questions := api.Group("/questions")
		{
			questions.GET("", quizHandler.GetQuestions)
			questions.GET("/next", quizHandler.GetNextQuestion)
			questions.GET("/:id", middleware.ExtractUintParam("id", "questionID"), quizHandler.GetQuestion)
			questions.POST("/:id/answer", answerChain(quizHandler.SubmitAnswer)...)
		}

		history := api.Group("/history")
		{
			history.GET("", historyHandler.GetHistory)
			history.DELETE("", historyHandler.ResetHistory)
			history.GET("/stats", historyHandler.GetStats)
			history.GET("/export", historyHandler.ExportHistory)
			history.DELETE("/recent", historyHandler.ResetRecent)
			history.POST("/:id", answerChain(historyHandler.RecordAnswer)...)
		}
	}
}
