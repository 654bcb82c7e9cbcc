package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/quiz-pwa/internal/handler/dto"
	"github.com/yourusername/quiz-pwa/internal/handler/helper"
	"github.com/yourusername/quiz-pwa/internal/service"
)

// HistoryHandler обрабатывает запросы к истории ответов клиента
type HistoryHandler struct {
	sessions *service.SessionFactory
}

// NewHistoryHandler создает новый обработчик истории
func NewHistoryHandler(sessions *service.SessionFactory) *HistoryHandler {
	return &HistoryHandler{sessions: sessions}
}

// GetHistory возвращает карту "ID вопроса → счётчики"
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	svc := clientService(c, h.sessions, "HistoryHandler")
	if svc == nil {
		return
	}

	c.JSON(http.StatusOK, dto.NewHistoryResponse(svc.History().GetHistory()))
}

// RecordAnswer записывает уже оценённый ответ
func (h *HistoryHandler) RecordAnswer(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	var req dto.RecordAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := clientService(c, h.sessions, "HistoryHandler")
	if svc == nil {
		return
	}

	stat, err := svc.RecordAnswer(questionID, *req.IsCorrect)
	if err != nil {
		handleServiceError(c, "HistoryHandler", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"question_id": questionID,
		"stat":        dto.NewAnswerStatResponse(stat),
	})
}

// ResetHistory удаляет всю историю клиента
func (h *HistoryHandler) ResetHistory(c *gin.Context) {
	svc := clientService(c, h.sessions, "HistoryHandler")
	if svc == nil {
		return
	}

	if err := svc.History().ResetHistory(); err != nil {
		handleServiceError(c, "HistoryHandler", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ResetRecent очищает список недавно показанных вопросов
func (h *HistoryHandler) ResetRecent(c *gin.Context) {
	svc := clientService(c, h.sessions, "HistoryHandler")
	if svc == nil {
		return
	}

	if err := svc.ResetRecent(); err != nil {
		handleServiceError(c, "HistoryHandler", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetStats возвращает сводную статистику (?weakest=N ограничивает список слабых вопросов)
func (h *HistoryHandler) GetStats(c *gin.Context) {
	limit := service.DefaultWeakestLimit
	if raw := c.Query("weakest"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weakest"})
			return
		}
		limit = n
	}

	svc := clientService(c, h.sessions, "HistoryHandler")
	if svc == nil {
		return
	}

	c.JSON(http.StatusOK, dto.NewStatsResponse(svc.GetStats(limit), h.sessions.Strategy()))
}

// ExportHistory экспортирует историю в CSV или XLSX (?format=csv|xlsx)
func (h *HistoryHandler) ExportHistory(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported format"})
		return
	}

	svc := clientService(c, h.sessions, "HistoryHandler")
	if svc == nil {
		return
	}

	rows := svc.GetQuestionStats()
	filename := fmt.Sprintf("quiz_history_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, rows, filename)
	default:
		h.exportCSV(c, rows, filename)
	}
}

var exportHeaders = []string{"ID", "Вопрос", "Правильных", "Неправильных", "Точность", "Вес"}

// exportCSV экспортирует историю в CSV с экранированием через encoding/csv
func (h *HistoryHandler) exportCSV(c *gin.Context, rows []service.QuestionStat, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, r := range rows {
		writer.Write([]string{
			strconv.FormatUint(uint64(r.Question.ID), 10),
			sanitizeForExcel(r.Question.Text),
			strconv.Itoa(r.Stat.Correct),
			strconv.Itoa(r.Stat.Wrong),
			helper.FormatAccuracy(r.Stat.Accuracy()),
			strconv.FormatFloat(r.Stat.Weight(), 'f', 2, 64),
		})
	}
}

// exportXLSX экспортирует историю в Excel через StreamWriter
func (h *HistoryHandler) exportXLSX(c *gin.Context, rows []service.QuestionStat, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "История"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[HistoryHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, name := range exportHeaders {
		headers[i] = name
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[HistoryHandler] Ошибка записи заголовков: %v", err)
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			r.Question.ID,
			sanitizeForExcel(r.Question.Text),
			r.Stat.Correct,
			r.Stat.Wrong,
			r.Stat.Accuracy(),
			r.Stat.Weight(),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[HistoryHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[HistoryHandler] Ошибка при Flush: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[HistoryHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
