package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ClientIDHeader — заголовок, в котором фронтенд передаёт идентификатор клиента
	ClientIDHeader = "X-Client-ID"
	// ClientIDKey — ключ в контексте Gin
	ClientIDKey = "clientID"
)

// ClientID извлекает идентификатор клиента из заголовка X-Client-ID.
// Идентификатор должен быть UUID; если заголовка нет, генерируется новый.
// Итоговое значение всегда возвращается клиенту в том же заголовке.
func ClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(ClientIDHeader)

		var id uuid.UUID
		if raw == "" {
			id = uuid.New()
		} else {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error":      "Invalid " + ClientIDHeader,
					"error_type": "invalid_client_id",
				})
				return
			}
			id = parsed
		}

		c.Set(ClientIDKey, id.String())
		c.Header(ClientIDHeader, id.String())
		c.Next()
	}
}
