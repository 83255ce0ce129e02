package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/irbrowse/core/internal/pkg/apperr"
)

// OK sends a 200 response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	NotFoundMsg(c, "not found")
}

// NotFoundMsg sends a 404 error with a custom message.
func NotFoundMsg(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"ok": 0, "code": http.StatusNotFound, "message": message})
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{"ok": 0, "code": http.StatusMethodNotAllowed, "message": "method not allowed"})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"ok": 0, "code": http.StatusBadRequest, "message": message})
}

// Error maps a classified error to its status code and sends the client-safe
// message. Unclassified errors become a generic 500.
func Error(c *gin.Context, err error) {
	status := StatusOf(err)
	c.AbortWithStatusJSON(status, gin.H{
		"ok":      0,
		"code":    status,
		"kind":    apperr.KindOf(err).String(),
		"message": apperr.MessageOf(err),
	})
}

// StatusOf resolves the HTTP status for a classified error.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindInvalidQuery, apperr.KindInvalidSortField:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindSearchUnavailable, apperr.KindGeneratorUnavailable:
		return http.StatusServiceUnavailable
	case apperr.KindGeneratorTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
