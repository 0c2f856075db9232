package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends a structured JSON response flagged as successful
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response. "error" carries the
// client-facing message; the wrapped cause is only logged.
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"status":  status,
		"message": message,
		"error":   message,
	})
	if err != nil {
		_ = c.Error(err)
	}
}
