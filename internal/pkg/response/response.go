package response

import "github.com/gin-gonic/gin"

// Error codes shared by handlers.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidName     = "INVALID_NAME"
	CodeInvalidCategory = "INVALID_CATEGORY"
	CodeInvalidSize     = "INVALID_SIZE"
	CodeMissingID       = "MISSING_ID"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_ERROR"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
