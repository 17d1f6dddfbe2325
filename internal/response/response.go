package response

import (
	"github.com/gin-gonic/gin"
)

// Response is the standardized API response envelope.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Code    ErrCode      `json:"code,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError is a single field-level validation violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ────────────────────────────────────────────────────────────────────────────
// Helper builders
// ────────────────────────────────────────────────────────────────────────────

// Success sends a successful JSON response with the given status code and data.
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail sends an error response with an error code and no field-level details.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: GetMessage(code),
		Code:    code,
	})
}

// FailWithErrors sends an error response with ordered field-level violations.
func FailWithErrors(c *gin.Context, statusCode int, code ErrCode, errs []FieldError) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: GetMessage(code),
		Code:    code,
		Errors:  errs,
	})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, Response{
		Success: false,
		Message: GetMessage(code),
		Code:    code,
	})
}

// AbortFailWithData aborts the chain and attaches a context payload to the
// error body. Used by the consent and verification gates to carry the
// compliance context (regulation, remediation path) alongside the code.
func AbortFailWithData(c *gin.Context, statusCode int, code ErrCode, data interface{}) {
	c.AbortWithStatusJSON(statusCode, Response{
		Success: false,
		Message: GetMessage(code),
		Code:    code,
		Data:    data,
	})
}
