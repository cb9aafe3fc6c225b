// internal/api/response_helpers.go
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chukainspires/coachsite/internal/apperrors"
)

// APIResponse is the uniform envelope every JSON endpoint returns.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
}

// APIError carries a machine-readable code, an operator-facing message and,
// for validation failures, the per-field messages.
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ResponseHelper builds API responses.
type ResponseHelper struct{}

// NewResponseHelper creates a response helper.
func NewResponseHelper() *ResponseHelper {
	return &ResponseHelper{}
}

// Success writes a 200 response.
func (rh *ResponseHelper) Success(c *gin.Context, data interface{}, message ...string) {
	response := &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: rh.getRequestID(c),
	}

	if len(message) > 0 {
		response.Message = message[0]
	}

	c.JSON(http.StatusOK, response)
}

// Created writes a 201 response.
func (rh *ResponseHelper) Created(c *gin.Context, data interface{}, message ...string) {
	response := &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: rh.getRequestID(c),
	}

	if len(message) > 0 {
		response.Message = message[0]
	}

	c.JSON(http.StatusCreated, response)
}

// Error writes an error response with the given status.
func (rh *ResponseHelper) Error(c *gin.Context, statusCode int, errorCode, message string) {
	response := &APIResponse{
		Success: false,
		Error: &APIError{
			Code:    errorCode,
			Message: message,
		},
		Timestamp: time.Now(),
		RequestID: rh.getRequestID(c),
	}

	c.JSON(statusCode, response)
}

// ValidationFailed writes a 400 response carrying per-field messages.
func (rh *ResponseHelper) ValidationFailed(c *gin.Context, fields map[string]string) {
	response := &APIResponse{
		Success: false,
		Error: &APIError{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed",
			Fields:  fields,
		},
		Timestamp: time.Now(),
		RequestID: rh.getRequestID(c),
	}

	c.JSON(http.StatusBadRequest, response)
}

// BadRequest writes a 400 response.
func (rh *ResponseHelper) BadRequest(c *gin.Context, message string) {
	rh.Error(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// Unauthorized writes a 401 response.
func (rh *ResponseHelper) Unauthorized(c *gin.Context, message string) {
	rh.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// NotFound writes a 404 response.
func (rh *ResponseHelper) NotFound(c *gin.Context, message string) {
	rh.Error(c, http.StatusNotFound, "NOT_FOUND", message)
}

// TooManyRequests writes a 429 response.
func (rh *ResponseHelper) TooManyRequests(c *gin.Context, message string) {
	rh.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", message)
}

// InternalError writes a 500 response.
func (rh *ResponseHelper) InternalError(c *gin.Context, message string) {
	rh.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", message)
}

// FromError maps an application error onto the matching HTTP response.
func (rh *ResponseHelper) FromError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			rh.Error(c, http.StatusBadRequest, appErr.Code, appErr.Message)
		case apperrors.ErrorTypeNotFound:
			rh.Error(c, http.StatusNotFound, appErr.Code, appErr.Message)
		case apperrors.ErrorTypeUnauthorized:
			rh.Error(c, http.StatusUnauthorized, appErr.Code, appErr.Message)
		case apperrors.ErrorTypeStore:
			// The wrapped cause stays in the logs, not in the response.
			rh.Error(c, http.StatusBadGateway, appErr.Code, appErr.Message)
		default:
			rh.InternalError(c, appErr.Message)
		}
		return
	}
	rh.InternalError(c, "an internal error occurred")
}

func (rh *ResponseHelper) getRequestID(c *gin.Context) string {
	if id, exists := c.Get("request_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
