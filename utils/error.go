package utils

import (
	"errors"
	"fmt"
	"net/http"

	"styledecor/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies failures so that every layer maps them to the same HTTP status.
type ErrorKind string

const (
	KindValidation       ErrorKind = "validation"
	KindInvalidReference ErrorKind = "invalid_reference"
	KindInvalidRole      ErrorKind = "invalid_role"
	KindInvalidIndex     ErrorKind = "invalid_index"
	KindNotFound         ErrorKind = "not_found"
	KindForbidden        ErrorKind = "forbidden"
	KindUnauthenticated  ErrorKind = "unauthenticated"
	KindAlreadyPaid      ErrorKind = "already_paid"
	KindInvalidAmount    ErrorKind = "invalid_amount"
	KindInternal         ErrorKind = "internal"
)

// AppError is the error type returned by services.
type AppError struct {
	Kind    ErrorKind
	Message string
	// Details lists individual field violations for validation failures.
	Details []string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Status returns the HTTP status code for the error kind.
func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation, KindInvalidReference, KindInvalidRole, KindInvalidIndex,
		KindAlreadyPaid, KindInvalidAmount:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func NewError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func ValidationError(details ...string) *AppError {
	return &AppError{Kind: KindValidation, Message: "Validation failed", Details: details}
}

func InvalidReference(message string) *AppError {
	return &AppError{Kind: KindInvalidReference, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func Unauthenticated(message string) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: message}
}

// Internal wraps an unexpected failure; the cause is only exposed outside production.
func Internal(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal for errors outside the taxonomy.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// RespondError writes err using the error taxonomy.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = Internal("Internal server error", err)
	}

	resp := ErrorResponse{Message: appErr.Message, Errors: appErr.Details}
	if !config.IsProduction() && appErr.Err != nil {
		resp.Error = appErr.Err.Error()
	}

	if appErr.Kind == KindInternal {
		LoggerFromContext(c).Error(appErr.Message, zap.Error(appErr.Err))
	}
	c.AbortWithStatusJSON(appErr.Status(), resp)
}

// ErrorHandler is a middleware to catch panics and return structured errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				LoggerFromContext(c).Error("Unhandled panic", zap.Any("error", rec))
				RespondError(c, Internal("Internal server error", fmt.Errorf("panic: %v", rec)))
			}
		}()
		c.Next()
	}
}

// LoggerFromContext returns the request-scoped logger set by the request logger middleware.
func LoggerFromContext(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return GetLogger()
}
