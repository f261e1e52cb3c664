package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/ai-horoscope/pkg/errors"
)

// Codes raised by the transport itself rather than the horoscope service.
const (
	codeInvalidRequest = "invalid_request"
	codeRateLimited    = "rate_limit_exceeded"
	codeInternal       = "internal_error"
)

// statusByCode maps service error codes onto response statuses.
// llm_unavailable is normally absorbed by the local generator.
var statusByCode = map[string]int{
	apperrors.CodeInvalidInput:     http.StatusBadRequest,
	apperrors.CodeLocationNotFound: http.StatusBadRequest,
	apperrors.CodeGeocodingError:   http.StatusBadGateway,
	apperrors.CodeLLMError:         http.StatusBadGateway,
	apperrors.CodeLLMUnavailable:   http.StatusServiceUnavailable,
}

// HTTPError is a failure with its response status and envelope resolved.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
	// RetryAfter is sent as a Retry-After header when positive.
	RetryAfter time.Duration
}

func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// asHTTPError resolves any error raised while serving a request. Service
// errors keep their code and user facing message; anything else is a 500
// whose cause is logged but not shown.
func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status, ok := statusByCode[appErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		return &HTTPError{Status: status, Code: appErr.Code, Message: appErr.Message, Err: err}
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    codeInternal,
		Message: "something went wrong",
		Err:     err,
	}
}

func invalidRequest(err error) *HTTPError {
	return &HTTPError{Status: http.StatusBadRequest, Code: codeInvalidRequest, Message: err.Error(), Err: err}
}

func (e *HTTPError) envelope() gin.H {
	message := e.Message
	if message == "" {
		message = e.Error()
	}
	return gin.H{"error": gin.H{"code": e.Code, "message": message}}
}

// abortWithError records err for errorHandlingMiddleware and stops the chain.
func abortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
