package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chaiyareokput-tech/Finsi/internal/domain"
	"github.com/chaiyareokput-tech/Finsi/internal/generator"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates pipeline errors to HTTP status codes, error
// codes, and the single human-readable message the upload surface shows.
func MapDomainError(err error) (status int, code, msg string) {
	var rle *generator.RateLimitError
	if errors.As(err, &rle) {
		return http.StatusTooManyRequests, "RATE_LIMITED", "the analysis provider is rate limiting requests; try again shortly"
	}
	switch {
	case errors.Is(err, domain.ErrInputMissing):
		return http.StatusBadRequest, "INPUT_MISSING", "upload a file or paste text before starting the analysis"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error()
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT", err.Error()
	case errors.Is(err, domain.ErrConfigurationMissing):
		return http.StatusInternalServerError, "CONFIGURATION_MISSING", err.Error()
	case errors.Is(err, domain.ErrContentBlocked):
		return http.StatusUnprocessableEntity, "CONTENT_BLOCKED", err.Error()
	case errors.Is(err, domain.ErrEmptyResponse):
		return http.StatusBadGateway, "EMPTY_RESPONSE", err.Error()
	case errors.Is(err, domain.ErrMalformedResponse):
		return http.StatusBadGateway, "MALFORMED_RESPONSE", err.Error()
	case errors.Is(err, domain.ErrTransportFailure):
		return http.StatusBadGateway, "TRANSPORT_FAILURE", err.Error()
	case errors.Is(err, domain.ErrAnalysisInFlight):
		return http.StatusConflict, "ANALYSIS_IN_FLIGHT", "an analysis is already in progress; wait for it to finish"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a pipeline error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%v] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
