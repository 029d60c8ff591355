package ecode

import (
	"net/http"
	"sync"
)

// Business codes returned in the response envelope.
const (
	OK                   = 0
	RequestErr           = -400
	ParamErr             = -401
	NothingFound         = -404
	Conflict             = -409
	UnsupportedMediaType = -415
	Unprocessable        = -422
	ServerErr            = -500
	ServiceUnavailable   = -503
)

var (
	mu       sync.RWMutex
	messages = map[int]string{
		OK:                   "ok",
		RequestErr:           "Invalid request",
		ParamErr:             "Invalid parameters",
		NothingFound:         "Resource not found",
		Conflict:             "Resource conflict",
		UnsupportedMediaType: "Unsupported media type",
		Unprocessable:        "Unprocessable entity",
		ServerErr:            "Internal server error",
		ServiceUnavailable:   "Service unavailable",
	}
	statuses = map[int]int{
		OK:                   http.StatusOK,
		RequestErr:           http.StatusBadRequest,
		ParamErr:             http.StatusBadRequest,
		NothingFound:         http.StatusNotFound,
		Conflict:             http.StatusConflict,
		UnsupportedMediaType: http.StatusUnsupportedMediaType,
		Unprocessable:        http.StatusUnprocessableEntity,
		ServerErr:            http.StatusInternalServerError,
		ServiceUnavailable:   http.StatusServiceUnavailable,
	}
)

// Text returns the message registered for code.
func Text(code int) string {
	mu.RLock()
	defer mu.RUnlock()
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[ServerErr]
}

// Register adds or replaces the message of a custom code.
func Register(code int, message string) {
	mu.Lock()
	defer mu.Unlock()
	messages[code] = message
}

// ToHTTPStatus maps a business code to its HTTP status.
func ToHTTPStatus(code int) int {
	mu.RLock()
	defer mu.RUnlock()
	if status, ok := statuses[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
