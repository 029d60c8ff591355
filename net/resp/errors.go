package resp

import (
	"net/http"

	"github.com/ncobase/calcgate/ecode"
)

// BadRequest indicates a bad request.
func BadRequest(message string, details ...any) *Exception {
	return newException(http.StatusBadRequest, ecode.RequestErr, message, details...)
}

// InvalidParam indicates a path or query parameter that failed to parse.
func InvalidParam(message string, details ...any) *Exception {
	return newException(http.StatusBadRequest, ecode.ParamErr, message, details...)
}

// NotFound indicates that the requested resource is not found.
func NotFound(message string, details ...any) *Exception {
	return newException(http.StatusNotFound, ecode.NothingFound, message, details...)
}

// UnsupportedMediaType indicates a request body of the wrong kind.
func UnsupportedMediaType(message string, details ...any) *Exception {
	return newException(http.StatusUnsupportedMediaType, ecode.UnsupportedMediaType, message, details...)
}

// Unprocessable indicates a well-formed request whose content was rejected.
func Unprocessable(message string, details ...any) *Exception {
	return newException(http.StatusUnprocessableEntity, ecode.Unprocessable, message, details...)
}

// InternalServer indicates a server error.
func InternalServer(message string, details ...any) *Exception {
	return newException(http.StatusInternalServerError, ecode.ServerErr, message, details...)
}

// ServiceUnavailable indicates that a collaborator could not be reached.
func ServiceUnavailable(message string, details ...any) *Exception {
	return newException(http.StatusServiceUnavailable, ecode.ServiceUnavailable, message, details...)
}
