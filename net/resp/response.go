package resp

import (
	"encoding/json"
	"net/http"

	"github.com/ncobase/calcgate/ecode"
)

// Exception is a failure answer: the HTTP status plus the business envelope.
type Exception struct {
	Status  int    `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// Error implements error so an Exception can travel through error returns.
func (e *Exception) Error() string {
	return e.Message
}

// newException builds an Exception; the first element of details, if any,
// becomes the errors member.
func newException(status, code int, message string, details ...any) *Exception {
	e := &Exception{Status: status, Code: code, Message: message}
	if len(details) > 0 {
		e.Errors = details[0]
	}
	return e
}

// Success writes data with status 200.
func Success(w http.ResponseWriter, data ...any) {
	WithStatusCode(w, http.StatusOK, data...)
}

// WithStatusCode writes data as-is with the given status. A bare string is
// wrapped as {"message": s}; no data yields {"message": "ok"}.
func WithStatusCode(w http.ResponseWriter, statusCode int, data ...any) {
	if statusCode < 200 || statusCode >= 400 {
		Fail(w, newException(statusCode, ecode.ServerErr, http.StatusText(statusCode)))
		return
	}

	var body any = map[string]string{"message": "ok"}
	if len(data) > 0 && data[0] != nil {
		body = data[0]
		if s, ok := body.(string); ok {
			body = map[string]string{"message": s}
		}
	}
	writeJSON(w, statusCode, body)
}

// Fail writes the envelope of r. A nil r is a server error; missing status,
// code or message fall back to a generic bad request.
func Fail(w http.ResponseWriter, r *Exception) {
	if r == nil {
		r = newException(http.StatusInternalServerError, ecode.ServerErr, ecode.Text(ecode.ServerErr))
	}

	out := *r
	if out.Status == 0 {
		out.Status = http.StatusBadRequest
	}
	if out.Code == 0 {
		out.Code = ecode.RequestErr
	}
	if out.Message == "" {
		out.Message = ecode.Text(out.Code)
	}
	writeJSON(w, out.Status, &out)
}

// writeJSON writes res as a JSON document with the given status.
func writeJSON(w http.ResponseWriter, code int, res any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
	}
}
