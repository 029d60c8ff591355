// Package resp provides the HTTP response helpers shared by every handler.
//
// Successful responses write the payload as-is:
//
//	resp.Success(w, identity)
//	resp.WithStatusCode(w, http.StatusAccepted, identity)
//
// Failures are wrapped in the business envelope:
//
//	{
//	  "code": -404,
//	  "message": "Totim: 3.5 not available. Available totims are: 1, 2",
//	  "errors": {"available": [1, 2]}
//	}
//
// built from the constructors in errors.go:
//
//	resp.Fail(w, resp.NotFound(msg, details))
package resp
