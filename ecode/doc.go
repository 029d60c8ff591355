// Package ecode defines the business codes carried in API responses and the
// short messages used when building them.
//
// Codes follow the HTTP status they map to, negated:
//
//	ecode.RequestErr         // -400
//	ecode.NothingFound       // -404
//	ecode.Unprocessable      // -422
//	ecode.ServerErr          // -500
//	ecode.ServiceUnavailable // -503
//
// Use Text for the default message and ToHTTPStatus for the transport status:
//
//	resp.Fail(w, &resp.Exception{
//	    Status:  ecode.ToHTTPStatus(ecode.NothingFound),
//	    Code:    ecode.NothingFound,
//	    Message: ecode.NotExist("calculation sim-001"),
//	})
package ecode
