// Package apiclient is the authenticated HTTP client for the fleet admin
// REST API.
//
// Every endpoint answers with the envelope
//
//	{"statusCode": 200, "message": "ok", "data": ...}
//
// and the client hands callers exactly the "data" member. Non-2xx responses
// come back as *APIError carrying the server's envelope and raw body;
// transport failures are returned unchanged. Nothing is retried.
//
// Before each request the bearer token is resolved through a TokenSource
// (normally the session). A 401 that the server marks as an authentication
// failure is reported to the AuthFailureHandler, which decides whether the
// session is gone for good.
//
// Typical usage:
//
//	c, _ := apiclient.New(apiclient.Config{BaseURL: "https://api.example.com/v1"},
//		apiclient.WithTokenSource(sess), apiclient.WithLogger(log))
//	users, err := apiclient.Fetch[[]User](ctx, c, http.MethodGet, "/admin/users", nil, nil)
package apiclient
