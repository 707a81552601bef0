// Package httpapi serves the fleet admin REST API on echo. Every response,
// success or failure, is the {statusCode, message, code, data} envelope the
// console expects. Protected routes take a bearer JWT; authentication
// failures answer 401 with a TOKEN_* code and a Bearer challenge.
package httpapi
