// Package dto holds the request and response records of the fleet admin
// REST API. The console sends them and the local mock API serves them, so
// both sides validate against the same tags.
package dto
