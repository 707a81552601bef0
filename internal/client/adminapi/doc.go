// Package adminapi exposes the fleet admin REST API as typed services, one
// per endpoint family. Requests are validated locally before they are sent;
// a validation failure never reaches the network.
package adminapi
