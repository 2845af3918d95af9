// Package http implements the REST transport of the vault server.
//
// Requests pass through trace-id, logging and gzip middleware; every route
// except /api/version additionally requires a bearer token whose subject
// becomes the owner identity of the request. Handlers only decode input,
// call the service layer and map service errors onto status codes.
package http
