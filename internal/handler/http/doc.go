// Package http implements the HTTP transport layer of the vault server.
//
// It exposes route wiring, request handlers, and middleware used by the JSON
// API. Session authentication, request tracing, access logging and gzip
// handling are done in this package before requests are delegated to the
// service layer. Every failure is answered with a [models.ErrorResponse]
// whose kind comes from a closed set.
package http
