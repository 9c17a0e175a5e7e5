// Package server holds the HTTP server configuration used by the serve command.
//
// The Config struct defines the listen port, the API key protecting every
// route and the request read timeout.
package server
