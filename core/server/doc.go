// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines
// the configuration structure: listen port, API key and whether the table
// export endpoint is exposed.
package server
