// Package server runs the vault's HTTP server: startup, signal handling and
// graceful shutdown.
package server
