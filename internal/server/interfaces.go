package server

import "context"

// Server is the lifecycle contract of the vault server.
type Server interface {
	// RunServer serves until a termination signal arrives and then shuts
	// down gracefully.
	RunServer() error

	// Run serves until ctx is done.
	Run(ctx context.Context) error

	// Shutdown stops accepting requests and waits for in-flight ones.
	Shutdown()
}
