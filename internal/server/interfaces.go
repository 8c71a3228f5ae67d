package server

// Server is the lifecycle of the vault HTTP server and its background
// workers.
type Server interface {
	// RunServer serves until SIGINT, SIGTERM or SIGQUIT, then drains
	// in-flight requests and stops the workers.
	RunServer()

	// Shutdown stops accepting requests and waits for in-flight ones.
	Shutdown()
}
