package web

func (s *Server) Listen(addr string) error {
	// Start the server and listen on the specified address
	return s.server.ListenAndServe(addr)
}

// Shutdown gracefully shuts down the server without interrupting any
// active connections.
func (s *Server) Shutdown() error {
	return s.server.Shutdown()
}
