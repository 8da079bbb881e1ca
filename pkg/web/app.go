package web

import (
	"github.com/joejoe-am/routego/pkg/router"
	"github.com/valyala/fasthttp"
)

// Server wraps a fasthttp server whose requests are dispatched by a
// router.Router. It owns no routing state itself; register routes on the
// router before calling Listen.
type Server struct {
	server *fasthttp.Server
	router *router.Router
}

// Config holds the configuration for the HTTP server
type Config struct {
	Name string // Value of the Server response header
}

func New(r *router.Router, config ...Config) *Server {
	s := &Server{router: r}

	name := "routego"
	if len(config) > 0 && config[0].Name != "" {
		name = config[0].Name
	}

	s.server = &fasthttp.Server{
		Handler: r.Handler,
		Name:    name,
	}

	return s
}

// Router returns the router the server dispatches to.
func (s *Server) Router() *router.Router {
	return s.router
}
