// Package router implements a radix tree based HTTP request router for
// fasthttp.
//
// The router matches incoming requests by the request method and the path.
// If a handle is registered for this path and method, the router delegates
// the request to it. Registered paths may contain two types of parameters:
//
//	Syntax    Type
//	:name     named parameter, matching a single path segment
//	*name     catch-all parameter, matching everything from its position on
//
// Named parameters are bound in pattern order and handed to the handle as a
// Params slice. Trees are built at registration time and must not be
// modified once the server started serving; matching itself is read-only
// and safe for concurrent use.
package router

import (
	"sort"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// Handle is a function that can be registered to a route to handle HTTP
// requests. Matched path parameters are passed as the second argument.
type Handle func(ctx *fasthttp.RequestCtx, ps Params)

// Router is a fasthttp request router which dispatches requests to
// registered handles via a per-method radix tree.
type Router struct {
	trees map[string]*node

	// Enables automatic redirection if the current route can't be matched
	// but a handle for the path with (without) the trailing slash exists.
	// For example if /foo/ is requested but a route only exists for /foo,
	// the client is redirected to /foo with http status code 301 for GET
	// requests and 307 for all other request methods.
	RedirectTrailingSlash bool

	// If enabled, the router tries to fix the current request path, if no
	// handle is registered for it. First superfluous path elements like
	// ../ or // are removed. Afterwards the router does a case-insensitive
	// lookup of the cleaned path. If a handle can be found for this route,
	// the router redirects to the corrected path with status code 301 for
	// GET requests and 307 for all other request methods.
	// For example /FOO and /..//Foo could be redirected to /foo.
	// RedirectTrailingSlash is independent of this option.
	RedirectFixedPath bool

	// If enabled, the router checks if another method is allowed for the
	// current route, if the current request can not be routed.
	// If this is the case, the request is answered with 'Method Not Allowed'
	// and HTTP status code 405. If no other method is allowed, the request
	// is delegated to the NotFound handler.
	HandleMethodNotAllowed bool

	// If enabled, the router automatically replies to OPTIONS requests.
	// Custom OPTIONS handlers take priority over automatic replies.
	HandleOPTIONS bool

	// Configurable handler which is called when no matching route is found.
	// If it is not set, a plain 404 is written.
	NotFound fasthttp.RequestHandler

	// Configurable handler which is called when a request cannot be routed
	// and HandleMethodNotAllowed is true. The "Allow" header with allowed
	// request methods is set before the handler is called. If it is not
	// set, a plain 405 is written.
	MethodNotAllowed fasthttp.RequestHandler

	// Function to handle panics recovered from http handles. It should be
	// used to generate an error page and return the http error code 500
	// (Internal Server Error). The handler can be used to keep your server
	// from crashing because of unrecovered panics.
	PanicHandler func(ctx *fasthttp.RequestCtx, rcv interface{})

	// Optional Prometheus instrumentation, see NewMetrics. Nil disables it.
	Metrics *Metrics
}

// New returns a new initialized Router.
// Path auto-correction, including trailing slashes, is enabled by default.
func New() *Router {
	return &Router{
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
	}
}

// Get is a shortcut for router.Handle(fasthttp.MethodGet, path, handle).
func (r *Router) Get(path string, handle Handle) {
	r.Handle(fasthttp.MethodGet, path, handle)
}

// Head is a shortcut for router.Handle(fasthttp.MethodHead, path, handle).
func (r *Router) Head(path string, handle Handle) {
	r.Handle(fasthttp.MethodHead, path, handle)
}

// Options is a shortcut for router.Handle(fasthttp.MethodOptions, path, handle).
func (r *Router) Options(path string, handle Handle) {
	r.Handle(fasthttp.MethodOptions, path, handle)
}

// Post is a shortcut for router.Handle(fasthttp.MethodPost, path, handle).
func (r *Router) Post(path string, handle Handle) {
	r.Handle(fasthttp.MethodPost, path, handle)
}

// Put is a shortcut for router.Handle(fasthttp.MethodPut, path, handle).
func (r *Router) Put(path string, handle Handle) {
	r.Handle(fasthttp.MethodPut, path, handle)
}

// Patch is a shortcut for router.Handle(fasthttp.MethodPatch, path, handle).
func (r *Router) Patch(path string, handle Handle) {
	r.Handle(fasthttp.MethodPatch, path, handle)
}

// Delete is a shortcut for router.Handle(fasthttp.MethodDelete, path, handle).
func (r *Router) Delete(path string, handle Handle) {
	r.Handle(fasthttp.MethodDelete, path, handle)
}

// Handle registers a new request handle with the given path and method.
//
// For GET, POST, PUT, PATCH and DELETE requests the respective shortcut
// functions can be used. This function is intended for bulk loading and to
// allow the usage of less frequently used, non-standardized or custom
// methods.
//
// Registration problems (empty method, nil handle, a path not starting with
// '/', or a pattern conflicting with an already registered one) are startup
// errors and panic.
func (r *Router) Handle(method, path string, handle Handle) {
	if method == "" {
		panic("method must not be empty")
	}
	if len(path) < 1 || path[0] != '/' {
		panic("path must begin with '/' in path '" + path + "'")
	}
	if handle == nil {
		panic("handle must not be nil")
	}

	if r.trees == nil {
		r.trees = make(map[string]*node)
	}

	rootNode := r.trees[method]
	if rootNode == nil {
		rootNode = new(node)
		r.trees[method] = rootNode
	}

	rootNode.addRoute(path, handle)
}

// Lookup allows the manual lookup of a method + path combo.
// This is e.g. useful to build a framework around this router.
//
// If the path was found, it returns the handle function and the path
// parameter values. Otherwise the third return value indicates whether a
// redirection to the same path with (without) the trailing slash should be
// performed.
func (r *Router) Lookup(method, path string) (Handle, Params, bool) {
	if rootNode := r.trees[method]; rootNode != nil {
		return rootNode.getValue(path)
	}
	return nil, nil, false
}

func (r *Router) allowed(path, reqMethod string) string {
	allow := make([]string, 0, 9)

	if path == "*" { // server-wide
		for method := range r.trees {
			if method == fasthttp.MethodOptions {
				continue
			}
			allow = append(allow, method)
		}
	} else { // specific path
		for method := range r.trees {
			// Skip the requested method - we already tried this one
			if method == reqMethod || method == fasthttp.MethodOptions {
				continue
			}

			handle, _, _ := r.trees[method].getValue(path)
			if handle != nil {
				allow = append(allow, method)
			}
		}
	}

	if len(allow) == 0 {
		return ""
	}
	sort.Strings(allow)
	return strings.Join(allow, ", ") + ", OPTIONS"
}

func (r *Router) recv(ctx *fasthttp.RequestCtx) {
	if rcv := recover(); rcv != nil {
		r.PanicHandler(ctx, rcv)
	}
}

// Handler dispatches the request to the registered handle, or synthesizes a
// redirect, 405 or 404 response. It is the fasthttp.RequestHandler of the
// router. Exactly one response is produced per request.
func (r *Router) Handler(ctx *fasthttp.RequestCtx) {
	if r.PanicHandler != nil {
		defer r.recv(ctx)
	}

	method := string(ctx.Method())
	path := string(ctx.Path())

	if rootNode := r.trees[method]; rootNode != nil {
		handle, ps, tsr := rootNode.getValue(path)
		if handle != nil {
			if r.Metrics == nil {
				handle(ctx, ps)
				return
			}
			start := time.Now()
			handle(ctx, ps)
			r.Metrics.observeMatch(method, time.Since(start))
			return
		}
		if method != fasthttp.MethodConnect && path != "/" {
			// Moved Permanently for GET and HEAD requests,
			// Temporary Redirect for all other methods.
			code := fasthttp.StatusMovedPermanently
			if method != fasthttp.MethodGet && method != fasthttp.MethodHead {
				code = fasthttp.StatusTemporaryRedirect
			}

			if tsr && r.RedirectTrailingSlash {
				var uri string
				if len(path) > 1 && path[len(path)-1] == '/' {
					uri = path[:len(path)-1]
				} else {
					uri = path + "/"
				}
				r.Metrics.observeTrailingSlashRedirect(method)
				ctx.Redirect(uri, code)
				return
			}

			// Try to fix the request path
			if r.RedirectFixedPath {
				fixedPath, found := rootNode.findCaseInsensitivePath(
					CleanPath(path),
					r.RedirectTrailingSlash,
				)
				if found {
					r.Metrics.observeFixedPathRedirect(method)
					ctx.RedirectBytes(fixedPath, code)
					return
				}
			}
		}
	}

	if method == fasthttp.MethodOptions && r.HandleOPTIONS {
		// Handle OPTIONS requests
		if allow := r.allowed(path, fasthttp.MethodOptions); allow != "" {
			ctx.Response.Header.Set("Allow", allow)
			ctx.SetStatusCode(fasthttp.StatusOK)
			return
		}
	} else if r.HandleMethodNotAllowed { // Handle 405
		if allow := r.allowed(path, method); allow != "" {
			ctx.Response.Header.Set("Allow", allow)
			r.Metrics.observeMethodNotAllowed(method)
			if r.MethodNotAllowed != nil {
				r.MethodNotAllowed(ctx)
			} else {
				ctx.Error("Method Not Allowed", fasthttp.StatusMethodNotAllowed)
				ctx.Response.Header.Set("Allow", allow)
			}
			return
		}
	}

	// Handle 404
	r.Metrics.observeNotFound(method)
	if r.NotFound != nil {
		r.NotFound(ctx)
	} else {
		ctx.Error("Not Found", fasthttp.StatusNotFound)
	}
}
