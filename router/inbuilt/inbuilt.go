package inbuilt

import (
	"github.com/indigo-web/workhttp/http/method"
	"github.com/indigo-web/workhttp/router"
)

var _ router.Router = new(Router)

type methods [method.Count + 1]router.Handler

// Router is an exact-match route table: the path must be equal to the registered one
// byte by byte, there are neither parameters nor wildcards. Routes must be registered
// before the router is handed to a server, lookups afterwards are read-only and thus
// safe to run concurrently
type Router struct {
	routes map[string]*methods
}

// New constructs a new instance of inbuilt router
func New() *Router {
	return &Router{
		routes: make(map[string]*methods),
	}
}

// Route registers the handler. Registering the same method and path again replaces the
// previous handler
func (r *Router) Route(m method.Method, path string, handler router.Handler) *Router {
	if m == method.Unknown || m > method.Count {
		panic("BUG: cannot route an unknown method")
	}

	if handler == nil {
		panic("BUG: nil handler for " + m.String() + " " + path)
	}

	entry, found := r.routes[path]
	if !found {
		entry = new(methods)
		r.routes[path] = entry
	}

	entry[m] = handler

	return r
}

// Lookup returns the handler registered for exactly this method and path
func (r *Router) Lookup(m method.Method, path string) (router.Handler, bool) {
	entry, found := r.routes[path]
	if !found || m > method.Count {
		return nil, false
	}

	handler := entry[m]

	return handler, handler != nil
}

// Len returns the number of registered method and path pairs
func (r *Router) Len() (n int) {
	for _, entry := range r.routes {
		for _, handler := range entry {
			if handler != nil {
				n++
			}
		}
	}

	return n
}
