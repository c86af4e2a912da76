package inbuilt

import (
	"github.com/indigo-web/workhttp/http/method"
	"github.com/indigo-web/workhttp/router"
)

// Get is a shortcut for registering GET-requests.
func (r *Router) Get(path string, handler router.Handler) *Router {
	return r.Route(method.GET, path, handler)
}

// Post is a shortcut for registering POST-requests.
func (r *Router) Post(path string, handler router.Handler) *Router {
	return r.Route(method.POST, path, handler)
}

// Put is a shortcut for registering PUT-requests.
func (r *Router) Put(path string, handler router.Handler) *Router {
	return r.Route(method.PUT, path, handler)
}
