package router

import (
	"github.com/indigo-web/workhttp/http"
	"github.com/indigo-web/workhttp/http/method"
)

// Handler produces a response for the request. Handlers are called from pool workers,
// so they may run concurrently with each other
type Handler func(*http.Request) http.Response

// Router resolves a handler by the request method and path. A miss isn't an error,
// the caller answers it with 404
type Router interface {
	Lookup(m method.Method, path string) (Handler, bool)
}
