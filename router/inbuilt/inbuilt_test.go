package inbuilt

import (
	"testing"

	"github.com/indigo-web/workhttp/http"
	"github.com/indigo-web/workhttp/http/method"
	"github.com/indigo-web/workhttp/http/status"
	"github.com/stretchr/testify/require"
)

func respondWith(body string) func(*http.Request) http.Response {
	return func(*http.Request) http.Response {
		return http.OK(body)
	}
}

func getRequest(m method.Method, path string) *http.Request {
	request := http.NewRequest()
	request.Method = m
	request.Path = path

	return request
}

func TestRoute(t *testing.T) {
	r := New().
		Get("/", respondWith("get root")).
		Post("/", respondWith("post root")).
		Put("/hello", respondWith("put hello"))

	require.Equal(t, 3, r.Len())

	for _, tc := range []struct {
		Method method.Method
		Path   string
		Body   string
	}{
		{method.GET, "/", "get root"},
		{method.POST, "/", "post root"},
		{method.PUT, "/hello", "put hello"},
	} {
		t.Run(tc.Method.String()+" "+tc.Path, func(t *testing.T) {
			handler, found := r.Lookup(tc.Method, tc.Path)
			require.True(t, found)

			resp := handler(getRequest(tc.Method, tc.Path))
			require.Equal(t, status.OK, resp.Code)
			require.Equal(t, tc.Body, resp.Body)
		})
	}

	t.Run("misses", func(t *testing.T) {
		for _, tc := range []struct {
			Method method.Method
			Path   string
		}{
			{method.PUT, "/"},
			{method.GET, "/hello"},
			{method.GET, "/missing"},
			{method.GET, ""},
			{method.GET, "/hello/"},
			{method.GET, "//"},
			{method.Unknown, "/"},
			{method.Method(200), "/"},
		} {
			handler, found := r.Lookup(tc.Method, tc.Path)
			require.False(t, found, tc.Method.String()+" "+tc.Path)
			require.Nil(t, handler)
		}
	})

	t.Run("query is part of the path", func(t *testing.T) {
		_, found := r.Lookup(method.GET, "/?a=b")
		require.False(t, found)
	})

	t.Run("replace", func(t *testing.T) {
		r := New().
			Get("/", respondWith("first")).
			Get("/", respondWith("second"))

		handler, found := r.Lookup(method.GET, "/")
		require.True(t, found)
		require.Equal(t, "second", handler(getRequest(method.GET, "/")).Body)
		require.Equal(t, 1, r.Len())
	})

	t.Run("unknown method", func(t *testing.T) {
		require.Panics(t, func() {
			New().Route(method.Unknown, "/", respondWith(""))
		})
	})

	t.Run("nil handler", func(t *testing.T) {
		require.Panics(t, func() {
			New().Get("/", nil)
		})
	})
}
