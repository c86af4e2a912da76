package requestgen

import (
	"github.com/dchest/uniuri"
	"github.com/indigo-web/workhttp/http"
	"github.com/indigo-web/workhttp/http/headers"
	"github.com/indigo-web/workhttp/http/method"
	"github.com/indigo-web/workhttp/http/proto"
)

// Headers returns n headers: n-1 random pairs, where both key and value are the same
// random string, plus Host
func Headers(n int) headers.Headers {
	hdrs := headers.NewPrealloc(n)

	for i := 0; i < n-1; i++ {
		token := uniuri.NewLen(16)
		hdrs.Set(token, token)
	}

	return hdrs.Set("Host", "localhost")
}

// Generate renders a well-formed request. Content-Length is added only if the body
// isn't empty
func Generate(m method.Method, path string, hdrs headers.Headers, body string) string {
	request := http.NewRequest()
	request.Method = m
	request.Path = path
	request.Proto = proto.HTTP11

	for key, value := range hdrs {
		request.Headers.Set(key, value)
	}

	if len(body) > 0 {
		request.WithBody(body)
	}

	return request.String()
}
