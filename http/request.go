package http

import (
	"strconv"
	"strings"

	"github.com/indigo-web/workhttp/http/headers"
	"github.com/indigo-web/workhttp/http/method"
	"github.com/indigo-web/workhttp/http/proto"
)

// Request represents HTTP request
type Request struct {
	// Method is an enum representing the request method.
	Method method.Method
	// Path is the raw request target. It is neither decoded nor normalized.
	Path string
	// Proto is the enum of a protocol used for the request.
	Proto proto.Proto
	// Headers holds header pairs exactly as they were received. Lookup is case-sensitive.
	Headers headers.Headers
	// Body is valid only if HasBody is set, that is, if Content-Length was sent and
	// exactly that many bytes were read.
	Body    string
	HasBody bool
}

func NewRequest() *Request {
	return &Request{
		Method:  method.Unknown,
		Proto:   proto.Unknown,
		Headers: headers.New(),
	}
}

// WithBody sets the body together with a matching Content-Length header
func (r *Request) WithBody(body string) *Request {
	r.Body = body
	r.HasBody = true
	r.Headers.Set(headers.ContentLength, strconv.Itoa(len(body)))

	return r
}

// StartLine renders the request line without the trailing CRLF
func (r *Request) StartLine() string {
	return r.Method.String() + " " + r.Path + " " + r.Proto.String()
}

// String serializes the request back into its wire form. Headers are rendered in lexical
// order, so the output is stable across calls.
func (r *Request) String() string {
	var b strings.Builder

	b.WriteString(r.StartLine())
	b.WriteString("\r\n")

	for _, key := range r.Headers.Keys() {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(r.Headers[key])
		b.WriteString("\r\n")
	}

	b.WriteString("\r\n")

	if r.HasBody {
		b.WriteString(r.Body)
	}

	return b.String()
}
