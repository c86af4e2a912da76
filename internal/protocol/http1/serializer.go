package http1

import (
	"io"
	"strconv"

	"github.com/indigo-web/workhttp/http"
	"github.com/indigo-web/workhttp/http/status"
)

const (
	responseProto       = "HTTP/1.1 "
	contentLengthHeader = "\r\nContent-Length: "
	crlfcrlf            = "\r\n\r\n"
)

// Format renders the response into a newly allocated slice
func Format(code status.Code, body string) []byte {
	size := len(responseProto) + len(contentLengthHeader) + len(crlfcrlf) + 24 + len(body)

	return AppendResponse(make([]byte, 0, size), http.Respond(code, body))
}

// AppendResponse appends the wire form of the response to the buffer. The only header
// ever emitted is Content-Length, which is the body length in bytes.
func AppendResponse(buff []byte, response http.Response) []byte {
	buff = append(buff, responseProto...)
	buff = appendStatus(buff, response.Code)
	buff = append(buff, contentLengthHeader...)
	buff = strconv.AppendInt(buff, int64(len(response.Body)), 10)
	buff = append(buff, crlfcrlf...)

	return append(buff, response.Body...)
}

// WriteResponse serializes the response and writes it in a single call
func WriteResponse(w io.Writer, response http.Response) error {
	buff := AppendResponse(make([]byte, 0, 64+len(response.Body)), response)
	_, err := w.Write(buff)

	return err
}

func appendStatus(buff []byte, code status.Code) []byte {
	if line := status.Line(code); len(line) > 0 {
		return append(buff, line...)
	}

	// unknown code. Still a valid status line, just without the reason phrase
	buff = strconv.AppendUint(buff, uint64(code), 10)

	return append(buff, ' ')
}
