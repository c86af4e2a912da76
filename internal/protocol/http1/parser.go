package http1

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/indigo-web/utils/uf"
	"github.com/indigo-web/workhttp/http"
	"github.com/indigo-web/workhttp/http/headers"
	"github.com/indigo-web/workhttp/http/method"
	"github.com/indigo-web/workhttp/http/proto"
	"github.com/indigo-web/workhttp/http/status"
)

var (
	space           = []byte(" ")
	headerSeparator = []byte(": ")
)

// Parse reads exactly one request from the reader. The start line and headers are
// consumed line by line, the body (if any) by an exact byte count, so the reader is
// left positioned right after the message.
//
// Every malformed-input failure is a status.HTTPError with the BadRequest code. I/O
// errors other than an early end of stream are returned as is.
func Parse(r *bufio.Reader) (*http.Request, error) {
	request := http.NewRequest()

	if err := parseStartLine(r, request); err != nil {
		return nil, err
	}

	if err := parseHeaders(r, request.Headers); err != nil {
		return nil, err
	}

	if err := parseBody(r, request); err != nil {
		return nil, err
	}

	return request, nil
}

func parseStartLine(r *bufio.Reader, request *http.Request) error {
	line, err := readLine(r)
	switch {
	case err == io.EOF:
		return fmt.Errorf("%w: no data", status.ErrMalformedStartLine)
	case err != nil:
		return err
	}

	tokens := bytes.Split(line, space)
	if len(tokens) != 3 || len(tokens[1]) == 0 {
		return fmt.Errorf("%w: %q", status.ErrMalformedStartLine, line)
	}

	request.Method = method.Parse(uf.B2S(tokens[0]))
	if request.Method == method.Unknown {
		return fmt.Errorf("%w: %q", status.ErrInvalidVerb, tokens[0])
	}

	request.Proto = proto.FromBytes(tokens[2])
	if request.Proto == proto.Unknown {
		return fmt.Errorf("%w: %q", status.ErrInvalidProtocol, tokens[2])
	}

	request.Path = string(tokens[1])

	return nil
}

func parseHeaders(r *bufio.Reader, hdrs headers.Headers) error {
	for {
		line, err := readLine(r)
		switch {
		case err == io.EOF:
			// the stream ended without a blank line. What we've got so far is the whole
			// header block
			return nil
		case err != nil:
			return err
		}

		if len(line) == 0 {
			return nil
		}

		key, value, found := bytes.Cut(line, headerSeparator)
		if !found {
			continue
		}

		hdrs.Set(string(key), string(value))
	}
}

func parseBody(r *bufio.Reader, request *http.Request) error {
	value, found := request.Headers.Get(headers.ContentLength)
	if !found {
		return nil
	}

	length, err := strconv.ParseInt(value, 10, 64)
	if err != nil || length < 0 {
		return fmt.Errorf("%w: %q", status.ErrInvalidContentLength, value)
	}

	// the buffer grows as the data arrives, so a huge declared length costs nothing
	// until the bytes are actually there
	var body bytes.Buffer
	n, err := io.CopyN(&body, r, length)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: got %d out of %d bytes", status.ErrTruncatedBody, n, length)
		}

		return err
	}

	if !utf8.Valid(body.Bytes()) {
		return status.ErrInvalidBodyEncoding
	}

	request.Body = body.String()
	request.HasBody = true

	return nil
}

// readLine returns a line without its LF and an optional preceding CR. The last line
// of a stream isn't required to be terminated. io.EOF is returned only if there were no
// bytes left at all
func readLine(r *bufio.Reader) ([]byte, error) {
	line, err := r.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			return trimCR(line), nil
		}

		return nil, err
	}

	return trimCR(line[:len(line)-1]), nil
}

func trimCR(line []byte) []byte {
	if len(line) > 0 && line[len(line)-1] == '\r' {
		return line[:len(line)-1]
	}

	return line
}
