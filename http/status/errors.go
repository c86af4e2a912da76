package status

type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

// Request parsing failures. Every one of them is answered with 400 Bad Request.
var (
	ErrMalformedStartLine   = NewError(BadRequest, "malformed start line")
	ErrInvalidVerb          = NewError(BadRequest, "invalid request method")
	ErrInvalidProtocol      = NewError(BadRequest, "invalid protocol")
	ErrInvalidContentLength = NewError(BadRequest, "invalid Content-Length")
	ErrTruncatedBody        = NewError(BadRequest, "request body is shorter than Content-Length")
	ErrInvalidBodyEncoding  = NewError(BadRequest, "request body is not valid UTF-8")

	ErrNotFound = NewError(NotFound, "not found")
)
