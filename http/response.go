package http

import (
	"github.com/indigo-web/workhttp/http/status"
	json "github.com/json-iterator/go"
)

// Response is what a handler returns: a status code and a body. The body is always
// present, even if empty.
type Response struct {
	Code status.Code
	Body string
}

// Respond returns a response with the given code and body
func Respond(code status.Code, body string) Response {
	return Response{
		Code: code,
		Body: body,
	}
}

// OK returns 200 OK with the given body
func OK(body string) Response {
	return Respond(status.OK, body)
}

func BadRequest(body string) Response {
	return Respond(status.BadRequest, body)
}

func NotFound(body string) Response {
	return Respond(status.NotFound, body)
}

// WithCode returns a copy of the response with the code replaced
func (r Response) WithCode(code status.Code) Response {
	r.Code = code
	return r
}

// WithBody returns a copy of the response with the body replaced
func (r Response) WithBody(body string) Response {
	r.Body = body
	return r
}

// JSON receives a model and returns a response with it marshalled as a body
func JSON(code status.Code, model any) (Response, error) {
	data, err := json.ConfigDefault.Marshal(model)
	if err != nil {
		return Response{}, err
	}

	return Respond(code, string(data)), nil
}
