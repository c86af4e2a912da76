package status

type (
	Code   uint16
	Status string
)

// The closed set of codes a response can carry. Reason phrases are upper-case, as
// they always have been on this server's wire.
const (
	OK         Code = 200 // RFC 9110, 15.3.1
	BadRequest Code = 400 // RFC 9110, 15.5.1
	NotFound   Code = 404 // RFC 9110, 15.5.5
)

// KnownCodes lists every code the server is able to produce
var KnownCodes = []Code{OK, BadRequest, NotFound}

// Text returns a reason phrase for the HTTP status code. It returns the empty
// string if the code is unknown.
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case BadRequest:
		return "BAD REQUEST"
	case NotFound:
		return "NOT FOUND"
	default:
		return ""
	}
}

// Line returns the code followed by its reason phrase, e.g. "200 OK". This is exactly
// what follows the protocol token in a status line.
func Line(code Code) string {
	switch code {
	case OK:
		return "200 OK"
	case BadRequest:
		return "400 BAD REQUEST"
	case NotFound:
		return "404 NOT FOUND"
	default:
		return ""
	}
}

// IsKnown reports whether the code belongs to KnownCodes
func IsKnown(code Code) bool {
	return Text(code) != ""
}
