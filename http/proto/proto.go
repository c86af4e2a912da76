package proto

import "github.com/indigo-web/utils/uf"

type Proto uint8

const (
	Unknown Proto = iota
	HTTP11
)

const http11Token = "HTTP/1.1"

// String returns the protocol token as it appears on the wire
func (p Proto) String() string {
	if p == HTTP11 {
		return http11Token
	}

	return ""
}

// Parse recognizes only the exact HTTP/1.1 token. Every other version, including
// HTTP/1.0 and HTTP/2, is Unknown
func Parse(str string) Proto {
	if str == http11Token {
		return HTTP11
	}

	return Unknown
}

func FromBytes(raw []byte) Proto {
	return Parse(uf.B2S(raw))
}
