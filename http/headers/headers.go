package headers

import "sort"

// ContentLength is the only header the parser interprets. The lookup is exact, so
// a client sending content-length is treated as having sent no body header at all.
const ContentLength = "Content-Length"

// Headers maps a header name to its value. Names are case-sensitive and a repeated
// name overrides the earlier value.
type Headers map[string]string

func New() Headers {
	return make(Headers)
}

// NewPrealloc returns an empty Headers with room for n entries
func NewPrealloc(n int) Headers {
	return make(Headers, n)
}

// Set adds or overwrites a header
func (h Headers) Set(key, value string) Headers {
	h[key] = value
	return h
}

// Get returns the value and a bool, indicating whether the key exists
func (h Headers) Get(key string) (string, bool) {
	value, found := h[key]
	return value, found
}

// Value returns the value, corresponding to the key. Otherwise, empty string is returned
func (h Headers) Value(key string) string {
	return h.ValueOr(key, "")
}

// ValueOr returns either the value corresponding to the key or custom value, defined
// via the second parameter
func (h Headers) ValueOr(key, or string) string {
	if value, found := h[key]; found {
		return value
	}

	return or
}

func (h Headers) Has(key string) bool {
	_, found := h[key]
	return found
}

func (h Headers) Len() int {
	return len(h)
}

// Keys returns all the present names in lexical order
func (h Headers) Keys() []string {
	keys := make([]string, 0, len(h))
	for key := range h {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
