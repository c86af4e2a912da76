package method

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func BenchmarkMethod(b *testing.B) {
	var parsed Method

	for _, m := range List {
		b.Run(m.String(), func(b *testing.B) {
			str := m.String()
			b.SetBytes(int64(len(str)))
			b.ResetTimer()

			for j := 0; j < b.N; j++ {
				parsed = Parse(str)
			}
		})
	}

	keepalive(parsed)
}

func keepalive(Method) {}

func TestMethod(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, method := range List {
			require.Equal(t, method, Parse(method.String()))
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		for _, token := range []string{
			"", "get", "Get", "HEAD", "DELETE", "PATCH", "OPTIONS", "BAD", "POSTS", "GE",
		} {
			require.Equal(t, Unknown, Parse(token), token)
		}
	})

	t.Run("count", func(t *testing.T) {
		require.Equal(t, int(Count), len(List))
	})
}
