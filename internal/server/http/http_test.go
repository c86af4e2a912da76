package http

import (
	"errors"
	"testing"

	"github.com/indigo-web/workhttp/config"
	"github.com/indigo-web/workhttp/http"
	"github.com/indigo-web/workhttp/http/method"
	"github.com/indigo-web/workhttp/internal/requestgen"
	"github.com/indigo-web/workhttp/internal/tcp/dummy"
	"github.com/indigo-web/workhttp/router/inbuilt"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, cfg *config.Config) (*Server, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	r := inbuilt.New().
		Get("/", func(*http.Request) http.Response {
			return http.OK("hello")
		}).
		Post("/echo", func(request *http.Request) http.Response {
			return http.OK(request.Headers.Value("X-Name") + ":" + request.Body)
		}).
		Get("/panic", func(*http.Request) http.Response {
			panic("handler is broken")
		})

	if cfg == nil {
		cfg = config.Default()
	}

	return NewServer(r, cfg, log), hook
}

func serve(server *Server, raw string) *dummy.Conn {
	conn := dummy.NewConn(raw)
	server.HandleConn(conn)

	return conn
}

func TestServer(t *testing.T) {
	t.Run("route found", func(t *testing.T) {
		server, hook := newServer(t, nil)
		conn := serve(server, "GET / HTTP/1.1\r\nHost: x\r\n\r\n")
		require.Equal(t, "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhello", conn.Written())
		require.True(t, conn.Closed())

		entry := hook.LastEntry()
		require.Equal(t, logrus.DebugLevel, entry.Level)
		require.Equal(t, "dispatcher", entry.Data["component"])
		require.Equal(t, "GET", entry.Data["method"])
		require.Equal(t, "/", entry.Data["path"])
		require.Equal(t, 200, entry.Data["status"])
		require.Equal(t, "127.0.0.1:54321", entry.Data["remote"])
		require.Len(t, entry.Data["conn"], connIDLength)
	})

	t.Run("headers and body reach the handler", func(t *testing.T) {
		server, _ := newServer(t, nil)
		conn := serve(server, "POST /echo HTTP/1.1\r\nX-Name: indigo\r\nContent-Length: 5\r\n\r\nhello")
		require.Equal(t, "HTTP/1.1 200 OK\r\nContent-Length: 12\r\n\r\nindigo:hello", conn.Written())
	})

	t.Run("not found", func(t *testing.T) {
		server, _ := newServer(t, nil)
		conn := serve(server, "GET /missing HTTP/1.1\r\n\r\n")
		require.Equal(t, "HTTP/1.1 404 NOT FOUND\r\nContent-Length: 9\r\n\r\nNot Found", conn.Written())
		require.True(t, conn.Closed())
	})

	t.Run("method mismatch", func(t *testing.T) {
		server, _ := newServer(t, nil)
		conn := serve(server, "PUT / HTTP/1.1\r\n\r\n")
		require.Contains(t, conn.Written(), "HTTP/1.1 404 NOT FOUND\r\n")
	})

	t.Run("custom bodies", func(t *testing.T) {
		cfg := config.Default()
		cfg.Responses.NotFound = "<h1>nope</h1>"
		cfg.Responses.BadRequest = "malformed"
		server, _ := newServer(t, cfg)

		conn := serve(server, "GET /missing HTTP/1.1\r\n\r\n")
		require.Equal(t, "HTTP/1.1 404 NOT FOUND\r\nContent-Length: 13\r\n\r\n<h1>nope</h1>", conn.Written())

		conn = serve(server, "GET / HTTP/2\r\n\r\n")
		require.Equal(t, "HTTP/1.1 400 BAD REQUEST\r\nContent-Length: 9\r\n\r\nmalformed", conn.Written())
	})

	t.Run("small read buffer", func(t *testing.T) {
		cfg := config.Default()
		cfg.NET.ReadBufferSize = 16
		server, _ := newServer(t, cfg)
		conn := serve(server, "GET / HTTP/1.1\r\nUser-Agent: some rather long user agent string\r\n\r\n")
		require.Contains(t, conn.Written(), "HTTP/1.1 200 OK\r\n")
	})
}

func TestServerBadRequest(t *testing.T) {
	const wantResponse = "HTTP/1.1 400 BAD REQUEST\r\nContent-Length: 11\r\n\r\nBad Request"

	for _, tc := range []struct {
		Name string
		Raw  string
	}{
		{"invalid verb", "BAD / HTTP/1.1\r\n\r\n"},
		{"invalid protocol", "GET / HTTP/1.0\r\n\r\n"},
		{"malformed start line", "GET /\r\n\r\n"},
		{"empty stream", ""},
		{"invalid content length", "POST /echo HTTP/1.1\r\nContent-Length: five\r\n\r\n"},
		{"truncated body", "POST /echo HTTP/1.1\r\nContent-Length: 5\r\n\r\nabc"},
		{"invalid body encoding", "POST /echo HTTP/1.1\r\nContent-Length: 2\r\n\r\n\xff\xfe"},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			server, hook := newServer(t, nil)
			conn := serve(server, tc.Raw)
			require.Equal(t, wantResponse, conn.Written())
			require.True(t, conn.Closed())

			var warned bool
			for _, entry := range hook.AllEntries() {
				if entry.Level == logrus.WarnLevel && entry.Message == "cannot parse request" {
					warned = true
					require.Error(t, entry.Data[logrus.ErrorKey].(error))
				}
			}
			require.True(t, warned)
		})
	}
}

func TestServerFailures(t *testing.T) {
	t.Run("handler panic", func(t *testing.T) {
		server, hook := newServer(t, nil)
		var conn *dummy.Conn

		require.NotPanics(t, func() {
			conn = serve(server, "GET /panic HTTP/1.1\r\n\r\n")
		})
		require.Empty(t, conn.Written())
		require.True(t, conn.Closed())

		entry := hook.LastEntry()
		require.Equal(t, logrus.ErrorLevel, entry.Level)
		require.Equal(t, "handler is broken", entry.Data["panic"])
		require.Equal(t, "/panic", entry.Data["path"])
	})

	t.Run("write error", func(t *testing.T) {
		server, hook := newServer(t, nil)
		writeErr := errors.New("connection reset by peer")
		conn := dummy.NewConn("GET / HTTP/1.1\r\n\r\n").FailWrites(writeErr)
		server.HandleConn(conn)
		require.True(t, conn.Closed())

		entry := hook.LastEntry()
		require.Equal(t, logrus.ErrorLevel, entry.Level)
		require.Equal(t, "cannot write response", entry.Message)
		require.ErrorIs(t, entry.Data[logrus.ErrorKey].(error), writeErr)
	})

	t.Run("nop connection", func(t *testing.T) {
		server, _ := newServer(t, nil)
		require.NotPanics(t, func() {
			server.HandleConn(dummy.NewNopConn())
		})
	})
}

func BenchmarkServer(b *testing.B) {
	r := inbuilt.New().Route(method.GET, "/", func(*http.Request) http.Response {
		return http.OK("hello")
	})
	log, _ := test.NewNullLogger()
	server := NewServer(r, config.Default(), log)
	raw := requestgen.Generate(method.GET, "/", requestgen.Headers(10), "")

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		server.HandleConn(dummy.NewConn(raw))
	}
}
