package tcp

import (
	"errors"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/indigo-web/workhttp/config"
	"github.com/sirupsen/logrus"
)

// OnConn takes the ownership over an accepted connection. If it fails, the connection
// is closed right away
type OnConn func(net.Conn) error

type deadliner interface {
	SetDeadline(t time.Time) error
}

// Server is the accept loop. It never reads from or writes into connections, it only
// hands them over.
type Server struct {
	sock   net.Listener
	onConn OnConn
	cfg    config.NET
	log    logrus.FieldLogger
	stop   atomic.Bool
}

func NewServer(sock net.Listener, cfg config.NET, onConn OnConn, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Server{
		sock:   sock,
		onConn: onConn,
		cfg:    cfg,
		log:    log.WithField("component", "tcp"),
	}
}

// Start runs the accept loop until Stop is called, in which case nil is returned, or
// until the listener fails.
func (s *Server) Start() error {
	s.log.WithField("addr", s.sock.Addr().String()).Info("accepting connections")

	for !s.stop.Load() {
		if l, ok := s.sock.(deadliner); ok && s.cfg.AcceptLoopInterruptPeriod > 0 {
			if err := l.SetDeadline(time.Now().Add(s.cfg.AcceptLoopInterruptPeriod)); err != nil {
				if s.stop.Load() {
					break
				}

				return err
			}
		}

		conn, err := s.sock.Accept()
		if err != nil {
			switch {
			case errors.Is(err, os.ErrDeadlineExceeded):
				continue
			case s.stop.Load():
				return nil
			}

			s.log.WithError(err).Error("cannot accept a connection")
			return err
		}

		if err = s.onConn(conn); err != nil {
			s.log.WithError(err).WithField("remote", conn.RemoteAddr().String()).
				Warn("connection is rejected")
			_ = conn.Close()
		}
	}

	return nil
}

// Stop makes the accept loop exit and closes the listener. Connections that were already
// handed over aren't affected.
func (s *Server) Stop() error {
	if s.stop.Swap(true) {
		return nil
	}

	return s.sock.Close()
}
