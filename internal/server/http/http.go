package http

import (
	"bufio"
	"context"
	"net"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/workhttp/config"
	"github.com/indigo-web/workhttp/http"
	"github.com/indigo-web/workhttp/internal/protocol/http1"
	"github.com/indigo-web/workhttp/internal/telemetry"
	"github.com/indigo-web/workhttp/router"
	"github.com/sirupsen/logrus"
)

// connIDLength is the length of the random id every connection is tagged with in logs
const connIDLength = 8

// Server handles a single connection from the beginning to the end: it parses exactly one
// request, routes it and writes the response back, after what the connection is closed.
// HandleConn is meant to be the body of a pool job.
type Server struct {
	router router.Router
	cfg    *config.Config
	log    logrus.FieldLogger
	inst   telemetry.RequestInstruments
}

func NewServer(r router.Router, cfg *config.Config, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}

	log = log.WithField("component", "dispatcher")

	inst, err := telemetry.NewRequestInstruments(telemetry.Meter())
	if err != nil {
		log.WithError(err).Warn("cannot create request instruments, recording nothing")
		inst, _ = telemetry.NewRequestInstruments(telemetry.Noop())
	}

	return &Server{
		router: r,
		cfg:    cfg,
		log:    log,
		inst:   inst,
	}
}

func (s *Server) HandleConn(conn net.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	log := s.log.WithField("conn", uniuri.NewLen(connIDLength))
	if addr := conn.RemoteAddr(); addr != nil {
		log = log.WithField("remote", addr.String())
	}

	request, err := http1.Parse(bufio.NewReaderSize(conn, s.cfg.NET.ReadBufferSize))
	if err != nil {
		log.WithError(err).Warn("cannot parse request")
		s.write(log, conn, http.BadRequest(s.cfg.Responses.BadRequest))
		return
	}

	log = log.WithFields(logrus.Fields{
		"method": request.Method.String(),
		"path":   request.Path,
	})

	handler, found := s.router.Lookup(request.Method, request.Path)
	if !found {
		s.write(log, conn, http.NotFound(s.cfg.Responses.NotFound))
		return
	}

	response, ok := s.invoke(log, handler, request)
	if !ok {
		return
	}

	s.write(log, conn, response)
}

// invoke calls the handler, recovering a panic. In that case nothing can be sent to the
// client, so ok is false and the connection is just closed
func (s *Server) invoke(
	log logrus.FieldLogger, handler router.Handler, request *http.Request,
) (response http.Response, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("handler panicked")
			ok = false
		}
	}()

	return handler(request), true
}

func (s *Server) write(log logrus.FieldLogger, conn net.Conn, response http.Response) {
	log = log.WithField("status", int(response.Code))

	if err := http1.WriteResponse(conn, response); err != nil {
		log.WithError(err).Error("cannot write response")
		return
	}

	s.inst.Requests.Add(context.Background(), 1, telemetry.StatusAttr(int(response.Code)))
	log.Debug("request served")
}
