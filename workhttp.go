package workhttp

import (
	"net"
	"sync"

	"github.com/indigo-web/workhttp/config"
	"github.com/indigo-web/workhttp/internal/server/http"
	"github.com/indigo-web/workhttp/internal/server/tcp"
	"github.com/indigo-web/workhttp/pool"
	"github.com/indigo-web/workhttp/router"
	"github.com/indigo-web/workhttp/router/inbuilt"
	"github.com/sirupsen/logrus"
)

// App binds the address, accepts connections on it and feeds every one of them into the
// worker pool, where it's parsed, routed and answered.
type App struct {
	addr  string
	cfg   *config.Config
	log   logrus.FieldLogger
	hooks hooks

	mu      sync.Mutex
	server  *tcp.Server
	sock    net.Listener
	pool    *pool.Pool
	stopped bool
}

// New returns a new App instance. The address is in the host:port form, as accepted by
// net.Listen.
func New(addr string) *App {
	return &App{
		addr: addr,
		cfg:  config.Default(),
		log:  logrus.StandardLogger(),
	}
}

// Tune replaces default config.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

// Logger replaces the logrus standard logger, used by default.
func (a *App) Logger(log logrus.FieldLogger) *App {
	a.log = log
	return a
}

// NotifyOnStart calls the callback at the moment, when the listener is bound and the
// workers are spawned. Connections are accepted right after it returns
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment, when the listener is closed and all
// the workers are down. Every connection accepted before is answered by then
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Serve starts the web-application and blocks until it's stopped. If nil is passed instead
// of a router, empty inbuilt will be used.
func (a *App) Serve(r router.Router) error {
	if r == nil {
		r = inbuilt.New()
	}

	log := a.log.WithField("component", "app")

	sock, err := net.Listen("tcp", a.addr)
	if err != nil {
		return err
	}

	workers, err := pool.New(a.cfg.Pool.Workers, a.log)
	if err != nil {
		_ = sock.Close()
		return err
	}

	dispatcher := http.NewServer(r, a.cfg, a.log)
	server := tcp.NewServer(sock, a.cfg.NET, func(conn net.Conn) error {
		return workers.Submit(func() {
			dispatcher.HandleConn(conn)
		})
	}, a.log)

	a.mu.Lock()
	a.server, a.sock, a.pool = server, sock, workers
	stopped := a.stopped
	a.mu.Unlock()

	log.WithFields(logrus.Fields{
		"addr":    sock.Addr().String(),
		"workers": workers.Size(),
	}).Info("listening")

	if stopped {
		_ = server.Stop()
	} else {
		callIfNotNil(a.hooks.OnStart)
	}

	err = server.Start()
	_ = server.Stop()
	// every connection accepted so far is already in the queue, so they are all
	// answered before the shutdown returns
	workers.Shutdown()
	log.Info("stopped")
	callIfNotNil(a.hooks.OnStop)

	return err
}

// Stop closes the listener. Serve returns as soon as the connections already accepted
// are answered.
//
// NOTE: the call isn't blocking. So by that, after the method returned, the server
// will still be working
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopped = true
	if a.server != nil {
		_ = a.server.Stop()
	}
}

// Addr returns the address the listener is bound to, or nil if Serve wasn't called yet.
// Useful when the port was chosen by the system.
func (a *App) Addr() net.Addr {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sock == nil {
		return nil
	}

	return a.sock.Addr()
}

// Stats returns the worker pool counters. Zero value is returned if Serve wasn't called yet.
func (a *App) Stats() pool.Stats {
	a.mu.Lock()
	workers := a.pool
	a.mu.Unlock()

	if workers == nil {
		return pool.Stats{}
	}

	return workers.Stats()
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
