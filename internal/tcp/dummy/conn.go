package dummy

import (
	"bytes"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// NopConn is used to bypass a connection object, that does absolutely nothing. It exists just
// in order to be passed where written data isn't the point
type NopConn struct{}

func NewNopConn() *NopConn {
	return new(NopConn)
}

func (NopConn) Read([]byte) (n int, err error) {
	return
}

func (NopConn) Write(b []byte) (n int, err error) {
	return len(b), nil
}

func (NopConn) Close() error {
	return nil
}

func (NopConn) LocalAddr() net.Addr {
	return nil
}

func (NopConn) RemoteAddr() net.Addr {
	return nil
}

func (NopConn) SetDeadline(time.Time) error {
	return nil
}

func (NopConn) SetReadDeadline(time.Time) error {
	return nil
}

func (NopConn) SetWriteDeadline(time.Time) error {
	return nil
}

// Conn plays the passed data as its input, returning io.EOF as soon as it is exhausted,
// and records everything written into it.
type Conn struct {
	NopConn
	in       *bytes.Reader
	mu       sync.Mutex
	out      bytes.Buffer
	writeErr error
	closed   atomic.Bool
}

func NewConn(data string) *Conn {
	return &Conn{
		in: bytes.NewReader([]byte(data)),
	}
}

// FailWrites makes every following Write return the error
func (c *Conn) FailWrites(err error) *Conn {
	c.writeErr = err
	return c
}

func (c *Conn) Read(b []byte) (n int, err error) {
	return c.in.Read(b)
}

func (c *Conn) Write(b []byte) (n int, err error) {
	if c.writeErr != nil {
		return 0, c.writeErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.out.Write(b)
}

func (c *Conn) Close() error {
	c.closed.Store(true)
	return nil
}

func (c *Conn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 54321}
}

// Written returns everything written so far
func (c *Conn) Written() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.out.String()
}

func (c *Conn) Closed() bool {
	return c.closed.Load()
}
