package logging

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

const (
	dialTimeout   = 2 * time.Second
	writeTimeout  = time.Second
	retryCooldown = 5 * time.Second
)

// Mirror copies log lines to a TCP log collector without ever blocking the
// request path: while the collector is unreachable, writes are dropped and
// reconnects are rate limited.
type Mirror struct {
	addr string

	mu        sync.Mutex
	conn      net.Conn
	nextRetry time.Time
	closed    bool
}

func NewMirror(addr string) (*Mirror, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logging: empty mirror address")
	}
	return &Mirror{addr: addr}, nil
}

// Write implements io.Writer. Failures are swallowed; the local log stream
// is the source of truth and the mirror is best effort.
func (m *Mirror) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	line := make([]byte, len(p))
	copy(line, p)
	if line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, io.ErrClosedPipe
	}
	if m.conn == nil {
		if !m.nextRetry.IsZero() && time.Now().Before(m.nextRetry) {
			return len(p), nil
		}
		conn, err := net.DialTimeout("tcp", m.addr, dialTimeout)
		if err != nil {
			m.nextRetry = time.Now().Add(retryCooldown)
			return len(p), nil
		}
		m.conn = conn
		m.nextRetry = time.Time{}
	}

	_ = m.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if _, err := m.conn.Write(line); err != nil {
		_ = m.conn.Close()
		m.conn = nil
		m.nextRetry = time.Now().Add(retryCooldown)
	}
	return len(p), nil
}

func (m *Mirror) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	if m.conn == nil {
		return nil
	}
	err := m.conn.Close()
	m.conn = nil
	return err
}
