package antivirus

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"strings"
	"time"
)

// Max bytes sent per INSTREAM chunk; clamd's StreamMaxLength still applies
// to the whole stream.
const instreamChunk = 64 << 10

// ClamAVScanner streams files to a clamd daemon over TCP or a unix socket.
type ClamAVScanner struct {
	address string
	timeout time.Duration
}

var _ Scanner = (*ClamAVScanner)(nil)

// NewClamAVScanner accepts "host:port" or an absolute socket path.
func NewClamAVScanner(address string, timeout time.Duration) *ClamAVScanner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClamAVScanner{address: address, timeout: timeout}
}

func (c *ClamAVScanner) Name() string {
	return "clamav"
}

func (c *ClamAVScanner) dial(ctx context.Context, timeout time.Duration) (net.Conn, error) {
	network := "tcp"
	if strings.HasPrefix(c.address, "/") {
		network = "unix"
	}
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, network, c.address)
	if err != nil {
		return nil, err
	}
	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)
	return conn, nil
}

// Available sends PING and expects PONG.
func (c *ClamAVScanner) Available(ctx context.Context) bool {
	conn, err := c.dial(ctx, 5*time.Second)
	if err != nil {
		return false
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zPING\x00")); err != nil {
		return false
	}
	reply, err := bufio.NewReader(conn).ReadString(0)
	if err != nil && reply == "" {
		return false
	}
	return strings.HasPrefix(reply, "PONG")
}

// Scan uses the zINSTREAM command. Replies look like "stream: OK",
// "stream: Eicar-Signature FOUND" or "... ERROR".
func (c *ClamAVScanner) Scan(ctx context.Context, filename string, data []byte) ScanResult {
	result := ScanResult{ScannerName: c.Name()}
	fail := func(err error) ScanResult {
		result.Infected = true
		result.Error = err
		return result
	}

	conn, err := c.dial(ctx, c.timeout)
	if err != nil {
		return fail(fmt.Errorf("connect to clamd: %w", err))
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zINSTREAM\x00")); err != nil {
		return fail(fmt.Errorf("send command: %w", err))
	}

	size := make([]byte, 4)
	for start := 0; start < len(data); start += instreamChunk {
		end := start + instreamChunk
		if end > len(data) {
			end = len(data)
		}
		binary.BigEndian.PutUint32(size, uint32(end-start))
		if _, err := conn.Write(size); err != nil {
			return fail(fmt.Errorf("send chunk size: %w", err))
		}
		if _, err := conn.Write(data[start:end]); err != nil {
			return fail(fmt.Errorf("send chunk: %w", err))
		}
	}
	if _, err := conn.Write([]byte{0, 0, 0, 0}); err != nil {
		return fail(fmt.Errorf("send end marker: %w", err))
	}

	reply, err := bufio.NewReader(conn).ReadString(0)
	if err != nil && reply == "" {
		return fail(fmt.Errorf("read reply: %w", err))
	}
	reply = strings.TrimSpace(strings.TrimRight(reply, "\x00"))

	switch {
	case strings.HasSuffix(reply, "FOUND"):
		result.Infected = true
		if _, threat, ok := strings.Cut(reply, ":"); ok {
			result.ThreatName = strings.TrimSuffix(strings.TrimSpace(threat), " FOUND")
		}
	case strings.HasSuffix(reply, "ERROR"):
		return fail(fmt.Errorf("clamd: %s", reply))
	case !strings.HasSuffix(reply, "OK"):
		return fail(fmt.Errorf("clamd: unexpected reply %q", reply))
	}
	return result
}
