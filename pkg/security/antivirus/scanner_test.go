package antivirus

import (
	"bufio"
	"context"
	"encoding/binary"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScanner struct {
	name      string
	available bool
	infected  bool
	calls     int
}

func (s *stubScanner) Scan(ctx context.Context, filename string, data []byte) ScanResult {
	s.calls++
	return ScanResult{Infected: s.infected, ScannerName: s.name}
}
func (s *stubScanner) Name() string                       { return s.name }
func (s *stubScanner) Available(ctx context.Context) bool { return s.available }

func TestChainScanner(t *testing.T) {
	ctx := context.Background()

	down := &stubScanner{name: "down"}
	clean := &stubScanner{name: "clean", available: true}
	dirty := &stubScanner{name: "dirty", available: true, infected: true}

	result := NewChainScanner(down, clean).Scan(ctx, "cv.pdf", []byte("x"))
	assert.False(t, result.Infected)
	assert.Zero(t, down.calls)
	assert.Equal(t, 1, clean.calls)

	result = NewChainScanner(clean, dirty).Scan(ctx, "cv.pdf", []byte("x"))
	assert.True(t, result.Infected)
	assert.Equal(t, "dirty", result.ScannerName)

	result = NewChainScanner(down).Scan(ctx, "cv.pdf", []byte("x"))
	assert.True(t, result.Infected)
	assert.ErrorIs(t, result.Error, ErrNoScanner)
}

func TestNoOpScanner(t *testing.T) {
	s := NewNoOpScanner()
	assert.True(t, s.Available(context.Background()))
	assert.False(t, s.Scan(context.Background(), "cv.pdf", nil).Infected)
}

// fakeClamd answers PING and INSTREAM; payloads containing "EICAR" are infected.
func fakeClamd(t *testing.T) string {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go serveClamd(conn)
		}
	}()
	return ln.Addr().String()
}

func serveClamd(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	cmd, err := r.ReadString(0)
	if err != nil {
		return
	}
	switch strings.TrimRight(cmd, "\x00") {
	case "zPING":
		_, _ = conn.Write([]byte("PONG\x00"))
	case "zINSTREAM":
		var payload []byte
		size := make([]byte, 4)
		for {
			if _, err := io.ReadFull(r, size); err != nil {
				return
			}
			n := binary.BigEndian.Uint32(size)
			if n == 0 {
				break
			}
			chunk := make([]byte, n)
			if _, err := io.ReadFull(r, chunk); err != nil {
				return
			}
			payload = append(payload, chunk...)
		}
		if strings.Contains(string(payload), "EICAR") {
			_, _ = conn.Write([]byte("stream: Eicar-Test-Signature FOUND\x00"))
			return
		}
		_, _ = conn.Write([]byte("stream: OK\x00"))
	}
}

func TestClamAVScanner(t *testing.T) {
	addr := fakeClamd(t)
	scanner := NewClamAVScanner(addr, 2*time.Second)
	ctx := context.Background()

	assert.True(t, scanner.Available(ctx))

	// Larger than one chunk to exercise chunking.
	clean := make([]byte, instreamChunk+10)
	result := scanner.Scan(ctx, "cv.pdf", clean)
	require.NoError(t, result.Error)
	assert.False(t, result.Infected)

	result = scanner.Scan(ctx, "cv.pdf", []byte("X5O!P%@AP EICAR payload"))
	require.NoError(t, result.Error)
	assert.True(t, result.Infected)
	assert.Equal(t, "Eicar-Test-Signature", result.ThreatName)
}

func TestClamAVScannerFailsClosed(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	scanner := NewClamAVScanner(addr, time.Second)
	assert.False(t, scanner.Available(context.Background()))

	result := scanner.Scan(context.Background(), "cv.pdf", []byte("%PDF"))
	assert.True(t, result.Infected)
	assert.Error(t, result.Error)
}
