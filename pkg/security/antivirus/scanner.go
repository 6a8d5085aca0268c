package antivirus

import (
	"context"
	"errors"
)

// ErrNoScanner is reported when no scanner in a chain is reachable.
var ErrNoScanner = errors.New("no antivirus scanner available")

// ScanResult contains the result of a malware scan
type ScanResult struct {
	Infected    bool
	ThreatName  string
	ScannerName string
	Error       error
}

// Scanner checks file content for malware. Implementations fail closed: a
// scan that could not complete reports Infected with a non-nil Error.
type Scanner interface {
	Scan(ctx context.Context, filename string, data []byte) ScanResult
	Name() string
	Available(ctx context.Context) bool
}

// NoOpScanner reports every file as clean. Used when no clamd address is configured.
type NoOpScanner struct{}

var _ Scanner = (*NoOpScanner)(nil)

func NewNoOpScanner() *NoOpScanner {
	return &NoOpScanner{}
}

func (n *NoOpScanner) Scan(ctx context.Context, filename string, data []byte) ScanResult {
	return ScanResult{ScannerName: n.Name()}
}

func (n *NoOpScanner) Name() string {
	return "noop"
}

func (n *NoOpScanner) Available(ctx context.Context) bool {
	return true
}

// ChainScanner runs every available scanner and stops at the first detection.
type ChainScanner struct {
	scanners []Scanner
}

var _ Scanner = (*ChainScanner)(nil)

func NewChainScanner(scanners ...Scanner) *ChainScanner {
	return &ChainScanner{scanners: scanners}
}

func (c *ChainScanner) Scan(ctx context.Context, filename string, data []byte) ScanResult {
	ran := false
	for _, s := range c.scanners {
		if !s.Available(ctx) {
			continue
		}
		ran = true
		if result := s.Scan(ctx, filename, data); result.Infected {
			return result
		}
	}
	if !ran {
		return ScanResult{Infected: true, ScannerName: c.Name(), Error: ErrNoScanner}
	}
	return ScanResult{ScannerName: c.Name()}
}

func (c *ChainScanner) Name() string {
	return "chain"
}

func (c *ChainScanner) Available(ctx context.Context) bool {
	for _, s := range c.scanners {
		if s.Available(ctx) {
			return true
		}
	}
	return false
}
