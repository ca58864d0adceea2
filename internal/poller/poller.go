// internal/poller/poller.go
package poller

import (
	"time"

	"github.com/pkg/errors"

	"github.com/tamzrod/aquamon/internal/report"
)

// Device is the exact contract the poller uses. The controller facade
// satisfies it; tests use fakes.
type Device interface {
	Name() string
	Update() error
}

// snapshotter is implemented by devices that keep their last decoded
// report. Devices without one still poll; their results carry no data.
type snapshotter interface {
	Snapshot() *report.Report
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Interval time.Duration
}

// Poller is a dumb, clock-driven reader. It serializes Update calls on
// one device; the device itself carries no locking.
type Poller struct {
	cfg Config
	dev Device
}

// New creates a poller with immutable config.
func New(cfg Config, dev Device) (*Poller, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if dev == nil {
		return nil, errors.New("poller: device required")
	}
	return &Poller{cfg: cfg, dev: dev}, nil
}

// PollOnce performs exactly one poll cycle. All-or-nothing: a failed
// update yields a result with Err set and no report.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{
		Device: p.dev.Name(),
		At:     time.Now(),
	}

	if err := p.dev.Update(); err != nil {
		res.Err = err
		return res
	}

	if s, ok := p.dev.(snapshotter); ok {
		res.Report = s.Snapshot()
	}

	return res
}
