// internal/transport/hidraw.go
package transport

import (
	"os"

	"github.com/pkg/errors"
)

// Hidraw reads fixed-size telemetry reports from a Linux hidraw
// character device. No HID descriptor parsing happens here: the kernel
// delivers one complete input report per read(2).
type Hidraw struct {
	f    *os.File
	size int
}

// OpenHidraw opens a hidraw node for reading. size is the expected
// report length; short device reads are surfaced, not padded.
func OpenHidraw(path string, size int) (*Hidraw, error) {
	if path == "" {
		return nil, errors.New("transport: hidraw path required")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "transport: open hidraw")
	}

	return &Hidraw{f: f, size: size}, nil
}

// Read blocks until the device emits its next input report and returns
// exactly the bytes the kernel delivered.
func (h *Hidraw) Read() ([]byte, error) {
	buf := make([]byte, h.size)

	n, err := h.f.Read(buf)
	if err != nil {
		return nil, errors.Wrap(err, "transport: read report")
	}

	return buf[:n], nil
}

// Close releases the device node.
func (h *Hidraw) Close() error {
	return h.f.Close()
}
