// internal/device/device.go
package device

// Device is the capability contract one controller variant implements.
// Other device families implement the same contract independently; no
// shared state between variants.
type Device interface {
	Name() string
	Firmware() uint16
	Update() error
	Close() error
}

// Transport is the raw report source. Read blocks and returns one
// complete report buffer per call. The handle is exclusively owned:
// acquired once, released exactly once.
type Transport interface {
	Read() ([]byte, error)
	Close() error
}

// OpenFunc acquires a transport handle. One attempt per call, no
// retries.
type OpenFunc func() (Transport, error)

// Slot is one named sensor channel owned by the host framework.
// Clear puts the slot into an explicit no-value state, distinct from
// zero.
type Slot interface {
	Set(v float64)
	Clear()
}

// Registry creates sensor slots. The implementation decides how a slot
// is surfaced.
type Registry interface {
	NewSlot(device, channel, unit string) Slot
}
