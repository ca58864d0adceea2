// internal/status/status.go
package status

import (
	"github.com/pkg/errors"

	"github.com/tamzrod/aquamon/internal/report"
)

// Health codes published for each device.
const (
	HealthUnknown uint16 = 0
	HealthOK      uint16 = 1
	HealthError   uint16 = 2
)

// Wire error codes. Consumers branch on class; the log carries the
// detail.
const (
	CodeNone      uint16 = 0
	CodeGeneric   uint16 = 1
	CodeTruncated uint16 = 2
)

// Snapshot is exactly what the mirror is allowed to deliver for one
// device. No logic, no memory of the past beyond current state.
type Snapshot struct {
	Health         uint16
	LastErrorCode  uint16
	SecondsInError uint16
}

// CodeFor maps an update error to its wire error code.
func CodeFor(err error) uint16 {
	if err == nil {
		return CodeNone
	}
	if errors.Is(err, report.ErrTruncated) {
		return CodeTruncated
	}
	return CodeGeneric
}
