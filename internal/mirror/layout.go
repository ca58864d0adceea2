// internal/mirror/layout.go
package mirror

import (
	"math"

	"github.com/tamzrod/aquamon/internal/report"
	"github.com/tamzrod/aquamon/internal/status"
)

// Register block layout, one block per device. These values define the
// wire protocol and MUST NOT be configurable.
const (
	// ---- DATA ----

	// SlotTempBase..+3 hold temperatures in centi-°C, two's
	// complement. An unavailable channel carries the device's own
	// 0x7FFF sentinel so consumers see the same convention as the HID
	// report.
	SlotTempBase = 0

	// SlotFanBase..+3 hold fan speeds in rpm.
	SlotFanBase = 4

	// SlotVCC holds the supply voltage in centi-volts.
	SlotVCC = 8

	// SlotFlow holds the flow rate in deci-liters/hour.
	SlotFlow = 9

	DataSlots = 10

	// ---- HEALTH ----

	SlotHealthCode     = 10
	SlotLastErrorCode  = 11
	SlotSecondsInError = 12

	// ---- DEVICE NAME ----

	// Device name always sits at the end of the block, two ASCII
	// characters per register, big-endian.
	SlotNameStart = 13
	NameSlots     = 8

	// NameMaxChars is the maximum number of ASCII characters stored.
	NameMaxChars = 16

	// SlotsPerDevice is the fixed block size per device.
	SlotsPerDevice = SlotNameStart + NameSlots
)

// dataRegs encodes one decoded report into the DATA slots.
func dataRegs(r *report.Report) []uint16 {
	regs := make([]uint16, DataSlots)

	for i, t := range r.Temps {
		if t.Available {
			regs[SlotTempBase+i] = uint16(rawScaled(t.Celsius, 100))
		} else {
			regs[SlotTempBase+i] = uint16(report.NoSensor)
		}
	}

	for i, f := range r.Fans {
		regs[SlotFanBase+i] = uint16(f.Speed)
	}

	regs[SlotVCC] = uint16(rawScaled(r.VCC, 100))
	regs[SlotFlow] = uint16(rawScaled(r.Flow, 10))

	return regs
}

// healthRegs encodes one status snapshot into the HEALTH slots.
func healthRegs(s status.Snapshot) []uint16 {
	return []uint16{s.Health, s.LastErrorCode, s.SecondsInError}
}

// nameRegs packs up to 16 ASCII characters into 8 registers. Bytes
// outside printable ASCII are replaced with '?'.
func nameRegs(name string) []uint16 {
	out := make([]uint16, NameSlots)

	b := []byte(name)
	if len(b) > NameMaxChars {
		b = b[:NameMaxChars]
	}

	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < NameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}

func rawScaled(v float64, factor float64) int16 {
	return int16(math.Round(v * factor))
}
