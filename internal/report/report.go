// internal/report/report.go
package report

import (
	"encoding/binary"
	"math"
)

// Fixed report geometry. The device emits one report of exactly this
// shape per read; field order and widths never vary across polls.
const (
	NumTemps = 4
	NumFans  = 4

	// NoSensor is the raw temperature value the firmware emits for a
	// channel with nothing connected. It is never a real measurement.
	NoSensor int16 = 32767

	deviceInfoLen    = 15 // u8 + u16 + u32 + 4*u16
	deviceInfoExtLen = 17 // u32 + u8 + 3*u32
	reservedALen     = 10 * 2
	reservedBLen     = 16*2 + 16
	fanLen           = 6*2 + 1

	// Length is the full wire size of one report.
	Length = deviceInfoLen + deviceInfoExtLen + reservedALen +
		NumTemps*2 + reservedBLen + 2 + 2 + NumFans*fanLen
)

// DeviceInfo is the leading identity block. Firmware is the only field
// consumed after construction; the rest is parsed every poll and kept
// for diagnostics.
type DeviceInfo struct {
	Validator   uint8 // expected 1; stored, not enforced
	StructureID uint16
	Serial      uint32
	Hardware    uint16
	DeviceType  uint16
	Bootloader  uint16
	Firmware    uint16
}

// DeviceInfoExt carries runtime counters. Parsed but not surfaced as
// sensor channels yet.
type DeviceInfoExt struct {
	SystemState uint32
	Features    uint8
	Time        uint32
	PowerCycles uint32
	Runtime     uint32
}

// Temperature is one scaled temperature channel.
type Temperature struct {
	Available bool
	Celsius   float64 // undefined when !Available
}

// Fan is one fan channel. Speed and Torque stay in raw device units.
type Fan struct {
	Percent float64 // %
	Voltage float64 // V
	Current float64 // A
	Power   float64 // W
	Speed   int16   // rpm
	Torque  int16   // raw units
	State   uint8   // opaque status code
}

// Report is one fully decoded telemetry report.
type Report struct {
	Info    DeviceInfo
	InfoExt DeviceInfoExt
	VCC     float64 // V
	Flow    float64 // L/h
	Temps   [NumTemps]Temperature
	Fans    [NumFans]Fan
}

// Decode parses one raw report. Strictly sequential, stateless, and
// all-or-nothing: a buffer shorter than the full field sequence yields
// ErrTruncated and no report.
func Decode(buf []byte) (*Report, error) {
	c := newCursor(buf)

	var r Report

	r.Info = DeviceInfo{
		Validator:   c.u8(),
		StructureID: c.u16(),
		Serial:      c.u32(),
		Hardware:    c.u16(),
		DeviceType:  c.u16(),
		Bootloader:  c.u16(),
		Firmware:    c.u16(),
	}

	r.InfoExt = DeviceInfoExt{
		SystemState: c.u32(),
		Features:    c.u8(),
		Time:        c.u32(),
		PowerCycles: c.u32(),
		Runtime:     c.u32(),
	}

	// Reserved: metadata for sensor types this device does not carry.
	c.skip(reservedALen)

	for i := range r.Temps {
		raw := c.i16()
		if raw == NoSensor {
			r.Temps[i] = Temperature{Available: false}
		} else {
			r.Temps[i] = Temperature{Available: true, Celsius: float64(raw) / 100.0}
		}
	}

	c.skip(reservedBLen)

	r.VCC = float64(c.i16()) / 100.0
	r.Flow = float64(c.i16()) / 10.0

	for i := range r.Fans {
		r.Fans[i] = Fan{
			Percent: float64(c.i16()) / 100.0,
			Voltage: float64(c.i16()) / 100.0,
			Current: float64(c.i16()) / 1000.0,
			Power:   float64(c.i16()) / 100.0,
			Speed:   c.i16(),
			Torque:  c.i16(),
			State:   c.u8(),
		}
	}

	if c.err != nil {
		return nil, c.err
	}
	return &r, nil
}

// Encode builds the wire image of r with both reserved regions zeroed.
// It is the inverse of Decode for every report Decode accepts; used by
// tests and device simulators.
func Encode(r *Report) []byte {
	buf := make([]byte, Length)
	off := 0

	put8 := func(v uint8) {
		buf[off] = v
		off++
	}
	put16 := func(v uint16) {
		binary.BigEndian.PutUint16(buf[off:], v)
		off += 2
	}
	put32 := func(v uint32) {
		binary.BigEndian.PutUint32(buf[off:], v)
		off += 4
	}

	put8(r.Info.Validator)
	put16(r.Info.StructureID)
	put32(r.Info.Serial)
	put16(r.Info.Hardware)
	put16(r.Info.DeviceType)
	put16(r.Info.Bootloader)
	put16(r.Info.Firmware)

	put32(r.InfoExt.SystemState)
	put8(r.InfoExt.Features)
	put32(r.InfoExt.Time)
	put32(r.InfoExt.PowerCycles)
	put32(r.InfoExt.Runtime)

	off += reservedALen

	for _, t := range r.Temps {
		if t.Available {
			put16(uint16(scaled(t.Celsius, 100)))
		} else {
			put16(uint16(NoSensor))
		}
	}

	off += reservedBLen

	put16(uint16(scaled(r.VCC, 100)))
	put16(uint16(scaled(r.Flow, 10)))

	for _, f := range r.Fans {
		put16(uint16(scaled(f.Percent, 100)))
		put16(uint16(scaled(f.Voltage, 100)))
		put16(uint16(scaled(f.Current, 1000)))
		put16(uint16(scaled(f.Power, 100)))
		put16(uint16(f.Speed))
		put16(uint16(f.Torque))
		put8(f.State)
	}

	return buf
}

// scaled converts a physical value back to its raw i16 representation.
func scaled(v float64, factor float64) int16 {
	return int16(math.Round(v * factor))
}
