// internal/mirror/mirror.go
package mirror

import (
	"github.com/pkg/errors"

	"github.com/tamzrod/aquamon/internal/report"
	"github.com/tamzrod/aquamon/internal/status"
)

// RegisterWriter is the exact contract the mirror uses.
// IMPORTANT: there must be NO other version of this interface anywhere.
type RegisterWriter interface {
	WriteRegisters(addr uint16, regs []uint16) error
}

// Mirror republishes decoded telemetry and device health as holding
// registers on one external endpoint. Each device owns a fixed
// SlotsPerDevice block; blocks are assigned in device order starting
// at the configured base address.
type Mirror struct {
	cli  RegisterWriter
	base map[string]uint16

	// per-device delivery state
	needFull map[string]bool
	last     map[string]status.Snapshot
}

// New builds a mirror for the given devices. Device order is the block
// order on the wire.
func New(cli RegisterWriter, base uint16, devices []string) (*Mirror, error) {
	if cli == nil {
		return nil, errors.New("mirror: register writer required")
	}
	if len(devices) == 0 {
		return nil, errors.New("mirror: at least one device required")
	}

	m := &Mirror{
		cli:      cli,
		base:     make(map[string]uint16, len(devices)),
		needFull: make(map[string]bool, len(devices)),
		last:     make(map[string]status.Snapshot, len(devices)),
	}

	for i, name := range devices {
		if _, dup := m.base[name]; dup {
			return nil, errors.Errorf("mirror: duplicate device %q", name)
		}
		m.base[name] = base + uint16(i)*SlotsPerDevice
		m.needFull[name] = true // full re-assert on first delivery
	}

	return m, nil
}

// Publish delivers one device's data and health block. The first
// delivery (and every delivery after a write failure) re-asserts the
// full block including the packed device name; later deliveries write
// the data block and only the health registers that changed.
func (m *Mirror) Publish(device string, rep *report.Report, snap status.Snapshot) error {
	base, ok := m.base[device]
	if !ok {
		return errors.Errorf("mirror: unknown device %q", device)
	}

	if m.needFull[device] {
		regs := make([]uint16, SlotsPerDevice)

		if rep != nil {
			copy(regs[SlotTempBase:], dataRegs(rep))
		} else {
			// Nothing decoded yet: temperatures carry the sentinel,
			// everything else stays zero.
			for i := 0; i < report.NumTemps; i++ {
				regs[SlotTempBase+i] = uint16(report.NoSensor)
			}
		}

		copy(regs[SlotHealthCode:], healthRegs(snap))
		copy(regs[SlotNameStart:], nameRegs(device))

		if err := m.cli.WriteRegisters(base, regs); err != nil {
			m.needFull[device] = true
			return errors.Wrap(err, "mirror: full block write failed")
		}

		m.needFull[device] = false
		m.last[device] = snap
		return nil
	}

	if rep != nil {
		if err := m.cli.WriteRegisters(base+SlotTempBase, dataRegs(rep)); err != nil {
			// Any failure introduces doubt: re-assert on next delivery.
			m.needFull[device] = true
			return errors.Wrap(err, "mirror: data write failed")
		}
	}

	if m.last[device] != snap {
		if err := m.cli.WriteRegisters(base+SlotHealthCode, healthRegs(snap)); err != nil {
			m.needFull[device] = true
			return errors.Wrap(err, "mirror: health write failed")
		}
		m.last[device] = snap
	}

	return nil
}
