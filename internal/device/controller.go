// internal/device/controller.go
package device

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/tamzrod/aquamon/internal/report"
)

// Controller is the facade over one fan/flow controller. It owns the
// transport handle and the device's sensor slots, and bridges decoded
// reports into them.
//
// Not safe for concurrent use: the caller serializes Update and Close.
type Controller struct {
	name     string
	tr       Transport
	firmware uint16

	temps [report.NumTemps]Slot
	fans  [report.NumFans]Slot
	vcc   Slot
	flow  Slot

	last *report.Report
}

// Open builds a controller. When the transport cannot be acquired, or
// the identity read fails, the controller exposes zero sensors and all
// operations are no-ops. Policy, not an error: a missing device must
// not take the host down.
//
// On success one report is decoded to capture the firmware version,
// then all ten slots are registered unconditionally, whatever the
// current sensor availability.
func Open(name string, open OpenFunc, reg Registry) *Controller {
	c := &Controller{name: name}

	tr, err := open()
	if err != nil {
		log.Warnf("device %s: transport open failed, exposing no sensors: %s", name, err)
		return c
	}

	rep, err := readReport(tr)
	if err != nil {
		log.Warnf("device %s: identity read failed, exposing no sensors: %s", name, err)
		_ = tr.Close()
		return c
	}

	c.tr = tr
	c.firmware = rep.Info.Firmware

	for i := range c.temps {
		c.temps[i] = reg.NewSlot(name, fmt.Sprintf("Temperature %d", i), "°C")
	}
	for i := range c.fans {
		c.fans[i] = reg.NewSlot(name, fmt.Sprintf("Fan %d", i), "rpm")
	}
	c.vcc = reg.NewSlot(name, "VCC", "V")
	c.flow = reg.NewSlot(name, "Flow", "L/h")

	return c
}

// Name returns the configured device name.
func (c *Controller) Name() string { return c.name }

// Firmware returns the firmware version captured at construction.
// Zero when the device never opened.
func (c *Controller) Firmware() uint16 { return c.firmware }

// Ready reports whether the transport was acquired.
func (c *Controller) Ready() bool { return c.tr != nil }

// Update performs one blocking read followed by a pure decode, then
// writes the decoded values into the sensor slots. Errors surface
// unchanged to the caller; there is no retry.
func (c *Controller) Update() error {
	if c.tr == nil {
		return nil
	}

	buf, err := c.tr.Read()
	if err != nil {
		return errors.Wrapf(err, "device %s: read report", c.name)
	}

	rep, err := report.Decode(buf)
	if err != nil {
		return errors.Wrapf(err, "device %s", c.name)
	}

	for i, t := range rep.Temps {
		if t.Available {
			c.temps[i].Set(t.Celsius)
		} else {
			c.temps[i].Clear()
		}
	}

	// Only speed is surfaced per fan. Voltage, current, power,
	// percentage, torque and state are decoded and kept on the
	// snapshot for future channels.
	for i, f := range rep.Fans {
		c.fans[i].Set(float64(f.Speed))
	}

	c.vcc.Set(rep.VCC)
	c.flow.Set(rep.Flow)

	c.last = rep
	return nil
}

// Snapshot returns the last successfully decoded report, nil before
// the first successful Update.
func (c *Controller) Snapshot() *report.Report { return c.last }

// Close releases the transport exactly once. Calling Update after
// Close is a no-op.
func (c *Controller) Close() error {
	if c.tr == nil {
		return nil
	}
	tr := c.tr
	c.tr = nil
	return tr.Close()
}

func readReport(tr Transport) (*report.Report, error) {
	buf, err := tr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "read report")
	}
	return report.Decode(buf)
}
