// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tamzrod/aquamon/internal/device"
)

// Registry surfaces sensor slots as Prometheus gauges, labelled with
// device and channel. Clearing a slot deletes the label pair, so an
// unavailable sensor produces no sample instead of a stale zero.
type Registry struct {
	temp *prometheus.GaugeVec
	fan  *prometheus.GaugeVec
	vcc  *prometheus.GaugeVec
	flow *prometheus.GaugeVec

	up         *prometheus.GaugeVec
	pollErrors *prometheus.CounterVec
}

func newGauge(name, help string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: help,
		},
		[]string{"device", "channel"},
	)
}

// NewRegistry builds and registers all metric vectors.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		temp: newGauge("aquamon_temperature_celsius", "Sensor temperature (units: degrees Celsius)"),
		fan:  newGauge("aquamon_fan_rpm", "Fan speed (units: rpm)"),
		vcc:  newGauge("aquamon_vcc_volts", "Supply voltage (units: V)"),
		flow: newGauge("aquamon_flow_lph", "Coolant flow (units: liters/hour)"),
		up: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "aquamon_device_up",
				Help: "1 while the last poll of the device succeeded",
			},
			[]string{"device"},
		),
		pollErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aquamon_poll_errors_total",
				Help: "Total failed poll cycles per device",
			},
			[]string{"device"},
		),
	}

	reg.MustRegister(r.temp, r.fan, r.vcc, r.flow, r.up, r.pollErrors)
	return r
}

// NewSlot implements device.Registry. The unit picks the metric
// vector; device and channel become labels.
func (r *Registry) NewSlot(dev, channel, unit string) device.Slot {
	var vec *prometheus.GaugeVec
	switch unit {
	case "°C":
		vec = r.temp
	case "rpm":
		vec = r.fan
	case "V":
		vec = r.vcc
	case "L/h":
		vec = r.flow
	default:
		// Channels with units we do not export yet.
		return nopSlot{}
	}

	return slot{
		vec:    vec,
		labels: prometheus.Labels{"device": dev, "channel": channel},
	}
}

type nopSlot struct{}

func (nopSlot) Set(float64) {}
func (nopSlot) Clear()      {}

// Up records the outcome of the latest poll cycle.
func (r *Registry) Up(dev string, ok bool) {
	v := 0.0
	if ok {
		v = 1.0
	}
	r.up.WithLabelValues(dev).Set(v)
}

// PollError counts one failed cycle.
func (r *Registry) PollError(dev string) {
	r.pollErrors.WithLabelValues(dev).Inc()
}

type slot struct {
	vec    *prometheus.GaugeVec
	labels prometheus.Labels
}

func (s slot) Set(v float64) {
	s.vec.With(s.labels).Set(v)
}

func (s slot) Clear() {
	s.vec.Delete(s.labels)
}
