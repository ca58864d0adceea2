// internal/report/report_test.go
package report

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
)

// sampleReport builds a fully populated report with known values.
func sampleReport() *Report {
	r := &Report{
		Info: DeviceInfo{
			Validator:   1,
			StructureID: 0x0B00,
			Serial:      12345678,
			Hardware:    600,
			DeviceType:  2,
			Bootloader:  100,
			Firmware:    2107,
		},
		InfoExt: DeviceInfoExt{
			SystemState: 3,
			Features:    0x1F,
			Time:        86400,
			PowerCycles: 42,
			Runtime:     123456,
		},
		VCC:  12.34,
		Flow: 5.5,
	}

	r.Temps = [NumTemps]Temperature{
		{Available: true, Celsius: 25.0},
		{Available: false},
		{Available: true, Celsius: 18.0},
		{Available: true, Celsius: 21.0},
	}

	for i := range r.Fans {
		r.Fans[i] = Fan{
			Percent: 45.5,
			Voltage: 11.98,
			Current: 0.5,
			Power:   6.12,
			Speed:   int16(1200 + 100*i),
			Torque:  int16(30 + i),
			State:   uint8(i),
		}
	}

	return r
}

func TestDecode_Length(t *testing.T) {
	if Length != 164 {
		t.Fatalf("report length changed: got %d want 164", Length)
	}
}

func TestDecode_EndToEnd(t *testing.T) {
	buf := Encode(sampleReport())

	r, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode() err=%v", err)
	}

	if r.Info.Validator != 1 {
		t.Fatalf("validator: got %d want 1", r.Info.Validator)
	}
	if r.Info.Firmware != 2107 {
		t.Fatalf("firmware: got %d want 2107", r.Info.Firmware)
	}
	if r.Info.Serial != 12345678 {
		t.Fatalf("serial: got %d want 12345678", r.Info.Serial)
	}
	if r.InfoExt.PowerCycles != 42 {
		t.Fatalf("power cycles: got %d want 42", r.InfoExt.PowerCycles)
	}

	// temps [2500, 32767, 1800, 2100] => [25.0, unavailable, 18.0, 21.0]
	wantTemps := [NumTemps]Temperature{
		{Available: true, Celsius: 25.0},
		{Available: false},
		{Available: true, Celsius: 18.0},
		{Available: true, Celsius: 21.0},
	}
	for i, want := range wantTemps {
		got := r.Temps[i]
		if got.Available != want.Available {
			t.Fatalf("temp %d availability: got %v want %v", i, got.Available, want.Available)
		}
		if want.Available && got.Celsius != want.Celsius {
			t.Fatalf("temp %d: got %v want %v", i, got.Celsius, want.Celsius)
		}
	}

	if r.VCC != 12.34 {
		t.Fatalf("vcc: got %v want 12.34", r.VCC)
	}
	if r.Flow != 5.5 {
		t.Fatalf("flow: got %v want 5.5", r.Flow)
	}

	for i, f := range r.Fans {
		if f.Current != 0.5 {
			t.Fatalf("fan %d current: got %v want 0.5", i, f.Current)
		}
		if f.Speed != int16(1200+100*i) {
			t.Fatalf("fan %d speed: got %d want %d", i, f.Speed, 1200+100*i)
		}
		if f.State != uint8(i) {
			t.Fatalf("fan %d state: got %d want %d", i, f.State, i)
		}
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	first := Encode(sampleReport())

	r, err := Decode(first)
	if err != nil {
		t.Fatalf("Decode() err=%v", err)
	}

	second := Encode(r)
	if !bytes.Equal(first, second) {
		t.Fatalf("round trip mismatch:\n first=%x\nsecond=%x", first, second)
	}
}

func TestDecode_TemperatureSentinel(t *testing.T) {
	r := sampleReport()

	// Every raw value other than the sentinel is a legitimate reading.
	for _, raw := range []int16{-32768, -1, 0, 1, 2500, 32766} {
		r.Temps[0] = Temperature{Available: true, Celsius: float64(raw) / 100.0}
		dec, err := Decode(Encode(r))
		if err != nil {
			t.Fatalf("Decode() raw=%d err=%v", raw, err)
		}
		if !dec.Temps[0].Available {
			t.Fatalf("raw=%d: expected available", raw)
		}
		if want := float64(raw) / 100.0; dec.Temps[0].Celsius != want {
			t.Fatalf("raw=%d: got %v want %v", raw, dec.Temps[0].Celsius, want)
		}
	}

	r.Temps[0] = Temperature{Available: false}
	dec, err := Decode(Encode(r))
	if err != nil {
		t.Fatalf("Decode() err=%v", err)
	}
	if dec.Temps[0].Available {
		t.Fatalf("sentinel decoded as available")
	}
}

func TestDecode_Scaling(t *testing.T) {
	r := sampleReport()
	r.VCC = 12.34           // raw 1234
	r.Flow = 5.5            // raw 55
	r.Fans[0].Current = 0.5 // raw 500

	dec, err := Decode(Encode(r))
	if err != nil {
		t.Fatalf("Decode() err=%v", err)
	}
	if dec.VCC != 12.34 {
		t.Fatalf("vcc: got %v want 12.34", dec.VCC)
	}
	if dec.Flow != 5.5 {
		t.Fatalf("flow: got %v want 5.5", dec.Flow)
	}
	if dec.Fans[0].Current != 0.5 {
		t.Fatalf("fan current: got %v want 0.5", dec.Fans[0].Current)
	}
}

func TestDecode_TruncatedAtEveryBoundary(t *testing.T) {
	full := Encode(sampleReport())

	for n := 0; n < len(full); n++ {
		r, err := Decode(full[:n])
		if err == nil {
			t.Fatalf("len=%d: expected error, got report %+v", n, r)
		}
		if !errors.Is(err, ErrTruncated) {
			t.Fatalf("len=%d: expected ErrTruncated, got %v", n, err)
		}
		if r != nil {
			t.Fatalf("len=%d: partial report returned", n)
		}
	}
}

func TestDecode_ExactLength(t *testing.T) {
	full := Encode(sampleReport())

	if _, err := Decode(full); err != nil {
		t.Fatalf("exact-length decode failed: %v", err)
	}

	// Trailing bytes are tolerated: transports may hand over a larger
	// endpoint buffer than the report itself.
	padded := append(append([]byte{}, full...), 0xAA, 0xBB)
	if _, err := Decode(padded); err != nil {
		t.Fatalf("padded decode failed: %v", err)
	}
}
