// cmd/aquamon/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tamzrod/aquamon/internal/config"
	"github.com/tamzrod/aquamon/internal/device"
	"github.com/tamzrod/aquamon/internal/metrics"
	"github.com/tamzrod/aquamon/internal/mirror"
	mmodbus "github.com/tamzrod/aquamon/internal/mirror/modbus"
	"github.com/tamzrod/aquamon/internal/poller"
	"github.com/tamzrod/aquamon/internal/report"
	"github.com/tamzrod/aquamon/internal/status"
	"github.com/tamzrod/aquamon/internal/transport"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: aquamon <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	config.Normalize(cfg)
	setupLogging(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// --------------------
	// Metrics endpoint
	// --------------------

	reg := metrics.NewRegistry(prometheus.DefaultRegisterer)

	go func() {
		http.Handle("/metrics", promhttp.Handler())
		log.Infof("serving metrics on %s", cfg.Listen)
		if err := http.ListenAndServe(cfg.Listen, nil); err != nil {
			log.Fatalf("metrics listener failed: %v", err)
		}
	}()

	// --------------------
	// Open devices, start pollers
	// --------------------

	out := make(chan poller.PollResult)
	var polled []string

	for _, dc := range cfg.Devices {
		path := dc.Hidraw

		ctl := device.Open(dc.Name, func() (device.Transport, error) {
			return transport.OpenHidraw(path, report.Length)
		}, reg)
		defer ctl.Close()

		if !ctl.Ready() {
			// Open policy: a missing device contributes nothing.
			reg.Up(dc.Name, false)
			continue
		}

		log.Infof("device %s: firmware %d", dc.Name, ctl.Firmware())

		p, err := poller.New(poller.Config{
			Interval: time.Duration(dc.IntervalMs) * time.Millisecond,
		}, ctl)
		if err != nil {
			log.Fatalf("poller build failed (device=%s): %v", dc.Name, err)
		}

		go p.Run(ctx, out)
		polled = append(polled, dc.Name)
	}

	// --------------------
	// Mirror (optional)
	// --------------------

	// Register blocks are assigned by config order so addresses stay
	// stable whether or not every device opened.
	allNames := make([]string, 0, len(cfg.Devices))
	for _, dc := range cfg.Devices {
		allNames = append(allNames, dc.Name)
	}

	var mir *mirror.Mirror
	if cfg.Mirror != nil && len(polled) > 0 {
		cli, err := mmodbus.New(mmodbus.Config{
			Endpoint: cfg.Mirror.Endpoint,
			UnitID:   cfg.Mirror.UnitID,
			Timeout:  time.Duration(cfg.Mirror.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			log.Fatalf("mirror connect failed: %v", err)
		}
		defer cli.Close()

		mir, err = mirror.New(cli, cfg.Mirror.BaseAddress, allNames)
		if err != nil {
			log.Fatalf("mirror build failed: %v", err)
		}
	}

	// --------------------
	// Orchestrator (owns per-device health + 1Hz seconds ticker)
	// --------------------

	snaps := make(map[string]*status.Snapshot, len(polled))
	for _, name := range polled {
		snaps[name] = &status.Snapshot{Health: status.HealthUnknown}
	}

	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return

		case res := <-out:
			snap := snaps[res.Device]
			if snap == nil {
				continue
			}

			if res.Err == nil {
				snap.Health = status.HealthOK
				snap.LastErrorCode = status.CodeNone
				snap.SecondsInError = 0
				reg.Up(res.Device, true)
			} else {
				snap.Health = status.HealthError
				snap.LastErrorCode = status.CodeFor(res.Err)
				reg.Up(res.Device, false)
				reg.PollError(res.Device)
				log.Errorf("poll failed (device=%s): %v", res.Device, res.Err)
			}

			if mir != nil {
				// res.Report is nil on failed cycles: the mirror then
				// delivers health only, data registers stay put.
				if err := mir.Publish(res.Device, res.Report, *snap); err != nil {
					log.Errorf("mirror publish failed (device=%s): %v", res.Device, err)
				}
			}

		case <-secTicker.C:
			// Tick 1 Hz while not OK.
			for name, snap := range snaps {
				if snap.Health == status.HealthOK {
					continue
				}
				if snap.SecondsInError < 65535 {
					snap.SecondsInError++
				}
				if mir != nil {
					if err := mir.Publish(name, nil, *snap); err != nil {
						log.Errorf("mirror seconds tick failed (device=%s): %v", name, err)
					}
				}
			}
		}
	}
}

func setupLogging(lc config.LogConfig) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		log.Warnf("unknown log level %q, using info", lc.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if lc.File != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   lc.File,
			MaxSize:    lc.MaxSizeMB,
			MaxBackups: lc.MaxBackups,
		})
	}
}
