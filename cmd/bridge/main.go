/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command bridge runs the headset module inside a simulated headset app and
// connects it to NATS, so the control surface can be exercised end to end.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/carverauto/headsetbridge/pkg/config"
	"github.com/carverauto/headsetbridge/pkg/headset"
	httpx "github.com/carverauto/headsetbridge/pkg/http"
	"github.com/carverauto/headsetbridge/pkg/lifecycle"
	"github.com/carverauto/headsetbridge/pkg/logger"
	"github.com/carverauto/headsetbridge/pkg/metrics"
	"github.com/carverauto/headsetbridge/pkg/models"
	"github.com/carverauto/headsetbridge/pkg/natsutil"
	"github.com/carverauto/headsetbridge/pkg/simulator"
	"github.com/carverauto/headsetbridge/pkg/version"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to bridge config file (JSON or YAML)")
	variant := flag.String("variant", "", "Simulated app build: release or obfuscated")
	interval := flag.Duration("interval", 0, "Telemetry refresh interval")
	metricsAddr := flag.String("metrics-addr", "", "Listen address for the Prometheus endpoint")
	showVersion := flag.Bool("version", false, "Print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetFullVersion())
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := defaultConfig()
	if err := config.NewConfig(nil).LoadAndValidate(ctx, *configPath, cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	applyFlags(cfg, *variant, *interval, *metricsAddr)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	bridgeLog, err := lifecycle.CreateComponentLogger(ctx, "bridge", cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	defer func() {
		_ = lifecycle.ShutdownLogger()
	}()

	nc, err := natsutil.ConnectWithSecurity(ctx, &cfg.NATS, bridgeLog)
	if err != nil {
		return err
	}

	defer drain(nc, bridgeLog)

	if cfg.LogStream.Enabled {
		if _, err := natsutil.EnsureLogStream(ctx, nc, cfg.LogStream.Name, cfg.NATS.SubjectPrefix, cfg.LogStream.MaxMsgs); err != nil {
			bridgeLog.Warn().Err(err).Msg("diagnostic history unavailable")
		}
	}

	collector := metrics.New(true)

	srv := serveMetrics(cfg.MetricsAddr, cfg.MetricsAPIKey, collector, bridgeLog)
	defer shutdown(srv, bridgeLog)

	module, err := headset.NewModule(&cfg.Module,
		natsutil.NewBroadcaster(nc, cfg.NATS.SubjectPrefix, cfg.Module.TargetProcess, bridgeLog),
		natsutil.NewSubscriber(nc, cfg.NATS.SubjectPrefix, cfg.Module.TargetProcess, bridgeLog),
		bridgeLog,
		headset.WithRecorder(collector),
		headset.WithResolutionObserver(collector),
	)
	if err != nil {
		return err
	}

	defer func() {
		if err := module.Close(); err != nil {
			bridgeLog.Warn().Err(err).Msg("module close failed")
		}
	}()

	app, err := simulator.NewApp(cfg.Simulator.Variant, simulator.NewDevice(cfg.Simulator.Address))
	if err != nil {
		return err
	}

	host := simulator.NewHost(app, module,
		natsutil.NewBroadcaster(nc, cfg.NATS.SubjectPrefix, app.ProcessName(), bridgeLog), bridgeLog)

	if err := host.Attach(ctx); err != nil {
		return fmt.Errorf("failed to attach module: %w", err)
	}
	defer host.Detach()

	host.SetConnected(ctx, true)

	bridgeLog.Info().
		Str("variant", string(app.Variant())).
		Str("address", cfg.Simulator.Address).
		Str("nats", nc.ConnectedUrl()).
		Str("version", version.GetFullVersion()).
		Msg("bridge running")

	err = host.Run(ctx, time.Duration(cfg.Simulator.Interval))

	farewell, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	host.SetConnected(farewell, false)

	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func applyFlags(cfg *Config, variant string, interval time.Duration, metricsAddr string) {
	if variant != "" {
		cfg.Simulator.Variant = simulator.Variant(variant)
	}

	if interval > 0 {
		cfg.Simulator.Interval = models.Duration(interval)
	}

	if metricsAddr != "" {
		cfg.MetricsAddr = metricsAddr
	}
}

func serveMetrics(addr, apiKey string, collector *metrics.Collector, log logger.Logger) *http.Server {
	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", httpx.APIKeyMiddleware(apiKey, log)(collector.Handler()))

	srv := &http.Server{
		Addr:              addr,
		Handler:           httpx.RequestLogger(log)(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("serving metrics")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	return srv
}

func shutdown(srv *http.Server, log logger.Logger) {
	if srv == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("metrics server shutdown failed")
	}
}

func drain(nc *nats.Conn, log logger.Logger) {
	if err := nc.Drain(); err != nil {
		log.Warn().Err(err).Msg("NATS drain failed")
		nc.Close()
	}
}
