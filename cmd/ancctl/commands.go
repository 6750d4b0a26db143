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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/carverauto/headsetbridge/pkg/controller"
	"github.com/carverauto/headsetbridge/pkg/logger"
	"github.com/carverauto/headsetbridge/pkg/natsutil"
)

const clientSource = "ancctl"

var errNoTelemetry = errors.New("no telemetry from a connected headset")

type session struct {
	nc  *nats.Conn
	sub *natsutil.Subscriber
	bc  *natsutil.Broadcaster
	log logger.Logger
}

func dial(ctx context.Context, cfg *CmdConfig, logOut io.Writer) (*session, error) {
	level := zerolog.WarnLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}

	log := logger.NewWriterLogger(logOut, level)

	nc, err := natsutil.ConnectWithSecurity(ctx, &cfg.NATS, log)
	if err != nil {
		return nil, err
	}

	return &session{
		nc:  nc,
		sub: natsutil.NewSubscriber(nc, cfg.NATS.SubjectPrefix, cfg.Target, log),
		bc:  natsutil.NewBroadcaster(nc, cfg.NATS.SubjectPrefix, clientSource, log),
		log: log,
	}, nil
}

func (s *session) controller(cfg *CmdConfig, opts ...controller.Option) *controller.Controller {
	opts = append([]controller.Option{controller.WithTarget(cfg.Target)}, opts...)

	return controller.New(s.sub, s.bc, cfg.Package, s.log, opts...)
}

func (s *session) close() {
	if err := s.nc.Drain(); err != nil {
		s.nc.Close()
	}
}

// readyCallback fires once a battery update from a connected headset with a
// known address arrives.
type readyCallback struct {
	once  sync.Once
	ready chan struct{}
}

func newReadyCallback() *readyCallback {
	return &readyCallback{ready: make(chan struct{})}
}

func (r *readyCallback) OnBatteryUpdated(left, right, _ int, mac string) {
	if (left >= 0 || right >= 0) && mac != "" {
		r.once.Do(func() { close(r.ready) })
	}
}

func (*readyCallback) OnConnectionStateChanged(bool) {}

// awaitHeadset initializes ctl and waits up to wait for the first telemetry
// from a connected headset.
func awaitHeadset(ctx context.Context, ctl *controller.Controller, wait time.Duration) (controller.Snapshot, error) {
	ready := newReadyCallback()
	ctl.SetCallback(ready)

	defer ctl.SetCallback(nil)

	if err := ctl.Initialize(ctx); err != nil {
		return controller.Snapshot{}, err
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ready.ready:
		return ctl.Snapshot(), nil
	case <-timer.C:
		return ctl.Snapshot(), fmt.Errorf("%w within %s", errNoTelemetry, wait)
	case <-ctx.Done():
		return ctl.Snapshot(), ctx.Err()
	}
}

func runSend(ctx context.Context, cfg *CmdConfig) error {
	sess, err := dial(ctx, cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer sess.close()

	ctl := sess.controller(cfg)
	defer ctl.Destroy()

	if _, err := awaitHeadset(ctx, ctl, cfg.Wait); err != nil {
		return err
	}

	if err := ctl.SwitchMode(ctx, cfg.Mode); err != nil {
		return err
	}

	fmt.Printf("sent %s to %s\n", cfg.Mode, ctl.Snapshot().MAC)

	return nil
}

func runStatus(ctx context.Context, cfg *CmdConfig) error {
	sess, err := dial(ctx, cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer sess.close()

	ctl := sess.controller(cfg)
	defer ctl.Destroy()

	state, err := awaitHeadset(ctx, ctl, cfg.Wait)
	if err != nil {
		return err
	}

	writeStatus(os.Stdout, state)

	return nil
}

func writeStatus(w io.Writer, state controller.Snapshot) {
	fmt.Fprintf(w, "address  %s\n", state.MAC)
	fmt.Fprintf(w, "left     %s\n", formatLevel(state.Left))
	fmt.Fprintf(w, "right    %s\n", formatLevel(state.Right))
	fmt.Fprintf(w, "case     %s\n", formatLevel(state.Box))
}

func formatLevel(level int) string {
	if level < 0 {
		return "--"
	}

	return strconv.Itoa(level) + "%"
}

func runLogs(ctx context.Context, cfg *CmdConfig) error {
	sess, err := dial(ctx, cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer sess.close()

	lines, err := natsutil.RecentDiagnostics(ctx, sess.nc, cfg.Stream, cfg.Count)
	if err != nil {
		return err
	}

	for _, line := range lines {
		fmt.Printf("%s  %s\n", time.UnixMilli(line.Time).Format(time.DateTime), line.Log)
	}

	return nil
}
