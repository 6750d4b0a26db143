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

package simulator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/carverauto/headsetbridge/pkg/foreign"
	"github.com/carverauto/headsetbridge/pkg/foreign/reflectrt"
	"github.com/carverauto/headsetbridge/pkg/headset"
	"github.com/carverauto/headsetbridge/pkg/logger"
	"github.com/carverauto/headsetbridge/pkg/models"
)

var errNotActivated = errors.New("module did not activate for the app process")

// ConnectionPublisher announces that the headset connected or went away.
type ConnectionPublisher interface {
	PublishConnectionState(ctx context.Context, msg models.ConnectionStateMessage) error
}

// Host plays the role of the hooking framework: it loads the module into the
// app process, installs the after-hooks the module asks for and drives the
// app's lifecycle.
type Host struct {
	app      *App
	module   *headset.Module
	conn     ConnectionPublisher
	consumer string
	log      logger.Logger

	mu      sync.Mutex
	unhooks []func()
}

// NewHost returns a host for app. conn may be nil.
func NewHost(app *App, module *headset.Module, conn ConnectionPublisher, log logger.Logger) *Host {
	return &Host{
		app:      app,
		module:   module,
		conn:     conn,
		consumer: models.PackageSystemUI,
		log:      log,
	}
}

// Attach loads the module, hooks the telemetry member and the singleton
// accessor, starts the app and finally signals application creation. ctx
// bounds the lifetime of the module's command subscription.
func (h *Host) Attach(ctx context.Context) error {
	rt := h.app.Runtime()

	if !h.module.HandleLoad(ctx, headset.LoadParam{ProcessName: h.app.ProcessName(), Runtime: rt}) {
		return errNotActivated
	}

	telemetry, err := h.module.TelemetryHookTarget(ctx)
	if err != nil {
		return fmt.Errorf("telemetry hook target: %w", err)
	}

	if err := h.hook(rt, telemetry, func(call *reflectrt.Call) {
		if call.Err != nil || len(call.Args) < 2 {
			return
		}

		if data, ok := call.Args[1].(foreign.Object); ok {
			h.module.OnTelemetry(ctx, data)
		}
	}); err != nil {
		return err
	}

	singleton, err := h.module.SingletonHookTarget(ctx)
	if err != nil {
		h.Detach()
		return fmt.Errorf("singleton hook target: %w", err)
	}

	if err := h.hook(rt, singleton, func(call *reflectrt.Call) {
		if obj, ok := call.Result.(foreign.Object); ok && call.Err == nil {
			h.module.OnSingletonReturned(obj)
		}
	}); err != nil {
		h.Detach()
		return err
	}

	h.log.Info().
		Str("variant", string(h.app.Variant())).
		Str("telemetry", foreign.Signature(telemetry)).
		Str("singleton", foreign.Signature(singleton)).
		Msg("hooks installed")

	if err := h.app.Start(); err != nil {
		h.Detach()
		return fmt.Errorf("start app: %w", err)
	}

	h.module.OnApplicationCreate(ctx, headset.AppContext{PackageName: h.app.ProcessName()})

	return nil
}

func (h *Host) hook(rt *reflectrt.Runtime, target foreign.Method, fn reflectrt.HookFunc) error {
	unhook, err := rt.Hook(target, fn)
	if err != nil {
		return fmt.Errorf("hook %s: %w", foreign.Signature(target), err)
	}

	h.mu.Lock()
	h.unhooks = append(h.unhooks, unhook)
	h.mu.Unlock()

	return nil
}

// Detach removes every installed hook.
func (h *Host) Detach() {
	h.mu.Lock()
	unhooks := h.unhooks
	h.unhooks = nil
	h.mu.Unlock()

	for _, unhook := range unhooks {
		unhook()
	}
}

// SetConnected plugs the device in or out and announces the change to the
// consumer.
func (h *Host) SetConnected(ctx context.Context, connected bool) {
	h.app.Device().SetConnected(connected)

	if h.conn == nil {
		return
	}

	err := h.conn.PublishConnectionState(ctx, models.ConnectionStateMessage{
		Action:    models.ActionConnectionState,
		Package:   h.consumer,
		Connected: connected,
	})
	if err != nil {
		h.log.Warn().Err(err).Bool("connected", connected).Msg("connection state publish failed")
	}
}

// Run ticks the app every interval until ctx ends.
func (h *Host) Run(ctx context.Context, interval time.Duration) error {
	h.log.Info().Dur("interval", interval).Msg("starting simulation loop")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.tick()

	for {
		select {
		case <-ctx.Done():
			h.log.Info().Msg("simulation loop stopping due to context cancellation")
			return ctx.Err()
		case <-ticker.C:
			h.tick()
		}
	}
}

func (h *Host) tick() {
	if err := h.app.Tick(); err != nil {
		h.log.Warn().Err(err).Msg("app tick failed")
	}
}
