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

// Package controller is the control surface side of the bridge. It follows the
// battery broadcasts of the headset app and sends noise-control mode switches
// back to it.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/carverauto/headsetbridge/pkg/logger"
	"github.com/carverauto/headsetbridge/pkg/models"
)

var (
	// ErrNotConnected is returned when a mode switch is requested while no
	// headset is connected or its address is unknown.
	ErrNotConnected = errors.New("headset not connected")
	// ErrAlreadyInitialized is returned by a second Initialize.
	ErrAlreadyInitialized = errors.New("controller already initialized")
)

// Snapshot is the last known headset state.
type Snapshot struct {
	Left      int
	Right     int
	Box       int
	MAC       string
	Connected bool
}

func disconnected() Snapshot {
	return Snapshot{
		Left:  int(models.UnknownLevel),
		Right: int(models.UnknownLevel),
		Box:   int(models.UnknownLevel),
	}
}

// Controller tracks the headset state reported by the bridge.
type Controller struct {
	broadcasts Broadcasts
	sender     CommandSender
	pkg        string
	target     string
	log        logger.Logger
	observer   CommandObserver

	mu       sync.Mutex
	state    Snapshot
	callback Callback
	mode     models.Mode
	stops    []func() error
}

// Option configures a Controller.
type Option func(*Controller)

// WithCommandObserver counts sent commands.
func WithCommandObserver(o CommandObserver) Option {
	return func(c *Controller) {
		c.observer = o
	}
}

// WithTarget addresses commands to pkg instead of the headset app.
func WithTarget(pkg string) Option {
	return func(c *Controller) {
		c.target = pkg
	}
}

// New returns a controller receiving broadcasts addressed to pkg.
func New(broadcasts Broadcasts, sender CommandSender, pkg string, log logger.Logger, opts ...Option) *Controller {
	if pkg == "" {
		pkg = models.PackageSystemUI
	}

	c := &Controller{
		broadcasts: broadcasts,
		sender:     sender,
		pkg:        pkg,
		target:     models.PackageHeadsetApp,
		log:        log,
		state:      disconnected(),
		mode:       models.ModeOff,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Initialize subscribes to battery and connection broadcasts.
func (c *Controller) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.stops) > 0 {
		return ErrAlreadyInitialized
	}

	stopTelemetry, err := c.broadcasts.SubscribeTelemetry(ctx, c.pkg, c.handleBatteryUpdate)
	if err != nil {
		return fmt.Errorf("subscribe telemetry: %w", err)
	}

	stopConnection, err := c.broadcasts.SubscribeConnectionState(ctx, c.pkg, c.handleConnectionState)
	if err != nil {
		_ = stopTelemetry()
		return fmt.Errorf("subscribe connection state: %w", err)
	}

	c.stops = []func() error{stopTelemetry, stopConnection}

	c.log.Info().Str("package", c.pkg).Msg("headset controller initialized")

	return nil
}

// Destroy drops both subscriptions. Errors are logged, not returned.
func (c *Controller) Destroy() {
	c.mu.Lock()
	stops := c.stops
	c.stops = nil
	c.mu.Unlock()

	for _, stop := range stops {
		if err := stop(); err != nil {
			c.log.Warn().Err(err).Msg("error unsubscribing")
		}
	}

	c.log.Info().Msg("headset controller destroyed")
}

// SetCallback replaces the callback; nil removes it.
func (c *Controller) SetCallback(cb Callback) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.callback = cb
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

func (c *Controller) handleBatteryUpdate(msg models.TelemetryMessage) {
	c.mu.Lock()
	wasConnected := c.state.Connected
	c.state = Snapshot{
		Left:      msg.Left,
		Right:     msg.Right,
		Box:       msg.Box,
		MAC:       msg.MAC,
		Connected: msg.Left >= 0 || msg.Right >= 0,
	}
	state, cb := c.state, c.callback
	c.mu.Unlock()

	c.log.Debug().
		Int("left", state.Left).
		Int("right", state.Right).
		Int("box", state.Box).
		Str("mac", state.MAC).
		Msg("battery update")

	if cb == nil {
		return
	}

	cb.OnBatteryUpdated(state.Left, state.Right, state.Box, state.MAC)

	if wasConnected != state.Connected {
		cb.OnConnectionStateChanged(state.Connected)
	}
}

func (c *Controller) handleConnectionState(msg models.ConnectionStateMessage) {
	c.mu.Lock()
	if msg.Connected {
		c.state.Connected = true
	} else {
		c.state = disconnected()
	}
	cb := c.callback
	c.mu.Unlock()

	c.log.Debug().Bool("connected", msg.Connected).Msg("connection state changed")

	if cb != nil {
		cb.OnConnectionStateChanged(msg.Connected)
	}
}

// SwitchMode asks the headset app to switch to mode. It refuses with
// ErrNotConnected unless a connected headset with a known address was seen.
func (c *Controller) SwitchMode(ctx context.Context, mode models.Mode) error {
	state := c.Snapshot()

	if !state.Connected || state.MAC == "" {
		c.log.Warn().Stringer("mode", mode).Msg("cannot switch mode: not connected or no MAC address")
		return ErrNotConnected
	}

	err := c.sender.PublishCommand(ctx, models.CommandMessage{
		Action:  models.ActionSwitchMode,
		Package: c.target,
		Mode:    mode,
		MAC:     state.MAC,
	})
	if err != nil {
		return fmt.Errorf("send mode %s: %w", mode, err)
	}

	if c.observer != nil {
		c.observer.ObserveCommandSent(mode.String())
	}

	c.log.Info().Stringer("mode", mode).Str("mac", state.MAC).Msg("sent mode switch command")

	return nil
}

// SetModeOff switches noise control off.
func (c *Controller) SetModeOff(ctx context.Context) error {
	return c.SwitchMode(ctx, models.ModeOff)
}

// SetModeTransparency switches to transparency.
func (c *Controller) SetModeTransparency(ctx context.Context) error {
	return c.SwitchMode(ctx, models.ModeTransparency)
}

// SetModeStrongANC switches to strong noise cancellation.
func (c *Controller) SetModeStrongANC(ctx context.Context) error {
	return c.SwitchMode(ctx, models.ModeStrongANC)
}

// CycleMode advances OFF, TRANSPARENCY, STRONG_ANC and back to OFF, then sends
// the new mode. The cycle advances even when the send is refused.
func (c *Controller) CycleMode(ctx context.Context) (models.Mode, error) {
	c.mu.Lock()
	c.mode = next(c.mode)
	mode := c.mode
	c.mu.Unlock()

	return mode, c.SwitchMode(ctx, mode)
}

func next(m models.Mode) models.Mode {
	switch m {
	case models.ModeOff:
		return models.ModeTransparency
	case models.ModeTransparency:
		return models.ModeStrongANC
	default:
		return models.ModeOff
	}
}
