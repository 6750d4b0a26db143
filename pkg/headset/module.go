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

// Package headset bridges the battery telemetry and noise-control mode of a
// headset vendor app to an external control surface. The host process calls
// the Module's entry points; everything else talks to the vendor app through
// the foreign object model.
package headset

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/carverauto/headsetbridge/pkg/foreign"
	"github.com/carverauto/headsetbridge/pkg/logger"
	"github.com/carverauto/headsetbridge/pkg/models"
	"github.com/carverauto/headsetbridge/pkg/resolve"
)

// LoadParam describes a process the host attached to.
type LoadParam struct {
	ProcessName string
	Runtime     foreign.Runtime
}

// AppContext is the application context handed out once the vendor app has
// been created.
type AppContext struct {
	PackageName string
}

// State is the mutable state shared by the telemetry and command paths.
type State struct {
	Identity  DeviceIdentity
	Singleton *SingletonCache
}

// Module is the entry point invoked by the host.
type Module struct {
	cfg       *Config
	log       logger.Logger
	publisher Publisher
	commands  CommandSource
	recorder  Recorder
	observer  resolve.Observer
	diag      *Diagnostics

	mu         sync.Mutex
	loaded     atomic.Bool
	created    atomic.Bool
	state      *State
	resolver   *resolve.Resolver
	extractor  *Extractor
	dispatcher *Dispatcher
	worker     *Worker
	stop       func() error
}

// Option configures a Module.
type Option func(*Module)

// WithRecorder reports outcomes to r.
func WithRecorder(r Recorder) Option {
	return func(m *Module) {
		m.recorder = r
	}
}

// WithResolutionObserver reports resolution tiers to o.
func WithResolutionObserver(o resolve.Observer) Option {
	return func(m *Module) {
		m.observer = o
	}
}

// NewModule returns an inactive module. cfg is validated and defaulted.
func NewModule(cfg *Config, pub Publisher, cmds CommandSource, log logger.Logger, opts ...Option) (*Module, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{
		cfg:       cfg,
		log:       log,
		publisher: pub,
		commands:  cmds,
		recorder:  nopRecorder{},
		diag:      NewDiagnostics(log),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// HandleLoad activates the module when the host loads the target process and
// reports whether it did. Loads of any other process, and repeated loads, are
// ignored.
func (m *Module) HandleLoad(ctx context.Context, p LoadParam) (activated bool) {
	defer m.recoverEntry("HandleLoad")

	if p.ProcessName != m.cfg.TargetProcess {
		return false
	}

	if p.Runtime == nil {
		m.log.Warn().Err(ErrNilRuntime).Str("process", p.ProcessName).Msg("load ignored")
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loaded.Load() {
		return false
	}

	opts := []resolve.Option{resolve.WithLogger(m.log)}
	if m.observer != nil {
		opts = append(opts, resolve.WithObserver(m.observer))
	}

	m.resolver = resolve.New(p.Runtime, opts...)
	m.state = &State{Singleton: NewSingletonCache(m.resolver, m.log)}
	m.extractor = NewExtractor(&m.state.Identity, m.cfg.Targets)
	m.dispatcher = NewDispatcher(m.cfg.Targets, DispatcherDeps{
		Cache:    m.state.Singleton,
		Identity: &m.state.Identity,
		Resolver: m.resolver,
		Sink:     m.diag,
		Recorder: m.recorder,
		Log:      m.log,
	})
	m.worker = NewWorker(m.cfg.QueueSize, m.log)
	m.worker.Start(context.WithoutCancel(ctx))
	m.loaded.Store(true)

	m.log.Info().Str("process", p.ProcessName).Msg("module loaded")
	m.diag.Report(ctx, "module loaded into "+p.ProcessName)

	return true
}

// OnApplicationCreate registers the command receiver and enables broadcasts.
// Only the first call for the target package has any effect.
func (m *Module) OnApplicationCreate(ctx context.Context, app AppContext) {
	defer m.recoverEntry("OnApplicationCreate")

	if !m.loaded.Load() || app.PackageName != m.cfg.TargetProcess {
		return
	}

	if !m.created.CompareAndSwap(false, true) {
		return
	}

	m.diag.Attach(m.publisher)
	m.diag.Report(ctx, "application context acquired")

	if m.commands == nil {
		return
	}

	stop, err := m.commands.SubscribeCommands(ctx, func(msg models.CommandMessage) {
		m.HandleCommand(ctx, msg)
	})
	if err != nil {
		m.diag.Report(ctx, fmt.Sprintf("command receiver registration failed: %v", err))
		return
	}

	m.mu.Lock()
	m.stop = stop
	m.mu.Unlock()

	m.diag.Report(ctx, "command receiver registered")
}

// OnTelemetry is the after-hook of the service member that receives the
// headset data object. Telemetry is extracted even before the application
// context exists, but only published afterwards.
func (m *Module) OnTelemetry(ctx context.Context, obj foreign.Object) {
	defer m.recoverEntry("OnTelemetry")

	if !m.loaded.Load() || obj == nil {
		return
	}

	rec, ok := m.extractor.Extract(obj)
	if !ok {
		return
	}

	m.log.Debug().
		Int8("left", rec.LeftLevel).
		Int8("right", rec.RightLevel).
		Int8("box", rec.CaseLevel).
		Str("mac", rec.DeviceID).
		Msg("telemetry extracted")

	if !m.created.Load() || m.publisher == nil {
		m.recorder.ObserveTelemetry(false)
		return
	}

	if err := m.publisher.PublishTelemetry(ctx, rec.Message(m.cfg.ConsumerPackage)); err != nil {
		m.log.Warn().Err(err).Msg("telemetry publish failed")
		m.recorder.ObserveTelemetry(false)

		return
	}

	m.recorder.ObserveTelemetry(true)
}

// OnSingletonReturned is the after-hook of the control singleton accessor.
func (m *Module) OnSingletonReturned(obj foreign.Object) {
	defer m.recoverEntry("OnSingletonReturned")

	if !m.loaded.Load() {
		return
	}

	m.state.Singleton.Set(obj)
}

// HandleCommand queues a mode switch. Commands arriving before the application
// context exists, commands for other actions and negative mode codes are ignored.
func (m *Module) HandleCommand(ctx context.Context, msg models.CommandMessage) {
	defer m.recoverEntry("HandleCommand")

	if !m.loaded.Load() || !m.created.Load() {
		return
	}

	if msg.Action != "" && msg.Action != models.ActionSwitchMode {
		return
	}

	if msg.Mode < 0 {
		return
	}

	m.diag.Report(ctx, fmt.Sprintf("received switch command mode=%d", msg.Mode))

	mode := msg.Mode
	if !m.worker.Submit(func(ctx context.Context) {
		_ = m.dispatcher.SwitchMode(ctx, mode)
	}) {
		m.recorder.ObserveDispatch(DispatchDropped)
		m.diag.Report(ctx, fmt.Sprintf("command queue full, mode=%d dropped", mode))
	}
}

// TelemetryHookTarget finds the service member whose calls carry telemetry.
func (m *Module) TelemetryHookTarget(ctx context.Context) (foreign.Method, error) {
	if !m.loaded.Load() {
		return nil, ErrNotLoaded
	}

	cls, err := m.resolver.ResolveClass(ctx, []string{m.cfg.Targets.TelemetryService})
	if err != nil {
		m.diag.Report(ctx, "telemetry service not found")
		return nil, err
	}

	res, err := m.resolver.ResolveMethod(cls, m.cfg.Targets.TelemetryHook())
	if err != nil {
		m.diag.Report(ctx, "telemetry member not found on "+cls.Name())
		return nil, err
	}

	m.diag.Report(ctx, "telemetry member found: "+foreign.Signature(res.Method))

	return res.Method, nil
}

// SingletonHookTarget finds the control singleton accessor, by name on every
// candidate class first and by shape afterwards.
func (m *Module) SingletonHookTarget(ctx context.Context) (foreign.Method, error) {
	if !m.loaded.Load() {
		return nil, ErrNotLoaded
	}

	spec := m.cfg.Targets.Singleton()
	classes := m.resolver.LoadClasses(ctx, spec.Classes)

	for _, attempt := range []resolve.Spec{
		{Names: spec.Accessor.Names},
		{Shape: spec.Accessor.Shape},
	} {
		for _, cls := range classes {
			res, err := m.resolver.ResolveMethod(cls, attempt)
			if err != nil {
				continue
			}

			m.diag.Report(ctx, "singleton accessor found: "+cls.Name()+"."+foreign.Signature(res.Method))

			return res.Method, nil
		}
	}

	m.diag.Report(ctx, "singleton accessor not found")

	return nil, fmt.Errorf("singleton accessor: %w", foreign.ErrNotFound)
}

// State exposes the shared state; nil until the module is loaded.
func (m *Module) State() *State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// Close unregisters the command receiver and stops the worker. Queued commands
// are dropped.
func (m *Module) Close() error {
	m.mu.Lock()
	stop, worker := m.stop, m.worker
	m.stop = nil
	m.mu.Unlock()

	var err error
	if stop != nil {
		err = stop()
	}

	if worker != nil {
		worker.Stop()
	}

	return err
}

func (m *Module) recoverEntry(entry string) {
	if p := recover(); p != nil {
		m.log.Error().Str("entry", entry).Interface("panic", p).Msg("recovered panic in hook entry point")
	}
}
