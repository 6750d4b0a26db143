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

package headset

import (
	"context"
	"errors"
	"fmt"

	"github.com/carverauto/headsetbridge/pkg/foreign"
	"github.com/carverauto/headsetbridge/pkg/logger"
	"github.com/carverauto/headsetbridge/pkg/models"
	"github.com/carverauto/headsetbridge/pkg/resolve"
)

// Dispatcher switches the noise-control mode through the cached control object.
type Dispatcher struct {
	cache    *SingletonCache
	identity *DeviceIdentity
	resolver *resolve.Resolver
	targets  Targets
	sink     DiagnosticSink
	recorder Recorder
	log      logger.Logger
}

// DispatcherDeps groups the collaborators of a Dispatcher.
type DispatcherDeps struct {
	Cache    *SingletonCache
	Identity *DeviceIdentity
	Resolver *resolve.Resolver
	Sink     DiagnosticSink
	Recorder Recorder
	Log      logger.Logger
}

// NewDispatcher returns a dispatcher for the given targets. Without a sink,
// reports only go to the log.
func NewDispatcher(targets Targets, deps DispatcherDeps) *Dispatcher {
	d := &Dispatcher{
		cache:    deps.Cache,
		identity: deps.Identity,
		resolver: deps.Resolver,
		targets:  targets,
		sink:     deps.Sink,
		recorder: deps.Recorder,
		log:      deps.Log,
	}

	if d.recorder == nil {
		d.recorder = nopRecorder{}
	}

	if d.log == nil {
		d.log = logger.NewTestLogger()
	}

	if d.sink == nil {
		d.sink = NewDiagnostics(d.log)
	}

	return d
}

// SwitchMode asks the headset app to switch to mode for the last observed device.
//
// Without a cached control object it attempts rediscovery and drops the command;
// the next command will use whatever rediscovery found. Without a device address
// the command is dropped. A failed call is reported, not retried, and the cached
// object is invalidated so the next command rediscovers it. The mode code is
// passed through unvalidated.
func (d *Dispatcher) SwitchMode(ctx context.Context, mode models.Mode) error {
	obj, ok := d.cache.Get()
	if !ok {
		_, found := d.cache.GetOrRediscover(ctx, d.targets.Singleton())
		reportf(ctx, d.sink, "control instance missing, rediscovery found=%t, mode=%d dropped", found, mode)
		d.recorder.ObserveDispatch(DispatchNoSingleton)

		return ErrNoSingleton
	}

	addr := d.identity.Load()
	if addr == "" {
		reportf(ctx, d.sink, "device address empty, mode=%d dropped", mode)
		d.recorder.ObserveDispatch(DispatchNoIdentity)

		return ErrNoIdentity
	}

	cls, err := classOf(obj)
	if err != nil {
		return d.fault(ctx, obj, mode, err)
	}

	res, err := d.resolver.ResolveMethod(cls, d.targets.Dispatch())
	if err != nil {
		reportf(ctx, d.sink, "mode switch member not found on %s: %v", cls.Name(), err)
		d.recorder.ObserveDispatch(DispatchUnresolved)

		return fmt.Errorf("resolve dispatch member: %w", err)
	}

	if _, err := resolve.Invoke(obj, res.Method, int(mode), addr); err != nil {
		return d.fault(ctx, obj, mode, err)
	}

	d.log.Info().
		Int("mode", int(mode)).
		Str("mac", addr).
		Str("member", foreign.Signature(res.Method)).
		Str("tier", res.Tier.String()).
		Msg("mode switched")
	reportf(ctx, d.sink, "switched mode=%d mac=%s", mode, addr)
	d.recorder.ObserveDispatch(DispatchOK)

	return nil
}

func (d *Dispatcher) fault(ctx context.Context, obj foreign.Object, mode models.Mode, err error) error {
	if d.cache.Invalidate(obj) {
		d.log.Debug().Msg("cached control instance invalidated")
	}

	reportf(ctx, d.sink, "mode switch call failed, mode=%d: %v", mode, err)
	d.recorder.ObserveDispatch(DispatchFault)

	var invErr *foreign.InvocationError
	if errors.As(err, &invErr) {
		return err
	}

	return foreign.NewInvocationError("switch mode", err)
}

// classOf guards against foreign objects whose class lookup panics.
func classOf(obj foreign.Object) (cls foreign.Class, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: class lookup panicked: %v", foreign.ErrInvocationFault, p)
		}
	}()

	cls = obj.Class()
	if cls == nil {
		return nil, fmt.Errorf("%w: object without class", foreign.ErrInvocationFault)
	}

	return cls, nil
}
