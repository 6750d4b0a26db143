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
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/headsetbridge/pkg/foreign"
	"github.com/carverauto/headsetbridge/pkg/foreign/reflectrt"
	"github.com/carverauto/headsetbridge/pkg/models"
	"github.com/carverauto/headsetbridge/pkg/resolve"
)

type dispatchHarness struct {
	app      *vendorApp
	cache    *SingletonCache
	identity *DeviceIdentity
	sink     *MockDiagnosticSink
	recorder *MockRecorder
	d        *Dispatcher
}

func newDispatchHarness(t *testing.T, obfuscated bool) *dispatchHarness {
	t.Helper()

	ctrl := gomock.NewController(t)
	app := newVendorApp(t, obfuscated)
	r := app.resolver()

	h := &dispatchHarness{
		app:      app,
		cache:    NewSingletonCache(r, testLogger()),
		identity: &DeviceIdentity{},
		sink:     NewMockDiagnosticSink(ctrl),
		recorder: NewMockRecorder(ctrl),
	}

	h.d = NewDispatcher(DefaultTargets(), DispatcherDeps{
		Cache:    h.cache,
		Identity: h.identity,
		Resolver: r,
		Sink:     h.sink,
		Recorder: h.recorder,
		Log:      testLogger(),
	})

	return h
}

func TestSwitchModeEndToEnd(t *testing.T) {
	t.Parallel()

	h := newDispatchHarness(t, false)
	h.cache.Set(h.app.wrap(t, h.app.control))
	h.identity.Observe(testMAC)

	h.sink.EXPECT().Report(gomock.Any(), "switched mode=4 mac="+testMAC)
	h.recorder.EXPECT().ObserveDispatch(DispatchOK)

	require.NoError(t, h.d.SwitchMode(context.Background(), models.ModeStrongANC))
	assert.Equal(t, []switchCall{{mode: 4, mac: testMAC}}, h.app.control.snapshot())
}

func TestSwitchModeStructuralFallback(t *testing.T) {
	t.Parallel()

	h := newDispatchHarness(t, true)
	h.cache.Set(h.app.wrap(t, h.app.control))
	h.identity.Observe(testMAC)

	h.sink.EXPECT().Report(gomock.Any(), gomock.Any())
	h.recorder.EXPECT().ObserveDispatch(DispatchOK)

	require.NoError(t, h.d.SwitchMode(context.Background(), models.ModeTransparency))
	assert.Equal(t, []switchCall{{mode: 1, mac: testMAC}}, h.app.control.snapshot())
}

func TestSwitchModePassesUnknownCodesThrough(t *testing.T) {
	t.Parallel()

	h := newDispatchHarness(t, false)
	h.cache.Set(h.app.wrap(t, h.app.control))
	h.identity.Observe(testMAC)

	h.sink.EXPECT().Report(gomock.Any(), gomock.Any())
	h.recorder.EXPECT().ObserveDispatch(DispatchOK)

	require.NoError(t, h.d.SwitchMode(context.Background(), models.Mode(9)))
	assert.Equal(t, []switchCall{{mode: 9, mac: testMAC}}, h.app.control.snapshot())
}

func TestSwitchModeWithoutIdentityIsNoop(t *testing.T) {
	t.Parallel()

	h := newDispatchHarness(t, false)
	h.cache.Set(h.app.wrap(t, h.app.control))

	h.sink.EXPECT().Report(gomock.Any(), "device address empty, mode=4 dropped")
	h.recorder.EXPECT().ObserveDispatch(DispatchNoIdentity)

	err := h.d.SwitchMode(context.Background(), models.ModeStrongANC)
	require.ErrorIs(t, err, ErrNoIdentity)
	assert.Empty(t, h.app.control.snapshot())
}

func TestSwitchModeWithoutSingletonIsNoopForAnyMode(t *testing.T) {
	t.Parallel()

	for _, mode := range []models.Mode{models.ModeOff, models.ModeTransparency, models.ModeStrongANC, models.Mode(-3), models.Mode(42)} {
		h := newDispatchHarness(t, false)
		h.d.targets.ControlClasses = []string{"com.example.Missing"}
		h.identity.Observe(testMAC)

		h.sink.EXPECT().Report(gomock.Any(), gomock.Any())
		h.recorder.EXPECT().ObserveDispatch(DispatchNoSingleton)

		err := h.d.SwitchMode(context.Background(), mode)
		require.ErrorIs(t, err, ErrNoSingleton)
		assert.Empty(t, h.app.control.snapshot())

		_, cached := h.cache.Get()
		assert.False(t, cached)
	}
}

func TestSwitchModeWithoutSinkOrRecorder(t *testing.T) {
	t.Parallel()

	app := newVendorApp(t, false)
	identity := &DeviceIdentity{}
	d := NewDispatcher(DefaultTargets(), DispatcherDeps{
		Cache:    NewSingletonCache(app.resolver(), testLogger()),
		Identity: identity,
		Resolver: app.resolver(),
	})

	var err error

	require.NotPanics(t, func() { err = d.SwitchMode(context.Background(), models.ModeStrongANC) })
	require.ErrorIs(t, err, ErrNoSingleton)

	identity.Observe(testMAC)
	require.NotPanics(t, func() { err = d.SwitchMode(context.Background(), models.ModeStrongANC) })
	require.NoError(t, err)
	assert.Equal(t, []switchCall{{mode: 4, mac: testMAC}}, app.control.snapshot())
}

func TestSwitchModeRediscoversButDropsCommand(t *testing.T) {
	t.Parallel()

	h := newDispatchHarness(t, false)
	h.identity.Observe(testMAC)

	h.sink.EXPECT().Report(gomock.Any(), "control instance missing, rediscovery found=true, mode=1 dropped")
	h.recorder.EXPECT().ObserveDispatch(DispatchNoSingleton)

	err := h.d.SwitchMode(context.Background(), models.ModeTransparency)
	require.ErrorIs(t, err, ErrNoSingleton)
	assert.Empty(t, h.app.control.snapshot())

	// the rediscovered instance serves the next command
	h.sink.EXPECT().Report(gomock.Any(), gomock.Any())
	h.recorder.EXPECT().ObserveDispatch(DispatchOK)

	require.NoError(t, h.d.SwitchMode(context.Background(), models.ModeTransparency))
	assert.Len(t, h.app.control.snapshot(), 1)
}

func TestSwitchModeFaultInvalidatesHandle(t *testing.T) {
	t.Parallel()

	h := newDispatchHarness(t, false)
	h.app.control.fail = errRemote
	h.cache.Set(h.app.wrap(t, h.app.control))
	h.identity.Observe(testMAC)

	h.sink.EXPECT().Report(gomock.Any(), gomock.Any())
	h.recorder.EXPECT().ObserveDispatch(DispatchFault)

	err := h.d.SwitchMode(context.Background(), models.ModeOff)
	require.ErrorIs(t, err, foreign.ErrInvocationFault)
	assert.Contains(t, err.Error(), "remote exception")
	assert.Len(t, h.app.control.snapshot(), 1, "faults are not retried")

	_, cached := h.cache.Get()
	assert.False(t, cached)
}

func TestSwitchModeUnresolvedMember(t *testing.T) {
	t.Parallel()

	h := newDispatchHarness(t, false)
	h.cache.Set(h.app.wrap(t, &remoteViews{}))
	h.identity.Observe(testMAC)

	h.sink.EXPECT().Report(gomock.Any(), gomock.Any())
	h.recorder.EXPECT().ObserveDispatch(DispatchUnresolved)

	err := h.d.SwitchMode(context.Background(), models.ModeOff)
	require.ErrorIs(t, err, foreign.ErrNotFound)
}

func TestSwitchModeObjectWhoseClassPanics(t *testing.T) {
	t.Parallel()

	h := newDispatchHarness(t, false)
	ctrl := gomock.NewController(t)

	obj := foreign.NewMockObject(ctrl)
	obj.EXPECT().Class().DoAndReturn(func() foreign.Class { panic("dead object") })

	h.cache.Set(obj)
	h.identity.Observe(testMAC)

	h.sink.EXPECT().Report(gomock.Any(), gomock.Any())
	h.recorder.EXPECT().ObserveDispatch(DispatchFault)

	err := h.d.SwitchMode(context.Background(), models.ModeOff)
	require.ErrorIs(t, err, foreign.ErrInvocationFault)

	_, cached := h.cache.Get()
	assert.False(t, cached)
}

type staticControl struct{}

func TestSwitchModeThroughStaticMember(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		calls []switchCall
	)

	rt := reflectrt.New()
	rt.MustDefine(reflectrt.ClassDef{
		Name: obfuscatedClass,
		Type: reflect.TypeOf(&staticControl{}),
		Statics: []reflectrt.Static{{
			Name:   "w",
			Hidden: true,
			Func: func(mode int, mac string) {
				mu.Lock()
				defer mu.Unlock()

				calls = append(calls, switchCall{mode: mode, mac: mac})
			},
		}},
	})

	obj, err := rt.Wrap(&staticControl{})
	require.NoError(t, err)

	r := resolve.New(rt)
	cache := NewSingletonCache(r, testLogger())
	cache.Set(obj)

	identity := &DeviceIdentity{}
	identity.Observe(testMAC)

	d := NewDispatcher(DefaultTargets(), DispatcherDeps{Cache: cache, Identity: identity, Resolver: r})
	require.NoError(t, d.SwitchMode(context.Background(), models.ModeOff))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []switchCall{{mode: 0, mac: testMAC}}, calls)
}
