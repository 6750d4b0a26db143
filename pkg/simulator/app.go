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

// Package simulator runs a stand-in for the headset vendor app on top of the
// reflect-backed foreign runtime, so the bridge can be exercised without an
// Android host. Two build variants are available: a release whose member names
// are the literal ones the bridge knows, and an obfuscated one whose singleton
// accessor, dispatch member and battery accessors have been renamed or hidden.
package simulator

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/carverauto/headsetbridge/pkg/foreign"
	"github.com/carverauto/headsetbridge/pkg/foreign/reflectrt"
	"github.com/carverauto/headsetbridge/pkg/models"
)

// Variant selects the build of the simulated app.
type Variant string

const (
	VariantRelease    Variant = "release"
	VariantObfuscated Variant = "obfuscated"
)

// Class names used by the simulated app.
const (
	ClassControlRelease    = "com.oplus.melody.model.repository.earphone.AbstractC0772b"
	ClassControlObfuscated = "l4.b"
	ClassService           = "com.heytap.headset.service.KeepAliveFgService"
	ClassRemoteViews       = "android.widget.RemoteViews"
	ClassEarphone          = "com.oplus.melody.model.db.EarphoneDTO"
	ClassHeadsetInfo       = "com.oplus.melody.model.db.HeadsetInfo"
)

var (
	errUnknownVariant   = errors.New("unknown simulator variant")
	errDeviceNotPresent = errors.New("device not connected")
)

// Device is the simulated headset.
type Device struct {
	mu        sync.Mutex
	address   string
	left      int
	right     int
	box       int
	spp       bool
	connected bool
	mode      models.Mode
	switches  int
}

// NewDevice returns a connected device with full batteries.
func NewDevice(address string) *Device {
	return &Device{address: address, left: 100, right: 100, box: 100, connected: true}
}

// DeviceState is a copy of the device state.
type DeviceState struct {
	Address   string
	Left      int
	Right     int
	Box       int
	Connected bool
	Mode      models.Mode
	Switches  int
}

// State returns the current device state.
func (d *Device) State() DeviceState {
	d.mu.Lock()
	defer d.mu.Unlock()

	return DeviceState{
		Address:   d.address,
		Left:      d.left,
		Right:     d.right,
		Box:       d.box,
		Connected: d.connected,
		Mode:      d.mode,
		Switches:  d.switches,
	}
}

// SetConnected plugs the device in or out.
func (d *Device) SetConnected(connected bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.connected = connected
}

// drain lowers the earbuds by one point per call and the case every tenth
// call. Empty batteries are recharged.
func (d *Device) drain() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.left = step(d.left)
	d.right = step(d.right)

	if d.left%10 == 0 {
		d.box = step(d.box)
	}
}

func step(level int) int {
	if level <= 0 {
		return 100
	}

	return level - 1
}

func (d *Device) levels() (left, right, box int, addr string, spp bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return -1, -1, -1, d.address, d.spp
	}

	return d.left, d.right, d.box, d.address, d.spp
}

func (d *Device) switchMode(mode int, mac string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected || mac != d.address {
		return fmt.Errorf("%w: %s", errDeviceNotPresent, mac)
	}

	d.mode = models.Mode(mode)
	d.switches++

	return nil
}

// ControlCenter is the app's connection manager singleton.
type ControlCenter struct {
	device *Device
}

// SwitchMode is the mode switch member the bridge dispatches to.
func (c *ControlCenter) SwitchMode(mode int, mac string) error {
	return c.device.switchMode(mode, mac)
}

// CurrentMode returns the last mode set.
func (c *ControlCenter) CurrentMode() int {
	return int(c.device.State().Mode)
}

// RemoteViews stands in for the notification view handed to the service.
type RemoteViews struct{}

// Earphone is the release data model.
type Earphone struct {
	Address          string
	Left, Right, Box int
	Spp              bool
}

func (e *Earphone) GetAddress() string   { return e.Address }
func (e *Earphone) GetLeftBattery() int  { return e.Left }
func (e *Earphone) GetRightBattery() int { return e.Right }
func (e *Earphone) GetBoxBattery() int   { return e.Box }
func (e *Earphone) IsSpp() bool          { return e.Spp }

// HeadsetInfo is the obfuscated build's data model, with the qualified
// accessor names.
type HeadsetInfo struct {
	Address          string
	Left, Right, Box int
}

func (h *HeadsetInfo) GetAddress() string          { return h.Address }
func (h *HeadsetInfo) GetHeadsetLeftBattery() int  { return h.Left }
func (h *HeadsetInfo) GetHeadsetRightBattery() int { return h.Right }
func (h *HeadsetInfo) GetHeadsetBoxBattery() int   { return h.Box }

// KeepAliveService receives telemetry in the release build.
type KeepAliveService struct{}

// D refreshes the notification.
func (KeepAliveService) D(*RemoteViews, any) {}

// KeepAliveServiceV2 receives telemetry in the obfuscated build.
type KeepAliveServiceV2 struct{}

// D refreshes the notification.
func (KeepAliveServiceV2) D(*RemoteViews, *HeadsetInfo) {}

// App is a running instance of the simulated headset app.
type App struct {
	variant Variant
	rt      *reflectrt.Runtime
	device  *Device
	control *ControlCenter

	service   foreign.Object
	telemetry foreign.Method
	singleton foreign.Method
	newData   dataFunc
}

type dataFunc func(left, right, box int, addr string, spp bool) any

type build struct {
	defs         []reflectrt.ClassDef
	controlClass string
	accessor     string
	service      any
	data         dataFunc
}

// NewApp builds the simulated app in the given variant around device.
func NewApp(variant Variant, device *Device) (*App, error) {
	if variant == "" {
		variant = VariantRelease
	}

	a := &App{
		variant: variant,
		rt:      reflectrt.New(),
		device:  device,
		control: &ControlCenter{device: device},
	}

	var b build

	switch variant {
	case VariantRelease:
		b = a.release()
	case VariantObfuscated:
		b = a.obfuscated()
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownVariant, variant)
	}

	if err := a.install(b); err != nil {
		return nil, fmt.Errorf("build %s app: %w", variant, err)
	}

	return a, nil
}

func (a *App) release() build {
	control := a.control

	return build{
		defs: []reflectrt.ClassDef{
			{
				Name:    ClassControlRelease,
				Type:    reflect.TypeOf(control),
				Rename:  map[string]string{"SwitchMode": "n0", "CurrentMode": "g0"},
				Statics: []reflectrt.Static{{Name: "H", Func: func() *ControlCenter { return control }}},
			},
			{Name: ClassRemoteViews, Type: reflect.TypeOf(&RemoteViews{})},
			{Name: ClassService, Type: reflect.TypeOf(KeepAliveService{}), Rename: map[string]string{"D": "d"}},
			{Name: ClassEarphone, Type: reflect.TypeOf(&Earphone{})},
		},
		controlClass: ClassControlRelease,
		accessor:     "H",
		service:      KeepAliveService{},
		data: func(l, r, b int, addr string, spp bool) any {
			return &Earphone{Address: addr, Left: l, Right: r, Box: b, Spp: spp}
		},
	}
}

func (a *App) obfuscated() build {
	control := a.control

	return build{
		defs: []reflectrt.ClassDef{
			{
				Name:   ClassControlObfuscated,
				Type:   reflect.TypeOf(control),
				Rename: map[string]string{"SwitchMode": "q", "CurrentMode": "a"},
				Hidden: []string{"SwitchMode"},
				Statics: []reflectrt.Static{
					{Name: "z", Func: func() int { return 0 }},
					{Name: "c", Func: func() *ControlCenter { return control }, Hidden: true},
				},
			},
			{Name: ClassRemoteViews, Type: reflect.TypeOf(&RemoteViews{})},
			{
				Name:   ClassService,
				Type:   reflect.TypeOf(KeepAliveServiceV2{}),
				Rename: map[string]string{"D": "d"},
				Hidden: []string{"D"},
			},
			{Name: ClassHeadsetInfo, Type: reflect.TypeOf(&HeadsetInfo{})},
		},
		controlClass: ClassControlObfuscated,
		accessor:     "c",
		service:      KeepAliveServiceV2{},
		data: func(l, r, b int, addr string, _ bool) any {
			return &HeadsetInfo{Address: addr, Left: l, Right: r, Box: b}
		},
	}
}

// install defines the classes and looks up the members the app itself calls.
func (a *App) install(b build) error {
	for _, def := range b.defs {
		if _, err := a.rt.Define(def); err != nil {
			return err
		}
	}

	ctrl, err := a.rt.LoadClass(b.controlClass)
	if err != nil {
		return err
	}

	singleton, ok := ctrl.DeclaredMethod(b.accessor)
	if !ok {
		return fmt.Errorf("singleton accessor %s.%s: %w", b.controlClass, b.accessor, foreign.ErrNotFound)
	}

	svcClass, err := a.rt.LoadClass(ClassService)
	if err != nil {
		return err
	}

	var telemetry foreign.Method

	for _, m := range svcClass.DeclaredMethods() {
		if m.Name() == "d" {
			telemetry = m
			break
		}
	}

	if telemetry == nil {
		return fmt.Errorf("telemetry member of %s: %w", ClassService, foreign.ErrNotFound)
	}

	service, err := a.rt.Wrap(b.service)
	if err != nil {
		return err
	}

	a.singleton = singleton.Accessible()
	a.telemetry = telemetry.Accessible()
	a.service = service
	a.newData = b.data

	return nil
}

// Variant reports the build variant.
func (a *App) Variant() Variant {
	return a.variant
}

// ProcessName is the process the app runs in.
func (*App) ProcessName() string {
	return models.PackageHeadsetApp
}

// Runtime exposes the app's object model to the bridge.
func (a *App) Runtime() *reflectrt.Runtime {
	return a.rt
}

// Device returns the simulated headset.
func (a *App) Device() *Device {
	return a.device
}

// Start performs what the app does once on launch: it fetches its connection
// manager.
func (a *App) Start() error {
	_, err := a.singleton.Invoke(nil)
	return err
}

// Tick advances the simulation by one step: the batteries drain and the
// keep-alive service refreshes its notification with the current data.
func (a *App) Tick() error {
	a.device.drain()

	left, right, box, addr, spp := a.device.levels()

	_, err := a.telemetry.Invoke(a.service, &RemoteViews{}, a.newData(left, right, box, addr, spp))

	return err
}
