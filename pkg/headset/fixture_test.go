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
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/carverauto/headsetbridge/pkg/foreign"
	"github.com/carverauto/headsetbridge/pkg/foreign/reflectrt"
	"github.com/carverauto/headsetbridge/pkg/logger"
	"github.com/carverauto/headsetbridge/pkg/resolve"
)

const (
	testMAC          = "AA:BB:CC:DD:EE:FF"
	controlClassName = "com.oplus.melody.model.repository.earphone.AbstractC0772b"
	obfuscatedClass  = "l4.b"
)

var errRemote = errors.New("remote exception")

type switchCall struct {
	mode int
	mac  string
}

type controlCenter struct {
	mu    sync.Mutex
	calls []switchCall
	fail  error
}

func (c *controlCenter) SwitchMode(mode int, mac string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, switchCall{mode: mode, mac: mac})

	return c.fail
}

func (*controlCenter) Pair(int, int) {}

func (c *controlCenter) snapshot() []switchCall {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]switchCall(nil), c.calls...)
}

type shortModel struct {
	addr             string
	left, right, box int
	spp              bool
}

func (m *shortModel) GetAddress() string { return m.addr }
func (m *shortModel) GetLeftBattery() int { return m.left }
func (m *shortModel) GetRightBattery() int { return m.right }
func (m *shortModel) GetBoxBattery() int { return m.box }
func (m *shortModel) IsSpp() bool { return m.spp }

type qualifiedModel struct {
	addr             string
	left, right, box int
}

func (m *qualifiedModel) GetAddress() string { return m.addr }
func (m *qualifiedModel) GetHeadsetLeftBattery() int { return m.left }
func (m *qualifiedModel) GetHeadsetRightBattery() int { return m.right }
func (m *qualifiedModel) GetHeadsetBoxBattery() int { return m.box }

type rawModel struct{}

func (rawModel) GetAddress() string { return "" }
func (rawModel) GetLeftBattery() float64 { return 87.9 }
func (rawModel) GetRightBattery() int { return 300 }
func (rawModel) GetBoxBattery() string { return "55" }
func (rawModel) GetHeadsetBoxBattery() int { panic("native crash") }
func (rawModel) IsSpp() string { return "yes" }

type remoteViews struct{}

type keepAliveService struct{}

func (keepAliveService) D(*remoteViews, any) {}

func (keepAliveService) E(*remoteViews) {}

type keepAliveServiceV2 struct{}

func (keepAliveServiceV2) C(*remoteViews, *shortModel) {}

func (keepAliveServiceV2) D(*remoteViews, *qualifiedModel) {}

// vendorApp is a minimal headset app: one control singleton class, one
// telemetry service and the data model classes.
type vendorApp struct {
	rt      *reflectrt.Runtime
	control *controlCenter
}

func newVendorApp(t *testing.T, obfuscated bool) *vendorApp {
	t.Helper()

	rt := reflectrt.New()
	cc := &controlCenter{}

	ctrl := reflectrt.ClassDef{
		Name:    controlClassName,
		Type:    reflect.TypeOf(cc),
		Rename:  map[string]string{"SwitchMode": "n0"},
		Statics: []reflectrt.Static{{Name: "H", Func: func() *controlCenter { return cc }}},
	}

	if obfuscated {
		ctrl.Name = obfuscatedClass
		ctrl.Rename = map[string]string{"SwitchMode": "q", "Pair": "a"}
		ctrl.Hidden = []string{"SwitchMode"}
		ctrl.Statics = []reflectrt.Static{
			{Name: "z", Func: func() int { return 0 }},
			{Name: "c", Func: func() *controlCenter { return cc }, Hidden: true},
		}
	}

	rt.MustDefine(ctrl)
	rt.MustDefine(reflectrt.ClassDef{Name: "android.widget.RemoteViews", Type: reflect.TypeOf(&remoteViews{})})

	svc := reflectrt.ClassDef{
		Name:   "com.heytap.headset.service.KeepAliveFgService",
		Type:   reflect.TypeOf(keepAliveService{}),
		Rename: map[string]string{"D": "d"},
	}
	if obfuscated {
		svc.Type = reflect.TypeOf(keepAliveServiceV2{})
		svc.Hidden = []string{"C", "D"}
	}

	rt.MustDefine(svc)
	rt.MustDefine(reflectrt.ClassDef{Name: "com.oplus.melody.EarphoneDTO", Type: reflect.TypeOf(&shortModel{})})
	rt.MustDefine(reflectrt.ClassDef{Name: "com.oplus.melody.HeadsetDTO", Type: reflect.TypeOf(&qualifiedModel{})})
	rt.MustDefine(reflectrt.ClassDef{Name: "com.oplus.melody.RawDTO", Type: reflect.TypeOf(rawModel{})})

	return &vendorApp{rt: rt, control: cc}
}

func (a *vendorApp) wrap(t *testing.T, v any) foreign.Object {
	t.Helper()

	obj, err := a.rt.Wrap(v)
	if err != nil {
		t.Fatalf("wrap %T: %v", v, err)
	}

	return obj
}

func (a *vendorApp) resolver() *resolve.Resolver {
	return resolve.New(a.rt)
}

func testLogger() logger.Logger {
	return logger.NewTestLogger()
}
