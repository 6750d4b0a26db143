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

package resolve

import (
	"errors"
	"reflect"
	"testing"

	"github.com/carverauto/headsetbridge/pkg/foreign"
	"github.com/carverauto/headsetbridge/pkg/foreign/reflectrt"
)

type earphone struct {
	addr  string
	left  int8
	right float64
	modes []int
	fails int
}

func (e *earphone) GetAddress() string { return e.addr }
func (e *earphone) GetLeftBattery() int8 { return e.left }
func (e *earphone) GetRightBattery() float64 { return e.right }
func (*earphone) IsSpp() bool { return true }
func (*earphone) Broken() int { panic("native crash") }
func (e *earphone) Fails() (int, error) {
	e.fails++
	return 0, errors.New("dead object")
}

func (e *earphone) Switch(mode int, addr string) {
	e.modes = append(e.modes, mode)
	e.addr = addr
}

func (*earphone) Pair(int, int) {}

// newFixture defines com.example.Earphone twice: once with readable names and
// once as an obfuscated build whose members are renamed and hidden.
func newFixture(t *testing.T, obfuscated bool) (*reflectrt.Runtime, *earphone) {
	t.Helper()

	rt := reflectrt.New()
	e := &earphone{addr: "AA:BB", left: 80, right: 70.9}

	def := reflectrt.ClassDef{
		Name:   "com.example.Earphone",
		Type:   reflect.TypeOf(e),
		Rename: map[string]string{"Switch": "n0"},
		Statics: []reflectrt.Static{
			{Name: "count", Func: func() int { return 1 }},
			{Name: "H", Func: func() *earphone { return e }},
		},
	}

	if obfuscated {
		def.Rename = map[string]string{"Switch": "x", "Pair": "a", "GetLeftBattery": "c"}
		def.Hidden = []string{"Switch", "GetLeftBattery"}
		def.Statics = []reflectrt.Static{
			{Name: "count", Func: func() int { return 1 }},
			{Name: "k", Func: func() *earphone { return e }, Hidden: true},
			{Name: "m", Func: func() *earphone { return &earphone{} }},
		}
	}

	rt.MustDefine(def)

	return rt, e
}

func mustClass(t *testing.T, rt foreign.Runtime, name string) foreign.Class {
	t.Helper()

	cls, err := rt.LoadClass(name)
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}

	return cls
}
