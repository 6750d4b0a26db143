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

package reflectrt

import (
	"reflect"
	"slices"

	"github.com/carverauto/headsetbridge/pkg/foreign"
)

// Class is a foreign class backed by a Go type.
type Class struct {
	rt      *Runtime
	name    string
	typ     reflect.Type
	members []*member
}

var _ foreign.Class = (*Class)(nil)

func (c *Class) Name() string {
	return c.name
}

// Method implements foreign.Class.
func (c *Class) Method(name string, params ...foreign.TypeName) (foreign.Method, bool) {
	return c.lookup(name, params, true)
}

// DeclaredMethod implements foreign.Class.
func (c *Class) DeclaredMethod(name string, params ...foreign.TypeName) (foreign.Method, bool) {
	return c.lookup(name, params, false)
}

// DeclaredMethods implements foreign.Class.
func (c *Class) DeclaredMethods() []foreign.Method {
	out := make([]foreign.Method, 0, len(c.members))
	for _, m := range c.members {
		out = append(out, &method{m: m})
	}

	return out
}

func (c *Class) lookup(name string, params []foreign.TypeName, publicOnly bool) (foreign.Method, bool) {
	for _, m := range c.members {
		if m.name != name || (publicOnly && !m.public) {
			continue
		}

		if !slices.Equal(m.params(), params) {
			continue
		}

		return &method{m: m}, true
	}

	return nil, false
}

type member struct {
	owner  *Class
	name   string
	fn     reflect.Value
	static bool
	public bool
}

// in returns the Go parameter types, without the receiver.
func (m *member) in() []reflect.Type {
	t := m.fn.Type()

	start := 1
	if m.static {
		start = 0
	}

	out := make([]reflect.Type, 0, t.NumIn())
	for i := start; i < t.NumIn(); i++ {
		out = append(out, t.In(i))
	}

	return out
}

func (m *member) params() []foreign.TypeName {
	in := m.in()
	out := make([]foreign.TypeName, len(in))

	for i, t := range in {
		out[i] = m.owner.rt.typeName(t)
	}

	return out
}

func (m *member) ret() foreign.TypeName {
	t := m.fn.Type()

	n := t.NumOut()
	if n > 0 && t.Out(n-1) == errorType {
		n--
	}

	if n == 0 {
		return foreign.TypeVoid
	}

	return m.owner.rt.typeName(t.Out(0))
}

// method is a lookup result. Each lookup hands out a fresh view so forcing
// accessibility never leaks into other callers.
type method struct {
	m      *member
	forced bool
}

var _ foreign.Method = (*method)(nil)

func (v *method) Name() string {
	return v.m.name
}

func (v *method) Owner() foreign.Class {
	return v.m.owner
}

func (v *method) Modifiers() foreign.Modifier {
	var mod foreign.Modifier

	if v.m.public {
		mod |= foreign.ModPublic
	}

	if v.m.static {
		mod |= foreign.ModStatic
	}

	return mod
}

func (v *method) Params() []foreign.TypeName {
	return v.m.params()
}

func (v *method) Return() foreign.TypeName {
	return v.m.ret()
}

func (v *method) Accessible() foreign.Method {
	return &method{m: v.m, forced: true}
}

func (v *method) Invoke(recv foreign.Object, args ...any) (any, error) {
	return v.m.owner.rt.invoke(v, recv, args)
}

// Object is a Go value seen as an instance of a foreign class.
type Object struct {
	cls *Class
	v   reflect.Value
}

var _ foreign.Object = (*Object)(nil)

func (o *Object) Class() foreign.Class {
	return o.cls
}

// Value returns the wrapped Go value.
func (o *Object) Value() any {
	return o.v.Interface()
}
