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

// Package reflectrt adapts Go values to the foreign object model using the reflect
// package. Go types are registered as named foreign classes; their exported methods
// become declared members, optionally renamed or marked non-public, and free functions
// can be attached as static members.
//
// Exported Go methods are enumerated in lexicographic order of their Go names,
// followed by statics in registration order. That is the declaration order the
// structural resolver sees.
package reflectrt

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/carverauto/headsetbridge/pkg/foreign"
)

var (
	errInvalidClass   = errors.New("invalid class definition")
	errDuplicateClass = errors.New("class already defined")
	errForeignMethod  = errors.New("method does not belong to this runtime")

	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// Static describes a free function exposed as a static member.
type Static struct {
	Name   string
	Func   any
	Hidden bool
}

// ClassDef describes how a Go type appears in the foreign model.
type ClassDef struct {
	Name string
	// Type is the Go type of instances. Use the pointer type to expose
	// pointer-receiver methods. Nil defines a class with statics only.
	Type reflect.Type
	// Rename maps Go method names to member names. Unlisted methods keep their
	// Go name with the first letter lowered.
	Rename map[string]string
	// Hidden lists Go method names whose members are not public.
	Hidden []string
	// Skip lists Go method names left out of the foreign model.
	Skip    []string
	Statics []Static
}

// Call describes a completed invocation observed by a hook.
type Call struct {
	Method   foreign.Method
	Receiver foreign.Object
	Args     []any
	Result   any
	Err      error
}

// HookFunc runs after every invocation of the hooked member, including failed ones.
type HookFunc func(call *Call)

type hookEntry struct {
	id uint64
	fn HookFunc
}

// Runtime is a registry of foreign classes backed by Go types.
type Runtime struct {
	mu       sync.RWMutex
	classes  map[string]*Class
	byType   map[reflect.Type]*Class
	hooks    map[*member][]hookEntry
	nextHook uint64
}

var _ foreign.Runtime = (*Runtime)(nil)

// New returns an empty runtime.
func New() *Runtime {
	return &Runtime{
		classes: make(map[string]*Class),
		byType:  make(map[reflect.Type]*Class),
		hooks:   make(map[*member][]hookEntry),
	}
}

// Define registers a class.
func (r *Runtime) Define(def ClassDef) (*Class, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("%w: empty name", errInvalidClass)
	}

	cls := &Class{rt: r, name: def.Name, typ: def.Type}

	if def.Type != nil {
		if def.Type.Kind() == reflect.Interface {
			return nil, fmt.Errorf("%w: %s is backed by an interface type", errInvalidClass, def.Name)
		}

		hidden := toSet(def.Hidden)
		skip := toSet(def.Skip)

		for i := 0; i < def.Type.NumMethod(); i++ {
			gm := def.Type.Method(i)
			if skip[gm.Name] {
				continue
			}

			name := def.Rename[gm.Name]
			if name == "" {
				name = lowerFirst(gm.Name)
			}

			cls.members = append(cls.members, &member{
				owner:  cls,
				name:   name,
				fn:     gm.Func,
				public: !hidden[gm.Name],
			})
		}
	}

	for _, s := range def.Statics {
		fn := reflect.ValueOf(s.Func)
		if fn.Kind() != reflect.Func || fn.IsNil() {
			return nil, fmt.Errorf("%w: static %s of %s is not a function", errInvalidClass, s.Name, def.Name)
		}

		cls.members = append(cls.members, &member{
			owner:  cls,
			name:   s.Name,
			fn:     fn,
			static: true,
			public: !s.Hidden,
		})
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.classes[def.Name]; exists {
		return nil, fmt.Errorf("%w: %s", errDuplicateClass, def.Name)
	}

	r.classes[def.Name] = cls

	if def.Type != nil {
		r.byType[def.Type] = cls
	}

	return cls, nil
}

// MustDefine is Define for static setup code; it panics on error.
func (r *Runtime) MustDefine(def ClassDef) *Class {
	cls, err := r.Define(def)
	if err != nil {
		panic(err)
	}

	return cls
}

// LoadClass implements foreign.Runtime.
func (r *Runtime) LoadClass(name string) (foreign.Class, error) {
	r.mu.RLock()
	cls, ok := r.classes[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("class %s: %w", name, foreign.ErrNotFound)
	}

	return cls, nil
}

// Wrap returns the foreign object for a Go value of a registered type.
func (r *Runtime) Wrap(v any) (foreign.Object, error) {
	if v == nil {
		return nil, fmt.Errorf("wrap nil: %w", foreign.ErrNotFound)
	}

	rv := reflect.ValueOf(v)

	cls := r.classFor(rv.Type())
	if cls == nil {
		return nil, fmt.Errorf("class for %s: %w", rv.Type(), foreign.ErrNotFound)
	}

	return &Object{cls: cls, v: rv}, nil
}

// MustWrap is Wrap for static setup code; it panics on error.
func (r *Runtime) MustWrap(v any) foreign.Object {
	obj, err := r.Wrap(v)
	if err != nil {
		panic(err)
	}

	return obj
}

// Hook installs fn after every invocation of target and returns a function that
// removes it again.
func (r *Runtime) Hook(target foreign.Method, fn HookFunc) (func(), error) {
	mv, ok := target.(*method)
	if !ok || mv.m.owner.rt != r {
		return nil, errForeignMethod
	}

	r.mu.Lock()
	r.nextHook++
	id := r.nextHook
	r.hooks[mv.m] = append(r.hooks[mv.m], hookEntry{id: id, fn: fn})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		r.hooks[mv.m] = slices.DeleteFunc(r.hooks[mv.m], func(e hookEntry) bool {
			return e.id == id
		})
	}, nil
}

func (r *Runtime) classFor(t reflect.Type) *Class {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.byType[t]
}

func (r *Runtime) typeName(t reflect.Type) foreign.TypeName {
	if cls := r.classFor(t); cls != nil {
		return foreign.TypeName(cls.name)
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint8, reflect.Uint16:
		return foreign.TypeInt
	case reflect.Int64, reflect.Uint, reflect.Uint32, reflect.Uint64:
		return foreign.TypeLong
	case reflect.Float32:
		return foreign.TypeFloat
	case reflect.Float64:
		return foreign.TypeDouble
	case reflect.Bool:
		return foreign.TypeBoolean
	case reflect.String:
		return foreign.TypeString
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return foreign.TypeObject
		}
	default:
	}

	return foreign.TypeName(t.String())
}

func (r *Runtime) invoke(v *method, recv foreign.Object, args []any) (result any, err error) {
	m := v.m
	sig := m.owner.name + "." + foreign.Signature(v)
	called := false

	defer func() {
		if p := recover(); p != nil {
			result = nil
			err = foreign.NewInvocationError(sig, fmt.Errorf("panic: %v", p))
		}

		if called {
			r.fire(v, recv, args, result, err)
		}
	}()

	if !m.public && !v.forced {
		return nil, foreign.NewInvocationError(sig, foreign.ErrIllegalAccess)
	}

	in := m.in()
	if len(args) != len(in) {
		return nil, foreign.NewInvocationError(sig,
			fmt.Errorf("%w: want %d arguments, got %d", foreign.ErrArgumentMismatch, len(in), len(args)))
	}

	callArgs := make([]reflect.Value, 0, len(in)+1)

	if !m.static {
		rv, rerr := receiverValue(m, recv)
		if rerr != nil {
			return nil, foreign.NewInvocationError(sig, rerr)
		}

		callArgs = append(callArgs, rv)
	}

	for i, a := range args {
		av, aerr := argValue(a, in[i])
		if aerr != nil {
			return nil, foreign.NewInvocationError(sig, fmt.Errorf("argument %d: %w", i, aerr))
		}

		callArgs = append(callArgs, av)
	}

	called = true

	return r.results(sig, m.fn.Call(callArgs))
}

func (r *Runtime) results(sig string, out []reflect.Value) (any, error) {
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if e := out[n-1]; !e.IsNil() {
			return nil, foreign.NewInvocationError(sig, e.Interface().(error))
		}

		out = out[:n-1]
	}

	if len(out) == 0 {
		return nil, nil
	}

	return r.wrapValue(out[0]), nil
}

func (r *Runtime) wrapValue(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}

		v = v.Elem()
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil
		}
	default:
	}

	if cls := r.classFor(v.Type()); cls != nil {
		return &Object{cls: cls, v: v}
	}

	return v.Interface()
}

func (r *Runtime) fire(v *method, recv foreign.Object, args []any, result any, err error) {
	r.mu.RLock()
	entries := slices.Clone(r.hooks[v.m])
	r.mu.RUnlock()

	if len(entries) == 0 {
		return
	}

	wrapped := make([]any, len(args))

	for i, a := range args {
		if _, ok := a.(foreign.Object); ok || a == nil {
			wrapped[i] = a
			continue
		}

		wrapped[i] = r.wrapValue(reflect.ValueOf(a))
	}

	call := &Call{Method: v, Receiver: recv, Args: wrapped, Result: result, Err: err}

	for _, e := range entries {
		runHook(e.fn, call)
	}
}

// runHook isolates the foreign call from a misbehaving hook.
func runHook(fn HookFunc, call *Call) {
	defer func() { _ = recover() }()

	fn(call)
}

func receiverValue(m *member, recv foreign.Object) (reflect.Value, error) {
	if recv == nil {
		return reflect.Value{}, foreign.ErrNilReceiver
	}

	o, ok := recv.(*Object)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: receiver %T is not a reflectrt object", foreign.ErrArgumentMismatch, recv)
	}

	want := m.fn.Type().In(0)
	if !o.v.Type().AssignableTo(want) {
		return reflect.Value{}, fmt.Errorf("%w: receiver %s is not %s", foreign.ErrArgumentMismatch, o.v.Type(), want)
	}

	return o.v, nil
}

func argValue(a any, want reflect.Type) (reflect.Value, error) {
	if o, ok := a.(*Object); ok {
		a = o.v.Interface()
	}

	if a == nil {
		switch want.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(want), nil
		default:
			return reflect.Value{}, fmt.Errorf("%w: nil is not %s", foreign.ErrArgumentMismatch, want)
		}
	}

	v := reflect.ValueOf(a)

	if v.Type().AssignableTo(want) {
		return v, nil
	}

	if isNumeric(v.Kind()) && isNumeric(want.Kind()) {
		return v.Convert(want), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s is not %s", foreign.ErrArgumentMismatch, v.Type(), want)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}

	return set
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToLower(r)) + s[size:]
}
