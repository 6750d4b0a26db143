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
	"fmt"
	"math"

	"github.com/carverauto/headsetbridge/pkg/foreign"
)

// Probe calls the zero-argument member name on obj and returns its result.
// The public member is tried first; the declared one is looked up with access
// forced only when no public member exists. A member that was found is called
// at most once. Every failure, including a panic inside the foreign call,
// yields ok == false.
func Probe(obj foreign.Object, name string) (v any, ok bool) {
	if obj == nil {
		return nil, false
	}

	defer func() {
		if recover() != nil {
			v, ok = nil, false
		}
	}()

	cls := obj.Class()
	if cls == nil {
		return nil, false
	}

	m, found := cls.Method(name)
	if !found {
		if m, found = cls.DeclaredMethod(name); !found {
			return nil, false
		}

		m = m.Accessible()
	}

	v, err := m.Invoke(obj)
	if err != nil {
		return nil, false
	}

	return v, true
}

// Invoke calls m on recv with access forced. Unlike Probe, failures are returned
// to the caller as *foreign.InvocationError so they can be reported.
func Invoke(recv foreign.Object, m foreign.Method, args ...any) (v any, err error) {
	if m == nil {
		return nil, foreign.NewInvocationError("<nil>", foreign.ErrNotFound)
	}

	sig := foreign.Signature(m)

	defer func() {
		if p := recover(); p != nil {
			v = nil
			err = foreign.NewInvocationError(sig, fmt.Errorf("panic: %v", p))
		}
	}()

	if recv == nil && !m.Modifiers().Has(foreign.ModStatic) {
		return nil, foreign.NewInvocationError(sig, foreign.ErrNilReceiver)
	}

	v, err = m.Accessible().Invoke(recv, args...)
	if err != nil {
		return nil, asInvocationError(sig, err)
	}

	return v, nil
}

func asInvocationError(sig string, err error) error {
	if _, ok := err.(*foreign.InvocationError); ok { //nolint:errorlint // adapters return the type directly
		return err
	}

	return foreign.NewInvocationError(sig, err)
}

// AsInt coerces any numeric value to an int. Floating point values truncate.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}

		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return int(f), true
}

// AsString returns v when it is a string.
func AsString(v any) (string, bool) {
	s, ok := v.(string)

	return s, ok
}

// AsBool returns v when it is a bool.
func AsBool(v any) (bool, bool) {
	b, ok := v.(bool)

	return b, ok
}
