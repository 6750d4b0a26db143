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
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/headsetbridge/pkg/foreign"
)

type gadget struct {
	level int
	calls []string
}

func (g *gadget) GetLevel() int { return g.level }

func (g *gadget) Secret() string { return "hidden" }

func (g *gadget) Apply(mode int, addr string) {
	g.calls = append(g.calls, addr)
	g.level = mode
}

func (*gadget) Explode() int { panic("boom") }

func (*gadget) Fail() (int, error) { return 0, errors.New("remote exception") }

func newGadgetRuntime(t *testing.T) (*Runtime, *gadget) {
	t.Helper()

	rt := New()
	g := &gadget{level: 42}

	rt.MustDefine(ClassDef{
		Name:   "com.example.Gadget",
		Type:   reflect.TypeOf(g),
		Rename: map[string]string{"Apply": "n0"},
		Hidden: []string{"Secret"},
		Statics: []Static{
			{Name: "H", Func: func() *gadget { return g }},
		},
	})

	return rt, g
}

func TestLoadClass(t *testing.T) {
	rt, _ := newGadgetRuntime(t)

	cls, err := rt.LoadClass("com.example.Gadget")
	require.NoError(t, err)
	assert.Equal(t, "com.example.Gadget", cls.Name())

	_, err = rt.LoadClass("com.example.Missing")
	require.ErrorIs(t, err, foreign.ErrNotFound)
}

func TestDefineRejectsDuplicatesAndBadStatics(t *testing.T) {
	rt, _ := newGadgetRuntime(t)

	_, err := rt.Define(ClassDef{Name: "com.example.Gadget"})
	require.ErrorIs(t, err, errDuplicateClass)

	_, err = rt.Define(ClassDef{Name: "x.Y", Statics: []Static{{Name: "z", Func: 3}}})
	require.ErrorIs(t, err, errInvalidClass)

	_, err = rt.Define(ClassDef{})
	require.ErrorIs(t, err, errInvalidClass)
}

func TestDeclaredMembersAndSignatures(t *testing.T) {
	rt, _ := newGadgetRuntime(t)

	cls, err := rt.LoadClass("com.example.Gadget")
	require.NoError(t, err)

	names := make([]string, 0)
	for _, m := range cls.DeclaredMethods() {
		names = append(names, m.Name())
	}

	// Go enumerates exported methods by name, statics follow in registration order.
	assert.Equal(t, []string{"n0", "explode", "fail", "getLevel", "secret", "H"}, names)

	n0, ok := cls.Method("n0", foreign.TypeInt, foreign.TypeString)
	require.True(t, ok)
	assert.Equal(t, foreign.TypeVoid, n0.Return())
	assert.Equal(t, "n0(int, string)", foreign.Signature(n0))

	h, ok := cls.Method("H")
	require.True(t, ok)
	assert.True(t, h.Modifiers().Has(foreign.ModStatic|foreign.ModPublic))
	assert.Equal(t, foreign.TypeName("com.example.Gadget"), h.Return())

	fail, ok := cls.Method("fail")
	require.True(t, ok)
	assert.Equal(t, foreign.TypeInt, fail.Return())
}

func TestPublicLookupSkipsHiddenMembers(t *testing.T) {
	rt, _ := newGadgetRuntime(t)

	cls, err := rt.LoadClass("com.example.Gadget")
	require.NoError(t, err)

	_, ok := cls.Method("secret")
	assert.False(t, ok)

	m, ok := cls.DeclaredMethod("secret")
	require.True(t, ok)
	assert.False(t, m.Modifiers().Has(foreign.ModPublic))
	assert.Equal(t, "private", m.Modifiers().String())

	_, ok = cls.DeclaredMethod("getLevel", foreign.TypeInt)
	assert.False(t, ok, "parameter lists must match exactly")
}

func TestInvokeHiddenRequiresAccessible(t *testing.T) {
	rt, g := newGadgetRuntime(t)
	obj := rt.MustWrap(g)

	m, ok := obj.Class().DeclaredMethod("secret")
	require.True(t, ok)

	_, err := m.Invoke(obj)
	require.ErrorIs(t, err, foreign.ErrIllegalAccess)
	require.ErrorIs(t, err, foreign.ErrInvocationFault)

	v, err := m.Accessible().Invoke(obj)
	require.NoError(t, err)
	assert.Equal(t, "hidden", v)

	// forcing access on one view does not leak into a fresh lookup
	again, _ := obj.Class().DeclaredMethod("secret")
	_, err = again.Invoke(obj)
	require.ErrorIs(t, err, foreign.ErrIllegalAccess)
}

func TestInvokeConvertsNumericArguments(t *testing.T) {
	rt, g := newGadgetRuntime(t)
	obj := rt.MustWrap(g)

	m, ok := obj.Class().Method("n0", foreign.TypeInt, foreign.TypeString)
	require.True(t, ok)

	_, err := m.Invoke(obj, int64(4), "AA:BB")
	require.NoError(t, err)
	assert.Equal(t, 4, g.level)
	assert.Equal(t, []string{"AA:BB"}, g.calls)

	_, err = m.Invoke(obj, "four", "AA:BB")
	require.ErrorIs(t, err, foreign.ErrArgumentMismatch)

	_, err = m.Invoke(obj, 4)
	require.ErrorIs(t, err, foreign.ErrArgumentMismatch)

	_, err = m.Invoke(nil, 4, "AA:BB")
	require.ErrorIs(t, err, foreign.ErrNilReceiver)
}

func TestInvokeFaults(t *testing.T) {
	rt, g := newGadgetRuntime(t)
	obj := rt.MustWrap(g)

	explode, _ := obj.Class().Method("explode")
	_, err := explode.Invoke(obj)

	var invErr *foreign.InvocationError
	require.ErrorAs(t, err, &invErr)
	assert.Contains(t, invErr.Error(), "panic: boom")

	fail, _ := obj.Class().Method("fail")
	_, err = fail.Invoke(obj)
	require.ErrorIs(t, err, foreign.ErrInvocationFault)
	assert.Contains(t, err.Error(), "remote exception")
}

func TestStaticReturnsWrappedObject(t *testing.T) {
	rt, g := newGadgetRuntime(t)

	cls, err := rt.LoadClass("com.example.Gadget")
	require.NoError(t, err)

	h, _ := cls.Method("H")
	v, err := h.Invoke(nil)
	require.NoError(t, err)

	obj, ok := v.(*Object)
	require.True(t, ok)
	assert.Same(t, g, obj.Value())
	assert.Equal(t, "com.example.Gadget", obj.Class().Name())
}

func TestHooksObserveCalls(t *testing.T) {
	rt, g := newGadgetRuntime(t)
	obj := rt.MustWrap(g)

	m, _ := obj.Class().Method("n0", foreign.TypeInt, foreign.TypeString)

	var seen []*Call

	unhook, err := rt.Hook(m, func(call *Call) {
		seen = append(seen, call)
	})
	require.NoError(t, err)

	_, err = m.Invoke(obj, 1, "AA")
	require.NoError(t, err)

	require.Len(t, seen, 1)
	assert.Equal(t, []any{1, "AA"}, seen[0].Args)
	assert.Same(t, obj, seen[0].Receiver)

	unhook()

	_, err = m.Invoke(obj, 0, "AA")
	require.NoError(t, err)
	assert.Len(t, seen, 1)
}

func TestHookPanicDoesNotReachCaller(t *testing.T) {
	rt, g := newGadgetRuntime(t)
	obj := rt.MustWrap(g)

	m, _ := obj.Class().Method("getLevel")
	_, err := rt.Hook(m, func(*Call) { panic("bad hook") })
	require.NoError(t, err)

	v, err := m.Invoke(obj)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestHookRejectsForeignMethods(t *testing.T) {
	rt, g := newGadgetRuntime(t)
	other, _ := newGadgetRuntime(t)

	m, _ := rt.MustWrap(g).Class().Method("getLevel")

	_, err := other.Hook(m, func(*Call) {})
	require.ErrorIs(t, err, errForeignMethod)
}

func TestWrapUnknownType(t *testing.T) {
	rt := New()

	_, err := rt.Wrap(struct{}{})
	require.ErrorIs(t, err, foreign.ErrNotFound)

	_, err = rt.Wrap(nil)
	require.ErrorIs(t, err, foreign.ErrNotFound)
}
