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
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/headsetbridge/pkg/foreign"
)

type observation struct {
	kind string
	tier Tier
}

type recordingObserver struct {
	mu   sync.Mutex
	seen []observation
}

func (r *recordingObserver) ObserveResolution(kind string, tier Tier) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seen = append(r.seen, observation{kind: kind, tier: tier})
}

var dispatchSpec = Spec{
	Names:  []string{"n0"},
	Params: []foreign.TypeName{foreign.TypeInt, foreign.TypeString},
	Shape: &Shape{
		Static: Bool(false),
		Params: []foreign.TypeName{foreign.TypeInt, foreign.TypeString},
	},
}

func TestResolveClass(t *testing.T) {
	rt, _ := newFixture(t, false)
	obs := &recordingObserver{}
	r := New(rt, WithObserver(obs))

	cls, err := r.ResolveClass(context.Background(), []string{"l4.b", "com.example.Earphone"})
	require.NoError(t, err)
	assert.Equal(t, "com.example.Earphone", cls.Name())

	_, err = r.ResolveClass(context.Background(), []string{"l4.b", "l4.c"})
	require.ErrorIs(t, err, foreign.ErrNotFound)

	assert.Equal(t, []observation{{"class", TierLiteral}, {"class", TierNone}}, obs.seen)
}

func TestResolveClassHonoursCancellation(t *testing.T) {
	rt, _ := newFixture(t, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(rt).ResolveClass(ctx, []string{"com.example.Earphone"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadClasses(t *testing.T) {
	rt, _ := newFixture(t, false)

	classes := New(rt).LoadClasses(context.Background(), []string{"a.B", "com.example.Earphone", "c.D"})
	require.Len(t, classes, 1)
	assert.Equal(t, "com.example.Earphone", classes[0].Name())
}

func TestResolveMethodLiteral(t *testing.T) {
	rt, _ := newFixture(t, false)
	obs := &recordingObserver{}
	r := New(rt, WithObserver(obs))

	res, err := r.ResolveMethod(mustClass(t, rt, "com.example.Earphone"), dispatchSpec)
	require.NoError(t, err)
	assert.Equal(t, TierLiteral, res.Tier)
	assert.Equal(t, "n0", res.Method.Name())
	assert.Equal(t, []observation{{"method", TierLiteral}}, obs.seen)
}

func TestResolveMethodStructuralFallback(t *testing.T) {
	rt, _ := newFixture(t, true)
	r := New(rt)

	res, err := r.ResolveMethod(mustClass(t, rt, "com.example.Earphone"), dispatchSpec)
	require.NoError(t, err)
	assert.Equal(t, TierStructural, res.Tier)
	assert.Equal(t, "x", res.Method.Name())
	assert.Equal(t, []foreign.TypeName{foreign.TypeInt, foreign.TypeString}, res.Method.Params())
}

func TestResolveMethodLiteralFindsHiddenMember(t *testing.T) {
	rt, _ := newFixture(t, true)
	r := New(rt)

	res, err := r.ResolveMethod(mustClass(t, rt, "com.example.Earphone"), Spec{
		Names:  []string{"n0", "x"},
		Params: []foreign.TypeName{foreign.TypeInt, foreign.TypeString},
	})
	require.NoError(t, err)
	assert.Equal(t, TierLiteral, res.Tier)
	assert.Equal(t, "x", res.Method.Name())
	assert.False(t, res.Method.Modifiers().Has(foreign.ModPublic))
}

func TestResolveMethodLiteralTierWinsOverEarlierShapeMatch(t *testing.T) {
	rt, _ := newFixture(t, true)
	r := New(rt)

	// "k" matches the shape and is declared before "m", yet the literal candidate wins.
	res, err := r.ResolveMethod(mustClass(t, rt, "com.example.Earphone"), Spec{
		Names: []string{"m"},
		Shape: SingletonShape(),
	})
	require.NoError(t, err)
	assert.Equal(t, TierLiteral, res.Tier)
	assert.Equal(t, "m", res.Method.Name())
}

func TestResolveMethodNotFound(t *testing.T) {
	rt, _ := newFixture(t, true)
	obs := &recordingObserver{}
	r := New(rt, WithObserver(obs))

	_, err := r.ResolveMethod(mustClass(t, rt, "com.example.Earphone"), Spec{Names: []string{"n0"}})
	require.ErrorIs(t, err, foreign.ErrNotFound)
	assert.Equal(t, []observation{{"method", TierNone}}, obs.seen)

	_, err = r.ResolveMethod(nil, dispatchSpec)
	require.ErrorIs(t, err, foreign.ErrNotFound)
}

func TestResolveMemberByShapeFirstMatchIsDeterministic(t *testing.T) {
	rt, _ := newFixture(t, true)
	r := New(rt)
	cls := mustClass(t, rt, "com.example.Earphone")

	for range 10 {
		m, ok := r.ResolveMemberByShape(cls, *SingletonShape())
		require.True(t, ok)
		assert.Equal(t, "k", m.Name())
	}
}

func TestResolveMethodsReturnsEveryMatchInOrder(t *testing.T) {
	rt, _ := newFixture(t, true)
	r := New(rt)
	cls := mustClass(t, rt, "com.example.Earphone")

	var names []string
	for _, res := range r.ResolveMethods(cls, *SingletonShape()) {
		assert.Equal(t, TierStructural, res.Tier)
		names = append(names, res.Method.Name())
	}

	assert.Equal(t, []string{"k", "m"}, names)
	assert.Empty(t, r.ResolveMethods(cls, Shape{Name: "absent"}))
	assert.Empty(t, r.ResolveMethods(nil, *SingletonShape()))
}

func TestShapeMatches(t *testing.T) {
	rt, _ := newFixture(t, true)
	cls := mustClass(t, rt, "com.example.Earphone")

	x, _ := cls.DeclaredMethod("x", foreign.TypeInt, foreign.TypeString)
	count, _ := cls.DeclaredMethod("count")

	tests := []struct {
		name  string
		shape Shape
		m     foreign.Method
		want  bool
	}{
		{name: "empty shape matches parameterless member", shape: Shape{}, m: count, want: true},
		{name: "arity must match", shape: Shape{}, m: x, want: false},
		{name: "any params", shape: Shape{AnyParams: true}, m: x, want: true},
		{name: "glob params", shape: Shape{Params: []foreign.TypeName{"*", "str*"}}, m: x, want: true},
		{name: "glob mismatch", shape: Shape{Params: []foreign.TypeName{"*", "long"}}, m: x, want: false},
		{name: "name constraint", shape: Shape{Name: "y", AnyParams: true}, m: x, want: false},
		{name: "static constraint", shape: Shape{Static: Bool(true), AnyParams: true}, m: x, want: false},
		{name: "return type", shape: Shape{ReturnType: foreign.TypeInt}, m: count, want: true},
		{name: "returns owner", shape: Shape{ReturnsOwner: true}, m: count, want: false},
		{name: "nil member", shape: Shape{}, m: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.shape.Matches(tt.m))
		})
	}
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "literal", TierLiteral.String())
	assert.Equal(t, "structural", TierStructural.String())
	assert.Equal(t, "none", TierNone.String())
	assert.Equal(t, "tier(9)", Tier(9).String())
}
