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

// Package resolve locates classes and members of a foreign object model whose names
// may change between releases. Literal candidate names are always tried first; when
// none of them exist the resolver falls back to matching members by their shape
// (static-ness, parameter types, return type).
package resolve

import (
	"context"
	"fmt"
	"path"

	"github.com/carverauto/headsetbridge/pkg/foreign"
	"github.com/carverauto/headsetbridge/pkg/logger"
)

// Tier records which strategy produced a resolution.
type Tier int

const (
	TierNone Tier = iota
	TierLiteral
	TierStructural
)

func (t Tier) String() string {
	switch t {
	case TierLiteral:
		return "literal"
	case TierStructural:
		return "structural"
	case TierNone:
		return "none"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Shape constrains a member structurally. Zero-valued fields do not constrain.
type Shape struct {
	// Name restricts the match to members with this name.
	Name string
	// Static requires the member to be static (true) or an instance member (false).
	Static *bool
	// Params lists the parameter types, matched with path.Match patterns so that
	// "*RemoteViews*" or "*" can stand in for a type. The arity must match exactly
	// unless AnyParams is set.
	Params    []foreign.TypeName
	AnyParams bool
	// ReturnsOwner requires the return type to be the declaring class itself.
	ReturnsOwner bool
	// ReturnType requires an exact return type.
	ReturnType foreign.TypeName
}

// Matches reports whether m satisfies every constraint of s.
func (s Shape) Matches(m foreign.Method) bool {
	if m == nil {
		return false
	}

	if s.Name != "" && m.Name() != s.Name {
		return false
	}

	if s.Static != nil && m.Modifiers().Has(foreign.ModStatic) != *s.Static {
		return false
	}

	if !s.AnyParams && !paramsMatch(s.Params, m.Params()) {
		return false
	}

	if s.ReturnsOwner {
		owner := m.Owner()
		if owner == nil || string(m.Return()) != owner.Name() {
			return false
		}
	}

	if s.ReturnType != "" && m.Return() != s.ReturnType {
		return false
	}

	return true
}

func paramsMatch(patterns, params []foreign.TypeName) bool {
	if len(patterns) != len(params) {
		return false
	}

	for i, p := range patterns {
		ok, err := path.Match(string(p), string(params[i]))
		if err != nil || !ok {
			return false
		}
	}

	return true
}

// Bool returns a pointer to b for Shape.Static.
func Bool(b bool) *bool {
	return &b
}

// SingletonShape is the canonical shape of a singleton accessor: a static,
// parameterless member returning its own class.
func SingletonShape() *Shape {
	return &Shape{Static: Bool(true), ReturnsOwner: true}
}

// Spec lists the literal candidates for a member, most preferred first, plus an
// optional structural fallback.
type Spec struct {
	Names  []string
	Params []foreign.TypeName
	Shape  *Shape
}

// Resolution is a resolved member and the tier that found it.
type Resolution struct {
	Method foreign.Method
	Tier   Tier
}

// Observer is notified of every resolution attempt.
type Observer interface {
	ObserveResolution(kind string, tier Tier)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithObserver reports resolution outcomes to o.
func WithObserver(o Observer) Option {
	return func(r *Resolver) {
		r.observer = o
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Resolver) {
		r.log = l
	}
}

// Resolver resolves classes and members against a foreign runtime. It is stateless
// apart from its collaborators and safe for concurrent use.
type Resolver struct {
	rt       foreign.Runtime
	log      logger.Logger
	observer Observer
}

// New returns a Resolver over rt.
func New(rt foreign.Runtime, opts ...Option) *Resolver {
	r := &Resolver{
		rt:  rt,
		log: logger.NewTestLogger(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Runtime returns the runtime the resolver loads classes from.
func (r *Resolver) Runtime() foreign.Runtime {
	return r.rt
}

// ResolveClass returns the first candidate that loads.
func (r *Resolver) ResolveClass(ctx context.Context, names []string) (foreign.Class, error) {
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cls, err := r.rt.LoadClass(name)
		if err != nil {
			r.log.Debug().Str("class", name).Err(err).Msg("class candidate not loaded")
			continue
		}

		r.observe("class", TierLiteral)

		return cls, nil
	}

	r.observe("class", TierNone)

	return nil, fmt.Errorf("class %v: %w", names, foreign.ErrNotFound)
}

// LoadClasses returns every candidate that loads, in candidate order.
func (r *Resolver) LoadClasses(ctx context.Context, names []string) []foreign.Class {
	out := make([]foreign.Class, 0, len(names))

	for _, name := range names {
		if ctx.Err() != nil {
			break
		}

		if cls, err := r.rt.LoadClass(name); err == nil {
			out = append(out, cls)
		}
	}

	return out
}

// ResolveMemberByShape returns the first declared member of cls satisfying shape.
// Ties are broken by the order DeclaredMethods reports.
func (*Resolver) ResolveMemberByShape(cls foreign.Class, shape Shape) (foreign.Method, bool) {
	if cls == nil {
		return nil, false
	}

	for _, m := range cls.DeclaredMethods() {
		if shape.Matches(m) {
			return m, true
		}
	}

	return nil, false
}

// ResolveMethods returns every declared member of cls satisfying shape, in the
// order DeclaredMethods reports, for callers that try candidates in turn.
func (r *Resolver) ResolveMethods(cls foreign.Class, shape Shape) []Resolution {
	var out []Resolution

	if cls != nil {
		for _, m := range cls.DeclaredMethods() {
			if shape.Matches(m) {
				out = append(out, Resolution{Method: m, Tier: TierStructural})
			}
		}
	}

	if len(out) == 0 {
		r.observe("method", TierNone)
	} else {
		r.observe("method", TierStructural)
	}

	return out
}

// ResolveMethod tries every literal name of spec, public lookup before declared
// lookup, and only then the structural shape.
func (r *Resolver) ResolveMethod(cls foreign.Class, spec Spec) (Resolution, error) {
	if cls == nil {
		return Resolution{}, fmt.Errorf("nil class: %w", foreign.ErrNotFound)
	}

	for _, name := range spec.Names {
		if m, ok := cls.Method(name, spec.Params...); ok {
			return r.resolved(cls, m, TierLiteral), nil
		}

		if m, ok := cls.DeclaredMethod(name, spec.Params...); ok {
			return r.resolved(cls, m, TierLiteral), nil
		}
	}

	if spec.Shape != nil {
		if m, ok := r.ResolveMemberByShape(cls, *spec.Shape); ok {
			return r.resolved(cls, m, TierStructural), nil
		}
	}

	r.observe("method", TierNone)
	r.log.Debug().
		Str("class", cls.Name()).
		Strs("names", spec.Names).
		Bool("structural", spec.Shape != nil).
		Msg("member not resolved")

	return Resolution{}, fmt.Errorf("member %v of %s: %w", spec.Names, cls.Name(), foreign.ErrNotFound)
}

func (r *Resolver) resolved(cls foreign.Class, m foreign.Method, tier Tier) Resolution {
	r.observe("method", tier)
	r.log.Debug().
		Str("class", cls.Name()).
		Str("member", foreign.Signature(m)).
		Str("tier", tier.String()).
		Msg("member resolved")

	return Resolution{Method: m, Tier: tier}
}

func (r *Resolver) observe(kind string, tier Tier) {
	if r.observer != nil {
		r.observer.ObserveResolution(kind, tier)
	}
}
