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
	"sync/atomic"

	"github.com/carverauto/headsetbridge/pkg/foreign"
	"github.com/carverauto/headsetbridge/pkg/logger"
	"github.com/carverauto/headsetbridge/pkg/resolve"
)

type handle struct {
	obj foreign.Object
}

// SingletonCache holds the most recently seen control object. The headset app
// owns that object; the cache only keeps a reference that may go stale.
type SingletonCache struct {
	cur      atomic.Pointer[handle]
	resolver *resolve.Resolver
	log      logger.Logger
}

// NewSingletonCache returns an empty cache that rediscovers through r.
func NewSingletonCache(r *resolve.Resolver, log logger.Logger) *SingletonCache {
	return &SingletonCache{resolver: r, log: log}
}

// Get returns the cached object without blocking.
func (c *SingletonCache) Get() (foreign.Object, bool) {
	if h := c.cur.Load(); h != nil {
		return h.obj, true
	}

	return nil, false
}

// Set caches obj. Nil objects are ignored.
func (c *SingletonCache) Set(obj foreign.Object) {
	if obj == nil {
		return
	}

	c.cur.Store(&handle{obj: obj})
}

// Invalidate empties the cache if it still holds obj and reports whether it did.
// A newer object stored concurrently is left in place.
func (c *SingletonCache) Invalidate(obj foreign.Object) bool {
	h := c.cur.Load()
	if h == nil || h.obj != obj {
		return false
	}

	return c.cur.CompareAndSwap(h, nil)
}

// GetOrRediscover returns the cached object or calls the singleton accessor of
// the first control class that yields one. Every literal accessor is attempted
// before any structural match, and every structural match of a class is tried
// before the next class. It is safe to call repeatedly; failures leave the
// cache empty.
func (c *SingletonCache) GetOrRediscover(ctx context.Context, spec SingletonSpec) (foreign.Object, bool) {
	if obj, ok := c.Get(); ok {
		return obj, true
	}

	if c.resolver == nil {
		return nil, false
	}

	classes := c.resolver.LoadClasses(ctx, spec.Classes)
	if len(classes) == 0 {
		c.log.Debug().Strs("classes", spec.Classes).Msg("no control class loaded")
		return nil, false
	}

	if len(spec.Accessor.Names) > 0 {
		literal := resolve.Spec{Names: spec.Accessor.Names, Params: spec.Accessor.Params}

		for _, cls := range classes {
			res, err := c.resolver.ResolveMethod(cls, literal)
			if err != nil {
				continue
			}

			if obj, ok := c.call(cls, res); ok {
				return obj, true
			}
		}
	}

	if spec.Accessor.Shape == nil {
		return nil, false
	}

	for _, cls := range classes {
		for _, res := range c.resolver.ResolveMethods(cls, *spec.Accessor.Shape) {
			if obj, ok := c.call(cls, res); ok {
				return obj, true
			}
		}
	}

	return nil, false
}

func (c *SingletonCache) call(cls foreign.Class, res resolve.Resolution) (foreign.Object, bool) {
	v, err := resolve.Invoke(nil, res.Method)
	if err != nil {
		c.log.Debug().Err(err).Str("class", cls.Name()).Msg("singleton accessor failed")
		return nil, false
	}

	obj, ok := v.(foreign.Object)
	if !ok || obj == nil {
		return nil, false
	}

	c.log.Info().
		Str("class", cls.Name()).
		Str("accessor", foreign.Signature(res.Method)).
		Str("tier", res.Tier.String()).
		Msg("control singleton rediscovered")

	c.Set(obj)

	return obj, true
}
