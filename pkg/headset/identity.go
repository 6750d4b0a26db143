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

import "sync/atomic"

// DeviceIdentity holds the most recently observed device address. Once an
// address is stored it can be replaced by another non-empty address but never
// cleared.
type DeviceIdentity struct {
	addr atomic.Pointer[string]
}

// Load returns the current address, or "" when none was observed.
func (d *DeviceIdentity) Load() string {
	if p := d.addr.Load(); p != nil {
		return *p
	}

	return ""
}

// Observe records addr and returns the identity after the update. Empty
// addresses leave the identity untouched.
func (d *DeviceIdentity) Observe(addr string) string {
	for {
		cur := d.addr.Load()

		if addr == "" {
			if cur == nil {
				return ""
			}

			return *cur
		}

		if cur != nil && *cur == addr {
			return addr
		}

		if d.addr.CompareAndSwap(cur, &addr) {
			return addr
		}
	}
}
