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
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceIdentityObserve(t *testing.T) {
	t.Parallel()

	var id DeviceIdentity

	assert.Empty(t, id.Load())
	assert.Empty(t, id.Observe(""))

	assert.Equal(t, "AA", id.Observe("AA"))
	assert.Equal(t, "AA", id.Observe(""), "empty observations keep the last address")
	assert.Equal(t, "BB", id.Observe("BB"))
	assert.Equal(t, "BB", id.Load())
}

func TestDeviceIdentityNeverClearedByConcurrentWriters(t *testing.T) {
	t.Parallel()

	var (
		id DeviceIdentity
		wg sync.WaitGroup
	)

	id.Observe("seed")

	for w := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range 500 {
				addr := ""
				if i%2 == 0 {
					addr = fmt.Sprintf("dev-%d-%d", w, i)
				}

				if got := id.Observe(addr); got == "" {
					t.Errorf("identity went empty after observing %q", addr)
					return
				}

				if id.Load() == "" {
					t.Error("identity read back empty")
					return
				}
			}
		}()
	}

	wg.Wait()

	assert.NotEmpty(t, id.Load())
}
