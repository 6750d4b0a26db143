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
	"math"

	"github.com/carverauto/headsetbridge/pkg/foreign"
	"github.com/carverauto/headsetbridge/pkg/models"
	"github.com/carverauto/headsetbridge/pkg/resolve"
)

// Extractor reads battery telemetry out of the headset app's data objects.
type Extractor struct {
	identity *DeviceIdentity
	targets  Targets
}

// NewExtractor returns an extractor that records addresses into identity.
func NewExtractor(identity *DeviceIdentity, targets Targets) *Extractor {
	return &Extractor{identity: identity, targets: targets}
}

// Extract probes obj for the device address, the link type and the three
// battery channels. Channels that cannot be read are models.UnknownLevel. It
// returns false only when obj is nil.
func (e *Extractor) Extract(obj foreign.Object) (models.TelemetryRecord, bool) {
	if obj == nil {
		return models.TelemetryRecord{}, false
	}

	addr := e.identity.Observe(probeString(obj, e.targets.Address))

	spp, _ := probeBool(obj, e.targets.SPP)

	return models.TelemetryRecord{
		LeftLevel:  probeLevel(obj, e.targets.LeftBattery),
		RightLevel: probeLevel(obj, e.targets.RightBattery),
		CaseLevel:  probeLevel(obj, e.targets.BoxBattery),
		DeviceID:   addr,
		IsSPP:      spp,
	}, true
}

// probeString returns the first non-empty string among names.
func probeString(obj foreign.Object, names []string) string {
	for _, name := range names {
		v, ok := resolve.Probe(obj, name)
		if !ok {
			continue
		}

		if s, ok := resolve.AsString(v); ok && s != "" {
			return s
		}
	}

	return ""
}

func probeBool(obj foreign.Object, names []string) (bool, bool) {
	for _, name := range names {
		v, ok := resolve.Probe(obj, name)
		if !ok {
			continue
		}

		if b, ok := resolve.AsBool(v); ok {
			return b, true
		}
	}

	return false, false
}

// probeLevel returns the first integer-coercible value among names. Values that
// do not fit a level are unknown.
func probeLevel(obj foreign.Object, names []string) int8 {
	for _, name := range names {
		v, ok := resolve.Probe(obj, name)
		if !ok {
			continue
		}

		n, ok := resolve.AsInt(v)
		if !ok {
			continue
		}

		if n < math.MinInt8 || n > math.MaxInt8 {
			return models.UnknownLevel
		}

		return int8(n)
	}

	return models.UnknownLevel
}
