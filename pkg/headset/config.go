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

	"github.com/carverauto/headsetbridge/pkg/foreign"
	"github.com/carverauto/headsetbridge/pkg/models"
	"github.com/carverauto/headsetbridge/pkg/resolve"
)

const (
	defaultQueueSize = 16

	// TypeRemoteViews is the foreign type of the first parameter of the telemetry hook.
	TypeRemoteViews foreign.TypeName = "android.widget.RemoteViews"
)

// Config controls which process the module attaches to and how it finds its way
// around the headset app.
type Config struct {
	// TargetProcess is the only process HandleLoad activates for.
	TargetProcess string `json:"target_process" yaml:"target_process"`
	// ConsumerPackage receives telemetry broadcasts.
	ConsumerPackage string `json:"consumer_package" yaml:"consumer_package"`
	// QueueSize bounds the number of pending commands.
	QueueSize int     `json:"queue_size" yaml:"queue_size"`
	Targets   Targets `json:"targets" yaml:"targets"`
}

// Targets lists the names the module looks for inside the headset app. Every
// list is ordered, most preferred first.
type Targets struct {
	TelemetryService  string   `json:"telemetry_service" yaml:"telemetry_service"`
	TelemetryMethod   string   `json:"telemetry_method" yaml:"telemetry_method"`
	ControlClasses    []string `json:"control_classes" yaml:"control_classes"`
	SingletonAccessor string   `json:"singleton_accessor" yaml:"singleton_accessor"`
	DispatchMethod    string   `json:"dispatch_method" yaml:"dispatch_method"`
	Address           []string `json:"address" yaml:"address"`
	SPP               []string `json:"spp" yaml:"spp"`
	LeftBattery       []string `json:"left_battery" yaml:"left_battery"`
	RightBattery      []string `json:"right_battery" yaml:"right_battery"`
	BoxBattery        []string `json:"box_battery" yaml:"box_battery"`
}

// DefaultConfig returns the configuration for the released headset app.
func DefaultConfig() *Config {
	return &Config{
		TargetProcess:   models.PackageHeadsetApp,
		ConsumerPackage: models.PackageSystemUI,
		QueueSize:       defaultQueueSize,
		Targets:         DefaultTargets(),
	}
}

// DefaultTargets returns the names used by known releases of the headset app.
func DefaultTargets() Targets {
	return Targets{
		TelemetryService: "com.heytap.headset.service.KeepAliveFgService",
		TelemetryMethod:  "d",
		ControlClasses: []string{
			"com.oplus.melody.model.repository.earphone.AbstractC0772b",
			"l4.b",
			"com.oplus.melody.model.repository.earphone.b",
		},
		SingletonAccessor: "H",
		DispatchMethod:    "n0",
		Address:           []string{"getAddress"},
		SPP:               []string{"isSpp"},
		LeftBattery:       []string{"getLeftBattery", "getHeadsetLeftBattery"},
		RightBattery:      []string{"getRightBattery", "getHeadsetRightBattery"},
		BoxBattery:        []string{"getBoxBattery", "getHeadsetBoxBattery"},
	}
}

// Validate fills unset fields with defaults and rejects unusable values.
func (c *Config) Validate() error {
	def := DefaultConfig()

	if c.TargetProcess == "" {
		c.TargetProcess = def.TargetProcess
	}

	if c.ConsumerPackage == "" {
		c.ConsumerPackage = def.ConsumerPackage
	}

	if c.QueueSize == 0 {
		c.QueueSize = def.QueueSize
	}

	if c.QueueSize < 0 {
		return fmt.Errorf("%w: queue_size %d", errInvalidConfig, c.QueueSize)
	}

	c.Targets.fill(def.Targets)

	return nil
}

func (t *Targets) fill(def Targets) {
	fillString(&t.TelemetryService, def.TelemetryService)
	fillString(&t.TelemetryMethod, def.TelemetryMethod)
	fillString(&t.SingletonAccessor, def.SingletonAccessor)
	fillString(&t.DispatchMethod, def.DispatchMethod)
	fillList(&t.ControlClasses, def.ControlClasses)
	fillList(&t.Address, def.Address)
	fillList(&t.SPP, def.SPP)
	fillList(&t.LeftBattery, def.LeftBattery)
	fillList(&t.RightBattery, def.RightBattery)
	fillList(&t.BoxBattery, def.BoxBattery)
}

func fillString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func fillList(dst *[]string, def []string) {
	if len(*dst) == 0 {
		*dst = append([]string(nil), def...)
	}
}

// SingletonSpec describes how to reach the control singleton.
type SingletonSpec struct {
	Classes  []string
	Accessor resolve.Spec
}

// Singleton returns the rediscovery spec: the literal accessor name first, then
// the canonical singleton shape.
func (t Targets) Singleton() SingletonSpec {
	return SingletonSpec{
		Classes: t.ControlClasses,
		Accessor: resolve.Spec{
			Names: []string{t.SingletonAccessor},
			Shape: resolve.SingletonShape(),
		},
	}
}

// Dispatch returns the lookup for the mode-switch member: (int, string).
func (t Targets) Dispatch() resolve.Spec {
	params := []foreign.TypeName{foreign.TypeInt, foreign.TypeString}

	return resolve.Spec{
		Names:  []string{t.DispatchMethod},
		Params: params,
		Shape:  &resolve.Shape{Params: params},
	}
}

// TelemetryHook returns the lookup for the service member that receives telemetry.
func (t Targets) TelemetryHook() resolve.Spec {
	return resolve.Spec{
		Names:  []string{t.TelemetryMethod},
		Params: []foreign.TypeName{TypeRemoteViews, foreign.TypeObject},
		Shape: &resolve.Shape{
			Name:   t.TelemetryMethod,
			Params: []foreign.TypeName{"*RemoteViews*", "*"},
		},
	}
}
