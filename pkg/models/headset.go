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

package models

import (
	"errors"
	"fmt"
	"strconv"
)

var errUnknownMode = errors.New("unknown mode")

// Broadcast action tags.
const (
	ActionBatteryUpdate   = "com.xiaomi.controlcenter.OPPO_BATTERY_UPDATE"
	ActionSwitchMode      = "com.xiaomi.controlcenter.OPPO_ACTION_SWITCH_MODE"
	ActionConnectionState = "com.xiaomi.controlcenter.OPPO_CONNECTION_STATE"
	ActionLog             = "moe.chenxy.oppoheadset.LOG"
)

// Well-known package names.
const (
	PackageHeadsetApp = "com.heytap.headset"
	PackageSystemUI   = "com.android.systemui"
	PackageBridge     = "moe.chenxy.oppoheadset"
)

// UnknownLevel marks a battery channel whose value could not be read.
const UnknownLevel int8 = -1

// Mode is a noise-control mode code. Codes are passed to the headset app
// unchanged; only the named ones are known to be meaningful.
type Mode int

const (
	ModeOff          Mode = 0
	ModeTransparency Mode = 1
	ModeStrongANC    Mode = 4
)

func (m Mode) String() string {
	switch m {
	case ModeOff:
		return "off"
	case ModeTransparency:
		return "transparency"
	case ModeStrongANC:
		return "strong-anc"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts a mode name or a numeric code.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "off":
		return ModeOff, nil
	case "transparency", "transparent":
		return ModeTransparency, nil
	case "anc", "strong-anc", "noise-cancelling":
		return ModeStrongANC, nil
	}

	code, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errUnknownMode, s)
	}

	return Mode(code), nil
}

// TelemetryRecord is one battery reading taken from the headset app.
type TelemetryRecord struct {
	LeftLevel  int8
	RightLevel int8
	CaseLevel  int8
	// DeviceID is the last known device address, empty when none was ever seen.
	DeviceID string
	IsSPP    bool
}

// Message returns the outbound broadcast for r addressed to pkg.
func (r TelemetryRecord) Message(pkg string) TelemetryMessage {
	return TelemetryMessage{
		Action:  ActionBatteryUpdate,
		Package: pkg,
		Left:    int(r.LeftLevel),
		Right:   int(r.RightLevel),
		Box:     int(r.CaseLevel),
		MAC:     r.DeviceID,
		IsSPP:   r.IsSPP,
	}
}

// TelemetryMessage is the battery broadcast payload.
type TelemetryMessage struct {
	Action  string `json:"action"`
	Package string `json:"package"`
	Left    int    `json:"left"`
	Right   int    `json:"right"`
	Box     int    `json:"box"`
	MAC     string `json:"mac"`
	IsSPP   bool   `json:"isSpp"`
}

// CommandMessage asks the headset app to switch noise-control mode. MAC is
// informational; the bridge always addresses the device it last observed.
type CommandMessage struct {
	Action  string `json:"action"`
	Package string `json:"package,omitempty"`
	Mode    Mode   `json:"mode"`
	MAC     string `json:"mac,omitempty"`
}

// ConnectionStateMessage reports that the headset connected or went away.
type ConnectionStateMessage struct {
	Action    string `json:"action"`
	Package   string `json:"package,omitempty"`
	Connected bool   `json:"connected"`
}

// DiagnosticMessage is a human-readable log line broadcast for the companion UI.
type DiagnosticMessage struct {
	Action  string `json:"action"`
	Package string `json:"package,omitempty"`
	Log     string `json:"log"`
	// Time is milliseconds since the Unix epoch.
	Time int64 `json:"time"`
}
