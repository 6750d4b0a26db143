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

package controller

import (
	"context"

	"github.com/carverauto/headsetbridge/pkg/models"
)

//go:generate mockgen -destination=mock_controller.go -package=controller github.com/carverauto/headsetbridge/pkg/controller Broadcasts,CommandSender,Callback

// Broadcasts delivers the broadcasts addressed to the control surface.
type Broadcasts interface {
	SubscribeTelemetry(ctx context.Context, pkg string, handler func(models.TelemetryMessage)) (func() error, error)
	SubscribeConnectionState(ctx context.Context, pkg string, handler func(models.ConnectionStateMessage)) (func() error, error)
}

// CommandSender delivers mode switch commands to the headset app.
type CommandSender interface {
	PublishCommand(ctx context.Context, msg models.CommandMessage) error
}

// Callback is notified of battery and connection changes.
type Callback interface {
	OnBatteryUpdated(left, right, box int, mac string)
	OnConnectionStateChanged(connected bool)
}

// CommandObserver counts commands that were actually sent.
type CommandObserver interface {
	ObserveCommandSent(mode string)
}
