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

//go:generate mockgen -destination=mock_headset.go -package=headset github.com/carverauto/headsetbridge/pkg/headset Publisher,CommandSource,DiagnosticSink,Recorder

package headset

import (
	"context"

	"github.com/carverauto/headsetbridge/pkg/models"
)

// Publisher delivers broadcasts. Delivery is fire-and-forget; errors are only logged.
type Publisher interface {
	PublishTelemetry(ctx context.Context, msg models.TelemetryMessage) error
	PublishDiagnostic(ctx context.Context, msg models.DiagnosticMessage) error
}

// CommandSource delivers inbound mode-switch commands to handler until the
// returned stop function is called.
type CommandSource interface {
	SubscribeCommands(ctx context.Context, handler func(models.CommandMessage)) (stop func() error, err error)
}

// DiagnosticSink receives human-readable reports of everything that went wrong
// or noticeably right.
type DiagnosticSink interface {
	Report(ctx context.Context, msg string)
}

// Recorder counts module outcomes.
type Recorder interface {
	ObserveDispatch(result string)
	ObserveTelemetry(published bool)
}

// Dispatch outcomes passed to Recorder.ObserveDispatch.
const (
	DispatchOK          = "ok"
	DispatchNoSingleton = "no_singleton"
	DispatchNoIdentity  = "no_identity"
	DispatchUnresolved  = "unresolved"
	DispatchFault       = "fault"
	DispatchDropped     = "dropped"
)

type nopRecorder struct{}

func (nopRecorder) ObserveDispatch(string) {}
func (nopRecorder) ObserveTelemetry(bool)  {}
