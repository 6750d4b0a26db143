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

package natsutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/carverauto/headsetbridge/pkg/logger"
	"github.com/carverauto/headsetbridge/pkg/models"
)

const (
	cloudEventsVersion = "1.0"
	contentTypeJSON    = "application/json"
)

var errNoConnection = errors.New("no NATS connection")

// Broadcaster publishes headset broadcasts as CloudEvents. It satisfies
// headset.Publisher and is also used by the control surface to send commands.
type Broadcaster struct {
	nc     *nats.Conn
	prefix string
	source string
	log    logger.Logger
	now    func() time.Time
}

// NewBroadcaster returns a broadcaster publishing on nc under prefix. source
// identifies the sender in every envelope.
func NewBroadcaster(nc *nats.Conn, prefix, source string, log logger.Logger) *Broadcaster {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}

	return &Broadcaster{
		nc:     nc,
		prefix: prefix,
		source: source,
		log:    log,
		now:    time.Now,
	}
}

// PublishTelemetry broadcasts a battery update to msg.Package.
func (b *Broadcaster) PublishTelemetry(ctx context.Context, msg models.TelemetryMessage) error {
	return b.publish(ctx, msg.Package, msg.Action, msg)
}

// PublishDiagnostic broadcasts a diagnostic line to msg.Package.
func (b *Broadcaster) PublishDiagnostic(ctx context.Context, msg models.DiagnosticMessage) error {
	return b.publish(ctx, msg.Package, msg.Action, msg)
}

// PublishConnectionState broadcasts a connection change to msg.Package.
func (b *Broadcaster) PublishConnectionState(ctx context.Context, msg models.ConnectionStateMessage) error {
	return b.publish(ctx, msg.Package, msg.Action, msg)
}

// PublishCommand sends a mode switch to msg.Package, the headset app unless
// set otherwise.
func (b *Broadcaster) PublishCommand(ctx context.Context, msg models.CommandMessage) error {
	if msg.Action == "" {
		msg.Action = models.ActionSwitchMode
	}

	if msg.Package == "" {
		msg.Package = models.PackageHeadsetApp
	}

	return b.publish(ctx, msg.Package, msg.Action, msg)
}

func (b *Broadcaster) publish(ctx context.Context, pkg, action string, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if b.nc == nil {
		return errNoConnection
	}

	now := b.now()
	subject := Subject(b.prefix, pkg, action)

	event := models.CloudEvent{
		SpecVersion:     cloudEventsVersion,
		ID:              uuid.New().String(),
		Source:          b.source,
		Type:            action,
		DataContentType: contentTypeJSON,
		Subject:         subject,
		Time:            &now,
		Data:            data,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", action, err)
	}

	if err := b.nc.Publish(subject, payload); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", action, err)
	}

	b.log.Trace().Str("subject", subject).Str("id", event.ID).Msg("published event")

	return nil
}

type envelope struct {
	SpecVersion string          `json:"specversion"`
	Data        json.RawMessage `json:"data"`
}

// Decode unmarshals payload into v. Both CloudEvent envelopes and bare
// messages are accepted.
func Decode(payload []byte, v any) error {
	var env envelope
	if err := json.Unmarshal(payload, &env); err == nil && env.SpecVersion != "" && len(env.Data) > 0 {
		payload = env.Data
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}

	return nil
}
