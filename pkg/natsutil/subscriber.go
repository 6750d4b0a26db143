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
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/carverauto/headsetbridge/pkg/logger"
	"github.com/carverauto/headsetbridge/pkg/models"
)

// Subscriber receives headset broadcasts. Handlers of one subscription run
// sequentially in arrival order.
type Subscriber struct {
	nc     *nats.Conn
	prefix string
	target string
	log    logger.Logger
}

// NewSubscriber returns a subscriber that receives commands addressed to target.
func NewSubscriber(nc *nats.Conn, prefix, target string, log logger.Logger) *Subscriber {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}

	if target == "" {
		target = models.PackageHeadsetApp
	}

	return &Subscriber{nc: nc, prefix: prefix, target: target, log: log}
}

// SubscribeCommands implements headset.CommandSource.
func (s *Subscriber) SubscribeCommands(ctx context.Context, handler func(models.CommandMessage)) (func() error, error) {
	return subscribe(ctx, s, Subject(s.prefix, s.target, models.ActionSwitchMode), handler)
}

// SubscribeTelemetry delivers battery updates addressed to pkg, or to anyone
// when pkg is empty.
func (s *Subscriber) SubscribeTelemetry(ctx context.Context, pkg string, handler func(models.TelemetryMessage)) (func() error, error) {
	return subscribe(ctx, s, Subject(s.prefix, pkg, models.ActionBatteryUpdate), handler)
}

// SubscribeConnectionState delivers connection changes addressed to pkg.
func (s *Subscriber) SubscribeConnectionState(ctx context.Context, pkg string, handler func(models.ConnectionStateMessage)) (func() error, error) {
	return subscribe(ctx, s, Subject(s.prefix, pkg, models.ActionConnectionState), handler)
}

// SubscribeDiagnostics delivers diagnostic lines from every sender.
func (s *Subscriber) SubscribeDiagnostics(ctx context.Context, handler func(models.DiagnosticMessage)) (func() error, error) {
	return subscribe(ctx, s, Subject(s.prefix, "", models.ActionLog), handler)
}

func subscribe[T any](ctx context.Context, s *Subscriber, subject string, handler func(T)) (func() error, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.nc == nil {
		return nil, errNoConnection
	}

	sub, err := s.nc.Subscribe(subject, func(m *nats.Msg) {
		var v T
		if err := Decode(m.Data, &v); err != nil {
			s.log.Warn().Err(err).Str("subject", m.Subject).Msg("dropping undecodable message")
			return
		}

		handler(v)
	})
	if err != nil {
		return nil, err
	}

	if err := s.nc.Flush(); err != nil {
		_ = sub.Unsubscribe()
		return nil, err
	}

	s.log.Debug().Str("subject", subject).Msg("subscribed")

	done := make(chan struct{})

	var once sync.Once

	stop := func() error {
		var err error

		once.Do(func() {
			close(done)

			err = sub.Unsubscribe()
		})

		return err
	}

	go func() {
		select {
		case <-ctx.Done():
			_ = stop()
		case <-done:
		}
	}()

	return stop, nil
}
