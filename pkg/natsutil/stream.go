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
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/headsetbridge/pkg/models"
)

// DefaultLogStream is the JetStream stream retaining diagnostic broadcasts.
const DefaultLogStream = "HEADSET_LOG"

const defaultLogRetention = 1000

// EnsureLogStream creates, or updates, a memory stream that keeps the last
// maxMsgs diagnostic broadcasts published under prefix.
func EnsureLogStream(ctx context.Context, nc *nats.Conn, name, prefix string, maxMsgs int64) (jetstream.Stream, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if name == "" {
		name = DefaultLogStream
	}

	if maxMsgs <= 0 {
		maxMsgs = defaultLogRetention
	}

	stream, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     name,
		Subjects: []string{Subject(prefix, "", models.ActionLog)},
		Storage:  jetstream.MemoryStorage,
		MaxMsgs:  maxMsgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create or update stream %s: %w", name, err)
	}

	return stream, nil
}

// RecentDiagnostics returns up to n of the newest diagnostics retained by the
// named stream, oldest first.
func RecentDiagnostics(ctx context.Context, nc *nats.Conn, name string, n int) ([]models.DiagnosticMessage, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if name == "" {
		name = DefaultLogStream
	}

	stream, err := js.Stream(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to open stream %s: %w", name, err)
	}

	info, err := stream.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read stream %s: %w", name, err)
	}

	if n <= 0 || info.State.Msgs == 0 {
		return nil, nil
	}

	first := info.State.FirstSeq
	if last := info.State.LastSeq; last-first+1 > uint64(n) {
		first = last - uint64(n) + 1
	}

	out := make([]models.DiagnosticMessage, 0, n)

	for seq := first; seq <= info.State.LastSeq; seq++ {
		raw, err := stream.GetMsg(ctx, seq)
		if errors.Is(err, jetstream.ErrMsgNotFound) {
			continue
		}

		if err != nil {
			return out, fmt.Errorf("failed to read message %d: %w", seq, err)
		}

		var msg models.DiagnosticMessage
		if err := Decode(raw.Data, &msg); err != nil {
			continue
		}

		out = append(out, msg)
	}

	return out, nil
}
