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
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/carverauto/headsetbridge/pkg/logger"
	"github.com/carverauto/headsetbridge/pkg/models"
)

const (
	diagnosticPrefix = "[headset] "
	diagnosticRate   = 20
	diagnosticBurst  = 40
)

type publisherBox struct {
	pub Publisher
}

// Diagnostics logs every report and, once a publisher is attached, also
// broadcasts it as a LOG message for the companion UI. Broadcasts are rate
// limited; the local log always gets the line.
type Diagnostics struct {
	log     logger.Logger
	pub     atomic.Pointer[publisherBox]
	limiter *rate.Limiter
	now     func() time.Time
	owner   string
}

var _ DiagnosticSink = (*Diagnostics)(nil)

// NewDiagnostics returns a sink that logs through log.
func NewDiagnostics(log logger.Logger) *Diagnostics {
	return &Diagnostics{
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(diagnosticRate), diagnosticBurst),
		now:     time.Now,
		owner:   models.PackageBridge,
	}
}

// Attach starts broadcasting reports through pub.
func (d *Diagnostics) Attach(pub Publisher) {
	if pub == nil {
		return
	}

	d.pub.Store(&publisherBox{pub: pub})
}

// Report implements DiagnosticSink.
func (d *Diagnostics) Report(ctx context.Context, msg string) {
	d.log.Info().Str("diagnostic", msg).Msg("diagnostic")

	box := d.pub.Load()
	if box == nil {
		return
	}

	if !d.limiter.Allow() {
		d.log.Debug().Str("diagnostic", msg).Msg("diagnostic broadcast rate limited")
		return
	}

	err := box.pub.PublishDiagnostic(ctx, models.DiagnosticMessage{
		Action:  models.ActionLog,
		Package: d.owner,
		Log:     diagnosticPrefix + msg,
		Time:    d.now().UnixMilli(),
	})
	if err != nil {
		d.log.Debug().Err(err).Msg("diagnostic broadcast failed")
	}
}

func reportf(ctx context.Context, sink DiagnosticSink, format string, args ...any) {
	sink.Report(ctx, fmt.Sprintf(format, args...))
}
