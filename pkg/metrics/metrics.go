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

// Package metrics exposes Prometheus counters for the bridge: how hook targets
// and dispatch members were resolved, how mode switches ended, and how many
// telemetry updates were broadcast.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carverauto/headsetbridge/pkg/headset"
	"github.com/carverauto/headsetbridge/pkg/resolve"
	"github.com/carverauto/headsetbridge/pkg/version"
)

const namespace = "headsetbridge"

// Collector owns its registry so several bridges can live in one process, as
// they do in tests.
type Collector struct {
	registry    *prometheus.Registry
	resolutions *prometheus.CounterVec
	dispatches  *prometheus.CounterVec
	telemetry   *prometheus.CounterVec
	commands    *prometheus.CounterVec
	buildInfo   *prometheus.GaugeVec
}

var (
	_ resolve.Observer = (*Collector)(nil)
	_ headset.Recorder = (*Collector)(nil)
)

// New creates a Collector. With process set, Go runtime and process metrics
// are registered too.
func New(process bool) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Class and member resolutions by kind and the tier that produced them",
		}, []string{"kind", "tier"}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_total",
			Help:      "Mode switch attempts by result",
		}, []string{"result"}),
		telemetry: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "telemetry_total",
			Help:      "Extracted telemetry records by outcome",
		}, []string{"outcome"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_sent_total",
			Help:      "Mode switch commands sent by the control surface, by mode",
		}, []string{"mode"}),
		buildInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_info",
			Help:      "Always 1, labelled with the build version",
		}, []string{"version", "build"}),
	}

	c.buildInfo.WithLabelValues(version.GetVersion(), version.GetBuildID()).Set(1)
	c.registry.MustRegister(c.resolutions, c.dispatches, c.telemetry, c.commands, c.buildInfo)

	if process {
		c.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return c
}

// ObserveResolution implements resolve.Observer.
func (c *Collector) ObserveResolution(kind string, tier resolve.Tier) {
	c.resolutions.WithLabelValues(kind, tier.String()).Inc()
}

// ObserveDispatch implements headset.Recorder.
func (c *Collector) ObserveDispatch(result string) {
	c.dispatches.WithLabelValues(result).Inc()
}

// ObserveTelemetry implements headset.Recorder.
func (c *Collector) ObserveTelemetry(published bool) {
	outcome := "suppressed"
	if published {
		outcome = "published"
	}

	c.telemetry.WithLabelValues(outcome).Inc()
}

// ObserveCommandSent counts a command sent by the control surface.
func (c *Collector) ObserveCommandSent(mode string) {
	c.commands.WithLabelValues(mode).Inc()
}

// Registry returns the registry every metric is registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
