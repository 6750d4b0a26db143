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

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/carverauto/headsetbridge/pkg/headset"
	"github.com/carverauto/headsetbridge/pkg/logger"
	"github.com/carverauto/headsetbridge/pkg/models"
	"github.com/carverauto/headsetbridge/pkg/natsutil"
	"github.com/carverauto/headsetbridge/pkg/simulator"
)

const (
	defaultInterval = 2 * time.Second
	defaultAddress  = "A4:C1:38:00:11:22"
)

var errInvalidSimulator = errors.New("invalid simulator config")

// Config is the bridge process configuration.
type Config struct {
	Module        headset.Config    `json:"module" yaml:"module"`
	NATS          models.NATSConfig `json:"nats" yaml:"nats"`
	Logging       *logger.Config    `json:"logging,omitempty" yaml:"logging,omitempty"`
	MetricsAddr   string            `json:"metrics_addr,omitempty" yaml:"metrics_addr,omitempty"`
	MetricsAPIKey string            `json:"metrics_api_key,omitempty" yaml:"metrics_api_key,omitempty"`
	Simulator     SimulatorConfig   `json:"simulator" yaml:"simulator"`
	LogStream     LogStreamConfig   `json:"log_stream" yaml:"log_stream"`
}

// SimulatorConfig selects the simulated app build and device.
type SimulatorConfig struct {
	Variant  simulator.Variant `json:"variant" yaml:"variant"`
	Address  string            `json:"address" yaml:"address"`
	Interval models.Duration   `json:"interval" yaml:"interval"`
}

// LogStreamConfig keeps a JetStream history of diagnostic lines.
type LogStreamConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	MaxMsgs int64  `json:"max_msgs,omitempty" yaml:"max_msgs,omitempty"`
}

func defaultConfig() *Config {
	return &Config{
		Module: *headset.DefaultConfig(),
		NATS: models.NATSConfig{
			URL:           "nats://127.0.0.1:4222",
			SubjectPrefix: natsutil.DefaultSubjectPrefix,
			Name:          "headset-bridge",
		},
		Simulator: SimulatorConfig{
			Variant:  simulator.VariantRelease,
			Address:  defaultAddress,
			Interval: models.Duration(defaultInterval),
		},
	}
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if err := c.Module.Validate(); err != nil {
		return err
	}

	if c.NATS.SubjectPrefix == "" {
		c.NATS.SubjectPrefix = natsutil.DefaultSubjectPrefix
	}

	if err := c.NATS.Validate(); err != nil {
		return err
	}

	switch c.Simulator.Variant {
	case "":
		c.Simulator.Variant = simulator.VariantRelease
	case simulator.VariantRelease, simulator.VariantObfuscated:
	default:
		return fmt.Errorf("%w: variant %q", errInvalidSimulator, c.Simulator.Variant)
	}

	if c.Simulator.Address == "" {
		c.Simulator.Address = defaultAddress
	}

	if c.Simulator.Interval < 0 {
		return fmt.Errorf("%w: interval %s", errInvalidSimulator, time.Duration(c.Simulator.Interval))
	}

	if c.Simulator.Interval == 0 {
		c.Simulator.Interval = models.Duration(defaultInterval)
	}

	if c.LogStream.Name == "" {
		c.LogStream.Name = natsutil.DefaultLogStream
	}

	return nil
}
