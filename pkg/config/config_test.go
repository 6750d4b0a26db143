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

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/headsetbridge/pkg/logger"
	"github.com/carverauto/headsetbridge/pkg/models"
)

var errQueueSize = errors.New("queue size must be positive")

type testModuleConfig struct {
	QueueSize int      `json:"queue_size" yaml:"queue_size"`
	Classes   []string `json:"classes" yaml:"classes"`
}

type testConfig struct {
	Name     string            `json:"name" yaml:"name"`
	Debug    bool              `json:"debug" yaml:"debug"`
	Interval models.Duration   `json:"interval" yaml:"interval"`
	Module   testModuleConfig  `json:"module" yaml:"module"`
	NATS     models.NATSConfig `json:"nats" yaml:"nats"`
	Labels   map[string]string `json:"labels" yaml:"labels"`
}

func (c *testConfig) Validate() error {
	if c.Module.QueueSize < 0 {
		return errQueueSize
	}

	if c.Module.QueueSize == 0 {
		c.Module.QueueSize = 8
	}

	return nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadJSONFile(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	path := writeFile(t, "bridge.json", `{
		"name": "bridge",
		"interval": "250ms",
		"module": {"classes": ["a", "b"]},
		"nats": {
			"url": "nats://127.0.0.1:4222",
			"security": {"mode": "mtls", "cert_dir": "/etc/headset/certs",
				"tls": {"cert_file": "client.pem", "key_file": "client-key.pem", "ca_file": "/abs/root.pem"}}
		}
	}`)

	var cfg testConfig
	require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), path, &cfg))

	assert.Equal(t, "bridge", cfg.Name)
	assert.Equal(t, models.Duration(250_000_000), cfg.Interval)
	assert.Equal(t, []string{"a", "b"}, cfg.Module.Classes)
	assert.Equal(t, 8, cfg.Module.QueueSize, "Validate fills defaults")

	tls := cfg.NATS.Security.TLS
	assert.Equal(t, "/etc/headset/certs/client.pem", tls.CertFile)
	assert.Equal(t, "/etc/headset/certs/client-key.pem", tls.KeyFile)
	assert.Equal(t, "/abs/root.pem", tls.CAFile)
	assert.Equal(t, "/abs/root.pem", tls.ClientCAFile)
}

func TestLoadYAMLFile(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "file")

	path := writeFile(t, "bridge.yaml", `
name: yaml-bridge
debug: true
interval: 2s
module:
  queue_size: 4
nats:
  url: nats://broker:4222
  subject_prefix: lab
labels:
  site: bench
`)

	var cfg testConfig
	require.NoError(t, NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg))

	assert.Equal(t, "yaml-bridge", cfg.Name)
	assert.True(t, cfg.Debug)
	assert.Equal(t, models.Duration(2_000_000_000), cfg.Interval)
	assert.Equal(t, 4, cfg.Module.QueueSize)
	assert.Equal(t, "lab", cfg.NATS.SubjectPrefix)
	assert.Equal(t, map[string]string{"site": "bench"}, cfg.Labels)
}

func TestLoadWithoutPathKeepsDefaults(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	cfg := testConfig{Name: "default"}
	require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), "", &cfg))

	assert.Equal(t, "default", cfg.Name)
	assert.Equal(t, 8, cfg.Module.QueueSize)
}

func TestLoadFailures(t *testing.T) {
	ctx := context.Background()
	loader := NewConfig(logger.NewTestLogger())

	t.Setenv("CONFIG_SOURCE", "")

	var cfg testConfig
	require.Error(t, loader.LoadAndValidate(ctx, filepath.Join(t.TempDir(), "missing.json"), &cfg))
	require.Error(t, loader.LoadAndValidate(ctx, writeFile(t, "bad.json", "{"), &cfg))
	require.ErrorIs(t, loader.LoadAndValidate(ctx, writeFile(t, "neg.json", `{"module":{"queue_size":-1}}`), &cfg), errQueueSize)

	t.Setenv("CONFIG_SOURCE", "kv")
	require.ErrorIs(t, loader.LoadAndValidate(ctx, "", &cfg), errInvalidConfigSource)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "env")
	t.Setenv("CONFIG_ENV_PREFIX", "")
	t.Setenv("HEADSETBRIDGE_CONFIG_JSON", "")
	t.Setenv("HEADSETBRIDGE_NAME", "from-env")
	t.Setenv("HEADSETBRIDGE_DEBUG", "true")
	t.Setenv("HEADSETBRIDGE_INTERVAL", "1m")
	t.Setenv("HEADSETBRIDGE_MODULE_QUEUE_SIZE", "3")
	t.Setenv("HEADSETBRIDGE_MODULE_CLASSES", "x.Y, z")
	t.Setenv("HEADSETBRIDGE_NATS_URL", "nats://env:4222")
	t.Setenv("HEADSETBRIDGE_NATS_SECURITY_MODE", "none")
	t.Setenv("HEADSETBRIDGE_LABELS", `{"k":"v"}`)

	var cfg testConfig
	require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), "ignored", &cfg))

	assert.Equal(t, "from-env", cfg.Name)
	assert.True(t, cfg.Debug)
	assert.Equal(t, models.Duration(60_000_000_000), cfg.Interval)
	assert.Equal(t, 3, cfg.Module.QueueSize)
	assert.Equal(t, []string{"x.Y", "z"}, cfg.Module.Classes)
	assert.Equal(t, "nats://env:4222", cfg.NATS.URL)
	require.NotNil(t, cfg.NATS.Security)
	assert.Equal(t, models.SecurityModeNone, cfg.NATS.Security.Mode)
	assert.Equal(t, map[string]string{"k": "v"}, cfg.Labels)
}

func TestLoadFromEnvironmentRejectsBadValues(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "env")
	t.Setenv("CONFIG_ENV_PREFIX", "TESTBRIDGE_")
	t.Setenv("TESTBRIDGE_DEBUG", "maybe")
	t.Setenv("TESTBRIDGE_MODULE_QUEUE_SIZE", "many")

	var cfg testConfig
	err := NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), "", &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TESTBRIDGE_DEBUG")
	assert.Contains(t, err.Error(), "TESTBRIDGE_MODULE_QUEUE_SIZE")
}

func TestLoadFromConfigJSON(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "env")
	t.Setenv("CONFIG_ENV_PREFIX", "")
	t.Setenv("HEADSETBRIDGE_CONFIG_JSON", `{"name":"whole","module":{"queue_size":2}}`)

	var cfg testConfig
	require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), "", &cfg))

	assert.Equal(t, "whole", cfg.Name)
	assert.Equal(t, 2, cfg.Module.QueueSize)
}

func TestEnvLoaderRequiresStructPointer(t *testing.T) {
	t.Setenv("X_CONFIG_JSON", "")

	loader := NewEnvConfigLoader(logger.NewTestLogger(), "X_")

	var s string
	require.ErrorIs(t, loader.Load(context.Background(), "", &s), ErrDstMustBePointerToStruct)
	require.ErrorIs(t, loader.Load(context.Background(), "", testConfig{}), ErrDstMustBeNonNilPointer)
}

func TestNormalizeTLSPaths(t *testing.T) {
	t.Parallel()

	tls := models.TLSConfig{CertFile: "c.pem", KeyFile: "/k.pem", CAFile: "ca.pem", ClientCAFile: "clients.pem"}
	NormalizeTLSPaths(&tls, "/certs")

	assert.Equal(t, models.TLSConfig{
		CertFile:     "/certs/c.pem",
		KeyFile:      "/k.pem",
		CAFile:       "/certs/ca.pem",
		ClientCAFile: "/certs/clients.pem",
	}, tls)
}

func TestLoadAndValidateRequiresPointer(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	require.ErrorIs(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), "", testConfig{}), errInvalidConfigPtr)
}
