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

package simulator

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/headsetbridge/pkg/controller"
	"github.com/carverauto/headsetbridge/pkg/headset"
	"github.com/carverauto/headsetbridge/pkg/logger"
	"github.com/carverauto/headsetbridge/pkg/metrics"
	"github.com/carverauto/headsetbridge/pkg/models"
	"github.com/carverauto/headsetbridge/pkg/natsutil"
)

func runNATS(t *testing.T) *server.Server {
	t.Helper()

	srv, err := server.NewServer(&server.Options{Host: "127.0.0.1", Port: -1, NoLog: true, NoSigs: true})
	require.NoError(t, err)

	go srv.Start()

	if !srv.ReadyForConnections(10 * time.Second) {
		srv.Shutdown()
		t.Fatalf("embedded NATS server not ready for connections")
	}

	t.Cleanup(srv.Shutdown)

	return srv
}

func TestEndToEndOverNATS(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	srv := runNATS(t)
	log := logger.NewTestLogger()
	natsCfg := &models.NATSConfig{URL: srv.ClientURL()}

	bridgeConn, err := natsutil.ConnectWithSecurity(ctx, natsCfg, log)
	require.NoError(t, err)
	t.Cleanup(bridgeConn.Close)

	uiConn, err := natsutil.ConnectWithSecurity(ctx, natsCfg, log)
	require.NoError(t, err)
	t.Cleanup(uiConn.Close)

	// control surface
	collector := metrics.New(false)
	ui := controller.New(
		natsutil.NewSubscriber(uiConn, "", "", log),
		natsutil.NewBroadcaster(uiConn, "", "ancctl", log),
		models.PackageSystemUI,
		log,
		controller.WithCommandObserver(collector),
	)
	require.NoError(t, ui.Initialize(ctx))
	t.Cleanup(ui.Destroy)

	// bridge inside the obfuscated app
	broadcaster := natsutil.NewBroadcaster(bridgeConn, "", "headsetbridge", log)

	module, err := headset.NewModule(nil, broadcaster, natsutil.NewSubscriber(bridgeConn, "", models.PackageHeadsetApp, log), log,
		headset.WithRecorder(collector), headset.WithResolutionObserver(collector))
	require.NoError(t, err)
	t.Cleanup(func() { _ = module.Close() })

	app, err := NewApp(VariantObfuscated, NewDevice(testMAC))
	require.NoError(t, err)

	host := NewHost(app, module, broadcaster, log)
	require.NoError(t, host.Attach(ctx))
	t.Cleanup(host.Detach)

	require.NoError(t, app.Tick())

	require.Eventually(t, func() bool {
		return ui.Snapshot().Connected
	}, 10*time.Second, 20*time.Millisecond)

	assert.Equal(t, controller.Snapshot{Left: 99, Right: 99, Box: 100, MAC: testMAC, Connected: true}, ui.Snapshot())

	require.NoError(t, ui.SetModeStrongANC(ctx))

	require.Eventually(t, func() bool {
		return app.Device().State().Switches == 1
	}, 10*time.Second, 20*time.Millisecond)

	assert.Equal(t, models.ModeStrongANC, app.Device().State().Mode)

	host.SetConnected(ctx, false)

	require.Eventually(t, func() bool {
		return !ui.Snapshot().Connected && ui.Snapshot().MAC == ""
	}, 10*time.Second, 20*time.Millisecond)

	require.ErrorIs(t, ui.SetModeOff(ctx), controller.ErrNotConnected)
}
