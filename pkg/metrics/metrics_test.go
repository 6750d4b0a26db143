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

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/headsetbridge/pkg/headset"
	"github.com/carverauto/headsetbridge/pkg/resolve"
)

func TestCollectorCounts(t *testing.T) {
	t.Parallel()

	c := New(false)

	c.ObserveResolution("method", resolve.TierStructural)
	c.ObserveResolution("method", resolve.TierStructural)
	c.ObserveResolution("class", resolve.TierLiteral)
	c.ObserveDispatch(headset.DispatchOK)
	c.ObserveDispatch(headset.DispatchNoIdentity)
	c.ObserveTelemetry(true)
	c.ObserveTelemetry(false)
	c.ObserveTelemetry(false)
	c.ObserveCommandSent("strong-anc")

	assert.InDelta(t, 2, testutil.ToFloat64(c.resolutions.WithLabelValues("method", "structural")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.resolutions.WithLabelValues("class", "literal")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.dispatches.WithLabelValues(headset.DispatchOK)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.dispatches.WithLabelValues(headset.DispatchNoIdentity)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.telemetry.WithLabelValues("published")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(c.telemetry.WithLabelValues("suppressed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.commands.WithLabelValues("strong-anc")), 0)
}

func TestCollectorsAreIndependent(t *testing.T) {
	t.Parallel()

	a, b := New(true), New(true)
	a.ObserveDispatch(headset.DispatchFault)

	assert.InDelta(t, 0, testutil.ToFloat64(b.dispatches.WithLabelValues(headset.DispatchFault)), 0)
}

func TestHandlerExposesMetrics(t *testing.T) {
	t.Parallel()

	c := New(false)
	c.ObserveDispatch(headset.DispatchNoSingleton)

	srv := httptest.NewServer(c.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `headsetbridge_dispatch_total{result="no_singleton"} 1`)
	assert.Contains(t, string(body), `headsetbridge_build_info{build="dev",version="dev"} 1`)
}
