// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gardener/netbridge/pkg/metrics"
)

func TestNewServerServesMetrics(t *testing.T) {
	metrics.APIRequestsTotal.WithLabelValues("create_ports").Inc()

	server := metrics.NewServer(":0", "/metrics")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("wanted status 200, got %d", rec.Code)
	}

	if rec.Body.Len() == 0 {
		t.Fatalf("metrics response body is empty")
	}
}
