// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package kubernetes_test

import (
	"errors"
	"testing"

	"github.com/gardener/netbridge/pkg/clients/kubernetes"
	"github.com/gardener/netbridge/pkg/core/config"
)

func TestAPIRoot(t *testing.T) {
	testCases := []struct {
		desc    string
		conf    config.KubernetesConfig
		host    string
		port    string
		wanted  string
		wantErr error
	}{
		{
			desc:   "configured api root wins over environment",
			conf:   config.KubernetesConfig{APIRoot: "https://example:6443"},
			host:   "10.0.0.1",
			port:   "443",
			wanted: "https://example:6443",
		},
		{
			desc:   "ipv6 host is bracketed",
			host:   "::1",
			port:   "443",
			wanted: "https://[::1]:443",
		},
		{
			desc:   "ipv4 host is used verbatim",
			host:   "10.0.0.1",
			port:   "443",
			wanted: "https://10.0.0.1:443",
		},
		{
			desc:   "hostname is used verbatim",
			host:   "my-host",
			port:   "8443",
			wanted: "https://my-host:8443",
		},
		{
			desc:    "missing host and port",
			wantErr: kubernetes.ErrNoAPIRoot,
		},
		{
			desc:    "missing port",
			host:    "10.0.0.1",
			wantErr: kubernetes.ErrNoAPIRoot,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Setenv(kubernetes.EnvServiceHost, tc.host)
			t.Setenv(kubernetes.EnvServicePortHTTPS, tc.port)

			apiRoot, err := kubernetes.APIRoot(tc.conf)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("wanted error %v, got %v", tc.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("APIRoot failed: %v", err)
			}

			if apiRoot != tc.wanted {
				t.Fatalf("wanted API root %q, got %q", tc.wanted, apiRoot)
			}
		})
	}
}

func TestNewIsLazy(t *testing.T) {
	// No API server is listening on the configured root. Constructing the
	// client must still succeed, since it connects lazily.
	conf := config.KubernetesConfig{
		APIRoot: "https://kubernetes.invalid:6443",
	}

	client, err := kubernetes.New(conf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if client == nil {
		t.Fatalf("New returned a nil client")
	}
}
