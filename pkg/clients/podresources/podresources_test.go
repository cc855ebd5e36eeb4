// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package podresources_test

import (
	"testing"

	"github.com/gardener/netbridge/pkg/clients/podresources"
)

func TestSocketPath(t *testing.T) {
	wanted := "/var/lib/kubelet/pod-resources/kubelet.sock"
	got := podresources.SocketPath("/var/lib/kubelet")
	if got != wanted {
		t.Fatalf("wanted socket path %q, got %q", wanted, got)
	}
}

func TestNewIsLazy(t *testing.T) {
	// No kubelet is listening below the given root directory. Constructing
	// the client must still succeed, since it connects lazily.
	client, err := podresources.New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer client.Close()
}
