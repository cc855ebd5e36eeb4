// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package clients_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/gophercloud/gophercloud/v2"

	"github.com/gardener/netbridge/pkg/clients"
	k8sclient "github.com/gardener/netbridge/pkg/clients/kubernetes"
	openstackclient "github.com/gardener/netbridge/pkg/clients/openstack"
	"github.com/gardener/netbridge/pkg/clients/podresources"
	"github.com/gardener/netbridge/pkg/core/config"
)

// newTestConnection returns an OpenStack connection suitable for clientset
// tests. No network calls are performed.
func newTestConnection() *openstackclient.Connection {
	serviceClient := &gophercloud.ServiceClient{
		ProviderClient: &gophercloud.ProviderClient{},
		Endpoint:       "http://openstack.invalid/",
	}

	return &openstackclient.Connection{
		Network:      openstackclient.NewNetworkClient(serviceClient),
		LoadBalancer: serviceClient,
		Compute:      serviceClient,
	}
}

func TestAccessorsBeforeSetup(t *testing.T) {
	cs := clients.New()

	if _, err := cs.OpenStack(); !errors.Is(err, clients.ErrNotInitialized) {
		t.Fatalf("OpenStack: wanted ErrNotInitialized, got %v", err)
	}

	if _, err := cs.Network(); !errors.Is(err, clients.ErrNotInitialized) {
		t.Fatalf("Network: wanted ErrNotInitialized, got %v", err)
	}

	if _, err := cs.LoadBalancer(); !errors.Is(err, clients.ErrNotInitialized) {
		t.Fatalf("LoadBalancer: wanted ErrNotInitialized, got %v", err)
	}

	if _, err := cs.Compute(); !errors.Is(err, clients.ErrNotInitialized) {
		t.Fatalf("Compute: wanted ErrNotInitialized, got %v", err)
	}

	if _, err := cs.Kubernetes(); !errors.Is(err, clients.ErrNotInitialized) {
		t.Fatalf("Kubernetes: wanted ErrNotInitialized, got %v", err)
	}

	if _, err := cs.PodResources(); !errors.Is(err, clients.ErrNotInitialized) {
		t.Fatalf("PodResources: wanted ErrNotInitialized, got %v", err)
	}
}

func TestOpenStackAccessors(t *testing.T) {
	cs := clients.New()
	conn := newTestConnection()
	cs.SetOpenStack(conn)

	got, err := cs.OpenStack()
	if err != nil {
		t.Fatalf("OpenStack failed: %v", err)
	}
	if got != conn {
		t.Fatalf("OpenStack did not return the published connection")
	}

	// Repeated calls return the same instance
	again, err := cs.OpenStack()
	if err != nil {
		t.Fatalf("OpenStack failed: %v", err)
	}
	if again != got {
		t.Fatalf("OpenStack is not identity-stable across calls")
	}

	network, err := cs.Network()
	if err != nil {
		t.Fatalf("Network failed: %v", err)
	}
	if network != conn.Network {
		t.Fatalf("Network did not return the connection's network client")
	}

	lb, err := cs.LoadBalancer()
	if err != nil {
		t.Fatalf("LoadBalancer failed: %v", err)
	}
	if lb != conn.LoadBalancer {
		t.Fatalf("LoadBalancer did not return the connection's load balancer client")
	}

	compute, err := cs.Compute()
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if compute != conn.Compute {
		t.Fatalf("Compute did not return the connection's compute client")
	}
}

func TestNeutronDelegatesToNetwork(t *testing.T) {
	cs := clients.New()
	conn := newTestConnection()
	cs.SetOpenStack(conn)

	network, err := cs.Neutron() //nolint:staticcheck // exercises the deprecated accessor
	if err != nil {
		t.Fatalf("Neutron failed: %v", err)
	}

	if network != conn.Network {
		t.Fatalf("Neutron did not delegate to Network")
	}
}

func TestSetKubernetesAndGet(t *testing.T) {
	cs := clients.New()
	client, err := k8sclient.New(config.KubernetesConfig{APIRoot: "https://kubernetes.invalid:6443"})
	if err != nil {
		t.Fatalf("cannot create kubernetes client: %v", err)
	}
	cs.SetKubernetes(client)

	got, err := cs.Kubernetes()
	if err != nil {
		t.Fatalf("Kubernetes failed: %v", err)
	}
	if got != client {
		t.Fatalf("Kubernetes did not return the published client")
	}
}

func TestSetPodResourcesAndGet(t *testing.T) {
	cs := clients.New()
	client, err := podresources.New(t.TempDir())
	if err != nil {
		t.Fatalf("cannot create pod-resources client: %v", err)
	}
	defer client.Close()
	cs.SetPodResources(client)

	got, err := cs.PodResources()
	if err != nil {
		t.Fatalf("PodResources failed: %v", err)
	}
	if got != client {
		t.Fatalf("PodResources did not return the published client")
	}
}

func TestSetOpenStackOverwrites(t *testing.T) {
	cs := clients.New()
	first := newTestConnection()
	second := newTestConnection()

	cs.SetOpenStack(first)
	cs.SetOpenStack(second)

	got, err := cs.OpenStack()
	if err != nil {
		t.Fatalf("OpenStack failed: %v", err)
	}
	if got != second {
		t.Fatalf("repeated setup did not overwrite the previous connection")
	}
}

func TestKinds(t *testing.T) {
	cs := clients.New()
	if len(cs.Kinds()) != 0 {
		t.Fatalf("new clientset must have no kinds, got %v", cs.Kinds())
	}

	cs.SetOpenStack(newTestConnection())

	kinds := cs.Kinds()
	if !slices.Contains(kinds, clients.KindOpenStack) || len(kinds) != 1 {
		t.Fatalf("wanted kinds [openstack], got %v", kinds)
	}
}
