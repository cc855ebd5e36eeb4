// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package clients provides the registry of API clients used by netbridge.
//
// A [Clientset] is populated once during startup and passed by reference to
// every component which needs to interface with a backend. Factories run to
// completion before any accessor is called; after that the clientset is
// read-only.
package clients

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gophercloud/gophercloud/v2"
	"k8s.io/client-go/kubernetes"

	openstackclient "github.com/gardener/netbridge/pkg/clients/openstack"
	"github.com/gardener/netbridge/pkg/clients/podresources"
	"github.com/gardener/netbridge/pkg/core/registry"
)

// Kind identifies the kind of an API client within the [Clientset].
type Kind string

const (
	// KindOpenStack identifies the OpenStack backend connection.
	KindOpenStack Kind = "openstack"

	// KindKubernetes identifies the Kubernetes API client.
	KindKubernetes Kind = "kubernetes"

	// KindPodResources identifies the kubelet pod-resources client.
	KindPodResources Kind = "pod-resources"
)

// ErrNotInitialized is an error, which is returned when an API client is
// requested before the respective factory has run. It signals a broken
// startup sequence and should be treated as fatal.
var ErrNotInitialized = errors.New("client not initialized")

// Clientset holds the API clients used by netbridge.
type Clientset struct {
	registry *registry.Registry[Kind, any]
}

// New creates a new empty [Clientset].
func New() *Clientset {
	return &Clientset{
		registry: registry.New[Kind, any](),
	}
}

// get returns the client of the given kind from the clientset.
func get[T any](cs *Clientset, kind Kind) (T, error) {
	var zero T

	val, ok := cs.registry.Get(kind)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNotInitialized, kind)
	}

	client, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s holds %T", ErrNotInitialized, kind, val)
	}

	return client, nil
}

// SetOpenStack publishes the OpenStack backend connection. A previously
// published connection is replaced.
func (cs *Clientset) SetOpenStack(conn *openstackclient.Connection) {
	cs.registry.Overwrite(KindOpenStack, conn)
}

// SetKubernetes publishes the Kubernetes API client. A previously published
// client is replaced.
func (cs *Clientset) SetKubernetes(client *kubernetes.Clientset) {
	cs.registry.Overwrite(KindKubernetes, client)
}

// SetPodResources publishes the pod-resources client. A previously published
// client is replaced.
func (cs *Clientset) SetPodResources(client *podresources.Client) {
	cs.registry.Overwrite(KindPodResources, client)
}

// OpenStack returns the OpenStack backend connection.
func (cs *Clientset) OpenStack() (*openstackclient.Connection, error) {
	return get[*openstackclient.Connection](cs, KindOpenStack)
}

// Network returns the Network API client of the OpenStack backend connection.
func (cs *Clientset) Network() (*openstackclient.NetworkClient, error) {
	conn, err := cs.OpenStack()
	if err != nil {
		return nil, err
	}

	return conn.Network, nil
}

// Neutron returns the Network API client of the OpenStack backend connection.
//
// Deprecated: use [Clientset.Network] instead.
func (cs *Clientset) Neutron() (*openstackclient.NetworkClient, error) {
	slog.Warn("Neutron() is deprecated, use Network() instead")

	return cs.Network()
}

// LoadBalancer returns the LoadBalancer API client of the OpenStack backend
// connection.
func (cs *Clientset) LoadBalancer() (*gophercloud.ServiceClient, error) {
	conn, err := cs.OpenStack()
	if err != nil {
		return nil, err
	}

	return conn.LoadBalancer, nil
}

// Compute returns the Compute API client of the OpenStack backend connection.
func (cs *Clientset) Compute() (*gophercloud.ServiceClient, error) {
	conn, err := cs.OpenStack()
	if err != nil {
		return nil, err
	}

	return conn.Compute, nil
}

// Kubernetes returns the Kubernetes API client.
func (cs *Clientset) Kubernetes() (*kubernetes.Clientset, error) {
	return get[*kubernetes.Clientset](cs, KindKubernetes)
}

// PodResources returns the pod-resources client.
func (cs *Clientset) PodResources() (*podresources.Client, error) {
	return get[*podresources.Client](cs, KindPodResources)
}

// Kinds returns the kinds of the clients already published with the
// clientset.
func (cs *Clientset) Kinds() []Kind {
	kinds := make([]Kind, 0, cs.registry.Length())
	_ = cs.registry.Range(func(kind Kind, _ any) error {
		kinds = append(kinds, kind)

		return nil
	})

	return kinds
}
