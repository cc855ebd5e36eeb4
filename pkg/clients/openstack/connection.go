// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package openstack provides the API clients for interfacing with the
// OpenStack backend.
package openstack

import (
	"fmt"

	"github.com/gophercloud/gophercloud/v2"
	sdk "github.com/gophercloud/gophercloud/v2/openstack"
)

// Connection is a session-bound handle to the OpenStack backend, covering the
// Network, LoadBalancer and Compute services.
//
// The Network service client is published with the extra operations already
// attached, so every consumer sees a uniformly-capable client.
type Connection struct {
	provider *gophercloud.ProviderClient

	// Region is the region from which the service endpoints were resolved.
	Region string

	// Network is the Network API service client.
	Network *NetworkClient

	// LoadBalancer is the LoadBalancer API service client.
	LoadBalancer *gophercloud.ServiceClient

	// Compute is the Compute API service client.
	Compute *gophercloud.ServiceClient
}

// NewConnection creates a new [Connection] from an authenticated provider
// client. Service endpoints are resolved from the service catalog for the
// given region.
func NewConnection(provider *gophercloud.ProviderClient, region string) (*Connection, error) {
	endpointOpts := gophercloud.EndpointOpts{
		Region: region,
	}

	networkClient, err := sdk.NewNetworkV2(provider, endpointOpts)
	if err != nil {
		return nil, fmt.Errorf("unable to create network client: %w", err)
	}

	loadBalancerClient, err := sdk.NewLoadBalancerV2(provider, endpointOpts)
	if err != nil {
		return nil, fmt.Errorf("unable to create load balancer client: %w", err)
	}

	computeClient, err := sdk.NewComputeV2(provider, endpointOpts)
	if err != nil {
		return nil, fmt.Errorf("unable to create compute client: %w", err)
	}

	conn := &Connection{
		provider:     provider,
		Region:       region,
		Network:      NewNetworkClient(networkClient),
		LoadBalancer: loadBalancerClient,
		Compute:      computeClient,
	}

	return conn, nil
}

// Provider returns the underlying provider client.
func (c *Connection) Provider() *gophercloud.ProviderClient {
	return c.provider
}
