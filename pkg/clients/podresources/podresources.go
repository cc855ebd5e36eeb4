// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package podresources provides a client for the kubelet pod-resources
// endpoint, which exposes per-pod device allocations such as SR-IOV VFs.
package podresources

import (
	"context"
	"fmt"
	"path/filepath"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	podresourcesv1 "k8s.io/kubelet/pkg/apis/podresources/v1"
)

// SocketPath returns the path to the pod-resources socket below the given
// kubelet root directory.
func SocketPath(kubeletRootDir string) string {
	return filepath.Join(kubeletRootDir, "pod-resources", "kubelet.sock")
}

// Client is a client for the kubelet pod-resources endpoint.
type Client struct {
	conn *grpc.ClientConn
	api  podresourcesv1.PodResourcesListerClient
}

// New creates a new [Client] for the pod-resources endpoint rooted at the
// given kubelet root directory.
//
// The connection is established lazily, on the first call.
func New(kubeletRootDir string) (*Client, error) {
	target := "unix://" + SocketPath(kubeletRootDir)
	conn, err := grpc.NewClient(
		target,
		// The endpoint is a node-local socket, access is controlled
		// through filesystem permissions.
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create pod-resources client: %w", err)
	}

	client := &Client{
		conn: conn,
		api:  podresourcesv1.NewPodResourcesListerClient(conn),
	}

	return client, nil
}

// List returns the resources allocated to each pod on the node.
func (c *Client) List(ctx context.Context) (*podresourcesv1.ListPodResourcesResponse, error) {
	return c.api.List(ctx, &podresourcesv1.ListPodResourcesRequest{})
}

// GetAllocatableResources returns the resources available for allocation on
// the node.
func (c *Client) GetAllocatableResources(ctx context.Context) (*podresourcesv1.AllocatableResourcesResponse, error) {
	return c.api.GetAllocatableResources(ctx, &podresourcesv1.AllocatableResourcesRequest{})
}

// Close tears down the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
