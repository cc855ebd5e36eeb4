// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package openstack

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/http"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/layer3/routers"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/trunks"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/ports"

	"github.com/gardener/netbridge/pkg/metrics"
)

// NetworkClient wraps the Network API service client with operations the SDK
// does not provide, or provides without proper error propagation.
//
// The native SDK operations remain available through the embedded
// [gophercloud.ServiceClient].
type NetworkClient struct {
	*gophercloud.ServiceClient
}

// NewNetworkClient wraps the given Network API service client.
func NewNetworkClient(client *gophercloud.ServiceClient) *NetworkClient {
	return &NetworkClient{ServiceClient: client}
}

// TrunkByID constructs a local trunk handle for the given identifier, without
// fetching the trunk from the backend.
func TrunkByID(id string) *trunks.Trunk {
	return &trunks.Trunk{ID: id}
}

// CreatePorts creates the given ports with a single bulk request.
//
// On success it returns a single-use sequence, which lazily decodes one
// [ports.Port] per created port, in the order reported by the backend.
//
// TODO: drop this operation once bulk port creation lands in gophercloud.
func (c *NetworkClient) CreatePorts(ctx context.Context, opts []ports.CreateOpts) (iter.Seq2[*ports.Port, error], error) {
	portList := make([]map[string]any, 0, len(opts))
	for _, opt := range opts {
		b, err := opt.ToPortCreateMap()
		if err != nil {
			return nil, err
		}

		port, ok := b["port"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid port create request body: %v", b)
		}
		portList = append(portList, port)
	}

	var result struct {
		Ports []json.RawMessage `json:"ports"`
	}

	reqBody := map[string]any{"ports": portList}
	_, err := c.Post(ctx, c.ServiceURL("ports"), reqBody, &result, &gophercloud.RequestOpts{
		OkCodes: []int{http.StatusCreated},
	})
	countRequest("create_ports", err)
	if err != nil {
		return nil, fmt.Errorf("unable to bulk create ports: %w", errFromResponse(err))
	}

	seq := func(yield func(*ports.Port, error) bool) {
		for _, item := range result.Ports {
			var port ports.Port
			if err := json.Unmarshal(item, &port); err != nil {
				yield(nil, fmt.Errorf("unable to decode port: %w", err))

				return
			}

			if !yield(&port, nil) {
				return
			}
		}
	}

	return seq, nil
}

// AddTrunkSubports adds the given sub-ports to the trunk.
//
// The native SDK operation ignores error responses, which is the reason this
// operation issues the request itself and validates the response. On success
// the trunk's cached sub-ports are updated with the submitted list, without
// re-fetching the trunk from the backend.
func (c *NetworkClient) AddTrunkSubports(ctx context.Context, trunk *trunks.Trunk, subports []trunks.Subport) (*trunks.Trunk, error) {
	reqBody := map[string]any{"sub_ports": subports}
	_, err := c.Put(ctx, c.ServiceURL("trunks", trunk.ID, "add_subports"), reqBody, nil, &gophercloud.RequestOpts{
		OkCodes: []int{http.StatusOK},
	})
	countRequest("add_trunk_subports", err)
	if err != nil {
		return nil, errFromResponse(err)
	}

	trunk.Subports = subports

	return trunk, nil
}

// RemoveTrunkSubports removes the given sub-ports from the trunk.
//
// On success the removed port IDs are pruned from the trunk's cached
// sub-ports, without re-fetching the trunk from the backend.
func (c *NetworkClient) RemoveTrunkSubports(ctx context.Context, trunk *trunks.Trunk, subports []trunks.RemoveSubport) (*trunks.Trunk, error) {
	reqBody := map[string]any{"sub_ports": subports}
	_, err := c.Put(ctx, c.ServiceURL("trunks", trunk.ID, "remove_subports"), reqBody, nil, &gophercloud.RequestOpts{
		OkCodes: []int{http.StatusOK},
	})
	countRequest("remove_trunk_subports", err)
	if err != nil {
		return nil, errFromResponse(err)
	}

	removed := make(map[string]struct{}, len(subports))
	for _, subport := range subports {
		removed[subport.PortID] = struct{}{}
	}

	kept := make([]trunks.Subport, 0, len(trunk.Subports))
	for _, subport := range trunk.Subports {
		if _, ok := removed[subport.PortID]; !ok {
			kept = append(kept, subport)
		}
	}
	trunk.Subports = kept

	return trunk, nil
}

// AddRouterInterface attaches an internal interface to the router.
//
// The response body is inspected for an embedded Neutron error before
// decoding, since Neutron reports some router errors with a 200 status code.
func (c *NetworkClient) AddRouterInterface(ctx context.Context, routerID string, opts routers.AddInterfaceOpts) (*routers.InterfaceInfo, error) {
	return c.routerInterfaceRequest(ctx, "add_router_interface", routerID, map[string]any{
		"subnet_id": opts.SubnetID,
		"port_id":   opts.PortID,
	})
}

// RemoveRouterInterface detaches an internal interface from the router.
//
// The response body is inspected for an embedded Neutron error before
// decoding, since Neutron reports some router errors with a 200 status code.
func (c *NetworkClient) RemoveRouterInterface(ctx context.Context, routerID string, opts routers.RemoveInterfaceOpts) (*routers.InterfaceInfo, error) {
	return c.routerInterfaceRequest(ctx, "remove_router_interface", routerID, map[string]any{
		"subnet_id": opts.SubnetID,
		"port_id":   opts.PortID,
	})
}

// routerInterfaceRequest issues a router interface mutation and translates
// embedded Neutron errors.
func (c *NetworkClient) routerInterfaceRequest(ctx context.Context, action, routerID string, reqBody map[string]any) (*routers.InterfaceInfo, error) {
	// Omit empty selectors, the backend rejects requests providing both.
	for k, v := range reqBody {
		if s, ok := v.(string); ok && s == "" {
			delete(reqBody, k)
		}
	}

	var raw json.RawMessage
	_, err := c.Put(ctx, c.ServiceURL("routers", routerID, action), reqBody, &raw, &gophercloud.RequestOpts{
		OkCodes: []int{http.StatusOK},
	})
	countRequest(action, err)
	if err != nil {
		return nil, errFromResponse(err)
	}

	if err := TranslateNeutronError(raw); err != nil {
		return nil, err
	}

	var info routers.InterfaceInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("unable to decode router interface info: %w", err)
	}

	return &info, nil
}

// countRequest records API request metrics for the given operation.
func countRequest(operation string, err error) {
	metrics.APIRequestsTotal.WithLabelValues(operation).Inc()
	if err != nil {
		metrics.APIRequestErrorsTotal.WithLabelValues(operation).Inc()
	}
}
