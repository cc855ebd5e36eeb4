// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/gardener/netbridge/pkg/core/config"
	"github.com/gardener/netbridge/pkg/core/registry"
	vaultclient "github.com/gardener/netbridge/pkg/vault/client"
)

// configureVaultClients creates the API clients for the configured Vault
// servers, from which backend credentials may be resolved.
func configureVaultClients(conf *config.Config) (*registry.Registry[string, *vaultclient.Client], error) {
	vaultClients := registry.New[string, *vaultclient.Client]()

	if !conf.Vault.IsEnabled {
		return vaultClients, nil
	}

	slog.Info("configuring vault clients")
	for name, serverConfig := range conf.Vault.Servers {
		client, err := vaultclient.NewFromConfig(serverConfig)
		if err != nil {
			return nil, fmt.Errorf("vault: cannot configure client for %s: %w", name, err)
		}

		vaultClients.Overwrite(name, client)
		slog.Info(
			"configured vault client",
			"name", name,
			"address", client.Address(),
		)
	}

	return vaultClients, nil
}
