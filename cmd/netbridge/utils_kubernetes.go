// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/gardener/netbridge/pkg/clients"
	k8sclient "github.com/gardener/netbridge/pkg/clients/kubernetes"
	"github.com/gardener/netbridge/pkg/core/config"
)

// configureKubernetesClient creates the Kubernetes API client and publishes
// it with the clientset. The client connects lazily, so no network call is
// performed here.
func configureKubernetesClient(conf *config.Config, cs *clients.Clientset) error {
	apiRoot, err := k8sclient.APIRoot(conf.Kubernetes)
	if err != nil {
		return fmt.Errorf("kubernetes: %w", err)
	}

	client, err := k8sclient.New(conf.Kubernetes)
	if err != nil {
		return fmt.Errorf("kubernetes: %w", err)
	}

	cs.SetKubernetes(client)
	slog.Info("configured Kubernetes client", "api_root", apiRoot)

	return nil
}
