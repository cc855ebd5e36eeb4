// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gardener/netbridge/pkg/clients"
	"github.com/gardener/netbridge/pkg/clients/podresources"
	"github.com/gardener/netbridge/pkg/core/config"
)

// errNoKubeletRootDir is an error, which is returned when no kubelet root
// directory has been configured.
var errNoKubeletRootDir = errors.New("no kubelet root directory specified")

// configurePodResourcesClient creates the kubelet pod-resources client and
// publishes it with the clientset.
func configurePodResourcesClient(conf *config.Config, cs *clients.Clientset) error {
	if conf.SRIOV.KubeletRootDir == "" {
		return fmt.Errorf("sriov: %w", errNoKubeletRootDir)
	}

	client, err := podresources.New(conf.SRIOV.KubeletRootDir)
	if err != nil {
		return fmt.Errorf("sriov: %w", err)
	}

	cs.SetPodResources(client)
	slog.Info(
		"configured pod-resources client",
		"socket", podresources.SocketPath(conf.SRIOV.KubeletRootDir),
	)

	return nil
}
