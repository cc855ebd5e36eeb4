// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/gardener/netbridge/pkg/clients"
	"github.com/gardener/netbridge/pkg/core/config"
	slogutils "github.com/gardener/netbridge/pkg/utils/slog"
)

// configKey is the context key for the parsed configuration.
type configKey struct{}

// getConfig returns the parsed configuration from the CLI context.
func getConfig(ctx *cli.Context) *config.Config {
	return ctx.Context.Value(configKey{}).(*config.Config)
}

// configureLogging configures the default logger based on the provided
// configuration.
func configureLogging(conf *config.Config) error {
	if conf.Debug {
		conf.Logging.Level = string(slogutils.LevelDebug)
	}

	logger, err := slogutils.NewFromConfig(os.Stdout, conf.Logging)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	return nil
}

// configureClients runs the client factories in their required order and
// publishes the constructed clients with the given clientset. It must run to
// completion before the clientset is handed out to any consumer.
func configureClients(ctx context.Context, conf *config.Config, cs *clients.Clientset) error {
	vaultClients, err := configureVaultClients(conf)
	if err != nil {
		return err
	}

	if err := configureOpenStackClient(ctx, conf, vaultClients, cs); err != nil {
		return err
	}

	if err := configureKubernetesClient(conf, cs); err != nil {
		return err
	}

	// The pod-resources client is only needed by SR-IOV aware deployments.
	if conf.SRIOV.IsEnabled {
		if err := configurePodResourcesClient(conf, cs); err != nil {
			return err
		}
	}

	return nil
}
