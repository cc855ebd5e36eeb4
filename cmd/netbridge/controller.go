// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/gardener/netbridge/pkg/clients"
	"github.com/gardener/netbridge/pkg/metrics"
)

// defaultMetricsAddress is the default address on which metrics are exposed.
const defaultMetricsAddress = ":6080"

// defaultMetricsPath is the default HTTP path on which metrics are exposed.
const defaultMetricsPath = "/metrics"

// NewControllerCommand returns a new command for interfacing with the
// controller.
func NewControllerCommand() *cli.Command {
	cmd := &cli.Command{
		Name:    "controller",
		Usage:   "controller operations",
		Aliases: []string{"c"},
		Subcommands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "start the controller",
				Action: runController,
			},
		},
	}

	return cmd
}

// runController configures the API clients and serves metrics until a
// termination signal arrives.
func runController(ctx *cli.Context) error {
	conf := getConfig(ctx)

	cs := clients.New()
	if err := configureClients(ctx.Context, conf, cs); err != nil {
		return err
	}

	addr := conf.Metrics.Address
	if addr == "" {
		addr = defaultMetricsAddress
	}
	path := conf.Metrics.Path
	if path == "" {
		path = defaultMetricsPath
	}

	server := metrics.NewServer(addr, path)
	go func() {
		slog.Info("serving metrics", "address", addr, "path", path)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", "reason", err)
		}
	}()

	slog.Info("netbridge is ready", "clients", cs.Kinds())

	sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
