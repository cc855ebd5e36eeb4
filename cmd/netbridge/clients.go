// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/gardener/netbridge/pkg/clients"
)

// NewClientsCommand returns a new command for interfacing with the API
// clients.
func NewClientsCommand() *cli.Command {
	cmd := &cli.Command{
		Name:  "clients",
		Usage: "API client operations",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list the configured API clients",
				Action: func(ctx *cli.Context) error {
					conf := getConfig(ctx)

					cs := clients.New()
					if err := configureClients(ctx.Context, conf, cs); err != nil {
						return err
					}

					for _, kind := range cs.Kinds() {
						fmt.Println(kind)
					}

					return nil
				},
			},
		},
	}

	return cmd
}
