// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package client provides an API client for interfacing with Vault, from which
// netbridge resolves backend credentials during startup.
package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	vault "github.com/hashicorp/vault/api"

	"github.com/gardener/netbridge/pkg/core/config"
)

// ErrNoEndpoint is an error, which is returned when no Vault endpoint was
// specified.
var ErrNoEndpoint = errors.New("no vault endpoint specified")

// ErrNoTokenFile is an error, which is returned when no Vault token file was
// specified.
var ErrNoTokenFile = errors.New("no vault token file specified")

// ErrEmptyToken is an error, which is returned when the configured token file
// contains an empty token.
var ErrEmptyToken = errors.New("empty vault token")

// Client is a wrapper around [vault.Client].
//
// Credentials are resolved once during startup, so the client does not manage
// the auth token lifetime.
type Client struct {
	*vault.Client
}

// NewFromConfig creates a new [Client] based on the provided
// [config.VaultServerConfig] settings.
func NewFromConfig(conf config.VaultServerConfig) (*Client, error) {
	if conf.Endpoint == "" {
		return nil, ErrNoEndpoint
	}

	if conf.TokenFile == "" {
		return nil, ErrNoTokenFile
	}

	apiConfig := vault.DefaultConfig()
	apiConfig.Address = conf.Endpoint

	if conf.TLSSkipVerify {
		if err := apiConfig.ConfigureTLS(&vault.TLSConfig{Insecure: true}); err != nil {
			return nil, fmt.Errorf("vault: cannot configure TLS: %w", err)
		}
	}

	apiClient, err := vault.NewClient(apiConfig)
	if err != nil {
		return nil, fmt.Errorf("vault: cannot create API client: %w", err)
	}

	rawToken, err := os.ReadFile(filepath.Clean(conf.TokenFile))
	if err != nil {
		return nil, fmt.Errorf("vault: cannot read token file: %w", err)
	}

	token := strings.TrimSpace(string(rawToken))
	if token == "" {
		return nil, fmt.Errorf("vault: %w: %s", ErrEmptyToken, conf.TokenFile)
	}
	apiClient.SetToken(token)

	if conf.Namespace != "" {
		apiClient.SetNamespace(conf.Namespace)
	}

	return &Client{Client: apiClient}, nil
}
