// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gophercloud/gophercloud/v2"
	gophercloudconfig "github.com/gophercloud/gophercloud/v2/openstack/config"

	"github.com/gardener/netbridge/pkg/clients"
	openstackclient "github.com/gardener/netbridge/pkg/clients/openstack"
	"github.com/gardener/netbridge/pkg/core/config"
	"github.com/gardener/netbridge/pkg/core/registry"
	vaultclient "github.com/gardener/netbridge/pkg/vault/client"
)

var errNoAuthEndpoint = errors.New("no authentication endpoint specified")
var errNoDomain = errors.New("no domain specified")
var errNoProject = errors.New("no project specified")
var errNoAuthenticationMethod = errors.New("no authentication method specified")
var errUnknownAuthenticationMethod = errors.New("unknown authentication method")
var errNoUsername = errors.New("no username specified")
var errNoPasswordFile = errors.New("no password file specified")
var errNoAppCredentialsID = errors.New("no app credentials id specified")
var errNoAppCredentialsSecretFile = errors.New("no app credentials secret file specified")

// openstackVaultSecret provides OpenStack credentials, which were read from a
// Vault secret.
type openstackVaultSecret struct {
	// Kind specifies the kind of OpenStack credentials provided by the
	// secret. It should be [config.OpenStackVaultSecretKindV3Password] for
	// username/password credentials, or
	// [config.OpenStackVaultSecretKindV3ApplicationCredential] for
	// Application Credentials.
	Kind string `json:"kind,omitempty"`

	// Username for v3password auth type.
	Username string `json:"username,omitempty"`
	// Password for v3password auth type.
	Password string `json:"password,omitempty"`

	// ApplicationCredentialID for v3applicationcredential auth type.
	ApplicationCredentialID string `json:"application_credential_id,omitempty"`
	// ApplicationCredentialSecret for v3applicationcredential auth type.
	ApplicationCredentialSecret string `json:"application_credential_secret,omitempty"`
}

// validateOpenStackConfig validates the OpenStack configuration settings.
func validateOpenStackConfig(conf *config.Config) error {
	creds := conf.OpenStack.Credentials

	if creds.AuthEndpoint == "" {
		return fmt.Errorf("openstack: %w", errNoAuthEndpoint)
	}

	if creds.Domain == "" {
		return fmt.Errorf("openstack: %w", errNoDomain)
	}

	if creds.Project == "" {
		return fmt.Errorf("openstack: %w", errNoProject)
	}

	switch creds.Authentication {
	case config.OpenStackAuthenticationMethodPassword:
		if creds.Password.Username == "" {
			return fmt.Errorf("openstack: %w", errNoUsername)
		}
		if creds.Password.PasswordFile == "" {
			return fmt.Errorf("openstack: %w", errNoPasswordFile)
		}
	case config.OpenStackAuthenticationMethodAppCredentials:
		if creds.AppCredentials.AppCredentialsID == "" {
			return fmt.Errorf("openstack: %w", errNoAppCredentialsID)
		}
		if creds.AppCredentials.AppCredentialsSecretFile == "" {
			return fmt.Errorf("openstack: %w", errNoAppCredentialsSecretFile)
		}
	case config.OpenStackAuthenticationMethodVaultSecret:
		if creds.VaultSecret.Server == "" {
			return fmt.Errorf("openstack: no vault server specified")
		}
		if _, ok := conf.Vault.Servers[creds.VaultSecret.Server]; !ok {
			return fmt.Errorf("openstack: credentials refer to unknown vault server %s", creds.VaultSecret.Server)
		}
		if creds.VaultSecret.SecretEngine == "" {
			return fmt.Errorf("openstack: no vault secret engine specified")
		}
		if creds.VaultSecret.SecretPath == "" {
			return fmt.Errorf("openstack: no vault secret path specified")
		}
	case "":
		return fmt.Errorf("openstack: %w", errNoAuthenticationMethod)
	default:
		return fmt.Errorf("openstack: %w: %s", errUnknownAuthenticationMethod, creds.Authentication)
	}

	return nil
}

// newOpenStackProviderClient creates an authenticated provider client based
// on the configured authentication method. Session establishment failures are
// propagated to the caller.
func newOpenStackProviderClient(
	ctx context.Context,
	conf *config.Config,
	vaultClients *registry.Registry[string, *vaultclient.Client],
) (*gophercloud.ProviderClient, error) {
	creds := conf.OpenStack.Credentials

	var authOpts gophercloud.AuthOptions

	switch creds.Authentication {
	case config.OpenStackAuthenticationMethodPassword:
		// Username/password authentication method
		rawPassword, err := os.ReadFile(filepath.Clean(creds.Password.PasswordFile))
		if err != nil {
			return nil, fmt.Errorf("unable to read password file: %w", err)
		}
		password := strings.TrimSpace(string(rawPassword))
		if password == "" {
			return nil, fmt.Errorf("no password specified for project %s", creds.Project)
		}

		authOpts = gophercloud.AuthOptions{
			IdentityEndpoint: creds.AuthEndpoint,
			DomainName:       creds.Domain,
			TenantName:       creds.Project,
			Username:         creds.Password.Username,
			Password:         password,
			AllowReauth:      true,
		}
	case config.OpenStackAuthenticationMethodAppCredentials:
		// Application Credentials authentication method
		rawAppSecret, err := os.ReadFile(filepath.Clean(creds.AppCredentials.AppCredentialsSecretFile))
		if err != nil {
			return nil, fmt.Errorf("unable to read app credentials secret file: %w", err)
		}
		appSecret := strings.TrimSpace(string(rawAppSecret))
		if appSecret == "" {
			return nil, fmt.Errorf("no app credentials secret specified for project %s", creds.Project)
		}

		authOpts = gophercloud.AuthOptions{
			IdentityEndpoint:            creds.AuthEndpoint,
			ApplicationCredentialID:     creds.AppCredentials.AppCredentialsID,
			ApplicationCredentialSecret: appSecret,
			AllowReauth:                 true,
		}
	case config.OpenStackAuthenticationMethodVaultSecret:
		// Credentials from a Vault secret
		vaultClient, ok := vaultClients.Get(creds.VaultSecret.Server)
		if !ok {
			return nil, fmt.Errorf("openstack: credentials refer to unknown vault server %s", creds.VaultSecret.Server)
		}

		vaultSecret, err := vaultClient.KVv2(creds.VaultSecret.SecretEngine).Get(ctx, creds.VaultSecret.SecretPath)
		if err != nil {
			return nil, fmt.Errorf("openstack: cannot read secret %s/%s from vault: %w",
				creds.VaultSecret.SecretEngine, creds.VaultSecret.SecretPath, err)
		}

		data, err := json.Marshal(vaultSecret.Data)
		if err != nil {
			return nil, fmt.Errorf("openstack: cannot marshal vault secret: %w", err)
		}

		var secret openstackVaultSecret
		if err := json.Unmarshal(data, &secret); err != nil {
			return nil, fmt.Errorf("openstack: cannot unmarshal vault secret: %w", err)
		}

		switch secret.Kind {
		case config.OpenStackVaultSecretKindV3Password:
			if secret.Username == "" || secret.Password == "" {
				return nil, fmt.Errorf("openstack: empty username or password in vault secret %s/%s",
					creds.VaultSecret.SecretEngine, creds.VaultSecret.SecretPath)
			}
			authOpts = gophercloud.AuthOptions{
				IdentityEndpoint: creds.AuthEndpoint,
				DomainName:       creds.Domain,
				TenantName:       creds.Project,
				Username:         secret.Username,
				Password:         secret.Password,
				AllowReauth:      true,
			}
		case config.OpenStackVaultSecretKindV3ApplicationCredential:
			if secret.ApplicationCredentialID == "" || secret.ApplicationCredentialSecret == "" {
				return nil, fmt.Errorf("openstack: empty app id or app secret in vault secret %s/%s",
					creds.VaultSecret.SecretEngine, creds.VaultSecret.SecretPath)
			}
			authOpts = gophercloud.AuthOptions{
				IdentityEndpoint:            creds.AuthEndpoint,
				ApplicationCredentialID:     secret.ApplicationCredentialID,
				ApplicationCredentialSecret: secret.ApplicationCredentialSecret,
				AllowReauth:                 true,
			}
		default:
			return nil, fmt.Errorf("openstack: invalid vault secret kind for %s/%s: %q",
				creds.VaultSecret.SecretEngine, creds.VaultSecret.SecretPath, secret.Kind)
		}
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownAuthenticationMethod, creds.Authentication)
	}

	return gophercloudconfig.NewProviderClient(ctx, authOpts)
}

// configureOpenStackClient creates the OpenStack backend connection and
// publishes it with the clientset. The connection covers the Network,
// LoadBalancer and Compute services, with the extra network operations
// already attached.
func configureOpenStackClient(
	ctx context.Context,
	conf *config.Config,
	vaultClients *registry.Registry[string, *vaultclient.Client],
	cs *clients.Clientset,
) error {
	slog.Info("configuring OpenStack clients")
	if err := validateOpenStackConfig(conf); err != nil {
		return fmt.Errorf("invalid OpenStack configuration: %w", err)
	}

	if conf.Debug {
		if err := os.Setenv("OS_DEBUG", "all"); err != nil {
			return err
		}
	}

	providerClient, err := newOpenStackProviderClient(ctx, conf, vaultClients)
	if err != nil {
		return fmt.Errorf("unable to create OpenStack provider client: %w", err)
	}

	conn, err := openstackclient.NewConnection(providerClient, conf.OpenStack.Region)
	if err != nil {
		return fmt.Errorf("unable to create OpenStack connection: %w", err)
	}

	cs.SetOpenStack(conn)
	slog.Info(
		"configured OpenStack clients",
		"project", conf.OpenStack.Credentials.Project,
		"domain", conf.OpenStack.Credentials.Domain,
		"region", conf.OpenStack.Region,
	)

	return nil
}
