// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package config provides the netbridge configuration model.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNoConfigVersion error is returned when the configuration does not specify
// config format version.
var ErrNoConfigVersion = errors.New("config format version not specified")

// ErrUnsupportedVersion is an error, which is returned when the config file
// uses an incompatible version format.
var ErrUnsupportedVersion = errors.New("unsupported config format version")

// ConfigFormatVersion represents the supported config format version.
const ConfigFormatVersion = "v1alpha1"

// OpenStackAuthenticationMethodPassword is the username/password
// authentication method.
const OpenStackAuthenticationMethodPassword = "password"

// OpenStackAuthenticationMethodAppCredentials is the Application Credentials
// authentication method.
const OpenStackAuthenticationMethodAppCredentials = "app_credentials"

// OpenStackAuthenticationMethodVaultSecret is the authentication method, which
// reads the OpenStack credentials from a Vault secret.
const OpenStackAuthenticationMethodVaultSecret = "vault_secret"

// OpenStackVaultSecretKindV3Password is the Vault secret kind providing
// username/password credentials.
const OpenStackVaultSecretKindV3Password = "v3password"

// OpenStackVaultSecretKindV3ApplicationCredential is the Vault secret kind
// providing Application Credentials.
const OpenStackVaultSecretKindV3ApplicationCredential = "v3applicationcredential"

// Config represents the netbridge configuration.
type Config struct {
	// Version is the version of the config file.
	Version string `yaml:"version"`

	// Debug configures debug mode, if set to true.
	Debug bool `yaml:"debug"`

	// Logging provides the logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics provides the metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// OpenStack provides the configuration for the OpenStack backend.
	OpenStack OpenStackConfig `yaml:"openstack"`

	// Kubernetes provides the configuration for the Kubernetes API client.
	Kubernetes KubernetesConfig `yaml:"kubernetes"`

	// SRIOV provides the SR-IOV specific configuration.
	SRIOV SRIOVConfig `yaml:"sriov"`

	// Vault provides the configuration of the Vault servers, from which
	// credentials may be resolved.
	Vault VaultConfig `yaml:"vault"`
}

// LoggingConfig provides the logging configuration settings.
type LoggingConfig struct {
	// Level specifies the log level to use.
	Level string `yaml:"level"`

	// Format specifies the log format to use.
	Format string `yaml:"format"`

	// AddSource specifies whether to log the source code position of the
	// log statement.
	AddSource bool `yaml:"add_source"`

	// Attributes specifies additional attributes to add to each log event.
	Attributes map[string]string `yaml:"attributes"`
}

// MetricsConfig provides the metrics configuration settings.
type MetricsConfig struct {
	// Address is the network address on which the metrics are exposed.
	Address string `yaml:"address"`

	// Path is the HTTP path on which the metrics are exposed.
	Path string `yaml:"path"`
}

// OpenStackConfig provides the OpenStack specific configuration settings.
type OpenStackConfig struct {
	// Region is the region to use when resolving service endpoints from
	// the service catalog.
	Region string `yaml:"region"`

	// Credentials provides the credentials used for authenticating against
	// the Identity service.
	Credentials OpenStackCredentialsConfig `yaml:"credentials"`
}

// OpenStackCredentialsConfig represents the OpenStack credentials
// configuration.
type OpenStackCredentialsConfig struct {
	// AuthEndpoint is the endpoint of the Identity service.
	AuthEndpoint string `yaml:"auth_endpoint"`

	// Domain is the domain to authenticate against.
	Domain string `yaml:"domain"`

	// Project is the project to authenticate against.
	Project string `yaml:"project"`

	// Authentication specifies the authentication method to use. The
	// supported methods are [OpenStackAuthenticationMethodPassword],
	// [OpenStackAuthenticationMethodAppCredentials] and
	// [OpenStackAuthenticationMethodVaultSecret].
	Authentication string `yaml:"authentication"`

	// Password provides the settings for the username/password
	// authentication method.
	Password OpenStackPasswordConfig `yaml:"password"`

	// AppCredentials provides the settings for the Application Credentials
	// authentication method.
	AppCredentials OpenStackAppCredentialsConfig `yaml:"app_credentials"`

	// VaultSecret provides the settings for resolving the credentials from
	// a Vault secret.
	VaultSecret OpenStackVaultSecretConfig `yaml:"vault_secret"`
}

// OpenStackPasswordConfig provides the settings for username/password
// authentication.
type OpenStackPasswordConfig struct {
	// Username is the username to authenticate with.
	Username string `yaml:"username"`

	// PasswordFile is a path to a file containing the password.
	PasswordFile string `yaml:"password_file"`
}

// OpenStackAppCredentialsConfig provides the settings for Application
// Credentials authentication.
type OpenStackAppCredentialsConfig struct {
	// AppCredentialsID is the id of the application credentials.
	AppCredentialsID string `yaml:"app_credentials_id"`

	// AppCredentialsSecretFile is a path to a file containing the
	// application credentials secret.
	AppCredentialsSecretFile string `yaml:"app_credentials_secret_file"`
}

// OpenStackVaultSecretConfig provides the settings for resolving OpenStack
// credentials from a Vault secret.
type OpenStackVaultSecretConfig struct {
	// Server is the name of the Vault server from which to read the
	// secret. It must refer to a server defined in [VaultConfig.Servers].
	Server string `yaml:"server"`

	// SecretEngine is the KV secret engine mount path.
	SecretEngine string `yaml:"secret_engine"`

	// SecretPath is the path to the secret.
	SecretPath string `yaml:"secret_path"`
}

// KubernetesConfig provides the Kubernetes API client configuration settings.
type KubernetesConfig struct {
	// APIRoot is the root URL of the Kubernetes API. When empty the API
	// root is derived from the in-cluster environment variables.
	APIRoot string `yaml:"api_root"`

	// UserAgent is the User-Agent header to use when talking to the
	// Kubernetes API.
	UserAgent string `yaml:"user_agent"`

	// CAFile is a path to a file containing the CA certificate of the
	// Kubernetes API.
	CAFile string `yaml:"ca_file"`

	// TokenFile is a path to a file containing a bearer token for
	// authenticating against the Kubernetes API.
	TokenFile string `yaml:"token_file"`
}

// SRIOVConfig provides the SR-IOV specific configuration settings.
type SRIOVConfig struct {
	// IsEnabled specifies whether SR-IOV support is enabled. When enabled
	// the pod-resources client will be configured during startup.
	IsEnabled bool `yaml:"is_enabled"`

	// KubeletRootDir is the kubelet root directory, which hosts the
	// pod-resources socket.
	KubeletRootDir string `yaml:"kubelet_root_dir"`
}

// VaultConfig provides the Vault configuration settings.
type VaultConfig struct {
	// IsEnabled specifies whether Vault support is enabled.
	IsEnabled bool `yaml:"is_enabled"`

	// Servers provides the configuration of the known Vault servers,
	// keyed by name.
	Servers map[string]VaultServerConfig `yaml:"servers"`
}

// VaultServerConfig provides the configuration of a single Vault server.
type VaultServerConfig struct {
	// Endpoint is the endpoint of the Vault server.
	Endpoint string `yaml:"endpoint"`

	// Namespace is an optional Vault namespace.
	Namespace string `yaml:"namespace"`

	// TokenFile is a path to a file containing a Vault token.
	TokenFile string `yaml:"token_file"`

	// TLSSkipVerify specifies whether to skip TLS certificate
	// verification.
	TLSSkipVerify bool `yaml:"tls_skip_verify"`
}

// Parse parses the config from the given path.
func Parse(path string) (*Config, error) {
	var conf Config
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, err
	}

	if conf.Version == "" {
		return nil, ErrNoConfigVersion
	}

	if conf.Version != ConfigFormatVersion {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, conf.Version)
	}

	return &conf, nil
}

// MustParse parses the config from the given path, or panics in case of errors.
func MustParse(path string) *Config {
	config, err := Parse(path)
	if err != nil {
		panic(err)
	}

	return config
}
