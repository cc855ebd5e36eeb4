// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package kubernetes provides the API client for interfacing with the
// Kubernetes API.
package kubernetes

import (
	"errors"
	"fmt"
	"net/netip"
	"os"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"

	"github.com/gardener/netbridge/pkg/core/config"
	"github.com/gardener/netbridge/pkg/version"
)

// EnvServiceHost is the environment variable providing the in-cluster
// Kubernetes API host.
const EnvServiceHost = "KUBERNETES_SERVICE_HOST"

// EnvServicePortHTTPS is the environment variable providing the in-cluster
// Kubernetes API HTTPS port.
const EnvServicePortHTTPS = "KUBERNETES_SERVICE_PORT_HTTPS"

// ErrNoAPIRoot is an error, which is returned when the Kubernetes API root is
// neither configured, nor derivable from the in-cluster environment
// variables.
var ErrNoAPIRoot = errors.New("no kubernetes API root specified")

// APIRoot resolves the root URL of the Kubernetes API.
//
// A configured api_root takes precedence. Otherwise the root is synthesized
// from the in-cluster service environment variables, bracketing the host when
// it is an IPv6 literal.
func APIRoot(conf config.KubernetesConfig) (string, error) {
	if conf.APIRoot != "" {
		return conf.APIRoot, nil
	}

	host := os.Getenv(EnvServiceHost)
	port := os.Getenv(EnvServicePortHTTPS)
	if host == "" || port == "" {
		return "", fmt.Errorf("%w: set %s and %s, or configure api_root",
			ErrNoAPIRoot, EnvServiceHost, EnvServicePortHTTPS)
	}

	if addr, err := netip.ParseAddr(host); err == nil && addr.Is6() {
		host = "[" + host + "]"
	}

	return fmt.Sprintf("https://%s:%s", host, port), nil
}

// New creates a new Kubernetes API client bound to the resolved API root.
//
// The client connects lazily, so no network call is performed here.
func New(conf config.KubernetesConfig) (*kubernetes.Clientset, error) {
	apiRoot, err := APIRoot(conf)
	if err != nil {
		return nil, err
	}

	userAgent := conf.UserAgent
	if userAgent == "" {
		userAgent = fmt.Sprintf("netbridge/%s", version.Version)
	}

	restConfig := &rest.Config{
		Host:            apiRoot,
		UserAgent:       userAgent,
		BearerTokenFile: conf.TokenFile,
		TLSClientConfig: rest.TLSClientConfig{
			CAFile: conf.CAFile,
		},
	}

	client, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create kubernetes client: %w", err)
	}

	return client, nil
}
