// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package openstack

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gophercloud/gophercloud/v2"
)

// SDKError is an error, which is returned when the network backend reports a
// failure, which does not map to a more specific error type.
type SDKError struct {
	// Type is the error class reported by the backend, if known.
	Type string

	// Message is the error message reported by the backend.
	Message string
}

// Error implements the error interface.
func (e *SDKError) Error() string {
	if e.Type != "" {
		return e.Type + ": " + e.Message
	}

	return e.Message
}

// NotFoundError is an error, which is returned when the network backend
// reports that the target resource does not exist. Callers may treat it as
// already-deleted.
type NotFoundError struct {
	// Message is the error message reported by the backend.
	Message string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return e.Message
}

// neutronNotFoundTypes are the Neutron error classes, which are translated
// into [NotFoundError].
var neutronNotFoundTypes = []string{
	"RouterNotFound",
	"RouterInterfaceNotFoundForSubnet",
	"SubnetNotFound",
}

// NeutronError represents an error reported by Neutron as part of an
// otherwise successful HTTP response body.
type NeutronError struct {
	// Type is the Neutron error class.
	Type string `json:"type"`

	// Message is the human readable error message.
	Message string `json:"message"`

	// Detail provides additional details about the error, if any.
	Detail string `json:"detail"`
}

// neutronErrorEnvelope is the envelope in which Neutron embeds errors.
type neutronErrorEnvelope struct {
	NeutronError *NeutronError `json:"NeutronError"`
}

// TranslateNeutronError inspects the given response body for an embedded
// Neutron error envelope. Neutron reports some errors as HTTP 200 responses
// with an error object embedded in the body instead of using HTTP error
// statuses.
//
// It returns a [NotFoundError] when the embedded error class signals a
// missing resource, an [SDKError] for any other embedded error class, and nil
// when no error envelope is present.
func TranslateNeutronError(body []byte) error {
	var envelope neutronErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		// Not a JSON object, so there is no embedded error either.
		return nil
	}

	if envelope.NeutronError == nil {
		return nil
	}

	neutronErr := envelope.NeutronError
	for _, knownType := range neutronNotFoundTypes {
		if neutronErr.Type == knownType {
			return &NotFoundError{Message: neutronErr.Message}
		}
	}

	return &SDKError{Type: neutronErr.Type, Message: neutronErr.Message}
}

// errFromResponse maps an error returned by the SDK HTTP layer onto the
// netbridge error types. Responses with a 404-class status code are mapped to
// [NotFoundError], any other unexpected response code to [SDKError] carrying
// the response body text.
func errFromResponse(err error) error {
	if err == nil {
		return nil
	}

	var unexpected gophercloud.ErrUnexpectedResponseCode
	if !errors.As(err, &unexpected) {
		return err
	}

	if gophercloud.ResponseCodeIs(err, http.StatusNotFound) {
		return &NotFoundError{Message: string(unexpected.Body)}
	}

	return &SDKError{Message: string(unexpected.Body)}
}
