// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package whistle defines the messages exchanged with the whistle translation
// service and the client interface used to reach it. The JSON field names
// mirror the wstlservice proto definitions; the gRPC transport in the
// grpcclient subpackage sends them with a JSON codec, so these structs are the
// single source of truth for the wire shape.
package whistle

import (
	"context"
	"strings"

	"wstl/notebook/internal/errors"
)

// Location names exactly one input source for the translation service:
// an inline JSON payload, a path on the local file system, or a Google Cloud
// Storage path. Exactly one field is set; the parser guarantees this by
// construction.
type Location struct {
	InlineJSON  string `json:"inline_json,omitempty"`
	LocalPath   string `json:"local_path,omitempty"`
	GCSLocation string `json:"gcs_location,omitempty"`
}

// Status carries an error reported by the service for a single record.
type Status struct {
	Code    int32  `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// CreateIncrementalSessionRequest asks for the incremental transformation
// session with the given id, creating it when absent.
type CreateIncrementalSessionRequest struct {
	SessionID string `json:"session_id"`
}

// IncrementalSessionResponse reports the session the service is using.
type IncrementalSessionResponse struct {
	SessionID  string `json:"session_id"`
	NewSession bool   `json:"new_session,omitempty"`
}

// DeleteIncrementalSessionRequest clears all variables and functions
// accumulated in an incremental session.
type DeleteIncrementalSessionRequest struct {
	SessionID string `json:"session_id"`
}

// DeleteIncrementalSessionResponse acknowledges session deletion.
type DeleteIncrementalSessionResponse struct {
	Status *Status `json:"status,omitempty"`
}

// IncrementalTransformRequest evaluates whistle source within a session.
type IncrementalTransformRequest struct {
	SessionID     string     `json:"session_id"`
	Wstl          string     `json:"wstl"`
	LibraryConfig []Location `json:"library_config,omitempty"`
	CodeConfig    []Location `json:"code_config,omitempty"`
	UnitConfig    *Location  `json:"unit_config,omitempty"`
	Input         []Location `json:"input,omitempty"`
}

// TransformedRecord is one mapping result: either the transformed output as
// JSON text, or the error the mapping produced. At most one field is set.
type TransformedRecord struct {
	Output string  `json:"output,omitempty"`
	Error  *Status `json:"error,omitempty"`
}

// TransformResponse holds one record per transformed input.
type TransformResponse struct {
	Results []TransformedRecord `json:"results,omitempty"`
}

// FhirVersion selects the FHIR release used for validation.
type FhirVersion string

const (
	FhirVersionSTU3 FhirVersion = "STU3"
	FhirVersionR4   FhirVersion = "R4"
)

// ParseFhirVersion maps a user-supplied version string onto a FhirVersion.
func ParseFhirVersion(s string) (FhirVersion, error) {
	switch strings.ToLower(s) {
	case "r4":
		return FhirVersionR4, nil
	case "stu3":
		return FhirVersionSTU3, nil
	}
	return "", errors.Newf(errors.InvalidArgument,
		"FHIR version %q is incorrect or not supported, stu3 and r4 are supported versions", s)
}

// ValidationRequest validates FHIR resources against a FHIR version.
type ValidationRequest struct {
	Input       []Location  `json:"input,omitempty"`
	FhirVersion FhirVersion `json:"fhir_version,omitempty"`
}

// ValidationResult reports the outcome for a single validated resource.
type ValidationResult struct {
	Status *Status `json:"status,omitempty"`
}

// ValidationResponse holds one result per validated input.
type ValidationResponse struct {
	Results []ValidationResult `json:"results,omitempty"`
}

// Service is the whistle translation service surface this tool depends on.
// The production implementation lives in the grpcclient subpackage; tests
// substitute fakes.
type Service interface {
	GetOrCreateIncrementalSession(ctx context.Context, req *CreateIncrementalSessionRequest) (*IncrementalSessionResponse, error)
	GetIncrementalTransform(ctx context.Context, req *IncrementalTransformRequest) (*TransformResponse, error)
	DeleteIncrementalSession(ctx context.Context, req *DeleteIncrementalSessionRequest) (*DeleteIncrementalSessionResponse, error)
	FhirValidate(ctx context.Context, req *ValidationRequest) (*ValidationResponse, error)
}
