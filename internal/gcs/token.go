// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package gcs

import (
	"context"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	storage "google.golang.org/api/storage/v1"

	"wstl/notebook/internal/errors"
)

// Environment variable used to directly pass an OAuth2 access token.
const EnvAccessToken = "GS_ACCESS_TOKEN"

// Environment variable used to pass the path of a Google Developers service
// account JSON key file, which is then used for two-legged OAuth.
const EnvServiceAccountFile = "GS_SERVICE_ACCOUNT_FILE"

// tokenSource resolves explicit credentials from the environment. A nil
// source with nil error means neither variable is set and default application
// credentials should be used instead.
func tokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	if token := os.Getenv(EnvAccessToken); token != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}), nil
	}
	secretPath := os.Getenv(EnvServiceAccountFile)
	if secretPath == "" {
		return nil, nil
	}
	secrets, err := os.ReadFile(secretPath)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidArgument, "reading "+EnvServiceAccountFile, err)
	}
	// Requires the "client_email" and "private_key" fields of the service
	// account JSON.
	cfg, err := google.JWTConfigFromJSON(secrets, storage.DevstorageReadOnlyScope)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidArgument, "parsing service account key", err)
	}
	return cfg.TokenSource(ctx), nil
}
