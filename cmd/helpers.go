// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pterm/pterm"

	"wstl/notebook/internal/config"
	"wstl/notebook/internal/gcs"
	"wstl/notebook/internal/keychain"
	"wstl/notebook/internal/magics"
	"wstl/notebook/internal/shell"
	"wstl/notebook/internal/whistle/grpcclient"
	"wstl/notebook/internal/xdg"
)

// EnvAccessToken overrides the keychain-stored service token.
const EnvAccessToken = "WSTL_ACCESS_TOKEN"

// resolveAccessToken returns the whistle service bearer token, if any.
// The environment wins over the keychain; a missing token is not an error,
// since local deployments run without authentication.
func resolveAccessToken() string {
	if token := os.Getenv(EnvAccessToken); token != "" {
		return token
	}
	km, err := keychain.GetManager()
	if err != nil {
		return ""
	}
	token, err := km.LoadAccessToken()
	if err != nil {
		return ""
	}
	return token
}

// dialService connects to the whistle translation service using the loaded
// configuration. The caller must Close the returned client.
func dialService(ctx context.Context) (*grpcclient.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return grpcclient.Connect(ctx, grpcclient.Options{
		Target:      cfg.Target(),
		AccessToken: resolveAccessToken(),
		Timeout:     cfg.Timeout(),
		UseTLS:      cfg.UseTLS,
	})
}

// openSession loads the persistent CLI session (namespace + session id).
func openSession() (*shell.Session, error) {
	dir, err := xdg.StateDir()
	if err != nil {
		return nil, err
	}
	return shell.Open(dir)
}

// newParser builds the argument parser over the given namespace. The cloud
// storage client is lazy, so commands without gs:// arguments never touch
// cloud credentials.
func newParser(ns shell.Namespace) *magics.Parser {
	return &magics.Parser{
		Namespace: ns,
		Blobs:     gcs.NewLazyClient(),
	}
}

// printJSON pretty-prints a JSON-compatible value.
func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	pterm.Println(string(b))
	return nil
}
