// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"wstl/notebook/internal/keychain"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the whistle service access token",
	Long: `Remote whistle service deployments require a bearer token. The token is kept
in the OS keychain; the WSTL_ACCESS_TOKEN environment variable overrides it.
Local plaintext deployments need no token.`,
}

var authSetTokenCmd = &cobra.Command{
	Use:   "set-token TOKEN",
	Short: "Store the service access token in the OS keychain",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			pterm.Println("❌ Secure storage is not available on this system")
			return err
		}
		if err := km.SaveAccessToken(strings.TrimSpace(args[0])); err != nil {
			return err
		}
		pterm.Println("Access token stored.")
		return nil
	},
}

var authClearTokenCmd = &cobra.Command{
	Use:   "clear-token",
	Short: "Remove the stored service access token",

	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			return err
		}
		if err := km.ClearAccessToken(); err != nil {
			return err
		}
		pterm.Println("Access token cleared.")
		return nil
	},
}

func init() {
	authCmd.AddCommand(authSetTokenCmd)
	authCmd.AddCommand(authClearTokenCmd)
	rootCmd.AddCommand(authCmd)
}
