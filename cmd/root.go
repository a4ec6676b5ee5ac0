// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the wstl notebook
// tools. Each command mirrors one of the notebook magics: transform (%%wstl),
// validate (%fhir_validate), reset (%wstl-reset) and load-hl7v2
// (%load_hl7v2_gcs / %load_hl7v2_datastore). The var command manages the
// session variables that py:// and pylist:// arguments resolve against.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wstl/notebook/internal/logging"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "wstl",
	Short:         "Notebook tooling for the whistle mapping language",
	Long:          `wstl evaluates whistle mappings and validates FHIR resources through the whistle translation service, resolving prefixed arguments (json://, file://, gs://, py://, pylist://) the same way the notebook magic commands do.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("wstl %s\n", Version)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, logging.PresentError("Error", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
}
