// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"wstl/notebook/internal/errors"
	"wstl/notebook/internal/logging"
	"wstl/notebook/internal/magics"
	"wstl/notebook/internal/whistle"
)

var (
	validateVersion string
	validateInput   string
)

// validateCmd validates JSON FHIR resources against a FHIR version, the CLI
// counterpart of the %fhir_validate line magic.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate JSON FHIR resources through the translation service",
	Long: `The validate command checks FHIR resources against the selected FHIR version
(r4 by default). The --input flag accepts the same prefix notations as
transform; only .json and .ndjson files are loaded from file:// paths.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		version, err := whistle.ParseFhirVersion(validateVersion)
		if err != nil {
			return err
		}
		if validateInput == "" {
			return errors.New(errors.InvalidArgument, "--input is required")
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		parser := newParser(sess)
		locs, err := parser.ParseLocation(ctx, validateInput, magics.Options{
			Extensions:   magics.JSONFileExt,
			LoadContents: true,
		})
		if err != nil {
			return err
		}
		if len(locs) == 0 {
			return errors.Newf(errors.InvalidArgument, "no inputs matching argument %s", validateInput)
		}

		svc, err := dialService(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		var resp *whistle.ValidationResponse
		err = withSpinner(os.Stderr, "validating...", func() error {
			var rpcErr error
			resp, rpcErr = svc.FhirValidate(ctx, &whistle.ValidationRequest{
				Input:       locs,
				FhirVersion: version,
			})
			return rpcErr
		})
		if err != nil {
			pterm.Println(logging.FormatRPCError(err))
			return err
		}
		return printJSON(resp)
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateVersion, "version", "r4", "FHIR version to validate against (stu3 or r4)")
	validateCmd.Flags().StringVar(&validateInput, "input", "", "Input resources, using one of the supported prefix notations")
	rootCmd.AddCommand(validateCmd)
}
