// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"wstl/notebook/internal/errors"
	"wstl/notebook/internal/logging"
	"wstl/notebook/internal/magics"
	"wstl/notebook/internal/whistle"
)

var (
	transformInput         string
	transformLibraryConfig string
	transformCodeConfig    string
	transformUnitConfig    string
	transformOutput        string
)

// transformCmd evaluates whistle mapping language within the incremental
// session, the CLI counterpart of the %%wstl cell magic. The whistle source
// comes from a file argument or stdin.
var transformCmd = &cobra.Command{
	Use:   "transform [whistle-file]",
	Short: "Evaluate a whistle mapping through the translation service",
	Long: `The transform command sends whistle mapping source to the translation service
and prints the transformed records as JSON. Definitions accumulate in an
incremental session that survives between invocations; run 'wstl reset' to
start over.

The --input flag supports the following prefix notations:
  py://<variable>          session variable (see 'wstl var')
  pylist://<variable>      session list variable, one input per entry
  json://<inline_json>     e.g. json://{"field":"value"}
  file://<path>            local path, glob wildcards supported; only .json
                           and .ndjson files are loaded
  gs://<path>              Google Cloud Storage path, leaf wildcards supported`,
	Args: cobra.MaximumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		source, err := readWhistleSource(args)
		if err != nil {
			return err
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		parser := newParser(sess)

		req := &whistle.IncrementalTransformRequest{Wstl: source}
		if transformLibraryConfig != "" {
			locs, err := parser.ParseLocation(ctx, transformLibraryConfig, magics.Options{
				Extensions: magics.WSTLFileExt,
			})
			if err != nil {
				return err
			}
			req.LibraryConfig = locs
		}
		if transformCodeConfig != "" {
			locs, err := parser.ParseLocation(ctx, transformCodeConfig, magics.Options{
				Extensions: magics.JSONFileExt,
			})
			if err != nil {
				return err
			}
			req.CodeConfig = locs
		}
		if transformUnitConfig != "" {
			locs, err := parser.ParseLocation(ctx, transformUnitConfig, magics.Options{
				Extensions: magics.TextprotoFileExt,
			})
			if err != nil {
				return err
			}
			if len(locs) > 0 {
				req.UnitConfig = &locs[0]
			}
		}
		if transformInput != "" {
			locs, err := parser.ParseLocation(ctx, transformInput, magics.Options{
				Extensions:   magics.JSONFileExt,
				LoadContents: true,
			})
			if err != nil {
				return err
			}
			if len(locs) == 0 {
				return errors.Newf(errors.InvalidArgument, "no inputs matching argument %s", transformInput)
			}
			req.Input = locs
		}

		svc, err := dialService(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		session, err := svc.GetOrCreateIncrementalSession(ctx, &whistle.CreateIncrementalSessionRequest{
			SessionID: sess.ID,
		})
		if err != nil {
			pterm.Println(logging.FormatRPCError(err))
			return err
		}
		req.SessionID = session.SessionID

		var resp *whistle.TransformResponse
		err = withSpinner(os.Stderr, "transforming...", func() error {
			var rpcErr error
			resp, rpcErr = svc.GetIncrementalTransform(ctx, req)
			return rpcErr
		})
		if err != nil {
			pterm.Println(logging.FormatRPCError(err))
			return err
		}

		result, err := whistle.ResponseToValue(resp)
		if err != nil {
			return err
		}
		if transformOutput != "" {
			raw, err := json.Marshal(result)
			if err != nil {
				return err
			}
			if err := sess.Set(transformOutput, raw); err != nil {
				return err
			}
			if err := sess.Save(); err != nil {
				return err
			}
		}
		return printJSON(result)
	},
}

// readWhistleSource loads the mapping source from the file argument, or from
// stdin when no argument is given.
func readWhistleSource(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", errors.Wrap(errors.InvalidArgument, "cannot read whistle source", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading whistle source from stdin: %w", err)
	}
	if len(data) == 0 {
		return "", errors.New(errors.InvalidArgument, "no whistle source provided (pass a file or pipe to stdin)")
	}
	return string(data), nil
}

func init() {
	transformCmd.Flags().StringVar(&transformInput, "input", "", "Input data, using one of the supported prefix notations")
	transformCmd.Flags().StringVar(&transformLibraryConfig, "library-config", "", "Path to the directory where the library mapping files are located")
	transformCmd.Flags().StringVar(&transformCodeConfig, "code-config", "", "Path to the directory of FHIR ConceptMaps used for code harmonization")
	transformCmd.Flags().StringVar(&transformUnitConfig, "unit-config", "", "Path to a unit harmonization file (textproto)")
	transformCmd.Flags().StringVar(&transformOutput, "output", "", "Name of the session variable to store the result in")
	rootCmd.AddCommand(transformCmd)
}
