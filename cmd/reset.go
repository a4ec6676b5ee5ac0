// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"wstl/notebook/internal/logging"
	"wstl/notebook/internal/whistle"
)

var resetKeepVars bool

// resetCmd clears the incremental transformation session, the CLI
// counterpart of the %wstl-reset line magic. All whistle variables and
// functions accumulated by transform are discarded server-side; local session
// variables are dropped too unless --keep-vars is set.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the incremental transformation session",

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		sess, err := openSession()
		if err != nil {
			return err
		}

		svc, err := dialService(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		if _, err := svc.DeleteIncrementalSession(ctx, &whistle.DeleteIncrementalSessionRequest{
			SessionID: sess.ID,
		}); err != nil {
			pterm.Println(logging.FormatRPCError(err))
			return err
		}

		vars := sess.Vars
		sess.Reset()
		if resetKeepVars {
			sess.Vars = vars
		}
		if err := sess.Save(); err != nil {
			return err
		}
		pterm.Println("Session cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetKeepVars, "keep-vars", false, "Keep local session variables, only reset the remote session")
	rootCmd.AddCommand(resetCmd)
}
