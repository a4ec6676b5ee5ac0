// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"wstl/notebook/internal/errors"
)

var varSetFromFile string

var varCmd = &cobra.Command{
	Use:   "var",
	Short: "Manage session variables used by py:// and pylist:// arguments",
	Long: `Session variables are the CLI counterpart of the notebook kernel's python
variables. A variable holds a JSON value; py://<name> serializes it as a
single input and pylist://<name> maps each entry of a JSON array to a
separate input.`,
}

var varSetCmd = &cobra.Command{
	Use:   "set NAME [JSON]",
	Short: "Define a session variable from inline JSON or a file",
	Args:  cobra.RangeArgs(1, 2),

	RunE: func(cmd *cobra.Command, args []string) error {
		var raw []byte
		switch {
		case varSetFromFile != "":
			data, err := os.ReadFile(varSetFromFile)
			if err != nil {
				return err
			}
			raw = data
		case len(args) == 2:
			raw = []byte(args[1])
		default:
			return errors.New(errors.InvalidArgument, "provide a JSON value or --from-file")
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		if err := sess.Set(args[0], raw); err != nil {
			return err
		}
		return sess.Save()
	},
}

var varGetCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Print a session variable",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		raw, ok := sess.Raw(args[0])
		if !ok {
			return errors.Newf(errors.InvalidArgument, "there is no session variable named %s", args[0])
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		return printJSON(v)
	},
}

var varListCmd = &cobra.Command{
	Use:   "list",
	Short: "List session variables",

	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		names := sess.Names()
		if len(names) == 0 {
			pterm.Println("No session variables defined.")
			return nil
		}
		items := make([]pterm.BulletListItem, 0, len(names))
		for _, name := range names {
			items = append(items, pterm.BulletListItem{Level: 0, Text: name})
		}
		return pterm.DefaultBulletList.WithItems(items).Render()
	},
}

var varUnsetCmd = &cobra.Command{
	Use:   "unset NAME",
	Short: "Remove a session variable",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		if !sess.Unset(args[0]) {
			return errors.Newf(errors.InvalidArgument, "there is no session variable named %s", args[0])
		}
		return sess.Save()
	},
}

func init() {
	varSetCmd.Flags().StringVar(&varSetFromFile, "from-file", "", "Read the JSON value from a file")
	varCmd.AddCommand(varSetCmd)
	varCmd.AddCommand(varGetCmd)
	varCmd.AddCommand(varListCmd)
	varCmd.AddCommand(varUnsetCmd)
	rootCmd.AddCommand(varCmd)
}
