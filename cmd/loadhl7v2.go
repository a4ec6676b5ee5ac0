// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"wstl/notebook/internal/errors"
	"wstl/notebook/internal/gcs"
	"wstl/notebook/internal/healthcare"
)

var (
	hl7v2BucketName  string
	hl7v2SourceBlob  string
	hl7v2GCSDestFile string
	hl7v2ProjectID   string
	hl7v2Region      string
	hl7v2DatasetID   string
	hl7v2StoreID     string
	hl7v2Filter      string
	hl7v2StoreDest   string
)

var loadHL7v2Cmd = &cobra.Command{
	Use:   "load-hl7v2",
	Short: "Load parsed HL7v2 messages from GCS or an HL7v2 store",
}

// loadHL7v2GCSCmd loads a parsed HL7v2 message blob from a GCS bucket, the
// CLI counterpart of the %load_hl7v2_gcs line magic.
var loadHL7v2GCSCmd = &cobra.Command{
	Use:   "gcs",
	Short: "Load a parsed HL7v2 message from a GCS blob",

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, err := gcs.NewClient(ctx)
		if err != nil {
			return err
		}
		exists, err := client.BucketExists(ctx, hl7v2BucketName)
		if err != nil {
			return err
		}
		if !exists {
			return errors.New(errors.NotFound,
				"the bucket does not exist, check the provided bucket name")
		}
		content, err := client.Download(ctx, hl7v2BucketName, hl7v2SourceBlob)
		if err != nil {
			if errors.KindOf(err) == errors.NotFound {
				return errors.New(errors.NotFound,
					"the blob does not exist, check the provided blob name")
			}
			return err
		}

		var result any
		if err := json.Unmarshal(content, &result); err != nil {
			return errors.Wrap(errors.InvalidArgument,
				"the loaded content is not valid JSON, check the source bucket and blob", err)
		}

		if hl7v2GCSDestFile != "" {
			if err := os.WriteFile(hl7v2GCSDestFile, content, 0o644); err != nil {
				return err
			}
			pterm.Printf("The message was written to %s successfully.\n", hl7v2GCSDestFile)
			return nil
		}
		return printJSON(result)
	},
}

// loadHL7v2StoreCmd loads parsed HL7v2 messages from a Cloud Healthcare
// HL7v2 store, the CLI counterpart of the %load_hl7v2_datastore line magic.
var loadHL7v2StoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Load parsed HL7v2 messages from an HL7v2 store",
	Long: `Loads fully parsed messages from the HL7v2 store identified by project,
region, dataset and store id. The --filter flag restricts messages using the
Cloud Healthcare filter syntax (message_type, send_date, send_facility,
PatientId(value, type), labels.x); surround filters containing spaces with
single quotes.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, err := healthcare.NewClient(ctx)
		if err != nil {
			return err
		}
		messages, err := client.ListMessages(ctx, healthcare.Store{
			ProjectID: hl7v2ProjectID,
			Region:    hl7v2Region,
			DatasetID: hl7v2DatasetID,
			StoreID:   hl7v2StoreID,
		}, hl7v2Filter)
		if err != nil {
			return err
		}

		if hl7v2StoreDest != "" {
			data, err := json.MarshalIndent(messages, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(hl7v2StoreDest, data, 0o644); err != nil {
				return err
			}
			pterm.Printf("The messages were written to %s successfully.\n", hl7v2StoreDest)
			return nil
		}
		return printJSON(messages)
	},
}

func init() {
	loadHL7v2GCSCmd.Flags().StringVar(&hl7v2BucketName, "bucket-name", "", "Name of the GCS bucket to load data from")
	loadHL7v2GCSCmd.Flags().StringVar(&hl7v2SourceBlob, "source-blob-name", "", "Name of the blob to load")
	loadHL7v2GCSCmd.Flags().StringVar(&hl7v2GCSDestFile, "dest-file-name", "", "Destination file for the loaded data (printed when omitted)")
	_ = loadHL7v2GCSCmd.MarkFlagRequired("bucket-name")
	_ = loadHL7v2GCSCmd.MarkFlagRequired("source-blob-name")

	loadHL7v2StoreCmd.Flags().StringVar(&hl7v2ProjectID, "project-id", "", "ID of the GCP project the HL7v2 store belongs to")
	loadHL7v2StoreCmd.Flags().StringVar(&hl7v2Region, "region", "", "Region of the HL7v2 store")
	loadHL7v2StoreCmd.Flags().StringVar(&hl7v2DatasetID, "dataset-id", "", "ID of the dataset the HL7v2 store belongs to")
	loadHL7v2StoreCmd.Flags().StringVar(&hl7v2StoreID, "hl7v2-store-id", "", "ID of the HL7v2 store to load data from")
	loadHL7v2StoreCmd.Flags().StringVar(&hl7v2Filter, "filter", "", "Restrict messages returned to those matching a filter")
	loadHL7v2StoreCmd.Flags().StringVar(&hl7v2StoreDest, "dest-file-name", "", "Destination file for the loaded data (printed when omitted)")
	_ = loadHL7v2StoreCmd.MarkFlagRequired("project-id")
	_ = loadHL7v2StoreCmd.MarkFlagRequired("region")
	_ = loadHL7v2StoreCmd.MarkFlagRequired("dataset-id")
	_ = loadHL7v2StoreCmd.MarkFlagRequired("hl7v2-store-id")

	loadHL7v2Cmd.AddCommand(loadHL7v2GCSCmd)
	loadHL7v2Cmd.AddCommand(loadHL7v2StoreCmd)
	rootCmd.AddCommand(loadHL7v2Cmd)
}
