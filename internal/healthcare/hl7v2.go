// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package healthcare loads parsed HL7v2 messages from a Cloud Healthcare
// HL7v2 store. Authorization follows the API library defaults (service
// account credentials via GOOGLE_APPLICATION_CREDENTIALS).
package healthcare

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	healthcare "google.golang.org/api/healthcare/v1beta1"

	"wstl/notebook/internal/errors"
)

// Store identifies an HL7v2 store within a Cloud Healthcare dataset.
type Store struct {
	ProjectID string
	Region    string
	DatasetID string
	StoreID   string
}

// Path returns the REST resource name of the store.
func (s Store) Path() string {
	return fmt.Sprintf("projects/%s/locations/%s/datasets/%s/hl7V2Stores/%s",
		s.ProjectID, s.Region, s.DatasetID, s.StoreID)
}

// Client lists messages from HL7v2 stores.
type Client struct {
	svc *healthcare.Service
}

// NewClient builds a Cloud Healthcare API client.
func NewClient(ctx context.Context) (*Client, error) {
	svc, err := healthcare.NewService(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.Unavailable, "unable to create healthcare client", err)
	}
	return &Client{svc: svc}, nil
}

// ListMessages returns the fully parsed messages in the store matching the
// filter. Single quotes around the filter are stripped, since shells and the
// notebook line magic both require quoting filters that contain spaces.
func (c *Client) ListMessages(ctx context.Context, store Store, filter string) ([]*healthcare.Message, error) {
	filter = strings.Trim(filter, "'")
	call := c.svc.Projects.Locations.Datasets.Hl7V2Stores.Messages.
		List(store.Path()).View("FULL")
	if filter != "" {
		call = call.Filter(filter)
	}
	var messages []*healthcare.Message
	err := call.Pages(ctx, func(page *healthcare.ListMessagesResponse) error {
		messages = append(messages, page.Hl7V2Messages...)
		return nil
	})
	if err != nil {
		var apiErr *googleapi.Error
		if e, ok := err.(*googleapi.Error); ok {
			apiErr = e
		}
		if apiErr != nil && apiErr.Code == http.StatusNotFound {
			return nil, errors.Wrap(errors.NotFound, "HL7v2 store "+store.Path()+" not found", err)
		}
		return nil, errors.Wrap(errors.Unavailable, "unable to list messages in "+store.Path(), err)
	}
	return messages, nil
}
