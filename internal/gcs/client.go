// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package gcs wraps the Google Cloud Storage JSON API behind small interfaces
// so the argument parser can be tested without network access. Listing is the
// only operation the gs:// prefix needs; blob download serves the HL7v2
// loading command.
package gcs

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	storage "google.golang.org/api/storage/v1"

	"wstl/notebook/internal/errors"
)

// Blob identifies one object within a bucket.
type Blob struct {
	Bucket string
	Name   string
}

// BlobLister lists objects under a bucket prefix.
type BlobLister interface {
	List(ctx context.Context, bucket, prefix string) ([]Blob, error)
}

// Downloader fetches a single object's contents.
type Downloader interface {
	Download(ctx context.Context, bucket, object string) ([]byte, error)
}

// Client is the production BlobLister/Downloader backed by the Cloud Storage
// JSON API.
type Client struct {
	svc *storage.Service
}

// NewClient builds a storage client. Credentials come from GS_ACCESS_TOKEN or
// GS_SERVICE_ACCOUNT_FILE when set, otherwise the library's default
// application credentials.
func NewClient(ctx context.Context) (*Client, error) {
	opts := []option.ClientOption{}
	ts, err := tokenSource(ctx)
	if err != nil {
		return nil, err
	}
	if ts != nil {
		opts = append(opts, option.WithTokenSource(ts))
	}
	svc, err := storage.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(errors.Unavailable, "unable to create storage client", err)
	}
	return &Client{svc: svc}, nil
}

// List returns every object under prefix in the bucket.
func (c *Client) List(ctx context.Context, bucket, prefix string) ([]Blob, error) {
	var blobs []Blob
	call := c.svc.Objects.List(bucket).Prefix(prefix)
	err := call.Pages(ctx, func(page *storage.Objects) error {
		for _, obj := range page.Items {
			blobs = append(blobs, Blob{Bucket: bucket, Name: obj.Name})
		}
		return nil
	})
	if err != nil {
		return nil, wrapAPIError("unable to list bucket "+bucket, err)
	}
	return blobs, nil
}

// Download fetches the contents of a single object.
func (c *Client) Download(ctx context.Context, bucket, object string) ([]byte, error) {
	resp, err := c.svc.Objects.Get(bucket, object).Context(ctx).Download()
	if err != nil {
		return nil, wrapAPIError("unable to download gs://"+bucket+"/"+object, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.Unavailable, "reading gs://"+bucket+"/"+object, err)
	}
	return data, nil
}

// BucketExists reports whether the bucket is visible to the caller.
func (c *Client) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, err := c.svc.Buckets.Get(bucket).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if asGoogleAPIError(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return false, nil
		}
		return false, wrapAPIError("unable to check bucket "+bucket, err)
	}
	return true, nil
}

func wrapAPIError(msg string, err error) error {
	var apiErr *googleapi.Error
	if asGoogleAPIError(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return errors.Wrap(errors.NotFound, msg, err)
	}
	return errors.Wrap(errors.Unavailable, msg, err)
}

func asGoogleAPIError(err error, target **googleapi.Error) bool {
	e, ok := err.(*googleapi.Error)
	if ok {
		*target = e
	}
	return ok
}

// SplitPath splits a gs path (without the gs:// prefix) into bucket and
// object pattern. The path is cleaned first, removing redundant separators
// and up-level references.
func SplitPath(p string) (bucket, object string, err error) {
	cleaned := path.Clean(p)
	slash := strings.Index(cleaned, "/")
	if slash < 1 {
		return "", "", errors.Newf(errors.InvalidArgument, "invalid bucket name in path '%s'", cleaned)
	}
	return cleaned[:slash], cleaned[slash+1:], nil
}

// ListMatching lists the blobs matching a gs path pattern and returns full
// gs:// URLs. The object part may carry a leaf wildcard (path.Match syntax,
// case sensitive; '*' does not cross '/'). When exts is non-empty, blobs with
// other extensions are dropped before matching.
func ListMatching(ctx context.Context, lister BlobLister, pattern string, exts []string) ([]string, error) {
	bucket, object, err := SplitPath(pattern)
	if err != nil {
		return nil, err
	}
	prefix := path.Dir(object)
	if prefix == "." {
		prefix = ""
	}
	blobs, err := lister.List(ctx, bucket, prefix)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, blob := range blobs {
		if len(exts) > 0 && !hasExt(exts, blob.Name) {
			continue
		}
		ok, err := path.Match(object, blob.Name)
		if err != nil {
			return nil, errors.Wrap(errors.InvalidArgument, "bad wildcard pattern '"+object+"'", err)
		}
		if ok {
			names = append(names, "gs://"+blob.Bucket+"/"+blob.Name)
		}
	}
	return names, nil
}

func hasExt(exts []string, name string) bool {
	ext := path.Ext(name)
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// LazyClient defers client construction (and therefore credential lookup)
// until the first call, so commands that never touch gs:// arguments do not
// pay for cloud auth.
type LazyClient struct {
	once   sync.Once
	client *Client
	err    error
}

func NewLazyClient() *LazyClient { return &LazyClient{} }

func (l *LazyClient) get(ctx context.Context) (*Client, error) {
	l.once.Do(func() {
		l.client, l.err = NewClient(ctx)
	})
	return l.client, l.err
}

func (l *LazyClient) List(ctx context.Context, bucket, prefix string) ([]Blob, error) {
	c, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return c.List(ctx, bucket, prefix)
}

func (l *LazyClient) Download(ctx context.Context, bucket, object string) ([]byte, error) {
	c, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return c.Download(ctx, bucket, object)
}
