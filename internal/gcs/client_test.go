// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package gcs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wstl/notebook/internal/errors"
)

type staticLister struct {
	blobs []Blob
}

func (s *staticLister) List(ctx context.Context, bucket, prefix string) ([]Blob, error) {
	return s.blobs, nil
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{
			name:       "bucket and object",
			path:       "fake_bucket/input.json",
			wantBucket: "fake_bucket",
			wantObject: "input.json",
		},
		{
			name:       "nested object",
			path:       "fake_bucket/lib_folder/file.wstl",
			wantBucket: "fake_bucket",
			wantObject: "lib_folder/file.wstl",
		},
		{
			name:       "redundant separators cleaned",
			path:       "fake_bucket//lib_folder/./file.wstl",
			wantBucket: "fake_bucket",
			wantObject: "lib_folder/file.wstl",
		},
		{
			name:    "bucket only",
			path:    "fake_bucket",
			wantErr: true,
		},
		{
			name:    "leading slash",
			path:    "/fake_bucket/input.json",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, object, err := SplitPath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.InvalidArgument, errors.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantObject, object)
		})
	}
}

func TestListMatching(t *testing.T) {
	lister := &staticLister{blobs: []Blob{
		{Bucket: "fake_bucket", Name: "file1.txt"},
		{Bucket: "fake_bucket", Name: "lib_folder/file2.wstl"},
		{Bucket: "fake_bucket", Name: "lib_folder/file3.wstl"},
		{Bucket: "fake_bucket", Name: "lib_folder/file4.json"},
		{Bucket: "fake_bucket", Name: "input.json"},
	}}

	tests := []struct {
		name    string
		pattern string
		exts    []string
		want    []string
	}{
		{
			name:    "exact path",
			pattern: "fake_bucket/input.json",
			want:    []string{"gs://fake_bucket/input.json"},
		},
		{
			name:    "wildcard within folder",
			pattern: "fake_bucket/lib_folder/*",
			exts:    []string{".wstl"},
			want:    []string{"gs://fake_bucket/lib_folder/file2.wstl", "gs://fake_bucket/lib_folder/file3.wstl"},
		},
		{
			name:    "extension suffix wildcard",
			pattern: "fake_bucket/lib_folder/*.json",
			want:    []string{"gs://fake_bucket/lib_folder/file4.json"},
		},
		{
			name:    "filter drops all candidates",
			pattern: "fake_bucket/*.txt",
			exts:    []string{".wstl"},
			want:    nil,
		},
		{
			name:    "no blob matches",
			pattern: "fake_bucket/absent.json",
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ListMatching(context.Background(), lister, tt.pattern, tt.exts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListMatchingInvalidBucket(t *testing.T) {
	_, err := ListMatching(context.Background(), &staticLister{}, "no-object-part", nil)
	require.Error(t, err)
	assert.Equal(t, errors.InvalidArgument, errors.KindOf(err))
	assert.Contains(t, err.Error(), "invalid bucket name")
}

func TestListMatchingBadPattern(t *testing.T) {
	lister := &staticLister{blobs: []Blob{{Bucket: "fake_bucket", Name: "input.json"}}}
	_, err := ListMatching(context.Background(), lister, "fake_bucket/[unclosed", nil)
	require.Error(t, err)
	assert.Equal(t, errors.InvalidArgument, errors.KindOf(err))
}

func TestHasExt(t *testing.T) {
	assert.True(t, hasExt([]string{".json", ".ndjson"}, "dir/input.json"))
	assert.True(t, hasExt([]string{".json", ".ndjson"}, "records.ndjson"))
	assert.False(t, hasExt([]string{".wstl"}, "input.json"))
	assert.False(t, hasExt([]string{".wstl"}, "noextension"))
}
