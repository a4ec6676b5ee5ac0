// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package magics

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wstl/notebook/internal/errors"
	"wstl/notebook/internal/gcs"
	"wstl/notebook/internal/shell"
	"wstl/notebook/internal/whistle"
)

// fieldsSet counts how many of the mutually exclusive Location fields carry a
// value.
func fieldsSet(loc whistle.Location) int {
	n := 0
	for _, s := range []string{loc.InlineJSON, loc.LocalPath, loc.GCSLocation} {
		if s != "" {
			n++
		}
	}
	return n
}

func TestParseLocationJSONPrefix(t *testing.T) {
	p := newTestParser(nil, nil)

	// Inline payloads stay inline whether or not contents are requested.
	for _, opts := range []Options{{LoadContents: true}, {}} {
		locs, err := p.ParseLocation(context.Background(), `json://{"hello":"world"}`, opts)
		require.NoError(t, err)
		require.Len(t, locs, 1)
		assert.Equal(t, `{"hello":"world"}`, locs[0].InlineJSON)
		assert.Equal(t, 1, fieldsSet(locs[0]))
	}
}

func TestParseLocationFileInline(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "input.json", `{"hello": "world"}`)
	p := newTestParser(nil, nil)

	locs, err := p.ParseLocation(context.Background(), "file://"+dir+"/*", Options{
		Extensions:   JSONFileExt,
		LoadContents: true,
	})
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, `{"hello":"world"}`, locs[0].InlineJSON)
}

func TestParseLocationFileLocalPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mapping.wstl", `Result: $ToUpper("a")`)
	p := newTestParser(nil, nil)

	locs, err := p.ParseLocation(context.Background(), "file://"+dir+"/*", Options{
		Extensions: WSTLFileExt,
	})
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, path, locs[0].LocalPath)
	assert.Equal(t, 1, fieldsSet(locs[0]))
}

func TestParseLocationFileNDJSON(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "records.ndjson", "{\"first\": \"item\"}\n{\"second\": \"item\"}")
	p := newTestParser(nil, nil)

	locs, err := p.ParseLocation(context.Background(), "file://"+file, Options{
		Extensions:   JSONFileExt,
		LoadContents: true,
	})
	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.Equal(t, `{"first":"item"}`, locs[0].InlineJSON)
	assert.Equal(t, `{"second":"item"}`, locs[1].InlineJSON)
}

func TestParseLocationTextprotoLoadContents(t *testing.T) {
	dir := t.TempDir()
	content := "fake_field: true"
	file := writeFile(t, dir, "units.textproto", content)
	p := newTestParser(nil, nil)

	t.Run("as path", func(t *testing.T) {
		locs, err := p.ParseLocation(context.Background(), "file://"+file, Options{
			Extensions: TextprotoFileExt,
		})
		require.NoError(t, err)
		require.Len(t, locs, 1)
		assert.Equal(t, filepath.Clean(file), locs[0].LocalPath)
	})

	t.Run("as contents", func(t *testing.T) {
		locs, err := p.ParseLocation(context.Background(), "file://"+file, Options{
			Extensions:   TextprotoFileExt,
			LoadContents: true,
		})
		require.NoError(t, err)
		require.Len(t, locs, 1)
		assert.Equal(t, content, locs[0].InlineJSON)
	})
}

func TestParseLocationFileNoMatch(t *testing.T) {
	p := newTestParser(nil, nil)

	locs, err := p.ParseLocation(context.Background(), "file:///nonexistent-dir-for-test/*.json", Options{
		Extensions:   JSONFileExt,
		LoadContents: true,
	})
	require.NoError(t, err)
	assert.Empty(t, locs)
}

func TestParseLocationGCS(t *testing.T) {
	blobs := []gcs.Blob{
		{Bucket: "fake_bucket", Name: "file1.wstl"},
		{Bucket: "fake_bucket", Name: "lib_folder/file2.wstl"},
		{Bucket: "fake_bucket", Name: "lib_folder/file3.txt"},
		{Bucket: "fake_bucket", Name: "input.json"},
	}
	p := newTestParser(nil, blobs)

	locs, err := p.ParseLocation(context.Background(), "gs://fake_bucket/input.json", Options{
		Extensions: JSONFileExt,
	})
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, "gs://fake_bucket/input.json", locs[0].GCSLocation)
	assert.Equal(t, 1, fieldsSet(locs[0]))
}

func TestParseLocationGCSWildcard(t *testing.T) {
	blobs := []gcs.Blob{
		{Bucket: "fake_bucket", Name: "file1.txt"},
		{Bucket: "fake_bucket", Name: "lib_folder/file2.wstl"},
		{Bucket: "fake_bucket", Name: "lib_folder/file3.wstl"},
		{Bucket: "fake_bucket", Name: "lib_folder/file4.json"},
		{Bucket: "fake_bucket", Name: "input.json"},
	}
	p := newTestParser(nil, blobs)

	locs, err := p.ParseLocation(context.Background(), "gs://fake_bucket/lib_folder/*", Options{
		Extensions: WSTLFileExt,
	})
	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.Equal(t, "gs://fake_bucket/lib_folder/file2.wstl", locs[0].GCSLocation)
	assert.Equal(t, "gs://fake_bucket/lib_folder/file3.wstl", locs[1].GCSLocation)
}

func TestParseLocationPyPrefix(t *testing.T) {
	ns := shell.MapNamespace{"dict_content": map[string]any{"hello": "world"}}
	p := newTestParser(ns, nil)

	locs, err := p.ParseLocation(context.Background(), "py://dict_content", Options{LoadContents: true})
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.JSONEq(t, `{"hello":"world"}`, locs[0].InlineJSON)
}

func TestParseLocationPyListPrefix(t *testing.T) {
	ns := shell.MapNamespace{"entries": []any{map[string]any{"first": "item"}, map[string]any{"second": "item"}}}
	p := newTestParser(ns, nil)

	locs, err := p.ParseLocation(context.Background(), "pylist://entries", Options{LoadContents: true})
	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.JSONEq(t, `{"first":"item"}`, locs[0].InlineJSON)
	assert.JSONEq(t, `{"second":"item"}`, locs[1].InlineJSON)
}

func TestParseLocationUnknownPrefix(t *testing.T) {
	p := newTestParser(nil, nil)

	_, err := p.ParseLocation(context.Background(), "invalid://blah", Options{})
	require.Error(t, err)
	assert.Equal(t, errors.InvalidArgument, errors.KindOf(err))
}
