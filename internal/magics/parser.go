// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package magics interprets the prefixed-string arguments of the notebook
// magic commands. An argument resolves to either a list of inline JSON
// payloads or a list of Google Cloud Storage paths, depending on its prefix:
//
//   - json://{"hello":"world"}  inline JSON object or array, passed through.
//   - file://<path>             path or glob expression on the local file system.
//   - gs://<path>               path on Google Cloud Storage, leaf wildcards allowed.
//   - py://<variable>           session variable; a list serializes to a single
//     JSON array. Use pylist to map entries separately.
//   - pylist://<variable>       session list variable; one result per entry.
//
// Parsing is a flat prefix dispatch with no state. Every failure is an
// invalid-argument error; there are no retries and no partial results.
package magics

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"wstl/notebook/internal/errors"
	"wstl/notebook/internal/gcs"
	"wstl/notebook/internal/shell"
)

// Options controls how file-backed arguments resolve.
type Options struct {
	// Extensions restricts which files a glob or bucket listing may yield.
	// Required for file:// arguments.
	Extensions []string
	// LoadContents loads file contents instead of recording paths.
	LoadContents bool
}

// Parser resolves magic command arguments against a session namespace and a
// cloud storage lister. Both collaborators are interfaces; the parser itself
// holds no state.
type Parser struct {
	Namespace shell.Namespace
	Blobs     gcs.BlobLister
}

// ParseObject interprets a prefixed argument. Exactly one of the returned
// slices is non-nil on success: inline JSON strings (or local paths when
// opts.LoadContents is false), or gs:// URLs resolved from a bucket listing.
func (p *Parser) ParseObject(ctx context.Context, arg string, opts Options) (inline []string, gcsPaths []string, err error) {
	switch {
	case strings.HasPrefix(arg, JSONPrefix):
		return []string{arg[len(JSONPrefix):]}, nil, nil
	case strings.HasPrefix(arg, GCSPrefix):
		paths, err := gcs.ListMatching(ctx, p.Blobs, arg[len(GCSPrefix):], opts.Extensions)
		if err != nil {
			return nil, nil, err
		}
		return nil, paths, nil
	case strings.HasPrefix(arg, FilePrefix):
		contents, err := p.parseFiles(arg[len(FilePrefix):], opts)
		if err != nil {
			return nil, nil, err
		}
		return contents, nil, nil
	case strings.HasPrefix(arg, PyPrefix):
		name := arg[len(PyPrefix):]
		v, ok := p.Namespace.Lookup(name)
		if !ok {
			return nil, nil, errors.Newf(errors.InvalidArgument, "there is no session variable named %s", name)
		}
		s, err := shell.Serialize(v)
		if err != nil {
			return nil, nil, err
		}
		return []string{s}, nil, nil
	case strings.HasPrefix(arg, PyListPrefix):
		name := arg[len(PyListPrefix):]
		v, ok := p.Namespace.Lookup(name)
		if !ok {
			return nil, nil, errors.Newf(errors.InvalidArgument, "there is no session variable named %s", name)
		}
		ss, err := shell.SerializeList(v)
		if err != nil {
			return nil, nil, err
		}
		return ss, nil, nil
	default:
		return nil, nil, errors.Newf(errors.InvalidArgument,
			"missing supported prefix, expected one of %s", strings.Join(supportedPrefixes, ", "))
	}
}

// parseFiles expands a local path or glob expression and returns either file
// contents or paths. Files whose extension is outside opts.Extensions are
// skipped; a directory matching the glob is an error, since only files can be
// loaded.
func (p *Parser) parseFiles(pathName string, opts Options) ([]string, error) {
	if len(opts.Extensions) == 0 {
		return nil, errors.New(errors.InvalidArgument, "empty required extensions")
	}

	norm := filepath.Clean(pathName)
	if strings.HasPrefix(norm, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.InvalidArgument, "cannot expand ~ in "+pathName, err)
		}
		norm = filepath.Join(home, norm[1:])
	}
	abs, err := filepath.Abs(norm)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidArgument, "cannot resolve path "+pathName, err)
	}
	matches, err := filepath.Glob(abs)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidArgument, "bad glob expression "+pathName, err)
	}

	contents := []string{}
	for _, name := range matches {
		ext := filepath.Ext(name)
		if !extAllowed(opts.Extensions, ext) {
			continue
		}
		info, err := os.Stat(name)
		if err != nil {
			return nil, errors.Wrap(errors.InvalidArgument, "cannot stat "+name, err)
		}
		if info.IsDir() {
			return nil, errors.Newf(errors.InvalidArgument,
				"use glob expression to specify files in directory %s", name)
		}
		if !opts.LoadContents {
			contents = append(contents, name)
			continue
		}
		loaded, err := loadFile(name, ext)
		if err != nil {
			return nil, err
		}
		contents = append(contents, loaded...)
	}
	return contents, nil
}

// loadFile reads a single file according to its extension. JSON files are
// round-tripped through decode/encode to verify they hold valid JSON; NDJSON
// files yield one verified JSON string per line; whistle and textproto files
// are returned verbatim.
func loadFile(name, ext string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidArgument, "cannot open "+name, err)
	}
	defer f.Close()

	switch ext {
	case ".json":
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, errors.Wrap(errors.InvalidArgument, "cannot read "+name, err)
		}
		s, err := normalizeJSON(data)
		if err != nil {
			return nil, errors.Wrap(errors.InvalidArgument, "file "+name+" does not contain valid JSON", err)
		}
		return []string{s}, nil
	case ".ndjson":
		var out []string
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			s, err := normalizeJSON([]byte(line))
			if err != nil {
				return nil, errors.Wrap(errors.InvalidArgument, "file "+name+" contains a non-JSON line", err)
			}
			out = append(out, s)
		}
		if err := scanner.Err(); err != nil {
			return nil, errors.Wrap(errors.InvalidArgument, "cannot read "+name, err)
		}
		return out, nil
	case ".wstl", ".textproto":
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, errors.Wrap(errors.InvalidArgument, "cannot read "+name, err)
		}
		return []string{string(data)}, nil
	default:
		return nil, errors.Newf(errors.InvalidArgument, "invalid file extension for file %s", name)
	}
}

// normalizeJSON verifies data is a single JSON value and re-encodes it
// compactly. Numbers keep their textual form.
func normalizeJSON(data []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	// Reject trailing content after the first value.
	if _, err := dec.Token(); err != io.EOF {
		return "", errors.New(errors.InvalidArgument, "trailing data after JSON value")
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func extAllowed(exts []string, ext string) bool {
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
