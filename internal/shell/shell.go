// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package shell models the interactive session namespace the py:// and
// pylist:// argument prefixes resolve against. In the notebook deployment the
// namespace is the kernel's variable table; the CLI provides a file-backed
// Session so variables survive between invocations.
package shell

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"wstl/notebook/internal/errors"
)

// Namespace is a read-only variable table. The parser only ever looks
// variables up; it never mutates the caller's namespace.
type Namespace interface {
	Lookup(name string) (any, bool)
}

// MapNamespace is an in-memory Namespace for library callers and tests.
type MapNamespace map[string]any

func (m MapNamespace) Lookup(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// Serialize renders a namespace value as JSON text. Strings pass through
// untouched; maps and lists are encoded as JSON objects and arrays. Any other
// type is rejected, matching the notebook behavior of only accepting str,
// dict and list variables.
func Serialize(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case map[string]any, []any:
		pv, err := structpb.NewValue(val)
		if err != nil {
			return "", errors.Wrap(errors.InvalidArgument,
				fmt.Sprintf("variable %v is not json encodable", val), err)
		}
		b, err := protojson.Marshal(pv)
		if err != nil {
			return "", errors.Wrap(errors.InvalidArgument,
				fmt.Sprintf("variable %v is not json encodable", val), err)
		}
		return string(b), nil
	default:
		return "", errors.Newf(errors.InvalidArgument, "variable %v is not json encodable", val)
	}
}

// SerializeList renders a list-valued namespace variable as one JSON string
// per element. Nested lists serialize to JSON arrays rather than being
// flattened further.
func SerializeList(v any) ([]string, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, errors.Newf(errors.InvalidArgument, "variable %v is not a list", v)
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, err := Serialize(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
