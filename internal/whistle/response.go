// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package whistle

import (
	"encoding/json"

	"wstl/notebook/internal/errors"
)

// RecordToValue converts a single transformed record into a JSON-compatible
// value: the decoded output when the mapping succeeded, otherwise the error
// rendered as a map.
func RecordToValue(rec TransformedRecord) (any, error) {
	if rec.Output != "" {
		var v any
		if err := json.Unmarshal([]byte(rec.Output), &v); err != nil {
			return nil, errors.Wrap(errors.InvalidArgument, "service returned malformed output", err)
		}
		return v, nil
	}
	if rec.Error != nil {
		return map[string]any{
			"code":    rec.Error.Code,
			"message": rec.Error.Message,
		}, nil
	}
	return map[string]any{}, nil
}

// ResponseToValue converts a transform response into a JSON-compatible value.
// Responses with a single record are unwrapped; multi-record responses become
// a list, one element per record.
func ResponseToValue(resp *TransformResponse) (any, error) {
	if resp == nil || len(resp.Results) == 0 {
		return nil, errors.New(errors.InvalidArgument, "service returned no results")
	}
	if len(resp.Results) == 1 {
		return RecordToValue(resp.Results[0])
	}
	out := make([]any, 0, len(resp.Results))
	for _, rec := range resp.Results {
		v, err := RecordToValue(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
