// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package magics

import (
	"context"
	"strings"

	"wstl/notebook/internal/errors"
	"wstl/notebook/internal/whistle"
)

// ParseLocation interprets a prefixed argument and wraps each resolved value
// in a whistle Location message. json://, py:// and pylist:// payloads are
// always inline_json locations. file:// results become inline_json when
// opts.LoadContents is set and local_path otherwise; bucket listings become
// gcs_location locations. Each Location carries exactly one field.
func (p *Parser) ParseLocation(ctx context.Context, arg string, opts Options) ([]whistle.Location, error) {
	inline, gcsPaths, err := p.ParseObject(ctx, arg, opts)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasPrefix(arg, JSONPrefix),
		strings.HasPrefix(arg, PyPrefix),
		strings.HasPrefix(arg, PyListPrefix):
		locations := make([]whistle.Location, 0, len(inline))
		for _, item := range inline {
			locations = append(locations, whistle.Location{InlineJSON: item})
		}
		return locations, nil
	case strings.HasPrefix(arg, FilePrefix):
		locations := make([]whistle.Location, 0, len(inline))
		for _, item := range inline {
			if opts.LoadContents {
				locations = append(locations, whistle.Location{InlineJSON: item})
			} else {
				locations = append(locations, whistle.Location{LocalPath: item})
			}
		}
		return locations, nil
	case strings.HasPrefix(arg, GCSPrefix):
		locations := make([]whistle.Location, 0, len(gcsPaths))
		for _, gcsPath := range gcsPaths {
			locations = append(locations, whistle.Location{GCSLocation: gcsPath})
		}
		return locations, nil
	default:
		// ParseObject already rejects unknown prefixes; kept for symmetry.
		return nil, errors.Newf(errors.InvalidArgument,
			"missing supported prefix, expected one of %s", strings.Join(supportedPrefixes, ", "))
	}
}
