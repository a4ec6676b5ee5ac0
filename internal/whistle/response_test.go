// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package whistle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wstl/notebook/internal/errors"
)

func TestRecordToValue(t *testing.T) {
	t.Run("output decodes", func(t *testing.T) {
		v, err := RecordToValue(TransformedRecord{Output: `{"hello":"world"}`})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"hello": "world"}, v)
	})

	t.Run("error renders as map", func(t *testing.T) {
		v, err := RecordToValue(TransformedRecord{Error: &Status{Code: 3, Message: "bad mapping"}})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"code": int32(3), "message": "bad mapping"}, v)
	})

	t.Run("empty record", func(t *testing.T) {
		v, err := RecordToValue(TransformedRecord{})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{}, v)
	})

	t.Run("malformed output", func(t *testing.T) {
		_, err := RecordToValue(TransformedRecord{Output: `{"unterminated": `})
		require.Error(t, err)
		assert.Equal(t, errors.InvalidArgument, errors.KindOf(err))
	})
}

func TestResponseToValue(t *testing.T) {
	t.Run("single record unwrapped", func(t *testing.T) {
		v, err := ResponseToValue(&TransformResponse{Results: []TransformedRecord{
			{Output: `{"hello":"world"}`},
		}})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"hello": "world"}, v)
	})

	t.Run("multiple records listed", func(t *testing.T) {
		v, err := ResponseToValue(&TransformResponse{Results: []TransformedRecord{
			{Output: `{"first":"item"}`},
			{Output: `{"second":"item"}`},
		}})
		require.NoError(t, err)
		assert.Equal(t, []any{
			map[string]any{"first": "item"},
			map[string]any{"second": "item"},
		}, v)
	})

	t.Run("empty response", func(t *testing.T) {
		_, err := ResponseToValue(&TransformResponse{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no results")
	})

	t.Run("nil response", func(t *testing.T) {
		_, err := ResponseToValue(nil)
		require.Error(t, err)
	})
}

func TestParseFhirVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    FhirVersion
		wantErr bool
	}{
		{in: "r4", want: FhirVersionR4},
		{in: "R4", want: FhirVersionR4},
		{in: "stu3", want: FhirVersionSTU3},
		{in: "STU3", want: FhirVersionSTU3},
		{in: "dstu2", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFhirVersion(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.InvalidArgument, errors.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
