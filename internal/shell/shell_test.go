// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wstl/notebook/internal/errors"
)

func TestSerialize(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{
			name:  "string passes through",
			value: `{"hello": "world"}`,
			want:  `{"hello": "world"}`,
		},
		{
			name:  "map",
			value: map[string]any{"hello": "world"},
			want:  `{"hello":"world"}`,
		},
		{
			name:  "list",
			value: []any{map[string]any{"first": "item"}, map[string]any{"second": "item"}},
			want:  `[{"first":"item"},{"second":"item"}]`,
		},
		{
			name:  "nested",
			value: map[string]any{"outer": map[string]any{"inner": []any{1, 2}}},
			want:  `{"outer":{"inner":[1,2]}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Serialize(tt.value)
			require.NoError(t, err)
			if _, isString := tt.value.(string); isString {
				assert.Equal(t, tt.want, got)
			} else {
				assert.JSONEq(t, tt.want, got)
			}
		})
	}
}

func TestSerializeRejectsOtherTypes(t *testing.T) {
	for _, v := range []any{42, 4.2, true, nil, func() {}, struct{}{}} {
		_, err := Serialize(v)
		require.Error(t, err)
		assert.Equal(t, errors.InvalidArgument, errors.KindOf(err))
		assert.Contains(t, err.Error(), "not json encodable")
	}
}

func TestSerializeList(t *testing.T) {
	out, err := SerializeList([]any{
		map[string]any{"first": "item"},
		"raw string",
		[]any{1, 2},
	})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.JSONEq(t, `{"first":"item"}`, out[0])
	assert.Equal(t, "raw string", out[1])
	assert.JSONEq(t, `[1,2]`, out[2])
}

func TestSerializeListRejectsNonList(t *testing.T) {
	_, err := SerializeList(map[string]any{"hello": "world"})
	require.Error(t, err)
	assert.Equal(t, errors.InvalidArgument, errors.KindOf(err))
	assert.Contains(t, err.Error(), "not a list")
}

func TestSessionLifecycle(t *testing.T) {
	dir := t.TempDir()

	sess, err := Open(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)

	require.NoError(t, sess.Set("input", []byte(`{"hello": "world"}`)))
	require.NoError(t, sess.Save())

	reopened, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, reopened.ID)

	v, ok := reopened.Lookup("input")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"hello": "world"}, v)
}

func TestSessionSetRejectsInvalidJSON(t *testing.T) {
	sess, err := Open(t.TempDir())
	require.NoError(t, err)

	err = sess.Set("bad", []byte(`{"unterminated": `))
	require.Error(t, err)
	assert.Equal(t, errors.InvalidArgument, errors.KindOf(err))

	err = sess.Set("", []byte(`1`))
	require.Error(t, err)
}

func TestSessionReset(t *testing.T) {
	sess, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, sess.Set("input", []byte(`1`)))

	oldID := sess.ID
	sess.Reset()
	assert.NotEqual(t, oldID, sess.ID)
	assert.Empty(t, sess.Names())
}

func TestSessionUnsetAndNames(t *testing.T) {
	sess, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, sess.Set("b", []byte(`2`)))
	require.NoError(t, sess.Set("a", []byte(`1`)))

	assert.Equal(t, []string{"a", "b"}, sess.Names())
	assert.True(t, sess.Unset("a"))
	assert.False(t, sess.Unset("a"))
	assert.Equal(t, []string{"b"}, sess.Names())
}
