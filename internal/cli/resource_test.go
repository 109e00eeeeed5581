package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrictMapAnyAnyToStringAny(t *testing.T) {
	tests := []struct {
		name        string
		input       any
		expected    map[string]any
		expectError bool
	}{
		{
			name: "nested maps and arrays",
			input: map[any]any{
				"name": "Concert reels",
				"items": []any{
					map[any]any{"name": "reel 1", "format_id": 4},
				},
				"spec": map[string]any{"files": []any{map[any]any{"name": "a.wav"}}},
			},
			expected: map[string]any{
				"name": "Concert reels",
				"items": []any{
					map[string]any{"name": "reel 1", "format_id": 4},
				},
				"spec": map[string]any{"files": []any{map[string]any{"name": "a.wav"}}},
			},
		},
		{
			name:     "empty map",
			input:    map[any]any{},
			expected: map[string]any{},
		},
		{
			name:        "non-string key",
			input:       map[any]any{123: "value"},
			expectError: true,
		},
		{
			name:        "nested non-string key",
			input:       map[any]any{"items": []any{map[any]any{789: "x"}}},
			expectError: true,
		},
		{
			name:        "nil input",
			input:       nil,
			expectError: true,
		},
		{
			name:        "scalar input",
			input:       "not a map",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := StrictMapAnyAnyToStringAny(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestLoadResourceFromMultiYAMLFile(t *testing.T) {
	manifest := []byte(`kind: project
spec:
  title: Field tapes
---
kind: Collection
metadata:
  name: music
spec:
  collection_name: Music Library
---
kind: objects
spec:
  name: Concert reels
  collectionId: 1
---
kind: project
spec:
	title: Tabbed title
`)

	resources, err := LoadResourceFromMultiYAMLFile("", manifest)
	require.NoError(t, err)
	require.Len(t, resources["project"], 2)
	require.Len(t, resources["collection"], 1)
	require.Len(t, resources["object"], 1)

	assert.JSONEq(t, `{"title":"Field tapes"}`, string(resources["project"][0].JSON))
	assert.JSONEq(t, `{"title":"Tabbed title"}`, string(resources["project"][1].JSON))
	assert.JSONEq(t, `{"name":"Concert reels","collectionId":1}`, string(resources["object"][0].JSON))
	assert.Equal(t, "music", resources["collection"][0].Label())
	assert.Equal(t, "project", resources["project"][0].Label())
}

func TestLoadResourceFromMultiYAMLFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"unknown kind", "kind: tape\nspec:\n  name: x\n", "unknown resource kind"},
		{"kind not a string", "kind: [project]\nspec:\n  title: x\n", "is not a string"},
		{"missing spec", "kind: project\n", "spec not found"},
		{"spec not a map", "kind: project\nspec: title\n", "spec has invalid format"},
		{"formats are fixed", "kind: format\nspec:\n  name: tape\n", "cannot be created"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadResourceFromMultiYAMLFile("", []byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
