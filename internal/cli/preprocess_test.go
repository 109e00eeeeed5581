package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessYAML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		envVars  map[string]string
		expected string
		wantErr  string
	}{
		{
			name:     "single substitution",
			input:    "title: {{ .ENV.PROJECT_TITLE }}",
			envVars:  map[string]string{"PROJECT_TITLE": "Field tapes"},
			expected: "title: Field tapes",
		},
		{
			name:     "several substitutions",
			input:    "collection_name: {{ .ENV.NAME }}\ndepartment: {{ .ENV.DEPT }}",
			envVars:  map[string]string{"NAME": "Music Library", "DEPT": "Music"},
			expected: "collection_name: Music Library\ndepartment: Music",
		},
		{
			name:     "value with equals signs",
			input:    "record_series: {{ .ENV.SERIES }}",
			envVars:  map[string]string{"SERIES": "a=b&c=d"},
			expected: "record_series: a=b&c=d",
		},
		{
			name:     "empty value",
			input:    "current_location: {{ .ENV.EMPTY_LOCATION }}",
			envVars:  map[string]string{"EMPTY_LOCATION": ""},
			expected: "current_location: ",
		},
		{
			name:     "no placeholders",
			input:    "kind: project\nspec:\n  title: plain",
			expected: "kind: project\nspec:\n  title: plain",
		},
		{
			name:    "missing variable",
			input:   "title: {{ .ENV.TYKO_MISSING_VAR }}",
			wantErr: "missing environment variable: TYKO_MISSING_VAR",
		},
		{
			name:    "malformed template",
			input:   "title: {{ .ENV.TITLE",
			wantErr: "unclosed action",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			result, err := PreprocessYAML([]byte(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestPreprocessYAMLWithEnvFile(t *testing.T) {
	originalWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { os.Chdir(originalWd) })
	require.NoError(t, os.Chdir(t.TempDir()))

	envContent := "TYKO_TEST_TITLE=from_env_file\nTYKO_TEST_DEPT=Music\n"
	require.NoError(t, os.WriteFile(".env", []byte(envContent), 0644))
	t.Cleanup(func() {
		os.Unsetenv("TYKO_TEST_DEPT")
	})

	// The environment wins over the .env file.
	t.Setenv("TYKO_TEST_TITLE", "from_environment")

	input := "title: {{ .ENV.TYKO_TEST_TITLE }}\ndepartment: {{ .ENV.TYKO_TEST_DEPT }}"
	result, err := PreprocessYAML([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "title: from_environment\ndepartment: Music", string(result))
}
