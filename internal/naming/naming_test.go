package naming

import (
	"strings"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already valid",
			input:    "webapp-db1",
			expected: "webapp-db1",
		},
		{
			name:     "uppercase lowered",
			input:    "WebApp-Db1",
			expected: "webapp-db1",
		},
		{
			name:     "punctuation collapses to one hyphen",
			input:    "web_app..db",
			expected: "web-app-db",
		},
		{
			name:     "leading digits stripped",
			input:    "1db",
			expected: "db",
		},
		{
			name:     "trailing hyphen stripped",
			input:    "db-",
			expected: "db",
		},
		{
			name:     "long names truncated to 63",
			input:    strings.Repeat("a", 80),
			expected: strings.Repeat("a", 63),
		},
		{
			name:     "truncation does not leave trailing hyphen",
			input:    strings.Repeat("a", 62) + "--bb",
			expected: strings.Repeat("a", 62),
		},
		{
			name:     "all digits collapse to empty",
			input:    "12345",
			expected: "",
		},
		{
			name:     "all punctuation collapses to empty",
			input:    "---...",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.input))
		})
	}
}

func TestPrefixedID(t *testing.T) {
	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("TestStack"), nil)

	id, err := PrefixedID(stack, "Db")
	require.NoError(t, err)
	assert.Equal(t, "teststack-db", *id)
}
