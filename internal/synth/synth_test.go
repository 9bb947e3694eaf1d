package synth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTemplate = `{
	"Resources": {
		"Db": {
			"Type": "AWS::RDS::DBInstance",
			"Properties": {"Engine": "mysql"}
		}
	},
	"Outputs": {
		"Endpoint": {"Value": {"Fn::GetAtt": ["Db", "Endpoint.Address"]}}
	}
}`

func writeAssembly(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(sampleTemplate), 0o644))
	}
	return dir
}

func TestFindTemplates(t *testing.T) {
	dir := writeAssembly(t, "WebApp.template.json", "Other.template.json")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), []byte("{}"), 0o644))

	templates, err := FindTemplates(dir)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "Other.template.json", filepath.Base(templates[0]))
	assert.Equal(t, "WebApp.template.json", filepath.Base(templates[1]))
}

func TestFindTemplates_Empty(t *testing.T) {
	dir := t.TempDir()
	_, err := FindTemplates(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no stack templates")
}

func TestPrimaryTemplate(t *testing.T) {
	path, skipped := PrimaryTemplate([]string{"/out/WebApp.template.json"})
	assert.Equal(t, "/out/WebApp.template.json", path)
	assert.Empty(t, skipped)

	// templates arrive sorted; the rest are reported by stack name
	path, skipped = PrimaryTemplate([]string{
		"/out/Alpha.template.json",
		"/out/Beta.template.json",
		"/out/Gamma.template.json",
	})
	assert.Equal(t, "/out/Alpha.template.json", path)
	assert.Equal(t, []string{"Beta", "Gamma"}, skipped)
}

func TestStackName(t *testing.T) {
	assert.Equal(t, "WebApp", StackName("/tmp/out/WebApp.template.json"))
	assert.Equal(t, "Other", StackName("Other.template.json"))
}

func TestLoadTemplate(t *testing.T) {
	dir := writeAssembly(t, "WebApp.template.json")

	tmpl, err := LoadTemplate(filepath.Join(dir, "WebApp.template.json"))
	require.NoError(t, err)

	require.Contains(t, tmpl.Resources, "Db")
	assert.Equal(t, "AWS::RDS::DBInstance", tmpl.Resources["Db"].Type)
	require.Contains(t, tmpl.Outputs, "Endpoint")
}

func TestLoadTemplate_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Broken.template.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err := LoadTemplate(path)
	require.Error(t, err)
}

func TestToYAML(t *testing.T) {
	dir := writeAssembly(t, "WebApp.template.json")
	tmpl, err := LoadTemplate(filepath.Join(dir, "WebApp.template.json"))
	require.NoError(t, err)

	data, err := ToYAML(tmpl)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.Contains(text, "Resources:"))
	assert.True(t, strings.Contains(text, "AWS::RDS::DBInstance"))
}
