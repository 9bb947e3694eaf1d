// Package synth runs a CDK app package and loads the synthesized templates.
//
// The app is executed as a child process with CDK_OUTDIR pointing at a cloud
// assembly directory; the templates are then read back into the shared
// Template model.
package synth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	stackbind "github.com/rwxbyte/stackbind-aws-go"
)

// templateSuffix is the cloud assembly naming convention for stack templates.
const templateSuffix = ".template.json"

// Options configures a synth run.
type Options struct {
	// Package is the Go package of the CDK app (e.g. ./examples/webapp).
	Package string
	// OutDir receives the cloud assembly.
	OutDir string
}

// Run executes the app package and synthesizes into OutDir.
func Run(opts Options) error {
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	cmd := exec.Command("go", "run", opts.Package)
	cmd.Env = append(os.Environ(), "CDK_OUTDIR="+opts.OutDir)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("synthesizing %s: %s", opts.Package, msg)
		}
		return fmt.Errorf("synthesizing %s: %w", opts.Package, err)
	}
	return nil
}

// FindTemplates returns the stack template files in a cloud assembly, sorted
// by name.
func FindTemplates(outDir string) ([]string, error) {
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("reading cloud assembly: %w", err)
	}

	var templates []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), templateSuffix) {
			templates = append(templates, filepath.Join(outDir, e.Name()))
		}
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no stack templates found in %s", outDir)
	}
	sort.Strings(templates)
	return templates, nil
}

// PrimaryTemplate picks the template the single-stack commands operate on and
// returns the names of any other stacks in the assembly so callers can warn
// about them.
func PrimaryTemplate(templates []string) (string, []string) {
	var skipped []string
	for _, t := range templates[1:] {
		skipped = append(skipped, StackName(t))
	}
	return templates[0], skipped
}

// StackName derives the stack name from a template path.
func StackName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), templateSuffix)
}

// LoadTemplate parses a synthesized template file.
func LoadTemplate(path string) (*stackbind.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}

	var tmpl stackbind.Template
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}
	return &tmpl, nil
}

// ToYAML renders a template as YAML.
func ToYAML(tmpl *stackbind.Template) ([]byte, error) {
	data, err := yaml.Marshal(tmpl)
	if err != nil {
		return nil, fmt.Errorf("encoding template: %w", err)
	}
	return data, nil
}
