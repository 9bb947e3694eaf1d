package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	stackbind "github.com/rwxbyte/stackbind-aws-go"
	"github.com/rwxbyte/stackbind-aws-go/internal/config"
	"github.com/rwxbyte/stackbind-aws-go/internal/synth"
)

func newSynthCmd() *cobra.Command {
	var (
		outputFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "synth [package]",
		Short: "Synthesize a CDK app package and print its template",
		Long: `Synth runs the CDK app package and prints the synthesized template.

Examples:
    stackbind-aws synth ./examples/webapp
    stackbind-aws synth ./examples/webapp -o template.json
    stackbind-aws synth ./examples/webapp --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadContext()
			if err != nil {
				return err
			}
			return runSynth(packageArg(args, cfg), cfg, outputFormat, outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runSynth(pkg string, cfg *config.Config, format, outputFile string) error {
	tmpl, _, err := synthesize(pkg, cfg)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "yaml":
		data, err = synth.ToYAML(tmpl)
	case "json":
		data, err = json.MarshalIndent(tmpl, "", "  ")
	default:
		return fmt.Errorf("unknown format: %s (use 'json' or 'yaml')", format)
	}
	if err != nil {
		return err
	}

	if outputFile != "" {
		return os.WriteFile(outputFile, data, 0o644)
	}
	fmt.Println(string(data))
	return nil
}

// synthesize runs the app package into the configured assembly directory and
// loads the first stack template. The template path is returned alongside for
// commands that feed files to other tools.
func synthesize(pkg string, cfg *config.Config) (*stackbind.Template, string, error) {
	outDir := cfg.App.OutDir
	if err := synth.Run(synth.Options{Package: pkg, OutDir: outDir}); err != nil {
		return nil, "", err
	}

	templates, err := synth.FindTemplates(outDir)
	if err != nil {
		return nil, "", err
	}

	path, skipped := synth.PrimaryTemplate(templates)
	if len(skipped) > 0 {
		fmt.Fprintf(os.Stderr, "warning: assembly has %d stacks, using %s (skipping %s)\n",
			len(templates), synth.StackName(path), strings.Join(skipped, ", "))
	}
	tmpl, err := synth.LoadTemplate(path)
	if err != nil {
		return nil, "", err
	}
	return tmpl, filepath.Clean(path), nil
}
