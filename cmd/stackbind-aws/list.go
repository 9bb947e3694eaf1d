package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	stackbind "github.com/rwxbyte/stackbind-aws-go"
	"github.com/rwxbyte/stackbind-aws-go/internal/config"
	"github.com/rwxbyte/stackbind-aws-go/internal/synth"
)

func newListCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "list [package]",
		Short: "List resources in the synthesized template",
		Long: `List synthesizes the app package and displays its resources.

Examples:
    stackbind-aws list ./examples/webapp
    stackbind-aws list ./examples/webapp --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadContext()
			if err != nil {
				return err
			}
			return runList(packageArg(args, cfg), cfg, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runList(pkg string, cfg *config.Config, format string) error {
	tmpl, path, err := synthesize(pkg, cfg)
	if err != nil {
		return err
	}

	result := stackbind.ListResult{
		Stack:     synth.StackName(path),
		Resources: make([]stackbind.ListResource, 0, len(tmpl.Resources)),
	}
	for id, res := range tmpl.Resources {
		result.Resources = append(result.Resources, stackbind.ListResource{
			LogicalID: id,
			Type:      res.Type,
		})
	}
	sort.Slice(result.Resources, func(i, j int) bool {
		return result.Resources[i].LogicalID < result.Resources[j].LogicalID
	})

	if format == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Stack: %s\n\n", result.Stack)
	for _, res := range result.Resources {
		fmt.Printf("  %-40s %s\n", res.LogicalID, res.Type)
	}
	fmt.Printf("\n%d resources\n", len(result.Resources))
	return nil
}
