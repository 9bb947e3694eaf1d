package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rwxbyte/stackbind-aws-go/internal/graph"
)

func newGraphCmd() *cobra.Command {
	var (
		outputFormat  string
		clusterByType bool
	)

	cmd := &cobra.Command{
		Use:   "graph [package]",
		Short: "Generate DOT graph of resource dependencies",
		Long: `Generate a DOT or Mermaid format graph showing resource dependencies.

The output can be rendered with Graphviz:
    stackbind-aws graph ./examples/webapp | dot -Tpng -o deps.png

Or used in GitHub markdown (Mermaid format):
    stackbind-aws graph ./examples/webapp -f mermaid

Examples:
    stackbind-aws graph ./examples/webapp
    stackbind-aws graph ./examples/webapp -c              # cluster by service
    stackbind-aws graph ./examples/webapp -f mermaid`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadContext()
			if err != nil {
				return err
			}

			var graphFormat graph.Format
			switch outputFormat {
			case "dot":
				graphFormat = graph.FormatDOT
			case "mermaid":
				graphFormat = graph.FormatMermaid
			default:
				return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", outputFormat)
			}

			tmpl, _, err := synthesize(packageArg(args, cfg), cfg)
			if err != nil {
				return err
			}
			if len(tmpl.Resources) == 0 {
				return fmt.Errorf("no resources found")
			}

			gen := &graph.Generator{
				Format:           graphFormat,
				ClusterByService: clusterByType,
			}
			return gen.Generate(tmpl, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVarP(&clusterByType, "cluster", "c", false, "Cluster resources by AWS service")

	return cmd
}
