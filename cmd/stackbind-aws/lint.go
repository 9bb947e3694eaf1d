package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rwxbyte/stackbind-aws-go/internal/cfnlint"
)

func newLintCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "lint [package]",
		Short: "Lint the synthesized template with cfn-lint",
		Long: `Lint synthesizes the app package and validates the template with cfn-lint.

Warnings are reported but do not fail the command; errors do.

Examples:
    stackbind-aws lint ./examples/webapp
    stackbind-aws lint ./examples/webapp --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadContext()
			if err != nil {
				return err
			}

			pkg := packageArg(args, cfg)
			_, templatePath, err := synthesize(pkg, cfg)
			if err != nil {
				return err
			}
			logger.WithField("template", templatePath).Debug("linting synthesized template")

			result, err := cfnlint.Run(templatePath)
			if err != nil {
				return err
			}

			if outputFormat == "json" {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			} else {
				for _, e := range result.Errors {
					fmt.Printf("ERROR   %s\n", e)
				}
				for _, w := range result.Warnings {
					fmt.Printf("WARNING %s\n", w)
				}
				for _, i := range result.Informational {
					fmt.Printf("INFO    %s\n", i)
				}
				if result.TotalIssues() == 0 {
					fmt.Println("No issues found")
				}
			}

			if !result.Success {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}
