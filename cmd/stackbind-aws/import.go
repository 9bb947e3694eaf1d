package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rwxbyte/stackbind-aws-go/internal/lookup"
)

// newImportCmd creates the "import" subcommand for resolving live instances.
func newImportCmd() *cobra.Command {
	var (
		secretArn string
		region    string
		profile   string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "import <db-instance-identifier>",
		Short: "Resolve a live RDS instance for importing",
		Long: `Import looks up a live RDS instance and prints the attributes needed
to reference it from an app instead of creating a new one.

The credentials secret is taken from the instance's managed master-user
secret when present; otherwise pass --secret-arn to validate and use a
manually managed secret.

Examples:
    stackbind-aws import prod-orders-db
    stackbind-aws import prod-orders-db --secret-arn arn:aws:secretsmanager:... --region us-west-2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadContext()
			if err != nil {
				return err
			}
			if region == "" {
				region = cfg.AWS.Region
			}
			if profile == "" {
				profile = cfg.AWS.Profile
			}

			client, err := lookup.NewClient(cmd.Context(), region, profile, logger)
			if err != nil {
				return err
			}

			spec, err := client.DescribeInstance(cmd.Context(), args[0], secretArn)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(spec)
			if err != nil {
				return fmt.Errorf("encoding import spec: %w", err)
			}

			if output == "" {
				fmt.Print(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Printf("Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&secretArn, "secret-arn", "", "ARN of the credentials secret when the instance has no managed one")
	cmd.Flags().StringVar(&region, "region", "", "AWS region (defaults to config)")
	cmd.Flags().StringVar(&profile, "profile", "", "AWS shared config profile (defaults to config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}
