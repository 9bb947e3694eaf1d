// Command stackbind-aws synthesizes and inspects CDK app packages built on
// the stackbind constructs.
//
// Usage:
//
//	stackbind-aws synth ./infra          Synthesize and print the template
//	stackbind-aws list ./infra           List resources in the template
//	stackbind-aws graph ./infra          DOT graph of resource dependencies
//	stackbind-aws lint ./infra           cfn-lint the synthesized template
//	stackbind-aws watch ./infra          Re-synthesize on source changes
//	stackbind-aws import my-db           Import spec for a live RDS instance
//	stackbind-aws version                Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rwxbyte/stackbind-aws-go/internal/config"
	"github.com/rwxbyte/stackbind-aws-go/internal/logging"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stackbind-aws",
		Short: "Synthesize and inspect stackbind CDK apps",
		Long: `stackbind-aws operates on CDK app packages that use the stackbind constructs.

Point it at a Go package containing a CDK app:

    stackbind-aws synth ./examples/webapp`,
	}

	rootCmd.AddCommand(
		newSynthCmd(),
		newListCmd(),
		newGraphCmd(),
		newLintCmd(),
		newWatchCmd(),
		newImportCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadContext loads the CLI config and a logger configured from it.
func loadContext() (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(cfg.Logging.Level, cfg.Logging.Format), nil
}

// packageArg picks the app package from args or the config default.
func packageArg(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.App.Package
}
