package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/rwxbyte/stackbind-aws-go/internal/cfnlint"
	"github.com/rwxbyte/stackbind-aws-go/internal/config"
)

// newWatchCmd creates the "watch" subcommand for auto-resynthesizing on file changes.
func newWatchCmd() *cobra.Command {
	var (
		skipLint bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [package]",
		Short: "Auto-resynthesize on source file changes",
		Long: `Watch monitors the app package for changes and resynthesizes automatically.

The watch command:
- Monitors the package directory for .go file changes
- Resynthesizes the template on each change
- Lints the fresh template with cfn-lint (unless --skip-lint)
- Debounces rapid changes to avoid excessive rebuilds

Examples:
    stackbind-aws watch ./examples/webapp
    stackbind-aws watch ./examples/webapp --debounce 1s`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadContext()
			if err != nil {
				return err
			}
			return runWatch(packageArg(args, cfg), cfg, watchOptions{
				skipLint: skipLint,
				debounce: debounce,
			})
		},
	}

	cmd.Flags().BoolVar(&skipLint, "skip-lint", false, "Skip linting after synthesis")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")

	return cmd
}

type watchOptions struct {
	skipLint bool
	debounce time.Duration
}

// runWatch monitors the package directory and resynthesizes on changes.
func runWatch(pkg string, cfg *config.Config, opts watchOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	dir, err := filepath.Abs(strings.TrimSuffix(pkg, "/..."))
	if err != nil {
		return fmt.Errorf("failed to resolve package %s: %w", pkg, err)
	}

	if err := addDirRecursive(watcher, dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	fmt.Printf("Watching: %s\n", dir)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Running initial synthesis...")
	runWatchCycle(pkg, cfg, opts)

	// Debounce timer
	var debounceTimer *time.Timer
	rebuildChan := make(chan struct{}, 1)

	fmt.Println("\nWatching for changes... (Ctrl+C to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only watch .go files
			if !strings.HasSuffix(event.Name, ".go") {
				continue
			}

			// Only process write/create events
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// Debounce: reset timer on each change
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(opts.debounce, func() {
				select {
				case rebuildChan <- struct{}{}:
				default:
				}
			})

		case <-rebuildChan:
			fmt.Printf("\n[%s] Change detected, resynthesizing...\n", time.Now().Format("15:04:05"))
			runWatchCycle(pkg, cfg, opts)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-sigChan:
			fmt.Println("\nStopping watch...")
			return nil
		}
	}
}

// addDirRecursive adds a directory and all subdirectories to the watcher.
func addDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			// Skip hidden directories
			if strings.HasPrefix(filepath.Base(path), ".") && path != dir {
				return filepath.SkipDir
			}
			// Skip synth output and vendor
			base := filepath.Base(path)
			if base == "vendor" || base == "cdk.out" {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

// runWatchCycle synthesizes the package and optionally lints the result.
func runWatchCycle(pkg string, cfg *config.Config, opts watchOptions) {
	tmpl, templatePath, err := synthesize(pkg, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Synthesis error: %v\n", err)
		return
	}
	fmt.Printf("Synthesized %d resources to %s\n", len(tmpl.Resources), templatePath)

	if opts.skipLint {
		return
	}

	result, err := cfnlint.Run(templatePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Lint error: %v\n", err)
		return
	}

	for _, e := range result.Errors {
		fmt.Printf("ERROR   %s\n", e)
	}
	for _, w := range result.Warnings {
		fmt.Printf("WARNING %s\n", w)
	}
	if result.Success {
		fmt.Println("Lint passed")
	} else {
		fmt.Println("Lint failed")
	}
}
