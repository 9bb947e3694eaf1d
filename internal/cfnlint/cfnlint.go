// Package cfnlint validates synthesized CloudFormation templates with
// cfn-lint-go as a library dependency.
package cfnlint

import (
	"fmt"
	"os"
	"strings"

	"github.com/lex00/cfn-lint-go/pkg/lint"

	stackbind "github.com/rwxbyte/stackbind-aws-go"
)

// Run lints the template file at path and categorizes findings by level.
// Warnings do not fail the result; errors do.
func Run(path string) (*stackbind.LintResult, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("template file not found: %s", path)
	}

	linter := lint.New(lint.Options{})
	matches, err := linter.LintFile(path)
	if err != nil {
		return nil, fmt.Errorf("linting %s: %w", path, err)
	}

	result := &stackbind.LintResult{Success: true}
	for _, match := range matches {
		formatted := FormatMatch(match)
		switch match.Level {
		case "Error":
			result.Errors = append(result.Errors, formatted)
		case "Warning":
			result.Warnings = append(result.Warnings, formatted)
		default:
			result.Informational = append(result.Informational, formatted)
		}
	}

	result.Success = len(result.Errors) == 0
	return result, nil
}

// FormatMatch formats a cfn-lint match as "RULE: message (at path)".
func FormatMatch(match lint.Match) string {
	pathStr := ""
	if len(match.Location.Path) > 0 {
		parts := make([]string, len(match.Location.Path))
		for i, p := range match.Location.Path {
			parts[i] = fmt.Sprintf("%v", p)
		}
		pathStr = strings.Join(parts, "/")
	}

	if pathStr != "" {
		return fmt.Sprintf("%s: %s (at %s)", match.Rule.ID, match.Message, pathStr)
	}
	return fmt.Sprintf("%s: %s", match.Rule.ID, match.Message)
}
