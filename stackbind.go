// Package stackbind_aws provides higher-level AWS CDK constructs for Go with
// validated configuration and least-privilege binding.
//
// The construct packages (rds, bind) wrap the AWS CDK for Go:
//
//	db, err := rds.NewInstance(stack, "Db", &rds.InstanceProps{
//	    DatabaseName: "db1",
//	    Engine:       rds.EngineMySQL57,
//	})
//
//	bind.Bind(webFn, db)
//
// The stackbind-aws CLI synthesizes CDK app packages and inspects, lints,
// graphs, and watches the resulting templates.
package stackbind_aws

import (
	"fmt"
)

// ConfigError reports invalid construct configuration. All validation happens
// at construction time, before any provisioning I/O.
type ConfigError struct {
	// Construct is the construct id the configuration belongs to.
	Construct string
	// Field is the offending property, when a single field is at fault.
	Field string
	// Reason describes what is wrong and, where useful, what is accepted.
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: invalid configuration for %q: %s", e.Construct, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: invalid configuration: %s", e.Construct, e.Reason)
}

// Template is a minimal model of a synthesized CloudFormation template, as
// found in a CDK cloud assembly.
type Template struct {
	AWSTemplateFormatVersion string                 `json:"AWSTemplateFormatVersion,omitempty" yaml:"AWSTemplateFormatVersion,omitempty"`
	Description              string                 `json:"Description,omitempty" yaml:"Description,omitempty"`
	Parameters               map[string]Parameter   `json:"Parameters,omitempty" yaml:"Parameters,omitempty"`
	Resources                map[string]ResourceDef `json:"Resources" yaml:"Resources"`
	Outputs                  map[string]Output      `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
}

// ResourceDef is a single resource in the template.
type ResourceDef struct {
	Type       string         `json:"Type" yaml:"Type"`
	Properties map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	DependsOn  []string       `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
	Metadata   map[string]any `json:"Metadata,omitempty" yaml:"Metadata,omitempty"`
}

// Parameter is a template parameter.
type Parameter struct {
	Type        string `json:"Type" yaml:"Type"`
	Description string `json:"Description,omitempty" yaml:"Description,omitempty"`
	Default     any    `json:"Default,omitempty" yaml:"Default,omitempty"`
}

// Output is a template output.
type Output struct {
	Description string `json:"Description,omitempty" yaml:"Description,omitempty"`
	Value       any    `json:"Value" yaml:"Value"`
	Export      *struct {
		Name string `json:"Name" yaml:"Name"`
	} `json:"Export,omitempty" yaml:"Export,omitempty"`
}

// LintResult is the JSON output from `stackbind-aws lint`.
type LintResult struct {
	Success       bool     `json:"success"`
	Errors        []string `json:"errors,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
	Informational []string `json:"informational,omitempty"`
}

// TotalIssues returns the total number of lint findings.
func (r LintResult) TotalIssues() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Informational)
}

// ListResult is the JSON output from `stackbind-aws list`.
type ListResult struct {
	Stack     string         `json:"stack"`
	Resources []ListResource `json:"resources"`
}

// ListResource is a single resource in the list output.
type ListResource struct {
	LogicalID string `json:"logicalId"`
	Type      string `json:"type"`
}
