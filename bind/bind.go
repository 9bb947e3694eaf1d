// Package bind wires constructs to Lambda functions with least privilege.
//
// A construct that wants to be consumable from function code implements
// Bindable and returns a Descriptor: the environment variables the function
// needs and the IAM actions it must be allowed, scoped to concrete ARNs.
// Bind applies a set of descriptors to a function in one call:
//
//	bind.Bind(webFn, db, queue)
package bind

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/jsii-runtime-go"
)

// Variable types. Secret variables hold an ARN that function code must
// resolve through Secrets Manager at runtime, never the secret value itself.
const (
	VariablePlain  = "plain"
	VariableSecret = "secret"
)

// Variable is a single environment value exported by a construct.
type Variable struct {
	// Type is VariablePlain or VariableSecret.
	Type string
	// Value may contain an unresolved CDK token.
	Value string
}

// Descriptor describes the variables and permissions a function needs to use
// a construct. It is produced once from already-validated construct state and
// never mutated.
type Descriptor struct {
	// ClientPackage names the client-side helper package consumers use to
	// read the variables (e.g. "rds").
	ClientPackage string
	// ConstructID is the construct id the descriptor was exported from.
	ConstructID string
	// Variables maps variable name to its type and value.
	Variables map[string]Variable
	// Permissions maps an IAM action to the resource ARNs it is granted on.
	Permissions map[string][]*string
}

// Bindable is implemented by constructs that export a binding Descriptor.
type Bindable interface {
	Binding() Descriptor
}

// Bind grants fn access to each resource: environment variables for
// discovery, plus one scoped policy statement per permission action.
func Bind(fn awslambda.Function, resources ...Bindable) {
	for _, r := range resources {
		d := r.Binding()

		// deterministic iteration so synthesized templates are stable
		names := make([]string, 0, len(d.Variables))
		for name := range d.Variables {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fn.AddEnvironment(
				jsii.String(EnvName(d.ClientPackage, name, d.ConstructID)),
				jsii.String(d.Variables[name].Value),
				nil,
			)
		}

		actions := make([]string, 0, len(d.Permissions))
		for action := range d.Permissions {
			actions = append(actions, action)
		}
		sort.Strings(actions)
		for _, action := range actions {
			arns := d.Permissions[action]
			fn.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
				Effect:    awsiam.Effect_ALLOW,
				Actions:   &[]*string{jsii.String(action)},
				Resources: &arns,
			}))
		}
	}
}

// EnvName returns the environment variable name for a bound variable:
// SB_<clientPackage>_<variable>_<constructID>, uppercased with non-alphanumeric
// runes mapped to underscores.
func EnvName(clientPackage, variable, constructID string) string {
	return fmt.Sprintf("SB_%s_%s_%s",
		envSegment(clientPackage), envSegment(variable), envSegment(constructID))
}

func envSegment(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
