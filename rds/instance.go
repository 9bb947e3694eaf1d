// Package rds provides a validated RDS database instance construct.
//
// Instance normalizes its configuration before delegating to the CDK: it
// resolves the engine id to a concrete engine and version, fills in a private
// VPC, isolated subnet placement and a small burstable instance class when
// the caller does not override them, and rejects configurations that mix the
// create and import paths or that smuggle top-level settings into the
// advanced override bag. Provisioning itself stays with the CDK; this
// construct only registers validated resource definitions and exposes the
// resulting handles.
package rds

import (
	"fmt"
	"strconv"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsrds"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssecretsmanager"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	stackbind "github.com/rwxbyte/stackbind-aws-go"
	"github.com/rwxbyte/stackbind-aws-go/bind"
	"github.com/rwxbyte/stackbind-aws-go/internal/naming"
)

// defaultMasterUsername is the login stored in the generated secret when the
// caller does not supply credentials.
const defaultMasterUsername = "admin"

// ExistingInstance imports a database that already exists instead of creating
// one. The companion secret is required so bound functions can authenticate.
type ExistingInstance struct {
	Instance awsrds.IDatabaseInstance
	Secret   awssecretsmanager.ISecret
}

// InstanceProps configures an Instance.
//
// Exactly one of the two configuration shapes applies: create (Engine plus
// optional Vpc/VpcSubnets/CdkProps) or import (Existing). CdkProps is the
// escape hatch to the full CDK property surface; settings that have a
// top-level field here must not be repeated inside it.
type InstanceProps struct {
	// DatabaseName is the name of the default database. Required.
	DatabaseName string

	// Engine selects engine and version, e.g. EngineMySQL57. Required when
	// creating; optional when importing (used for connection strings).
	Engine EngineID

	// Vpc places the instance in an existing network. When nil a minimal
	// private VPC with zero NAT gateways is created.
	Vpc awsec2.IVpc

	// VpcSubnets selects subnets within a caller-supplied Vpc. Ignored when
	// Vpc is nil; the created VPC always uses isolated subnets.
	VpcSubnets *awsec2.SubnetSelection

	// CdkProps passes advanced settings straight to the CDK. Engine, Vpc and
	// DatabaseName must stay on InstanceProps.
	CdkProps *awsrds.DatabaseInstanceProps

	// Existing imports a database instead of creating one.
	Existing *ExistingInstance
}

// Instance is an RDS database instance with normalized configuration and a
// function binding for least-privilege access.
type Instance struct {
	constructs.Construct

	id           string
	databaseName string
	engine       EngineID
	port         string
	imported     bool

	db     awsrds.IDatabaseInstance
	secret awssecretsmanager.ISecret
}

// NewInstance creates or imports a database instance under scope. All
// failures are configuration errors reported before any provisioning starts.
func NewInstance(scope constructs.Construct, id string, props *InstanceProps) (*Instance, error) {
	if props == nil {
		props = &InstanceProps{}
	}
	if props.DatabaseName == "" {
		return nil, &stackbind.ConfigError{Construct: id, Field: "databaseName", Reason: "a database name is required"}
	}

	this := constructs.NewConstruct(scope, &id)
	inst := &Instance{
		Construct:    this,
		id:           id,
		databaseName: props.DatabaseName,
		engine:       props.Engine,
	}

	if props.Existing != nil {
		if err := inst.importExisting(id, props); err != nil {
			return nil, err
		}
		return inst, nil
	}
	if err := inst.create(this, id, props); err != nil {
		return nil, err
	}
	return inst, nil
}

// importExisting wires the instance around handles the caller already owns.
func (i *Instance) importExisting(id string, props *InstanceProps) error {
	if props.Existing.Instance == nil {
		return &stackbind.ConfigError{Construct: id, Field: "existing", Reason: "an existing instance handle is required"}
	}
	if props.Existing.Secret == nil {
		return &stackbind.ConfigError{Construct: id, Field: "existing", Reason: "missing secret: importing an instance requires its credentials secret"}
	}
	if props.CdkProps != nil {
		return &stackbind.ConfigError{Construct: id, Field: "cdkProps", Reason: "cannot be combined with an existing instance"}
	}
	if props.Vpc != nil {
		return &stackbind.ConfigError{Construct: id, Field: "vpc", Reason: "cannot be combined with an existing instance"}
	}
	if props.VpcSubnets != nil {
		return &stackbind.ConfigError{Construct: id, Field: "vpcSubnets", Reason: "cannot be combined with an existing instance"}
	}

	i.imported = true
	i.db = props.Existing.Instance
	i.secret = props.Existing.Secret
	i.port = *props.Existing.Instance.DbInstanceEndpointPort()
	return nil
}

// create validates the override bag, fills defaults and registers the
// instance with the CDK.
func (i *Instance) create(scope constructs.Construct, id string, props *InstanceProps) error {
	spec, ok := engines[props.Engine]
	if !ok {
		return &stackbind.ConfigError{
			Construct: id,
			Field:     "engine",
			Reason:    fmt.Sprintf("unsupported engine %q, supported engines: %s", props.Engine, supportedEnginesList()),
		}
	}

	if props.CdkProps != nil {
		if props.CdkProps.Engine != nil {
			return &stackbind.ConfigError{Construct: id, Field: "cdkProps.engine", Reason: "set the engine on InstanceProps.Engine"}
		}
		if props.CdkProps.Vpc != nil {
			return &stackbind.ConfigError{Construct: id, Field: "cdkProps.vpc", Reason: "set the network on InstanceProps.Vpc"}
		}
		if props.CdkProps.DatabaseName != nil {
			return &stackbind.ConfigError{Construct: id, Field: "cdkProps.databaseName", Reason: "set the database name on InstanceProps.DatabaseName"}
		}
		if props.CdkProps.Credentials != nil && props.CdkProps.Credentials.Password() != nil {
			return &stackbind.ConfigError{Construct: id, Field: "cdkProps.credentials", Reason: "credentials must come from a Secrets Manager secret, not a plain password"}
		}
	}

	vpc := props.Vpc
	createdVpc := vpc == nil
	if createdVpc {
		vpc = awsec2.NewVpc(scope, jsii.String("Vpc"), &awsec2.VpcProps{
			MaxAzs:      jsii.Number(2),
			NatGateways: jsii.Number(0),
			SubnetConfiguration: &[]*awsec2.SubnetConfiguration{
				{
					CidrMask:   jsii.Number(24),
					Name:       jsii.String("isolated"),
					SubnetType: awsec2.SubnetType_PRIVATE_ISOLATED,
				},
			},
		})
	}

	var dbProps awsrds.DatabaseInstanceProps
	if props.CdkProps != nil {
		dbProps = *props.CdkProps
	}
	dbProps.Engine = spec.engine()
	dbProps.Vpc = vpc
	dbProps.DatabaseName = jsii.String(props.DatabaseName)

	if createdVpc {
		dbProps.VpcSubnets = &awsec2.SubnetSelection{SubnetType: awsec2.SubnetType_PRIVATE_ISOLATED}
	} else if dbProps.VpcSubnets == nil {
		dbProps.VpcSubnets = props.VpcSubnets
	}
	if dbProps.InstanceType == nil {
		dbProps.InstanceType = awsec2.InstanceType_Of(awsec2.InstanceClass_BURSTABLE3, awsec2.InstanceSize_MICRO)
	}
	if dbProps.Credentials == nil {
		dbProps.Credentials = awsrds.Credentials_FromGeneratedSecret(jsii.String(defaultMasterUsername), nil)
	}
	if dbProps.InstanceIdentifier == nil {
		ident, err := naming.PrefixedID(scope, id)
		if err != nil {
			return &stackbind.ConfigError{Construct: id, Reason: fmt.Sprintf("cannot derive an instance identifier: %v", err)}
		}
		dbProps.InstanceIdentifier = ident
	}

	// the override bag may move the listener off the engine default
	port := spec.port
	if dbProps.Port != nil {
		port = *dbProps.Port
	}

	db := awsrds.NewDatabaseInstance(scope, jsii.String("Instance"), &dbProps)
	i.db = db
	i.secret = db.Secret()
	i.port = strconv.FormatFloat(port, 'f', -1, 64)
	return nil
}

// DBInstance returns the underlying CDK instance handle.
func (i *Instance) DBInstance() awsrds.IDatabaseInstance { return i.db }

// Secret returns the credentials secret.
func (i *Instance) Secret() awssecretsmanager.ISecret { return i.secret }

// SecretArn returns the ARN of the credentials secret.
func (i *Instance) SecretArn() *string { return i.secret.SecretArn() }

// InstanceArn returns the ARN of the database instance.
func (i *Instance) InstanceArn() *string { return i.db.InstanceArn() }

// InstanceIdentifier returns the physical instance identifier.
func (i *Instance) InstanceIdentifier() *string { return i.db.InstanceIdentifier() }

// EndpointHostname returns the endpoint hostname.
func (i *Instance) EndpointHostname() *string { return i.db.DbInstanceEndpointAddress() }

// Port returns the database port as a string. The value may be an unresolved
// token for imported instances.
func (i *Instance) Port() *string { return jsii.String(i.port) }

// DatabaseName returns the default database name.
func (i *Instance) DatabaseName() string { return i.databaseName }

// Engine returns the engine id, which is empty for imported instances that
// did not set one.
func (i *Instance) Engine() EngineID { return i.engine }

// Imported reports whether the instance was imported rather than created.
func (i *Instance) Imported() bool { return i.imported }

// ConnectionString renders a connection URL for user. The hostname and port
// stay unresolved CDK tokens until deploy time. Returns nil when the engine
// is unknown.
func (i *Instance) ConnectionString(user string) *string {
	spec, ok := engines[i.engine]
	if !ok {
		return nil
	}
	return jsii.String(fmt.Sprintf("%s://%s@%s:%s/%s",
		spec.scheme, user, *i.EndpointHostname(), i.port, i.databaseName))
}

// Binding exports the variables and permissions a bound function needs:
// discovery metadata as plain variables, the credentials secret by ARN, and
// read access to that secret only.
func (i *Instance) Binding() bind.Descriptor {
	return bind.Descriptor{
		ClientPackage: "rds",
		ConstructID:   i.id,
		Variables: map[string]bind.Variable{
			"instanceArn":  {Type: bind.VariablePlain, Value: *i.InstanceArn()},
			"endpoint":     {Type: bind.VariablePlain, Value: *i.EndpointHostname()},
			"port":         {Type: bind.VariablePlain, Value: i.port},
			"databaseName": {Type: bind.VariablePlain, Value: i.databaseName},
			"secretArn":    {Type: bind.VariableSecret, Value: *i.SecretArn()},
		},
		Permissions: map[string][]*string{
			"secretsmanager:GetSecretValue": {i.SecretArn()},
			"secretsmanager:DescribeSecret": {i.SecretArn()},
		},
	}
}
