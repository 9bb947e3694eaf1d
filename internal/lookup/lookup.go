// Package lookup resolves live RDS instances and their credentials secrets
// for the import path.
package lookup

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/rwxbyte/stackbind-aws-go/internal/logging"
)

// RDSAPI is the subset of the RDS client the lookup needs.
type RDSAPI interface {
	DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
}

// SecretsAPI is the subset of the Secrets Manager client the lookup needs.
type SecretsAPI interface {
	DescribeSecret(ctx context.Context, params *secretsmanager.DescribeSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DescribeSecretOutput, error)
}

// Client looks up existing database resources.
type Client struct {
	rds     RDSAPI
	secrets SecretsAPI
	logger  *logging.Logger
}

// NewClient builds a Client from the default AWS config chain.
func NewClient(ctx context.Context, region, profile string, logger *logging.Logger) (*Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &Client{
		rds:     rds.NewFromConfig(cfg),
		secrets: secretsmanager.NewFromConfig(cfg),
		logger:  logger,
	}, nil
}

// NewClientWithAPIs wires explicit API implementations, for tests.
func NewClientWithAPIs(rdsAPI RDSAPI, secretsAPI SecretsAPI, logger *logging.Logger) *Client {
	return &Client{rds: rdsAPI, secrets: secretsAPI, logger: logger}
}

// ImportSpec describes a live instance in the shape the Existing import path
// needs.
type ImportSpec struct {
	InstanceIdentifier string `yaml:"instanceIdentifier"`
	InstanceArn        string `yaml:"instanceArn"`
	Endpoint           string `yaml:"endpoint"`
	Port               string `yaml:"port"`
	Engine             string `yaml:"engine"`
	EngineVersion      string `yaml:"engineVersion"`
	SecretArn          string `yaml:"secretArn"`
	Status             string `yaml:"status"`
}

// DescribeInstance resolves a DB instance by identifier. The credentials
// secret comes from the instance's managed master-user secret when present;
// otherwise secretArn, if given, is validated against Secrets Manager.
func (c *Client) DescribeInstance(ctx context.Context, identifier, secretArn string) (*ImportSpec, error) {
	out, err := c.rds.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{
		DBInstanceIdentifier: aws.String(identifier),
	})
	if err != nil {
		return nil, fmt.Errorf("describing DB instance %s: %w", identifier, err)
	}
	if len(out.DBInstances) == 0 {
		return nil, fmt.Errorf("DB instance %s not found", identifier)
	}

	inst := out.DBInstances[0]
	spec := &ImportSpec{
		InstanceIdentifier: aws.ToString(inst.DBInstanceIdentifier),
		InstanceArn:        aws.ToString(inst.DBInstanceArn),
		Engine:             aws.ToString(inst.Engine),
		EngineVersion:      aws.ToString(inst.EngineVersion),
		Status:             aws.ToString(inst.DBInstanceStatus),
	}
	if inst.Endpoint != nil {
		spec.Endpoint = aws.ToString(inst.Endpoint.Address)
		spec.Port = strconv.Itoa(int(aws.ToInt32(inst.Endpoint.Port)))
	}

	switch {
	case inst.MasterUserSecret != nil:
		spec.SecretArn = aws.ToString(inst.MasterUserSecret.SecretArn)
	case secretArn != "":
		desc, err := c.secrets.DescribeSecret(ctx, &secretsmanager.DescribeSecretInput{
			SecretId: aws.String(secretArn),
		})
		if err != nil {
			return nil, fmt.Errorf("validating secret %s: %w", secretArn, err)
		}
		spec.SecretArn = aws.ToString(desc.ARN)
	default:
		c.logger.WithField("dbInstanceIdentifier", identifier).
			Warn("instance has no managed master-user secret; pass one with --secret-arn")
	}

	c.logger.WithField("dbInstanceIdentifier", spec.InstanceIdentifier).Info("resolved DB instance")
	return spec, nil
}
