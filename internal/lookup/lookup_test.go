package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	rdstypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwxbyte/stackbind-aws-go/internal/logging"
)

type fakeRDS struct {
	out *rds.DescribeDBInstancesOutput
	err error
}

func (f *fakeRDS) DescribeDBInstances(context.Context, *rds.DescribeDBInstancesInput, ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error) {
	return f.out, f.err
}

type fakeSecrets struct {
	out *secretsmanager.DescribeSecretOutput
	err error
}

func (f *fakeSecrets) DescribeSecret(context.Context, *secretsmanager.DescribeSecretInput, ...func(*secretsmanager.Options)) (*secretsmanager.DescribeSecretOutput, error) {
	return f.out, f.err
}

func dbInstance(secret *rdstypes.MasterUserSecret) rdstypes.DBInstance {
	return rdstypes.DBInstance{
		DBInstanceIdentifier: aws.String("legacy-db"),
		DBInstanceArn:        aws.String("arn:aws:rds:us-east-1:123456789012:db:legacy-db"),
		Engine:               aws.String("mysql"),
		EngineVersion:        aws.String("5.7.44"),
		DBInstanceStatus:     aws.String("available"),
		Endpoint: &rdstypes.Endpoint{
			Address: aws.String("legacy.abc123.us-east-1.rds.amazonaws.com"),
			Port:    aws.Int32(3306),
		},
		MasterUserSecret: secret,
	}
}

func TestDescribeInstance_ManagedSecret(t *testing.T) {
	client := NewClientWithAPIs(&fakeRDS{
		out: &rds.DescribeDBInstancesOutput{
			DBInstances: []rdstypes.DBInstance{dbInstance(&rdstypes.MasterUserSecret{
				SecretArn: aws.String("arn:aws:secretsmanager:us-east-1:123456789012:secret:managed-AbCdEf"),
			})},
		},
	}, &fakeSecrets{}, logging.New("error", "text"))

	spec, err := client.DescribeInstance(context.Background(), "legacy-db", "")
	require.NoError(t, err)

	assert.Equal(t, "legacy-db", spec.InstanceIdentifier)
	assert.Equal(t, "arn:aws:rds:us-east-1:123456789012:db:legacy-db", spec.InstanceArn)
	assert.Equal(t, "legacy.abc123.us-east-1.rds.amazonaws.com", spec.Endpoint)
	assert.Equal(t, "3306", spec.Port)
	assert.Equal(t, "mysql", spec.Engine)
	assert.Contains(t, spec.SecretArn, "secret:managed")
}

func TestDescribeInstance_ExplicitSecret(t *testing.T) {
	arn := "arn:aws:secretsmanager:us-east-1:123456789012:secret:byo-AbCdEf"
	client := NewClientWithAPIs(&fakeRDS{
		out: &rds.DescribeDBInstancesOutput{
			DBInstances: []rdstypes.DBInstance{dbInstance(nil)},
		},
	}, &fakeSecrets{
		out: &secretsmanager.DescribeSecretOutput{ARN: aws.String(arn)},
	}, logging.New("error", "text"))

	spec, err := client.DescribeInstance(context.Background(), "legacy-db", arn)
	require.NoError(t, err)
	assert.Equal(t, arn, spec.SecretArn)
}

func TestDescribeInstance_SecretValidationFails(t *testing.T) {
	client := NewClientWithAPIs(&fakeRDS{
		out: &rds.DescribeDBInstancesOutput{
			DBInstances: []rdstypes.DBInstance{dbInstance(nil)},
		},
	}, &fakeSecrets{
		err: errors.New("AccessDeniedException"),
	}, logging.New("error", "text"))

	_, err := client.DescribeInstance(context.Background(), "legacy-db", "arn:aws:secretsmanager:us-east-1:123456789012:secret:nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating secret")
}

func TestDescribeInstance_NotFound(t *testing.T) {
	client := NewClientWithAPIs(&fakeRDS{
		out: &rds.DescribeDBInstancesOutput{},
	}, &fakeSecrets{}, logging.New("error", "text"))

	_, err := client.DescribeInstance(context.Background(), "missing", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDescribeInstance_APIError(t *testing.T) {
	client := NewClientWithAPIs(&fakeRDS{
		err: errors.New("throttled"),
	}, &fakeSecrets{}, logging.New("error", "text"))

	_, err := client.DescribeInstance(context.Background(), "legacy-db", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "describing DB instance")
}
