package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stackbind "github.com/rwxbyte/stackbind-aws-go"
)

func sampleTemplate() *stackbind.Template {
	return &stackbind.Template{
		Resources: map[string]stackbind.ResourceDef{
			"Db": {
				Type: "AWS::RDS::DBInstance",
				Properties: map[string]any{
					"DBSubnetGroupName": map[string]any{"Ref": "DbSubnetGroup"},
					"VPCSecurityGroups": []any{
						map[string]any{"Fn::GetAtt": []any{"DbSecurityGroup", "GroupId"}},
					},
				},
			},
			"DbSubnetGroup":   {Type: "AWS::RDS::DBSubnetGroup"},
			"DbSecurityGroup": {Type: "AWS::EC2::SecurityGroup"},
			"WebFunction": {
				Type:      "AWS::Lambda::Function",
				DependsOn: []string{"Db"},
			},
		},
	}
}

func TestDependencies(t *testing.T) {
	tmpl := sampleTemplate()

	deps := Dependencies(tmpl.Resources["Db"])
	assert.Equal(t, DepRef, deps["DbSubnetGroup"])
	assert.Equal(t, DepGetAtt, deps["DbSecurityGroup"])

	deps = Dependencies(tmpl.Resources["WebFunction"])
	assert.Equal(t, DepExplicit, deps["Db"])
}

func TestDependencies_GetAttShortForm(t *testing.T) {
	res := stackbind.ResourceDef{
		Type: "AWS::Lambda::Function",
		Properties: map[string]any{
			"Environment": map[string]any{
				"Variables": map[string]any{
					"ENDPOINT": map[string]any{"Fn::GetAtt": "Db.Endpoint.Address"},
				},
			},
		},
	}

	deps := Dependencies(res)
	assert.Equal(t, DepGetAtt, deps["Db"])
}

func TestGenerator_Generate_DOT(t *testing.T) {
	gen := &Generator{}
	output, err := gen.GenerateString(sampleTemplate())
	require.NoError(t, err)

	assert.Contains(t, output, "digraph")
	assert.Contains(t, output, "Db")
	assert.Contains(t, output, "DbSubnetGroup")
	assert.Contains(t, output, "AWS::RDS::DBInstance")
}

func TestGenerator_Generate_Mermaid(t *testing.T) {
	gen := &Generator{Format: FormatMermaid}
	output, err := gen.GenerateString(sampleTemplate())
	require.NoError(t, err)

	assert.True(t, strings.Contains(output, "graph TB") || strings.Contains(output, "flowchart"),
		"expected mermaid graph header, got: %s", output)
}

func TestGenerator_Generate_Clustered(t *testing.T) {
	gen := &Generator{ClusterByService: true}
	output, err := gen.GenerateString(sampleTemplate())
	require.NoError(t, err)

	// Db and DbSubnetGroup share the RDS service cluster
	assert.Contains(t, output, "cluster_RDS")
}
