// Package graph generates DOT and Mermaid dependency graphs from synthesized
// templates.
package graph

import (
	"io"
	"strings"

	"github.com/emicklei/dot"

	stackbind "github.com/rwxbyte/stackbind-aws-go"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator creates dependency graphs from a template.
type Generator struct {
	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByService groups resources by AWS service.
	ClusterByService bool
}

// Generate writes the dependency graph for tmpl to w. Edges come from
// DependsOn plus Ref and Fn::GetAtt references inside resource properties.
func (g *Generator) Generate(tmpl *stackbind.Template, w io.Writer) error {
	graph := g.buildGraph(tmpl)

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err := w.Write([]byte(output))
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(tmpl *stackbind.Template) (string, error) {
	var sb strings.Builder
	if err := g.Generate(tmpl, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (g *Generator) buildGraph(tmpl *stackbind.Template) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})
	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	if g.ClusterByService {
		g.addClusteredNodes(graph, tmpl)
	} else {
		for name, res := range tmpl.Resources {
			graph.Node(name).Label(name + "\\n[" + res.Type + "]")
		}
	}

	for name, res := range tmpl.Resources {
		for dep, kind := range Dependencies(res) {
			if _, ok := tmpl.Resources[dep]; !ok {
				continue
			}
			e := graph.Edge(graph.Node(name), graph.Node(dep))
			if kind == DepGetAtt {
				e.Attr("color", "blue")
			}
		}
	}

	return graph
}

// addClusteredNodes groups resources by AWS service name.
func (g *Generator) addClusteredNodes(graph *dot.Graph, tmpl *stackbind.Template) {
	serviceResources := make(map[string][]string)
	for name, res := range tmpl.Resources {
		service := extractService(res.Type)
		serviceResources[service] = append(serviceResources[service], name)
	}

	for service, names := range serviceResources {
		if len(names) > 1 {
			cluster := graph.Subgraph("cluster_"+service, dot.ClusterOption{})
			cluster.Attr("label", service)
			cluster.Attr("style", "rounded")
			cluster.Attr("bgcolor", "lightyellow")
			for _, name := range names {
				cluster.Node(name).Label(name + "\\n[" + tmpl.Resources[name].Type + "]")
			}
		} else {
			for _, name := range names {
				graph.Node(name).Label(name + "\\n[" + tmpl.Resources[name].Type + "]")
			}
		}
	}
}

// DepKind distinguishes how a resource references another.
type DepKind int

const (
	// DepRef is a plain {"Ref": id} reference.
	DepRef DepKind = iota
	// DepGetAtt is an {"Fn::GetAtt": [id, attr]} reference.
	DepGetAtt
	// DepExplicit comes from DependsOn.
	DepExplicit
)

// Dependencies returns the logical ids a resource references.
func Dependencies(res stackbind.ResourceDef) map[string]DepKind {
	deps := make(map[string]DepKind)
	for _, dep := range res.DependsOn {
		deps[dep] = DepExplicit
	}
	walkRefs(res.Properties, deps)
	return deps
}

// walkRefs scans a property tree for {"Ref": id} and {"Fn::GetAtt": [id, attr]}.
func walkRefs(v any, deps map[string]DepKind) {
	switch val := v.(type) {
	case map[string]any:
		if len(val) == 1 {
			if ref, ok := val["Ref"].(string); ok {
				if _, seen := deps[ref]; !seen {
					deps[ref] = DepRef
				}
				return
			}
			if att, ok := val["Fn::GetAtt"]; ok {
				switch target := att.(type) {
				case []any:
					if len(target) > 0 {
						if id, ok := target[0].(string); ok {
							deps[id] = DepGetAtt
						}
					}
				case string:
					// short form "Resource.Attribute"
					if idx := strings.Index(target, "."); idx > 0 {
						deps[target[:idx]] = DepGetAtt
					}
				}
				return
			}
		}
		for _, child := range val {
			walkRefs(child, deps)
		}
	case []any:
		for _, child := range val {
			walkRefs(child, deps)
		}
	}
}

// extractService extracts the service from a CloudFormation type,
// e.g. "AWS::RDS::DBInstance" -> "RDS".
func extractService(cfType string) string {
	parts := strings.Split(cfType, "::")
	if len(parts) == 3 {
		return parts[1]
	}
	return "Other"
}
