// Package symbols extracts function and class definitions from source
// files using tree-sitter syntax trees.
package symbols

// Position is a zero-indexed (line, column) location in a source file.
type Position struct {
	Row    int `json:"row" yaml:"row"`
	Column int `json:"column" yaml:"column"`
}

// Symbol is a named function or class definition located by syntax-tree
// inspection.
type Symbol struct {
	Name  string   `json:"name" yaml:"name"`
	Start Position `json:"start_point" yaml:"start_point"`
	End   Position `json:"end_point" yaml:"end_point"`
	Hint  string   `json:"llm_hint" yaml:"llm_hint"`
}

// GraphNode is one node of the function dependency graph.
type GraphNode struct {
	ID    string   `json:"id" yaml:"id"`
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

// GraphLink is a directed edge between two graph nodes.
type GraphLink struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// DependencyGraph is a node-link view of the extracted functions. Links
// stay empty until call sites inside function bodies are analyzed.
type DependencyGraph struct {
	Directed   bool        `json:"directed" yaml:"directed"`
	Multigraph bool        `json:"multigraph" yaml:"multigraph"`
	Nodes      []GraphNode `json:"nodes" yaml:"nodes"`
	Links      []GraphLink `json:"links" yaml:"links"`
}

// NewDependencyGraph builds the node-link graph over the given functions,
// one node per function.
func NewDependencyGraph(functions []Symbol) *DependencyGraph {
	g := &DependencyGraph{
		Directed: true,
		Nodes:    make([]GraphNode, 0, len(functions)),
		Links:    []GraphLink{},
	}
	for _, fn := range functions {
		g.Nodes = append(g.Nodes, GraphNode{ID: fn.Name, Start: fn.Start, End: fn.End})
	}
	return g
}

// Analysis is the result of extracting symbols from one file. Exactly one
// of {Functions/Classes/Dependencies, Error} is meaningful: parse failures
// and unsupported languages set Error and leave the rest empty.
type Analysis struct {
	Functions    []Symbol         `json:"functions" yaml:"functions"`
	Classes      []Symbol         `json:"classes" yaml:"classes"`
	Dependencies *DependencyGraph `json:"dependency_graph,omitempty" yaml:"dependency_graph,omitempty"`
	Error        string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the analysis carries an error instead of symbols.
func (a Analysis) Failed() bool { return a.Error != "" }
