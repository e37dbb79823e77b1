package symbols

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Extractor parses source text and collects top-level function and class
// symbols. It is stateless and safe for concurrent use; a parser is
// created per call.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor { return &Extractor{} }

// Extract parses src as the given language and returns its symbols in
// syntax-tree traversal order. An unregistered language or a parse failure
// yields an Analysis carrying an error message; neither is fatal to the
// caller's scan.
func (e *Extractor) Extract(ctx context.Context, src []byte, language string, hints bool) Analysis {
	spec, ok := specs[strings.ToLower(language)]
	if !ok {
		return Analysis{Error: fmt.Sprintf("syntax analysis for language %q is not supported yet", language)}
	}

	parser := sitter.NewParser()
	parser.SetLanguage(spec.language)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return Analysis{Error: fmt.Sprintf("parse error: %v", err)}
	}
	defer tree.Close()

	var analysis Analysis
	walk(tree.RootNode(), func(node *sitter.Node) {
		switch {
		case spec.functionNodes[node.Type()]:
			if sym, ok := symbolFromNode(node, src, spec.functionHint, hints); ok {
				analysis.Functions = append(analysis.Functions, sym)
			}
		case spec.classNodes[node.Type()]:
			if sym, ok := symbolFromNode(node, src, spec.classHint, hints); ok {
				analysis.Classes = append(analysis.Classes, sym)
			}
		}
	})
	analysis.Dependencies = NewDependencyGraph(analysis.Functions)
	return analysis
}

// walk visits node and all descendants in pre-order.
func walk(node *sitter.Node, visit func(*sitter.Node)) {
	visit(node)
	for i := 0; i < int(node.ChildCount()); i++ {
		walk(node.Child(i), visit)
	}
}

// symbolFromNode names a definition after its first plain identifier
// child. A definition with no identifier child produces no symbol: the
// drop is deliberate and silent, not an error.
func symbolFromNode(node *sitter.Node, src []byte, hintTemplate string, hints bool) (Symbol, bool) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != "identifier" {
			continue
		}
		name := child.Content(src)
		hint := ""
		if hints {
			hint = fmt.Sprintf(hintTemplate, name)
		}
		return Symbol{
			Name:  name,
			Start: Position{Row: int(node.StartPoint().Row), Column: int(node.StartPoint().Column)},
			End:   Position{Row: int(node.EndPoint().Row), Column: int(node.EndPoint().Column)},
			Hint:  hint,
		}, true
	}
	return Symbol{}, false
}
