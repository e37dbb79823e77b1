package symbols

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
)

// languageSpec binds a tree-sitter grammar to the node types that mark
// function and class definitions, plus the hint templates for each kind.
type languageSpec struct {
	language      *sitter.Language
	functionNodes map[string]bool
	classNodes    map[string]bool
	functionHint  string
	classHint     string
}

var specs = map[string]*languageSpec{
	"python": {
		language:      python.GetLanguage(),
		functionNodes: map[string]bool{"function_definition": true},
		classNodes:    map[string]bool{"class_definition": true},
		functionHint:  "Examine the function '%s' to determine its role and business logic.",
		classHint:     "Analyze the class '%s' to understand its methods and responsibilities.",
	},
	"javascript": {
		language:      javascript.GetLanguage(),
		functionNodes: map[string]bool{"function_declaration": true},
		classNodes:    map[string]bool{"class_declaration": true},
		functionHint:  "Inspect the JavaScript function '%s' to understand its functionality.",
		classHint:     "Examine the JavaScript class '%s' for its properties and methods.",
	},
}

// Supported reports whether a grammar is registered for the language.
func Supported(language string) bool {
	_, ok := specs[language]
	return ok
}
