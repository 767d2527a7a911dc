package analyzer

import "github.com/imyousuf/codescore/internal/syntax"

// Facts are the whole-program sets collected once per analysis and read,
// never mutated, by the scoring rules.
type Facts struct {
	// ClassNames holds the name of every class defined anywhere in the
	// file, nested classes included.
	ClassNames map[string]bool

	// GlobalVars holds every identifier named in a global statement.
	GlobalVars map[string]bool

	// ClassMethods holds the names of functions defined directly in the
	// body of any class. The set is deliberately flat rather than
	// per-class; the polymorphism rule counts a method as matching when
	// its name appears here, so a method always matches at least itself.
	ClassMethods map[string]bool
}

// ExtractFacts builds the fact sets in a single traversal of the tree.
func ExtractFacts(root *syntax.Node) *Facts {
	facts := &Facts{
		ClassNames:   make(map[string]bool),
		GlobalVars:   make(map[string]bool),
		ClassMethods: make(map[string]bool),
	}
	syntax.Walk(root, func(n *syntax.Node) {
		switch n.Kind {
		case syntax.KindClass:
			facts.ClassNames[n.Name] = true
			for _, stmt := range n.Body {
				if stmt.Kind == syntax.KindFunction {
					facts.ClassMethods[stmt.Name] = true
				}
			}
		case syntax.KindGlobal:
			for _, name := range n.Names {
				facts.GlobalVars[name] = true
			}
		}
	})
	return facts
}
