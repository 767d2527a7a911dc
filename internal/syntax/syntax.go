// Package syntax defines the language-neutral syntax tree the scoring
// rules consume. Parsers lower their concrete syntax trees into this
// representation; only node kinds the rules distinguish get their own
// tag, everything else is an opaque container whose children are still
// visited.
package syntax

// Kind identifies the structural role of a syntax node.
type Kind string

const (
	KindModule      Kind = "Module"
	KindConditional Kind = "Conditional"
	KindLoop        Kind = "Loop"
	KindWith        Kind = "With"
	KindTry         Kind = "Try"
	KindExcept      Kind = "Except"
	KindClass       Kind = "Class"
	KindFunction    Kind = "Function"
	KindName        Kind = "Name"
	KindAttribute   Kind = "Attribute"
	KindGlobal      Kind = "Global"
	KindImport      Kind = "Import"
	KindOther       Kind = "Other"
)

// Node is a single node of the lowered tree.
//
// Body is populated only for Module, Class, and Function nodes and holds
// their direct statements; everything else a node carries (condition
// expressions, base-class expressions, decorator expressions, nested
// statements of control-flow blocks) lives in Children.
type Node struct {
	Kind Kind

	// Name is the identifier carried by Name, Attribute (the accessed
	// member), Class, and Function nodes.
	Name string

	// Names lists the identifiers declared by a Global node.
	Names []string

	// ParamCount is the number of regular positional parameters of a
	// Function node.
	ParamCount int

	// BaseCount is the number of base classes of a Class node.
	BaseCount int

	// Line is the 1-based source line the node starts on.
	Line int

	Children []*Node
	Body     []*Node
}

// Walk visits root and every node below it exactly once, a node's
// Children before its Body. The traversal uses an explicit stack so
// pathologically nested input cannot exhaust the call stack.
func Walk(root *Node, visit func(*Node)) {
	if root == nil {
		return
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(n)
		for i := len(n.Body) - 1; i >= 0; i-- {
			stack = append(stack, n.Body[i])
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// WalkDepth visits every node paired with an integer accumulated along
// the path from the root: a node's value is its parent's value plus
// step(node), and the root starts at step(root). Depth-style rules use
// this to track how far a path has descended through qualifying nodes.
func WalkDepth(root *Node, step func(*Node) int, visit func(*Node, int)) {
	if root == nil {
		return
	}
	type frame struct {
		node  *Node
		value int
	}
	stack := []frame{{root, step(root)}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(f.node, f.value)
		for i := len(f.node.Body) - 1; i >= 0; i-- {
			c := f.node.Body[i]
			stack = append(stack, frame{c, f.value + step(c)})
		}
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			c := f.node.Children[i]
			stack = append(stack, frame{c, f.value + step(c)})
		}
	}
}
