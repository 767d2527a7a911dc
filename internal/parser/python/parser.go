package python

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/imyousuf/codescore/internal/parser"
	"github.com/imyousuf/codescore/internal/syntax"
)

// PythonParser lowers Python source files into the scoring syntax tree.
//
// The lowering mirrors Python's own ast module, because the scoring rules
// are defined against ast semantics: identifiers become Name nodes only in
// expression positions (definition names, parameter names, attribute
// members, import aliases, and exception aliases are plain strings in ast),
// elif chains nest, each import statement is a single leaf, and the async
// statement variants are opaque containers rather than Function/Loop/With
// nodes.
type PythonParser struct{}

// NewParser creates a new Python parser.
func NewParser() *PythonParser {
	return &PythonParser{}
}

func (p *PythonParser) Language() parser.Language {
	return parser.LangPython
}

func (p *PythonParser) Extensions() []string {
	return parser.FileExtensions[parser.LangPython]
}

func (p *PythonParser) ParseFile(filePath string, content []byte) (*parser.ParseResult, error) {
	sitterParser := sitter.NewParser()
	sitterParser.SetLanguage(python.GetLanguage())

	tree, err := sitterParser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filePath, err)
	}

	// tree-sitter recovers from bad input instead of failing; a tree with
	// ERROR or missing nodes means the source does not parse.
	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%s:%d: %w", filePath, firstErrorLine(root), parser.ErrSyntax)
	}

	l := &lowerer{content: content}

	return &parser.ParseResult{
		Root:     l.lowerModule(root),
		FilePath: filePath,
		Language: parser.LangPython,
	}, nil
}

// firstErrorLine returns the 1-based line of the first ERROR or missing
// node under root.
func firstErrorLine(root *sitter.Node) int {
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Type() == "ERROR" || n.IsMissing() {
			return int(n.StartPoint().Row) + 1
		}
		if !n.HasError() {
			continue
		}
		for i := int(n.ChildCount()) - 1; i >= 0; i-- {
			stack = append(stack, n.Child(i))
		}
	}
	return int(root.StartPoint().Row) + 1
}

// lowerer walks a tree-sitter Python CST and builds the tagged tree.
type lowerer struct {
	content []byte
}

func (l *lowerer) lowerModule(root *sitter.Node) *syntax.Node {
	return &syntax.Node{
		Kind: syntax.KindModule,
		Line: 1,
		Body: l.lowerStatements(root),
	}
}

// lowerStatements lowers the named children of a module or block node.
// Comments are dropped: ast has no comment statements, and statement
// counts (function_length) must not include them.
func (l *lowerer) lowerStatements(node *sitter.Node) []*syntax.Node {
	if node == nil {
		return nil
	}
	var stmts []*syntax.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if s := l.lowerStatement(node.NamedChild(i)); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

func (l *lowerer) lowerStatement(node *sitter.Node) *syntax.Node {
	switch node.Type() {
	case "comment":
		return nil
	case "import_statement", "import_from_statement", "future_import_statement":
		// One leaf per statement regardless of how many names it binds;
		// ast stores the bound names as strings, not expressions.
		return &syntax.Node{Kind: syntax.KindImport, Line: line(node)}
	case "global_statement":
		return l.lowerGlobal(node)
	case "nonlocal_statement":
		// Like global, the names are plain strings in ast; unlike global,
		// no rule consumes them.
		return &syntax.Node{Kind: syntax.KindOther, Line: line(node)}
	case "class_definition":
		return l.lowerClass(node)
	case "function_definition":
		return l.lowerFunction(node)
	case "decorated_definition":
		return l.lowerDecorated(node)
	case "if_statement":
		return l.lowerIf(node)
	case "for_statement":
		return l.lowerFor(node)
	case "while_statement":
		return l.lowerWhile(node)
	case "with_statement":
		return l.lowerWith(node)
	case "try_statement":
		return l.lowerTry(node)
	default:
		// return/raise/assert/expression statements and friends: opaque,
		// with their expressions lowered.
		return l.lowerExpr(node)
	}
}

func (l *lowerer) lowerGlobal(node *sitter.Node) *syntax.Node {
	g := &syntax.Node{Kind: syntax.KindGlobal, Line: line(node)}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "identifier" {
			g.Names = append(g.Names, l.nodeText(child))
		}
	}
	return g
}

func (l *lowerer) lowerClass(node *sitter.Node) *syntax.Node {
	cls := &syntax.Node{Kind: syntax.KindClass, Line: line(node)}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "identifier":
			if cls.Name == "" {
				cls.Name = l.nodeText(child)
			}
		case "argument_list":
			l.lowerSuperclasses(child, cls)
		case "block":
			cls.Body = l.lowerStatements(child)
		}
	}
	return cls
}

// lowerSuperclasses lowers the expressions of a class's argument list into
// the class node's children and counts its base classes the way
// len(ast.ClassDef.bases) does: positional bases count (a starred base
// counts once), keyword arguments such as metaclass= do not, though their
// value expressions are still traversed.
func (l *lowerer) lowerSuperclasses(args *sitter.Node, cls *syntax.Node) {
	for i := 0; i < int(args.NamedChildCount()); i++ {
		child := args.NamedChild(i)
		switch child.Type() {
		case "comment":
		case "keyword_argument":
			if value := child.ChildByFieldName("value"); value != nil {
				cls.Children = appendNode(cls.Children, l.lowerExpr(value))
			}
		case "dictionary_splat":
			cls.Children = appendNode(cls.Children, l.lowerExpr(child))
		case "list_splat":
			cls.BaseCount++
			cls.Children = appendNode(cls.Children, l.lowerExpr(child))
		default:
			cls.BaseCount++
			cls.Children = appendNode(cls.Children, l.lowerExpr(child))
		}
	}
}

func (l *lowerer) lowerFunction(node *sitter.Node) *syntax.Node {
	fn := &syntax.Node{Kind: syntax.KindFunction, Line: line(node)}
	if isAsync(node) {
		// ast gives async def its own class, which the function rules do
		// not match; the contents still get visited.
		fn.Kind = syntax.KindOther
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "identifier":
			if fn.Name == "" {
				fn.Name = l.nodeText(child)
			}
		case "parameters":
			fn.ParamCount = l.lowerParameters(child, fn)
		case "type":
			// Return annotation: an expression in ast, so names inside it
			// are references.
			fn.Children = appendNode(fn.Children, l.lowerExpr(child))
		case "block":
			if fn.Kind == syntax.KindFunction {
				fn.Body = l.lowerStatements(child)
			} else {
				fn.Children = append(fn.Children, l.lowerStatements(child)...)
			}
		}
	}
	if fn.Kind == syntax.KindOther {
		fn.Name = ""
		fn.ParamCount = 0
	}
	return fn
}

// lowerParameters returns the regular positional parameter count, matching
// len(ast.arguments.args): parameters before a bare "/" are positional-only
// and excluded, parameters after "*" or *args are keyword-only and
// excluded, and the splats themselves never count. Parameter names are
// plain strings in ast and never lower to Name nodes, but annotation and
// default-value expressions do get lowered into the function's children.
func (l *lowerer) lowerParameters(params *sitter.Node, fn *syntax.Node) int {
	count := 0
	sawStar := false
	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(i)
		switch child.Type() {
		case "comment":
		case "positional_separator":
			// Everything before "/" was positional-only.
			count = 0
		case "keyword_separator":
			sawStar = true
		case "list_splat_pattern":
			sawStar = true
		case "dictionary_splat_pattern":
		case "typed_parameter":
			// An annotated splat ("*args: int") starts the keyword-only
			// section just like a bare one.
			if isSplatParameter(child) {
				sawStar = true
			} else if !sawStar {
				count++
			}
			if typ := child.ChildByFieldName("type"); typ != nil {
				fn.Children = appendNode(fn.Children, l.lowerExpr(typ))
			}
		case "default_parameter":
			if !sawStar {
				count++
			}
			if value := child.ChildByFieldName("value"); value != nil {
				fn.Children = appendNode(fn.Children, l.lowerExpr(value))
			}
		case "typed_default_parameter":
			if !sawStar {
				count++
			}
			if typ := child.ChildByFieldName("type"); typ != nil {
				fn.Children = appendNode(fn.Children, l.lowerExpr(typ))
			}
			if value := child.ChildByFieldName("value"); value != nil {
				fn.Children = appendNode(fn.Children, l.lowerExpr(value))
			}
		default:
			// Plain identifier or tuple pattern.
			if !sawStar {
				count++
			}
		}
	}
	return count
}

// isSplatParameter reports whether a typed_parameter wraps *args or
// **kwargs (e.g. "*args: int"), which belong to vararg/kwarg, not args.
func isSplatParameter(typed *sitter.Node) bool {
	for i := 0; i < int(typed.NamedChildCount()); i++ {
		switch typed.NamedChild(i).Type() {
		case "list_splat_pattern", "dictionary_splat_pattern":
			return true
		}
	}
	return false
}

func (l *lowerer) lowerDecorated(node *sitter.Node) *syntax.Node {
	var def *syntax.Node
	var decorators []*syntax.Node

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "decorator":
			// The decorator is a plain expression in ast (@property is a
			// Name reference).
			if child.NamedChildCount() > 0 {
				decorators = appendNode(decorators, l.lowerExpr(child.NamedChild(0)))
			}
		case "function_definition":
			def = l.lowerFunction(child)
		case "class_definition":
			def = l.lowerClass(child)
		}
	}

	if def == nil {
		return &syntax.Node{Kind: syntax.KindOther, Line: line(node), Children: decorators}
	}
	def.Children = append(def.Children, decorators...)
	return def
}

func (l *lowerer) lowerIf(node *sitter.Node) *syntax.Node {
	cond := &syntax.Node{Kind: syntax.KindConditional, Line: line(node)}
	if c := node.ChildByFieldName("condition"); c != nil {
		cond.Children = appendNode(cond.Children, l.lowerExpr(c))
	}
	if consequence := node.ChildByFieldName("consequence"); consequence != nil {
		cond.Children = append(cond.Children, l.lowerStatements(consequence)...)
	}

	// elif chains nest exactly as ast nests If nodes in orelse: the else
	// branch attaches to the innermost elif.
	var pending []*syntax.Node
	for i := int(node.NamedChildCount()) - 1; i >= 0; i-- {
		child := node.NamedChild(i)
		switch child.Type() {
		case "elif_clause":
			elif := &syntax.Node{Kind: syntax.KindConditional, Line: line(child)}
			if c := child.ChildByFieldName("condition"); c != nil {
				elif.Children = appendNode(elif.Children, l.lowerExpr(c))
			}
			if consequence := child.ChildByFieldName("consequence"); consequence != nil {
				elif.Children = append(elif.Children, l.lowerStatements(consequence)...)
			}
			elif.Children = append(elif.Children, pending...)
			pending = []*syntax.Node{elif}
		case "else_clause":
			pending = l.lowerElse(child)
		}
	}
	cond.Children = append(cond.Children, pending...)
	return cond
}

// lowerElse returns the statements of an else_clause (or a try's
// else/finally body).
func (l *lowerer) lowerElse(node *sitter.Node) []*syntax.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "block" {
			return l.lowerStatements(child)
		}
	}
	return nil
}

func (l *lowerer) lowerFor(node *sitter.Node) *syntax.Node {
	loop := &syntax.Node{Kind: syntax.KindLoop, Line: line(node)}
	if isAsync(node) {
		loop.Kind = syntax.KindOther
	}
	// Loop targets are Name nodes in ast (store context still counts as a
	// reference for the scoring rules).
	if left := node.ChildByFieldName("left"); left != nil {
		loop.Children = appendNode(loop.Children, l.lowerExpr(left))
	}
	if right := node.ChildByFieldName("right"); right != nil {
		loop.Children = appendNode(loop.Children, l.lowerExpr(right))
	}
	if body := node.ChildByFieldName("body"); body != nil {
		loop.Children = append(loop.Children, l.lowerStatements(body)...)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "else_clause" {
			loop.Children = append(loop.Children, l.lowerElse(child)...)
		}
	}
	return loop
}

func (l *lowerer) lowerWhile(node *sitter.Node) *syntax.Node {
	loop := &syntax.Node{Kind: syntax.KindLoop, Line: line(node)}
	if c := node.ChildByFieldName("condition"); c != nil {
		loop.Children = appendNode(loop.Children, l.lowerExpr(c))
	}
	if body := node.ChildByFieldName("body"); body != nil {
		loop.Children = append(loop.Children, l.lowerStatements(body)...)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "else_clause" {
			loop.Children = append(loop.Children, l.lowerElse(child)...)
		}
	}
	return loop
}

func (l *lowerer) lowerWith(node *sitter.Node) *syntax.Node {
	with := &syntax.Node{Kind: syntax.KindWith, Line: line(node)}
	if isAsync(node) {
		with.Kind = syntax.KindOther
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "with_clause" {
			for j := 0; j < int(child.NamedChildCount()); j++ {
				item := child.NamedChild(j)
				if item.Type() != "with_item" {
					continue
				}
				// The item value may be an as_pattern; unlike exception
				// aliases, "with ... as x" targets are Name nodes in ast,
				// so the generic lowering of both sides is wanted.
				if value := item.ChildByFieldName("value"); value != nil {
					with.Children = appendNode(with.Children, l.lowerExpr(value))
				}
			}
		}
	}
	if body := node.ChildByFieldName("body"); body != nil {
		with.Children = append(with.Children, l.lowerStatements(body)...)
	}
	return with
}

func (l *lowerer) lowerTry(node *sitter.Node) *syntax.Node {
	try := &syntax.Node{Kind: syntax.KindTry, Line: line(node)}
	if body := node.ChildByFieldName("body"); body != nil {
		try.Children = append(try.Children, l.lowerStatements(body)...)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "except_clause", "except_group_clause":
			try.Children = appendNode(try.Children, l.lowerExcept(child))
		case "else_clause", "finally_clause":
			try.Children = append(try.Children, l.lowerElse(child)...)
		}
	}
	return try
}

// lowerExcept lowers an exception handler. The handler's type is an
// expression, but its "as" alias is a plain string in ast and must not
// become a Name node.
func (l *lowerer) lowerExcept(node *sitter.Node) *syntax.Node {
	exc := &syntax.Node{Kind: syntax.KindExcept, Line: line(node)}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "comment":
		case "block":
			exc.Children = append(exc.Children, l.lowerStatements(child)...)
		case "as_pattern":
			if child.NamedChildCount() > 0 {
				exc.Children = appendNode(exc.Children, l.lowerExpr(child.NamedChild(0)))
			}
		default:
			exc.Children = appendNode(exc.Children, l.lowerExpr(child))
		}
	}
	return exc
}

// lowerExpr lowers an expression (or an opaque statement) subtree. The
// default case keeps the node as an Other container and lowers every
// named child, which matches ast.walk reaching nested expressions in
// f-strings, comprehensions, subscripts, and call arguments.
func (l *lowerer) lowerExpr(node *sitter.Node) *syntax.Node {
	switch node.Type() {
	case "comment":
		return nil
	case "identifier":
		return &syntax.Node{Kind: syntax.KindName, Name: l.nodeText(node), Line: line(node)}
	case "attribute":
		attr := &syntax.Node{Kind: syntax.KindAttribute, Line: line(node)}
		if member := node.ChildByFieldName("attribute"); member != nil {
			attr.Name = l.nodeText(member)
		}
		if object := node.ChildByFieldName("object"); object != nil {
			attr.Children = appendNode(attr.Children, l.lowerExpr(object))
		}
		return attr
	case "keyword_argument":
		// The keyword name is a string in ast, not a reference.
		kw := &syntax.Node{Kind: syntax.KindOther, Line: line(node)}
		if value := node.ChildByFieldName("value"); value != nil {
			kw.Children = appendNode(kw.Children, l.lowerExpr(value))
		}
		return kw
	case "lambda":
		// Not a FunctionDef in ast: no parameter counting, but default
		// values and the body expression are still traversed.
		lam := &syntax.Node{Kind: syntax.KindOther, Line: line(node)}
		if params := node.ChildByFieldName("parameters"); params != nil {
			l.lowerParameters(params, lam)
		}
		if body := node.ChildByFieldName("body"); body != nil {
			lam.Children = appendNode(lam.Children, l.lowerExpr(body))
		}
		return lam
	case "block":
		// Statement suites reached outside the explicit statement paths,
		// such as the arms of a match statement.
		return &syntax.Node{Kind: syntax.KindOther, Line: line(node), Children: l.lowerStatements(node)}
	case "function_definition":
		// Defs nested in unusual positions (e.g. inside a match arm).
		return l.lowerFunction(node)
	case "class_definition":
		return l.lowerClass(node)
	default:
		other := &syntax.Node{Kind: syntax.KindOther, Line: line(node)}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			other.Children = appendNode(other.Children, l.lowerExpr(node.NamedChild(i)))
		}
		return other
	}
}

func (l *lowerer) nodeText(node *sitter.Node) string {
	return node.Content(l.content)
}

// Helper functions

// isAsync reports whether a def/for/with statement carries the async
// keyword, which in the CST is its first (anonymous) child.
func isAsync(node *sitter.Node) bool {
	if node.ChildCount() == 0 {
		return false
	}
	return node.Child(0).Type() == "async"
}

func appendNode(nodes []*syntax.Node, n *syntax.Node) []*syntax.Node {
	if n == nil {
		return nodes
	}
	return append(nodes, n)
}

func line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}
