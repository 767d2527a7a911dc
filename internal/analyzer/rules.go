package analyzer

import "github.com/imyousuf/codescore/internal/syntax"

// Metric identifies a specific scoring rule.
type Metric string

const (
	MetricCyclomaticComplexity Metric = "cyclomatic_complexity"
	MetricNestingDepth         Metric = "nesting_depth"
	MetricFunctionLength       Metric = "function_length"
	MetricParameterCount       Metric = "parameter_count"
	MetricClassCoupling        Metric = "class_coupling"
	MetricCohesion             Metric = "cohesion"
	MetricGlobalVariableUsage  Metric = "global_variable_usage"
	MetricInheritanceDepth     Metric = "inheritance_depth"
	MetricNumberOfInterfaces   Metric = "number_of_interfaces"
	MetricPolymorphism         Metric = "polymorphism"
	MetricImportComplexity     Metric = "import_complexity"
)

// Rule pairs a metric with its scoring function. Rules are pure: given
// the same tree and facts they return the same value, and none of them
// can fail on a well-formed tree.
type Rule struct {
	Metric Metric
	Score  func(root *syntax.Node, facts *Facts) float64
}

// rules is the registry. Slice order is the report's key order, so it is
// part of the output contract; append only.
var rules = []Rule{
	{MetricCyclomaticComplexity, scoreCyclomaticComplexity},
	{MetricNestingDepth, scoreNestingDepth},
	{MetricFunctionLength, scoreFunctionLength},
	{MetricParameterCount, scoreParameterCount},
	{MetricClassCoupling, scoreClassCoupling},
	{MetricCohesion, scoreCohesion},
	{MetricGlobalVariableUsage, scoreGlobalVariableUsage},
	{MetricInheritanceDepth, scoreInheritanceDepth},
	{MetricNumberOfInterfaces, scoreNumberOfInterfaces},
	{MetricPolymorphism, scorePolymorphism},
	{MetricImportComplexity, scoreImportComplexity},
}

// Metrics returns the metric names in report order.
func Metrics() []Metric {
	names := make([]Metric, len(rules))
	for i, r := range rules {
		names[i] = r.Metric
	}
	return names
}

func capped(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}

// scoreCyclomaticComplexity counts branch points across the whole tree:
// conditionals, loops, with blocks, try blocks, and exception handlers.
func scoreCyclomaticComplexity(root *syntax.Node, _ *Facts) float64 {
	count := 0
	syntax.Walk(root, func(n *syntax.Node) {
		switch n.Kind {
		case syntax.KindConditional, syntax.KindLoop, syntax.KindWith,
			syntax.KindTry, syntax.KindExcept:
			count++
		}
	})
	return capped(float64(count) / 10)
}

// scoreNestingDepth runs a depth counter that increments on every
// structural node and never unwinds, so sibling structures keep
// deepening it and the maximum equals the structural node count. A
// path-restoring counter would be a behavior change, not a fix.
func scoreNestingDepth(root *syntax.Node, _ *Facts) float64 {
	depth := 0
	syntax.Walk(root, func(n *syntax.Node) {
		switch n.Kind {
		case syntax.KindConditional, syntax.KindLoop, syntax.KindWith, syntax.KindTry:
			depth++
		}
	})
	return capped(float64(depth) / 5)
}

// scoreFunctionLength sums a per-function score over the count of
// direct body statements. Each term is capped, the sum is not.
func scoreFunctionLength(root *syntax.Node, _ *Facts) float64 {
	total := 0.0
	syntax.Walk(root, func(n *syntax.Node) {
		if n.Kind == syntax.KindFunction {
			total += capped(float64(len(n.Body)) / 50)
		}
	})
	return total
}

func scoreParameterCount(root *syntax.Node, _ *Facts) float64 {
	total := 0.0
	syntax.Walk(root, func(n *syntax.Node) {
		if n.Kind == syntax.KindFunction {
			total += capped(float64(n.ParamCount) / 10)
		}
	})
	return total
}

// scoreClassCoupling counts, per class, the name references in its
// subtree that match a known class name. References to the class's own
// name count too, so recursive factory patterns raise coupling.
func scoreClassCoupling(root *syntax.Node, facts *Facts) float64 {
	total := 0.0
	syntax.Walk(root, func(n *syntax.Node) {
		if n.Kind != syntax.KindClass {
			return
		}
		refs := 0
		syntax.Walk(n, func(inner *syntax.Node) {
			if inner.Kind == syntax.KindName && facts.ClassNames[inner.Name] {
				refs++
			}
		})
		total += capped(float64(refs) / 10)
	})
	return total
}

// scoreCohesion scores each class with at least one method as
// 1 - shared/methodCount, where shared counts methods containing an
// attribute access whose name occurs anywhere in the class subtree.
// Because the attribute set includes the methods' own accesses, any
// method touching an attribute counts as shared; a high value means
// methods that touch no attributes at all. Higher is less sharing,
// not more.
func scoreCohesion(root *syntax.Node, _ *Facts) float64 {
	total := 0.0
	syntax.Walk(root, func(n *syntax.Node) {
		if n.Kind != syntax.KindClass {
			return
		}
		var methods []*syntax.Node
		for _, stmt := range n.Body {
			if stmt.Kind == syntax.KindFunction {
				methods = append(methods, stmt)
			}
		}
		if len(methods) == 0 {
			return
		}

		attrs := make(map[string]bool)
		syntax.Walk(n, func(inner *syntax.Node) {
			if inner.Kind == syntax.KindAttribute {
				attrs[inner.Name] = true
			}
		})

		shared := 0
		for _, m := range methods {
			found := false
			syntax.Walk(m, func(inner *syntax.Node) {
				if inner.Kind == syntax.KindAttribute && attrs[inner.Name] {
					found = true
				}
			})
			if found {
				shared++
			}
		}
		total += 1 - float64(shared)/float64(len(methods))
	})
	return total
}

func scoreGlobalVariableUsage(root *syntax.Node, facts *Facts) float64 {
	count := 0
	syntax.Walk(root, func(n *syntax.Node) {
		if n.Kind == syntax.KindName && facts.GlobalVars[n.Name] {
			count++
		}
	})
	return capped(float64(count) / 10)
}

// scoreInheritanceDepth accumulates base-class counts down each path of
// the tree, so a nested class definition deepens its enclosing class's
// contribution. The value is the maximum accumulated depth anywhere.
func scoreInheritanceDepth(root *syntax.Node, _ *Facts) float64 {
	maxDepth := 0
	syntax.WalkDepth(root, func(n *syntax.Node) int {
		if n.Kind == syntax.KindClass {
			return n.BaseCount
		}
		return 0
	}, func(_ *syntax.Node, depth int) {
		if depth > maxDepth {
			maxDepth = depth
		}
	})
	return capped(float64(maxDepth) / 5)
}

func scoreNumberOfInterfaces(root *syntax.Node, _ *Facts) float64 {
	total := 0.0
	syntax.Walk(root, func(n *syntax.Node) {
		if n.Kind == syntax.KindClass {
			total += capped(float64(n.BaseCount) / 5)
		}
	})
	return total
}

// scorePolymorphism counts, per class, the direct methods whose name is
// in the flat whole-program method set. Since the set was built from
// those same methods, every method matches at least itself; see Facts.
func scorePolymorphism(root *syntax.Node, facts *Facts) float64 {
	total := 0.0
	syntax.Walk(root, func(n *syntax.Node) {
		if n.Kind != syntax.KindClass {
			return
		}
		matches := 0
		for _, stmt := range n.Body {
			if stmt.Kind == syntax.KindFunction && facts.ClassMethods[stmt.Name] {
				matches++
			}
		}
		total += capped(float64(matches) / 5)
	})
	return total
}

func scoreImportComplexity(root *syntax.Node, _ *Facts) float64 {
	count := 0
	syntax.Walk(root, func(n *syntax.Node) {
		if n.Kind == syntax.KindImport {
			count++
		}
	})
	return capped(float64(count) / 20)
}
