package syntax

import "testing"

// buildTree returns a small tree with known structure:
//
//	Module
//	  body: Function f (children: Name a; body: Conditional (children: Name b))
//	  body: Class C (children: Name base; body: Function g)
func buildTree() *Node {
	return &Node{
		Kind: KindModule,
		Body: []*Node{
			{
				Kind:     KindFunction,
				Name:     "f",
				Children: []*Node{{Kind: KindName, Name: "a"}},
				Body: []*Node{
					{
						Kind:     KindConditional,
						Children: []*Node{{Kind: KindName, Name: "b"}},
					},
				},
			},
			{
				Kind:     KindClass,
				Name:     "C",
				Children: []*Node{{Kind: KindName, Name: "base"}},
				Body:     []*Node{{Kind: KindFunction, Name: "g"}},
			},
		},
	}
}

func TestWalkVisitsEveryNodeOnce(t *testing.T) {
	root := buildTree()

	seen := make(map[*Node]int)
	total := 0
	Walk(root, func(n *Node) {
		seen[n]++
		total++
	})

	if total != 8 {
		t.Errorf("visited %d nodes, want 8", total)
	}
	for n, count := range seen {
		if count != 1 {
			t.Errorf("node %s/%s visited %d times, want 1", n.Kind, n.Name, count)
		}
	}
}

func TestWalkChildrenBeforeBody(t *testing.T) {
	root := buildTree()

	var order []string
	Walk(root, func(n *Node) {
		if n.Kind == KindName {
			order = append(order, n.Name)
		}
	})

	// Function f's child "a" comes before the conditional's "b" in its body.
	want := []string{"a", "b", "base"}
	if len(order) != len(want) {
		t.Fatalf("saw %d names, want %d: %v", len(order), len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestWalkNilRoot(t *testing.T) {
	called := false
	Walk(nil, func(*Node) { called = true })
	if called {
		t.Error("visit should not run for a nil root")
	}
}

func TestWalkDepthAccumulates(t *testing.T) {
	// Conditional > Loop > Name: depth should reach 2 at the loop and
	// stay 2 at the name below it.
	root := &Node{
		Kind: KindModule,
		Body: []*Node{
			{
				Kind: KindConditional,
				Children: []*Node{
					{
						Kind:     KindLoop,
						Children: []*Node{{Kind: KindName, Name: "x"}},
					},
				},
			},
		},
	}

	step := func(n *Node) int {
		switch n.Kind {
		case KindConditional, KindLoop:
			return 1
		}
		return 0
	}

	depths := make(map[Kind]int)
	maxDepth := 0
	WalkDepth(root, step, func(n *Node, d int) {
		depths[n.Kind] = d
		if d > maxDepth {
			maxDepth = d
		}
	})

	if depths[KindModule] != 0 {
		t.Errorf("module depth = %d, want 0", depths[KindModule])
	}
	if depths[KindConditional] != 1 {
		t.Errorf("conditional depth = %d, want 1", depths[KindConditional])
	}
	if depths[KindLoop] != 2 {
		t.Errorf("loop depth = %d, want 2", depths[KindLoop])
	}
	if depths[KindName] != 2 {
		t.Errorf("name depth = %d, want 2", depths[KindName])
	}
	if maxDepth != 2 {
		t.Errorf("max depth = %d, want 2", maxDepth)
	}
}

func TestWalkDeeplyNestedTree(t *testing.T) {
	// A chain far deeper than any recursive traversal would survive.
	const depth = 200000
	root := &Node{Kind: KindModule}
	cur := root
	for i := 0; i < depth; i++ {
		next := &Node{Kind: KindConditional}
		cur.Children = append(cur.Children, next)
		cur = next
	}

	count := 0
	Walk(root, func(*Node) { count++ })
	if count != depth+1 {
		t.Errorf("visited %d nodes, want %d", count, depth+1)
	}
}
