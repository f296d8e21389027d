package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses a tree in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *File:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *AssignStmt:
		for _, e := range n.Targets {
			Walk(e, v)
		}
		Walk(n.Value, v)

	case *AnnAssignStmt:
		Walk(n.Target, v)
		Walk(n.Annotation, v)
		if n.Value != nil {
			Walk(n.Value, v)
		}

	case *BinaryOp:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *UnaryOp:
		Walk(n.X, v)

	case *ListExpr:
		for _, e := range n.Elems {
			Walk(e, v)
		}

	case *TupleExpr:
		for _, e := range n.Elems {
			Walk(e, v)
		}

	case *SubscriptExpr:
		Walk(n.X, v)
		for _, e := range n.Index {
			Walk(e, v)
		}

	case *SelectorExpr:
		Walk(n.X, v)
		Walk(n.Sel, v)

	case *Name, *Constant, *OtherStmt, *OtherExpr:
		// leaves
	}
}

// Inspect calls f for every node under root, in depth-first order.
func Inspect(root Node, f func(Node)) {
	Walk(root, func(n Node) bool {
		f(n)
		return true
	})
}
