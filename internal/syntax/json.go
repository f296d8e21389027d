package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the tree to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *File:
		return map[string]interface{}{
			"type":     "File",
			"filename": n.Filename,
			"stmts":    mapSlice(n.Stmts, func(s Stmt) interface{} { return toJSON(s) }),
		}

	case *AssignStmt:
		return map[string]interface{}{
			"type":    "AssignStmt",
			"pos":     n.pos.String(),
			"targets": mapSlice(n.Targets, exprJSON),
			"value":   toJSON(n.Value),
		}

	case *AnnAssignStmt:
		m := map[string]interface{}{
			"type":       "AnnAssignStmt",
			"pos":        n.pos.String(),
			"target":     toJSON(n.Target),
			"annotation": toJSON(n.Annotation),
		}
		if n.Value != nil {
			m["value"] = toJSON(n.Value)
		}
		return m

	case *OtherStmt:
		return map[string]interface{}{
			"type": "OtherStmt",
			"pos":  n.pos.String(),
			"kind": n.Kind,
		}

	case *Name:
		return map[string]interface{}{
			"type":  "Name",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *Constant:
		return map[string]interface{}{
			"type":  "Constant",
			"pos":   n.pos.String(),
			"kind":  n.Kind.String(),
			"value": n.Value,
		}

	case *BinaryOp:
		return map[string]interface{}{
			"type": "BinaryOp",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
			"y":    toJSON(n.Y),
		}

	case *UnaryOp:
		return map[string]interface{}{
			"type": "UnaryOp",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
		}

	case *ListExpr:
		return map[string]interface{}{
			"type":  "ListExpr",
			"pos":   n.pos.String(),
			"elems": mapSlice(n.Elems, exprJSON),
		}

	case *TupleExpr:
		return map[string]interface{}{
			"type":  "TupleExpr",
			"pos":   n.pos.String(),
			"elems": mapSlice(n.Elems, exprJSON),
		}

	case *SubscriptExpr:
		return map[string]interface{}{
			"type":  "SubscriptExpr",
			"pos":   n.pos.String(),
			"x":     toJSON(n.X),
			"index": mapSlice(n.Index, exprJSON),
		}

	case *SelectorExpr:
		return map[string]interface{}{
			"type": "SelectorExpr",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
			"sel":  n.Sel.Value,
		}

	case *OtherExpr:
		return map[string]interface{}{
			"type": "OtherExpr",
			"pos":  n.pos.String(),
			"kind": n.Kind,
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

func exprJSON(e Expr) interface{} { return toJSON(e) }

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
