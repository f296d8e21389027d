package syntax

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ----------------------------------------------------------------------------
// Test helpers

func parseFile(t *testing.T, src string) *File {
	t.Helper()
	f, errs := parseFileWithErrors(t, src)
	if len(errs) > 0 {
		t.Fatalf("unexpected syntax errors:\n%s", strings.Join(errs, "\n"))
	}
	return f
}

func parseFileWithErrors(t *testing.T, src string) (*File, []string) {
	t.Helper()
	var errs []string
	errh := func(pos Pos, msg string) {
		errs = append(errs, pos.String()+": "+msg)
	}
	p := NewParser("test.py", strings.NewReader(src), errh)
	f := p.Parse()
	if f == nil {
		t.Fatal("Parse returned nil")
	}
	return f, errs
}

// parseValue parses "x = <src>" and returns the value expression.
func parseValue(t *testing.T, src string) Expr {
	t.Helper()
	f := parseFile(t, "x = "+src)
	if len(f.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(f.Stmts))
	}
	s, ok := f.Stmts[0].(*AssignStmt)
	if !ok {
		t.Fatalf("got %T, want *AssignStmt", f.Stmts[0])
	}
	return s.Value
}

// parseAnnotation parses "x: <src> = 0" and returns the annotation.
func parseAnnotation(t *testing.T, src string) Expr {
	t.Helper()
	f := parseFile(t, "x: "+src+" = 0")
	s, ok := f.Stmts[0].(*AnnAssignStmt)
	if !ok {
		t.Fatalf("got %T, want *AnnAssignStmt", f.Stmts[0])
	}
	return s.Annotation
}

// ----------------------------------------------------------------------------
// Statements

func TestParseAssign(t *testing.T) {
	f := parseFile(t, "x = 1\n")
	if len(f.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(f.Stmts))
	}
	s, ok := f.Stmts[0].(*AssignStmt)
	if !ok {
		t.Fatalf("got %T, want *AssignStmt", f.Stmts[0])
	}
	if len(s.Targets) != 1 {
		t.Fatalf("got %d targets, want 1", len(s.Targets))
	}
	if name, ok := s.Targets[0].(*Name); !ok || name.Value != "x" {
		t.Errorf("target = %#v, want Name x", s.Targets[0])
	}
	if c, ok := s.Value.(*Constant); !ok || c.Kind != IntConst || c.Value != "1" {
		t.Errorf("value = %#v, want int constant 1", s.Value)
	}
}

func TestParseChainedAssign(t *testing.T) {
	f := parseFile(t, "a = b = c = 2.5\n")
	s := f.Stmts[0].(*AssignStmt)
	var names []string
	for _, target := range s.Targets {
		names = append(names, target.(*Name).Value)
	}
	if strings.Join(names, ",") != "a,b,c" {
		t.Errorf("targets = %v, want [a b c]", names)
	}
	if c, ok := s.Value.(*Constant); !ok || c.Kind != FloatConst {
		t.Errorf("value = %#v, want float constant", s.Value)
	}
}

func TestParseAnnAssign(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		hasValue bool
	}{
		{"with value", "x: int = 1", true},
		{"without value", "x: int", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parseFile(t, tt.src)
			s, ok := f.Stmts[0].(*AnnAssignStmt)
			if !ok {
				t.Fatalf("got %T, want *AnnAssignStmt", f.Stmts[0])
			}
			if name, ok := s.Target.(*Name); !ok || name.Value != "x" {
				t.Errorf("target = %#v", s.Target)
			}
			if name, ok := s.Annotation.(*Name); !ok || name.Value != "int" {
				t.Errorf("annotation = %#v", s.Annotation)
			}
			if (s.Value != nil) != tt.hasValue {
				t.Errorf("value = %#v, hasValue %v", s.Value, tt.hasValue)
			}
		})
	}
}

func TestParseOtherStatements(t *testing.T) {
	tests := []struct {
		src  string
		kind string
	}{
		{"import os", "import_statement"},
		{"def f():\n    return 1", "function_definition"},
		{"class C:\n    pass", "class_definition"},
		{"x += 1", "expression_statement"},
		{"print(x)", "expression_statement"},
		{"if x:\n    y = 1", "if_statement"},
		{"for i in y:\n    pass", "for_statement"},
	}

	for _, tt := range tests {
		t.Run(tt.kind+"/"+tt.src, func(t *testing.T) {
			f := parseFile(t, tt.src)
			if len(f.Stmts) != 1 {
				t.Fatalf("got %d statements, want 1", len(f.Stmts))
			}
			s, ok := f.Stmts[0].(*OtherStmt)
			if !ok {
				t.Fatalf("got %T, want *OtherStmt", f.Stmts[0])
			}
			if s.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", s.Kind, tt.kind)
			}
		})
	}
}

func TestParseCommentsSkipped(t *testing.T) {
	f := parseFile(t, "# header\nx = 1  # trailing\n# footer\n")
	if len(f.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(f.Stmts))
	}
}

// ----------------------------------------------------------------------------
// Expressions

func TestParseConstants(t *testing.T) {
	tests := []struct {
		src  string
		kind ConstKind
	}{
		{"42", IntConst},
		{"0x1F", IntConst},
		{"3.14", FloatConst},
		{"1e10", FloatConst},
		{"2j", ComplexConst},
		{"1.5J", ComplexConst},
		{`"hello"`, StrConst},
		{`'single'`, StrConst},
		{`f"fmt {x}"`, StrConst},
		{`"a" "b"`, StrConst},
		{`b"raw"`, BytesConst},
		{`Rb"raw"`, BytesConst},
		{"True", BoolConst},
		{"False", BoolConst},
		{"None", NoneConst},
		{"...", EllipsisConst},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			c, ok := parseValue(t, tt.src).(*Constant)
			if !ok {
				t.Fatalf("got %T, want *Constant", parseValue(t, tt.src))
			}
			if c.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", c.Kind, tt.kind)
			}
			if c.Value != tt.src {
				t.Errorf("Value = %q, want %q", c.Value, tt.src)
			}
		})
	}
}

func TestParseOperators(t *testing.T) {
	tests := []struct {
		src string
		op  Operator
	}{
		{"a + b", Add},
		{"a - b", Sub},
		{"a * b", Mul},
		{"a @ b", MatMul},
		{"a / b", Div},
		{"a // b", FloorDiv},
		{"a % b", Mod},
		{"a ** b", Pow},
		{"a << b", LShift},
		{"a >> b", RShift},
		{"a | b", BitOr},
		{"a ^ b", BitXor},
		{"a & b", BitAnd},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			b, ok := parseValue(t, tt.src).(*BinaryOp)
			if !ok {
				t.Fatalf("got %T, want *BinaryOp", parseValue(t, tt.src))
			}
			if b.Op != tt.op {
				t.Errorf("Op = %v, want %v", b.Op, tt.op)
			}
		})
	}
}

func TestParseUnary(t *testing.T) {
	tests := []struct {
		src string
		op  Operator
	}{
		{"-x", USub},
		{"+x", UAdd},
		{"~x", Invert},
		{"not x", Not},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			u, ok := parseValue(t, tt.src).(*UnaryOp)
			if !ok {
				t.Fatalf("got %T, want *UnaryOp", parseValue(t, tt.src))
			}
			if u.Op != tt.op {
				t.Errorf("Op = %v, want %v", u.Op, tt.op)
			}
			if name, ok := u.X.(*Name); !ok || name.Value != "x" {
				t.Errorf("operand = %#v", u.X)
			}
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	// 1 + 2 * 3 parses as 1 + (2 * 3).
	b := parseValue(t, "1 + 2 * 3").(*BinaryOp)
	if b.Op != Add {
		t.Fatalf("root op = %v, want +", b.Op)
	}
	if inner, ok := b.Y.(*BinaryOp); !ok || inner.Op != Mul {
		t.Errorf("right operand = %#v, want 2 * 3", b.Y)
	}

	// Parentheses leave no node behind.
	b = parseValue(t, "(1 + 2) * 3").(*BinaryOp)
	if inner, ok := b.X.(*BinaryOp); !ok || inner.Op != Add {
		t.Errorf("left operand = %#v, want 1 + 2", b.X)
	}
}

func TestParseCollections(t *testing.T) {
	if l, ok := parseValue(t, "[1, 'a', []]").(*ListExpr); !ok || len(l.Elems) != 3 {
		t.Errorf("list = %#v", l)
	}
	if tup, ok := parseValue(t, "(1, 2)").(*TupleExpr); !ok || len(tup.Elems) != 2 {
		t.Errorf("tuple = %#v", tup)
	}
	if tup, ok := parseValue(t, "()").(*TupleExpr); !ok || len(tup.Elems) != 0 {
		t.Errorf("empty tuple = %#v", tup)
	}
	if tup, ok := parseValue(t, "1, 2, 3").(*TupleExpr); !ok || len(tup.Elems) != 3 {
		t.Errorf("bare tuple = %#v", tup)
	}
}

func TestParseTupleTarget(t *testing.T) {
	f := parseFile(t, "a, b = 1, 2")
	s := f.Stmts[0].(*AssignStmt)
	if tup, ok := s.Targets[0].(*TupleExpr); !ok || len(tup.Elems) != 2 {
		t.Errorf("target = %#v, want 2-tuple", s.Targets[0])
	}
}

func TestParseOtherExpressions(t *testing.T) {
	tests := []struct {
		src  string
		kind string
	}{
		{"f(1)", "call"},
		{"[i for i in y]", "list_comprehension"},
		{"{1: 2}", "dictionary"},
		{"lambda: 1", "lambda"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			o, ok := parseValue(t, tt.src).(*OtherExpr)
			if !ok {
				t.Fatalf("got %T, want *OtherExpr", parseValue(t, tt.src))
			}
			if o.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", o.Kind, tt.kind)
			}
		})
	}
}

func TestParseAnnotations(t *testing.T) {
	t.Run("generic", func(t *testing.T) {
		s, ok := parseAnnotation(t, "list[int]").(*SubscriptExpr)
		if !ok {
			t.Fatalf("got %T, want *SubscriptExpr", parseAnnotation(t, "list[int]"))
		}
		if name, ok := s.X.(*Name); !ok || name.Value != "list" {
			t.Errorf("base = %#v", s.X)
		}
		if len(s.Index) != 1 {
			t.Fatalf("got %d index exprs, want 1", len(s.Index))
		}
	})

	t.Run("multi-index", func(t *testing.T) {
		s := parseAnnotation(t, "tuple[int, str, None]").(*SubscriptExpr)
		if len(s.Index) != 3 {
			t.Errorf("got %d index exprs, want 3", len(s.Index))
		}
	})

	t.Run("union", func(t *testing.T) {
		b, ok := parseAnnotation(t, "int | None").(*BinaryOp)
		if !ok || b.Op != BitOr {
			t.Fatalf("got %#v, want | union", parseAnnotation(t, "int | None"))
		}
		if c, ok := b.Y.(*Constant); !ok || c.Kind != NoneConst {
			t.Errorf("right = %#v, want None", b.Y)
		}
	})

	t.Run("qualified", func(t *testing.T) {
		s := parseAnnotation(t, "typing.Optional[int]").(*SubscriptExpr)
		sel, ok := s.X.(*SelectorExpr)
		if !ok || sel.Sel.Value != "Optional" {
			t.Fatalf("base = %#v, want typing.Optional", s.X)
		}
		if name, ok := sel.X.(*Name); !ok || name.Value != "typing" {
			t.Errorf("qualifier = %#v", sel.X)
		}
	})
}

func TestParseNodePositions(t *testing.T) {
	f := parseFile(t, "x = 1\n\nvalue: str = 'abc'\n")
	if len(f.Stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(f.Stmts))
	}

	tests := []struct {
		node      Node
		line, col uint32
	}{
		{f.Stmts[0], 1, 1},
		{f.Stmts[0].(*AssignStmt).Value, 1, 5},
		{f.Stmts[1], 3, 1},
		{f.Stmts[1].(*AnnAssignStmt).Annotation, 3, 8},
		{f.Stmts[1].(*AnnAssignStmt).Value, 3, 14},
	}
	for i, tt := range tests {
		pos := tt.node.Pos()
		if pos.Line() != tt.line || pos.Col() != tt.col {
			t.Errorf("node %d (%T) at %s, want %d:%d", i, tt.node, pos, tt.line, tt.col)
		}
		if pos.Filename() != "test.py" {
			t.Errorf("node %d filename = %q", i, pos.Filename())
		}
	}
}

// ----------------------------------------------------------------------------
// Errors

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"dangling operator", "x = 1 +\n"},
		{"double assign", "x = = 1\n"},
		{"unclosed bracket", "x = [1, 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := parseFileWithErrors(t, tt.src)
			if len(errs) == 0 {
				t.Fatal("expected syntax errors, got none")
			}
			for _, e := range errs {
				if !strings.Contains(e, "syntax error") {
					t.Errorf("unexpected error text %q", e)
				}
				if !strings.HasPrefix(e, "test.py:") {
					t.Errorf("error %q lacks a position", e)
				}
			}
		})
	}
}

func TestParseFirstError(t *testing.T) {
	p := NewParser("test.py", strings.NewReader("x = = 1\ny = = 2\n"), nil)
	p.Parse()
	if p.ErrorCount() == 0 {
		t.Fatal("ErrorCount() = 0")
	}
	err := p.FirstError()
	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("FirstError() = %T, want *SyntaxError", err)
	}
	if se.Pos.Line() != 1 {
		t.Errorf("first error on line %d, want 1", se.Pos.Line())
	}
}

func TestParseNoAbort(t *testing.T) {
	// Statements after a broken one are still returned.
	f, errs := parseFileWithErrors(t, "x = = 1\ny = 2\n")
	if len(errs) == 0 {
		t.Fatal("expected syntax errors")
	}
	var found bool
	for _, s := range f.Stmts {
		if a, ok := s.(*AssignStmt); ok {
			if name, ok := a.Targets[0].(*Name); ok && name.Value == "y" {
				found = true
			}
		}
	}
	if !found {
		t.Error("statement after the error was not recovered")
	}
}

// ----------------------------------------------------------------------------
// Output

func TestParseGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/parse_*.py")
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			src, err := os.ReadFile(f)
			if err != nil {
				t.Fatal(err)
			}

			p := NewParser(filepath.Base(f), bytes.NewReader(src), nil)
			ast := p.Parse()

			var buf bytes.Buffer
			Fprint(&buf, ast)
			got := buf.String()

			golden := strings.TrimSuffix(f, ".py") + ".ast.golden"

			if os.Getenv("UPDATE_GOLDEN") != "" {
				if err := os.WriteFile(golden, []byte(got), 0644); err != nil {
					t.Fatal(err)
				}
				return
			}

			want, err := os.ReadFile(golden)
			if err != nil {
				t.Fatal(err)
			}

			if got != string(want) {
				t.Errorf("AST mismatch for %s\ngot:\n%s\nRun with UPDATE_GOLDEN=1 to update", f, got)
			}
		})
	}
}

func TestFprintJSON(t *testing.T) {
	f := parseFile(t, "x: int = 1\nimport os\n")
	var buf bytes.Buffer
	if err := FprintJSON(&buf, f); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Type  string `json:"type"`
		Stmts []struct {
			Type   string `json:"type"`
			Pos    string `json:"pos"`
			Kind   string `json:"kind"`
			Target struct {
				Value string `json:"value"`
			} `json:"target"`
		} `json:"stmts"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if doc.Type != "File" || len(doc.Stmts) != 2 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.Stmts[0].Type != "AnnAssignStmt" || doc.Stmts[0].Target.Value != "x" || doc.Stmts[0].Pos != "test.py:1:1" {
		t.Errorf("stmt 0 = %+v", doc.Stmts[0])
	}
	if doc.Stmts[1].Type != "OtherStmt" || doc.Stmts[1].Kind != "import_statement" {
		t.Errorf("stmt 1 = %+v", doc.Stmts[1])
	}
}

func TestFprintAnnotated(t *testing.T) {
	f := parseFile(t, "x = 1\n")
	var buf bytes.Buffer
	FprintAnnotated(&buf, f, func(e Expr) string {
		if _, ok := e.(*Constant); ok {
			return "note"
		}
		return ""
	})
	out := buf.String()
	if !strings.Contains(out, "Constant test.py:1:5 int 1 (note)\n") {
		t.Errorf("missing annotated constant:\n%s", out)
	}
	if strings.Contains(out, `"x" (`) {
		t.Errorf("unexpected note on name:\n%s", out)
	}
}

// ----------------------------------------------------------------------------
// Walk tests

func TestWalk(t *testing.T) {
	f := parseFile(t, "x = a + b\ny: list[int] = [c]\n")

	var nodeCount int
	var names []string
	Walk(f, func(n Node) bool {
		nodeCount++
		if name, ok := n.(*Name); ok {
			names = append(names, name.Value)
		}
		return true
	})

	if nodeCount == 0 {
		t.Error("Walk visited no nodes")
	}
	want := "x,a,b,y,list,int,c"
	if got := strings.Join(names, ","); got != want {
		t.Errorf("names = %s, want %s", got, want)
	}
}

func TestInspect(t *testing.T) {
	f := parseFile(t, "x = [1, [2, 3]]\n")

	var lists int
	Inspect(f, func(n Node) {
		if _, ok := n.(*ListExpr); ok {
			lists++
		}
	})
	if lists != 2 {
		t.Errorf("expected 2 ListExpr, got %d", lists)
	}

	// Returning false from a Walk visitor prunes the subtree.
	lists = 0
	Walk(f, func(n Node) bool {
		if _, ok := n.(*ListExpr); ok {
			lists++
			return false
		}
		return true
	})
	if lists != 1 {
		t.Errorf("expected pruned walk to see 1 ListExpr, got %d", lists)
	}
}

// ----------------------------------------------------------------------------
// Fuzz test

func FuzzParse(f *testing.F) {
	seeds := []string{
		"x = 1",
		"a = b = 'c'",
		"x: int | None = None",
		"xs: list[tuple[int, str]] = [(1, 'a')]",
		"def f(a, b=2):\n    return a + b",
		"class C:\n    x: int = 0",
		"x = = 1",
		"x = [1, 2",
		"(((",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		// Syntax errors are acceptable, but parser should not panic
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("parser panicked on input %q: %v", src, r)
			}
		}()

		errh := func(pos Pos, msg string) {}

		p := NewParser("fuzz", strings.NewReader(src), errh)
		_ = p.Parse()
	})
}
