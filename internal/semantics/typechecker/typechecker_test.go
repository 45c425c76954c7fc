package typechecker

import (
	"strings"
	"testing"

	"github.com/google/closure-templates-sub001/internal/ast"
	"github.com/google/closure-templates-sub001/internal/diagnostics"
	"github.com/google/closure-templates-sub001/internal/registry"
	"github.com/google/closure-templates-sub001/internal/semantics/resolver"
	"github.com/google/closure-templates-sub001/internal/source"
	"github.com/google/closure-templates-sub001/internal/types"
)

func loc(line, col int) source.Location {
	return source.Point("test.soy", line, col)
}

func param(name, annotation string) *ast.Param {
	return &ast.Param{
		Defn:       &ast.VarDefn{Name: name, Kind: ast.VarParam},
		Annotation: annotation,
		Required:   true,
	}
}

func ref(name string) *ast.VarRef {
	return &ast.VarRef{Name: name, Location: loc(1, 1)}
}

// check resolves and typechecks a single template built from params and body.
func check(t *testing.T, params []*ast.Param, body []ast.Statement) *diagnostics.Bag {
	t.Helper()
	fs := &ast.FileSet{Files: []*ast.File{{
		Path:      "test.soy",
		Namespace: "ns",
		Templates: []*ast.Template{{Name: "ns.t", Params: params, Body: body}},
	}}}
	bag := diagnostics.NewBag()
	resolver.New(bag).ResolveFileSet(fs)
	New(bag, registry.NewFunctions(), registry.NewTypeNames()).CheckFileSet(fs)
	return bag
}

func hasMessage(bag *diagnostics.Bag, fragment string) bool {
	for _, m := range bag.Messages() {
		if strings.Contains(m, fragment) {
			return true
		}
	}
	return false
}

func TestArithmeticTyping(t *testing.T) {
	pi1, pi2 := ref("pi"), ref("pi")
	pd1, pd2 := ref("pi"), ref("pi")
	sum := &ast.BinaryExpr{X: pi1, Op: ast.OpPlus, Y: pi2, Location: loc(2, 1)}
	quot := &ast.BinaryExpr{X: pd1, Op: ast.OpDiv, Y: pd2, Location: loc(3, 1)}
	bad := &ast.BinaryExpr{
		X:        &ast.StringLit{Value: "a", Location: loc(4, 1)},
		Op:       ast.OpDiv,
		Y:        &ast.StringLit{Value: "b", Location: loc(4, 6)},
		Location: loc(4, 1),
	}

	bag := check(t,
		[]*ast.Param{param("pi", "int")},
		[]ast.Statement{
			&ast.PrintStmt{Value: sum},
			&ast.PrintStmt{Value: quot},
			&ast.PrintStmt{Value: bad},
		})

	if got := sum.TypeInfo(); !got.Equals(types.Int) {
		t.Errorf("$pi + $pi = %s, want int", got)
	}
	if got := quot.TypeInfo(); !got.Equals(types.Float) {
		t.Errorf("$pi / $pi = %s, want float", got)
	}
	if !hasMessage(bag, "Using arithmetic operator '/' on types 'string' and 'string'") {
		t.Errorf("missing division error, got %v", bag.Messages())
	}
	if got := bad.TypeInfo(); !got.Equals(types.Unknown) {
		t.Errorf("'a' / 'b' recovered as %s, want ?", got)
	}
}

func TestFloatContaminates(t *testing.T) {
	mixed := &ast.BinaryExpr{X: ref("pi"), Op: ast.OpTimes, Y: ref("pf"), Location: loc(2, 1)}
	bag := check(t,
		[]*ast.Param{param("pi", "int"), param("pf", "float")},
		[]ast.Statement{&ast.PrintStmt{Value: mixed}})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Messages())
	}
	if got := mixed.TypeInfo(); !got.Equals(types.Float) {
		t.Errorf("$pi * $pf = %s, want float", got)
	}
}

func TestStringConcatenation(t *testing.T) {
	concat := &ast.BinaryExpr{
		X:        ref("ps"),
		Op:       ast.OpPlus,
		Y:        ref("pi"),
		Location: loc(2, 1),
	}
	bag := check(t,
		[]*ast.Param{param("ps", "string"), param("pi", "int")},
		[]ast.Statement{&ast.PrintStmt{Value: concat}})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Messages())
	}
	if got := concat.TypeInfo(); !got.Equals(types.String) {
		t.Errorf("$ps + $pi = %s, want string", got)
	}
}

func TestRecordFieldAccess(t *testing.T) {
	good := &ast.FieldAccessExpr{X: ref("pa"), Field: "a", Location: loc(2, 1)}
	bad := &ast.FieldAccessExpr{X: ref("pa"), Field: "c", Location: loc(3, 1)}

	bag := check(t,
		[]*ast.Param{param("pa", "[a: int, b?: float]")},
		[]ast.Statement{
			&ast.PrintStmt{Value: good},
			&ast.PrintStmt{Value: bad},
		})

	if got := good.TypeInfo(); !got.Equals(types.Int) {
		t.Errorf("$pa.a = %s, want int", got)
	}
	found := false
	for _, d := range bag.Diagnostics() {
		if d.Code == diagnostics.ErrFieldNotFound {
			found = true
			if !strings.Contains(d.Message, "Undefined field 'c'") {
				t.Errorf("message = %q", d.Message)
			}
			if !strings.Contains(d.Help, "'a'") {
				t.Errorf("help = %q, want a suggestion for 'a'", d.Help)
			}
		}
	}
	if !found {
		t.Fatalf("missing field error, got %v", bag.Messages())
	}
	if got := bad.TypeInfo(); !got.Equals(types.Unknown) {
		t.Errorf("$pa.c recovered as %s, want ?", got)
	}
}

func TestOptionalFieldIncludesUndefined(t *testing.T) {
	access := &ast.FieldAccessExpr{X: ref("pa"), Field: "b", Location: loc(2, 1)}
	bag := check(t,
		[]*ast.Param{param("pa", "[a: int, b?: float]")},
		[]ast.Statement{&ast.PrintStmt{Value: access}})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Messages())
	}
	if got := access.TypeInfo(); !got.Equals(types.Union(types.Float, types.Undefined)) {
		t.Errorf("$pa.b = %s, want float|undefined", got)
	}
}

func TestDotAccessOnScalar(t *testing.T) {
	access := &ast.FieldAccessExpr{X: ref("pi"), Field: "a", Location: loc(2, 1)}
	bag := check(t,
		[]*ast.Param{param("pi", "int")},
		[]ast.Statement{&ast.PrintStmt{Value: access}})
	if !hasMessage(bag, "Type int does not support dot access") {
		t.Errorf("missing dot-access error, got %v", bag.Messages())
	}
}

func TestLoopVariableTyping(t *testing.T) {
	loopVar := &ast.VarDefn{Name: "item", Kind: ast.VarLoop, Location: loc(2, 6)}
	itemRef := &ast.VarRef{Name: "item", Location: loc(3, 2)}
	bag := check(t,
		[]*ast.Param{param("items", "list<int|null>")},
		[]ast.Statement{
			&ast.ForStmt{
				Var:   loopVar,
				Range: ref("items"),
				Body:  []ast.Statement{&ast.PrintStmt{Value: itemRef}},
			},
		})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Messages())
	}
	if got := itemRef.TypeInfo(); !got.Equals(types.Union(types.Int, types.Null)) {
		t.Errorf("loop item = %s, want int|null", got)
	}
}

func TestIterateNonList(t *testing.T) {
	loopVar := &ast.VarDefn{Name: "x", Kind: ast.VarLoop, Location: loc(2, 6)}
	rangeRef := ref("pi")
	rangeRef.Location = loc(2, 12)
	bag := check(t,
		[]*ast.Param{param("pi", "int")},
		[]ast.Statement{
			&ast.ForStmt{Var: loopVar, Range: rangeRef},
		})
	if !hasMessage(bag, "Cannot iterate over $pi of type int") {
		t.Errorf("missing iterate error, got %v", bag.Messages())
	}
}

func TestIfNarrowsNullableParam(t *testing.T) {
	cond := &ast.BinaryExpr{
		X:        ref("pa"),
		Op:       ast.OpNe,
		Y:        &ast.NullLit{Location: loc(2, 12)},
		Location: loc(2, 5),
	}
	guarded := &ast.FieldAccessExpr{X: ref("pa"), Field: "length", Location: loc(3, 2)}
	unguarded := &ast.FieldAccessExpr{X: ref("pa"), Field: "length", Location: loc(5, 2)}

	bag := check(t,
		[]*ast.Param{param("pa", "[length: int]|null")},
		[]ast.Statement{
			&ast.IfStmt{
				Conds: []*ast.IfCond{{
					Cond: cond,
					Body: []ast.Statement{&ast.PrintStmt{Value: guarded}},
				}},
			},
			&ast.PrintStmt{Value: unguarded},
		})

	if got := guarded.TypeInfo(); !got.Equals(types.Int) {
		t.Errorf("guarded $pa.length = %s, want int", got)
	}
	// The access outside the guard sees the nullable base.
	nullishErrors := 0
	for _, d := range bag.Diagnostics() {
		if d.Code == diagnostics.ErrNullishAccess {
			nullishErrors++
			if d.Location() != unguarded.Location {
				t.Errorf("nullish access reported at %s, want %s", d.Location(), unguarded.Location)
			}
		}
	}
	if nullishErrors != 1 {
		t.Errorf("got %d nullish-access errors, want 1: %v", nullishErrors, bag.Messages())
	}
}

func TestCompoundGuard(t *testing.T) {
	// {if $pa != null and $pa.length > 0}{$pa.length}{/if}
	lengthInCond := &ast.FieldAccessExpr{X: ref("pa"), Field: "length", Location: loc(2, 20)}
	cond := &ast.BinaryExpr{
		X: &ast.BinaryExpr{
			X:        ref("pa"),
			Op:       ast.OpNe,
			Y:        &ast.NullLit{Location: loc(2, 12)},
			Location: loc(2, 5),
		},
		Op: ast.OpAnd,
		Y: &ast.BinaryExpr{
			X:        lengthInCond,
			Op:       ast.OpGt,
			Y:        &ast.IntLit{Value: 0, Location: loc(2, 29)},
			Location: loc(2, 20),
		},
		Location: loc(2, 5),
	}
	guarded := &ast.FieldAccessExpr{X: ref("pa"), Field: "length", Location: loc(3, 2)}

	bag := check(t,
		[]*ast.Param{param("pa", "[length: int]|null")},
		[]ast.Statement{
			&ast.IfStmt{Conds: []*ast.IfCond{{
				Cond: cond,
				Body: []ast.Statement{&ast.PrintStmt{Value: guarded}},
			}}},
		})

	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Messages())
	}
	if got := lengthInCond.TypeInfo(); !got.Equals(types.Int) {
		t.Errorf("$pa.length in condition = %s, want int", got)
	}
	if got := guarded.TypeInfo(); !got.Equals(types.Int) {
		t.Errorf("guarded $pa.length = %s, want int", got)
	}
}

func TestElseBranchKeepsNullish(t *testing.T) {
	cond := &ast.BinaryExpr{
		X:        ref("pa"),
		Op:       ast.OpEq,
		Y:        &ast.NullLit{Location: loc(2, 12)},
		Location: loc(2, 5),
	}
	thenRef := ref("pa")
	thenRef.Location = loc(3, 2)
	elseRef := ref("pa")
	elseRef.Location = loc(5, 2)

	bag := check(t,
		[]*ast.Param{param("pa", "string|null")},
		[]ast.Statement{
			&ast.IfStmt{
				Conds: []*ast.IfCond{{
					Cond: cond,
					Body: []ast.Statement{&ast.PrintStmt{Value: thenRef}},
				}},
				Else: []ast.Statement{&ast.PrintStmt{Value: elseRef}},
			},
		})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Messages())
	}
	if got := thenRef.TypeInfo(); !got.Equals(types.Null) {
		t.Errorf("then-branch $pa = %s, want null", got)
	}
	if got := elseRef.TypeInfo(); !got.Equals(types.String) {
		t.Errorf("else-branch $pa = %s, want string", got)
	}
}

func TestNullCoalescing(t *testing.T) {
	expr := &ast.BinaryExpr{
		X:        ref("pa"),
		Op:       ast.OpNullCo,
		Y:        &ast.IntLit{Value: 0, Location: loc(2, 10)},
		Location: loc(2, 1),
	}
	bag := check(t,
		[]*ast.Param{param("pa", "int|null")},
		[]ast.Statement{&ast.PrintStmt{Value: expr}})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Messages())
	}
	if got := expr.TypeInfo(); !got.Equals(types.Int) {
		t.Errorf("$pa ?? 0 = %s, want int", got)
	}
}

func TestNullSafeAccess(t *testing.T) {
	access := &ast.FieldAccessExpr{X: ref("pa"), Field: "a", NullSafe: true, Location: loc(2, 1)}
	bag := check(t,
		[]*ast.Param{param("pa", "[a: int]|null")},
		[]ast.Statement{&ast.PrintStmt{Value: access}})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Messages())
	}
	if got := access.TypeInfo(); !got.Equals(types.Union(types.Int, types.Undefined)) {
		t.Errorf("$pa?.a = %s, want int|undefined", got)
	}
}

func TestFunctionCalls(t *testing.T) {
	good := &ast.FunctionCallExpr{
		Name:     "checkNotNull",
		Args:     []ast.Expression{ref("pa")},
		Location: loc(2, 1),
	}
	badArity := &ast.FunctionCallExpr{
		Name:     "length",
		Args:     []ast.Expression{ref("pa"), ref("pa")},
		Location: loc(3, 1),
	}
	unknown := &ast.FunctionCallExpr{
		Name:     "noSuchFunction",
		Args:     nil,
		Location: loc(4, 1),
	}

	bag := check(t,
		[]*ast.Param{param("pa", "string|null")},
		[]ast.Statement{
			&ast.PrintStmt{Value: good},
			&ast.PrintStmt{Value: badArity},
			&ast.PrintStmt{Value: unknown},
		})

	if got := good.TypeInfo(); !got.Equals(types.String) {
		t.Errorf("checkNotNull($pa) = %s, want string", got)
	}
	if !hasMessage(bag, "Function 'length' called with 2 arguments (expected 1)") {
		t.Errorf("missing arity error, got %v", bag.Messages())
	}
	if !hasMessage(bag, "Unknown function 'noSuchFunction'") {
		t.Errorf("missing unknown-function error, got %v", bag.Messages())
	}
}

func TestSwitchNarrowing(t *testing.T) {
	caseRef := ref("v")
	caseRef.Location = loc(3, 2)
	defaultRef := ref("v")
	defaultRef.Location = loc(5, 2)

	bag := check(t,
		[]*ast.Param{param("v", "string|null")},
		[]ast.Statement{
			&ast.SwitchStmt{
				Value: ref("v"),
				Cases: []*ast.SwitchCase{{
					Exprs: []ast.Expression{&ast.NullLit{Location: loc(2, 7)}},
					Body:  []ast.Statement{&ast.PrintStmt{Value: caseRef}},
				}},
				Default: []ast.Statement{&ast.PrintStmt{Value: defaultRef}},
			},
		})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Messages())
	}
	if got := caseRef.TypeInfo(); !got.Equals(types.Null) {
		t.Errorf("case-branch $v = %s, want null", got)
	}
	if got := defaultRef.TypeInfo(); !got.Equals(types.String) {
		t.Errorf("default-branch $v = %s, want string", got)
	}
}

func TestImpossibleNarrowing(t *testing.T) {
	// $pn can only be null, so `$pn != null` can never hold.
	cond := &ast.BinaryExpr{
		X:        ref("pn"),
		Op:       ast.OpNe,
		Y:        &ast.NullLit{Location: loc(2, 12)},
		Location: loc(2, 5),
	}
	bag := check(t,
		[]*ast.Param{param("pn", "null")},
		[]ast.Statement{
			&ast.IfStmt{Conds: []*ast.IfCond{{Cond: cond}}},
		})
	found := false
	for _, d := range bag.Diagnostics() {
		if d.Code == diagnostics.ErrCannotNarrow {
			found = true
		}
	}
	if !found {
		t.Errorf("missing cannot-narrow diagnostic, got %v", bag.Messages())
	}
}

func TestDuplicateRecordKey(t *testing.T) {
	lit := &ast.RecordLit{
		Fields: []ast.RecordEntry{
			{Name: "a", Value: &ast.IntLit{Value: 1, Location: loc(2, 10)}},
			{Name: "a", Value: &ast.IntLit{Value: 2, Location: loc(2, 16)}},
		},
		Location: loc(2, 1),
	}
	bag := check(t, nil, []ast.Statement{&ast.PrintStmt{Value: lit}})
	if !hasMessage(bag, "Duplicate key 'a'") {
		t.Errorf("missing duplicate-key error, got %v", bag.Messages())
	}
	// Best-effort type keeps the first occurrence.
	if got := lit.TypeInfo(); !got.Equals(types.NewRecord(types.RecordField{Name: "a", Type: types.Int})) {
		t.Errorf("literal type = %s", got)
	}
}

func TestOptionalParamSeesUndefined(t *testing.T) {
	p := &ast.Param{
		Defn:       &ast.VarDefn{Name: "po", Kind: ast.VarParam},
		Annotation: "int",
		Required:   false,
	}
	use := ref("po")
	bag := check(t, []*ast.Param{p}, []ast.Statement{&ast.PrintStmt{Value: use}})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Messages())
	}
	if got := use.TypeInfo(); !got.Equals(types.Union(types.Int, types.Undefined)) {
		t.Errorf("optional param type = %s, want int|undefined", got)
	}
}

func TestDefaultValueMismatch(t *testing.T) {
	p := &ast.Param{
		Defn:       &ast.VarDefn{Name: "pd", Kind: ast.VarParam},
		Annotation: "int",
		Required:   true,
		Default:    &ast.StringLit{Value: "x", Location: loc(1, 20)},
	}
	bag := check(t, []*ast.Param{p}, nil)
	if !hasMessage(bag, "Default value of type string is not assignable to declared type int") {
		t.Errorf("missing default-mismatch error, got %v", bag.Messages())
	}
}

func TestPluralAndSelectScrutinees(t *testing.T) {
	goodPlural := &ast.PluralStmt{
		Value:    ref("count"),
		Cases:    []*ast.PluralCase{{Value: 1, Body: []ast.Statement{&ast.RawTextStmt{Text: "one"}}}},
		Default:  []ast.Statement{&ast.RawTextStmt{Text: "many"}},
		Location: loc(2, 1),
	}
	badPlural := &ast.PluralStmt{Value: ref("gender"), Location: loc(3, 1)}
	goodSelect := &ast.SelectStmt{
		Value:    ref("gender"),
		Cases:    []*ast.SelectCase{{Value: "female", Body: []ast.Statement{&ast.RawTextStmt{Text: "her"}}}},
		Default:  []ast.Statement{&ast.RawTextStmt{Text: "their"}},
		Location: loc(4, 1),
	}
	badSelect := &ast.SelectStmt{Value: ref("count"), Location: loc(5, 1)}

	bag := check(t,
		[]*ast.Param{param("count", "int"), param("gender", "string")},
		[]ast.Statement{
			&ast.MsgStmt{Desc: "greeting", Body: []ast.Statement{goodPlural, goodSelect}},
			&ast.MsgStmt{Desc: "broken", Body: []ast.Statement{badPlural, badSelect}},
		})

	if !hasMessage(bag, "Plural expression must be an integer type, found 'string'") {
		t.Errorf("missing plural error, got %v", bag.Messages())
	}
	if !hasMessage(bag, "Select expression must be of string type, found 'int'") {
		t.Errorf("missing select error, got %v", bag.Messages())
	}
	if got := bag.ErrorCount(); got != 2 {
		t.Errorf("ErrorCount() = %d, want 2", got)
	}
}

func TestItemAccessYieldsPlainElementType(t *testing.T) {
	item := &ast.ItemAccessExpr{
		X:        ref("pl"),
		Index:    &ast.IntLit{Value: 0, Location: loc(2, 5)},
		Location: loc(2, 1),
	}
	sum := &ast.BinaryExpr{
		X:        item,
		Op:       ast.OpPlus,
		Y:        &ast.IntLit{Value: 1, Location: loc(2, 10)},
		Location: loc(2, 1),
	}
	value := &ast.ItemAccessExpr{
		X:        ref("pm"),
		Index:    &ast.StringLit{Value: "k", Location: loc(3, 5)},
		Location: loc(3, 1),
	}

	bag := check(t,
		[]*ast.Param{param("pl", "list<int>"), param("pm", "map<string,string>")},
		[]ast.Statement{
			&ast.PrintStmt{Value: sum},
			&ast.PrintStmt{Value: value},
		})

	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Messages())
	}
	if got := item.TypeInfo(); !got.Equals(types.Int) {
		t.Errorf("$pl[0] = %s, want int", got)
	}
	if got := sum.TypeInfo(); !got.Equals(types.Int) {
		t.Errorf("$pl[0] + 1 = %s, want int", got)
	}
	if got := value.TypeInfo(); !got.Equals(types.String) {
		t.Errorf("$pm['k'] = %s, want string", got)
	}
}
