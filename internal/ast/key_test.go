package ast

import "testing"

func TestExprKeyBindingIdentity(t *testing.T) {
	outer := &VarDefn{Name: "x", Kind: VarLet}
	inner := &VarDefn{Name: "x", Kind: VarLet}

	refOuter1 := &VarRef{Name: "x", Defn: outer}
	refOuter2 := &VarRef{Name: "x", Defn: outer}
	refInner := &VarRef{Name: "x", Defn: inner}

	if ExprKey(refOuter1) != ExprKey(refOuter2) {
		t.Error("two refs to the same definition should share a key")
	}
	if ExprKey(refOuter1) == ExprKey(refInner) {
		t.Error("refs to a shadowing definition must not alias the shadowed one")
	}
}

func TestExprKeyStructure(t *testing.T) {
	pa := &VarDefn{Name: "pa", Kind: VarParam}
	base := func() *VarRef { return &VarRef{Name: "pa", Defn: pa} }

	field1 := &FieldAccessExpr{X: base(), Field: "length"}
	field2 := &FieldAccessExpr{X: base(), Field: "length"}
	if ExprKey(field1) != ExprKey(field2) {
		t.Error("identical field accesses should share a key")
	}

	safe := &FieldAccessExpr{X: base(), Field: "length", NullSafe: true}
	if ExprKey(field1) == ExprKey(safe) {
		t.Error("null-safe access must not alias plain access")
	}

	item := &ItemAccessExpr{X: base(), Index: &IntLit{Value: 0}}
	item2 := &ItemAccessExpr{X: base(), Index: &IntLit{Value: 0}}
	if ExprKey(item) != ExprKey(item2) {
		t.Error("identical item accesses should share a key")
	}
	other := &ItemAccessExpr{X: base(), Index: &IntLit{Value: 1}}
	if ExprKey(item) == ExprKey(other) {
		t.Error("different indices must not alias")
	}
}

func TestExprKeyGroupTransparent(t *testing.T) {
	pa := &VarDefn{Name: "pa", Kind: VarParam}
	ref := &VarRef{Name: "pa", Defn: pa}
	grouped := &GroupExpr{X: &VarRef{Name: "pa", Defn: pa}}
	if ExprKey(ref) != ExprKey(grouped) {
		t.Error("parentheses should be transparent")
	}
}

func TestExprKeyUnstable(t *testing.T) {
	// Unresolved composites have no stable identity.
	lit := &ListLit{Items: []Expression{&IntLit{Value: 1}}}
	if ExprKey(lit) != "" {
		t.Errorf("list literal key = %q, want empty", ExprKey(lit))
	}
	call := &FunctionCallExpr{Name: "f", Args: []Expression{lit}}
	if ExprKey(call) != "" {
		t.Error("a call with an unkeyable argument is unkeyable")
	}
}
