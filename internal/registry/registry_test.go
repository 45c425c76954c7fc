package registry

import (
	"testing"

	"github.com/google/closure-templates-sub001/internal/types"
)

func TestBuiltinSignatures(t *testing.T) {
	funcs := NewFunctions()

	sig, ok := funcs.Lookup("checkNotNull")
	if !ok {
		t.Fatal("checkNotNull not registered")
	}
	if !sig.AcceptsArity(1) || sig.AcceptsArity(2) {
		t.Errorf("checkNotNull arities = %v", sig.Arities)
	}
	got := sig.ReturnType([]types.Type{types.Union(types.Int, types.Null)})
	if !got.Equals(types.Int) {
		t.Errorf("checkNotNull(int|null) = %s, want int", got)
	}

	sig, _ = funcs.Lookup("undefinedToNull")
	got = sig.ReturnType([]types.Type{types.Union(types.String, types.Undefined)})
	if !got.Equals(types.Union(types.String, types.Null)) {
		t.Errorf("undefinedToNull(string|undefined) = %s, want null|string", got)
	}

	sig, _ = funcs.Lookup("round")
	if !sig.AcceptsArity(1) || !sig.AcceptsArity(2) {
		t.Errorf("round arities = %v", sig.Arities)
	}
	if expect := sig.ArgType(1); expect == nil || !expect.Equals(types.Int) {
		t.Errorf("round arg 1 expects %v, want int", expect)
	}

	sig, _ = funcs.Lookup("keys")
	got = sig.ReturnType([]types.Type{types.NewMap(types.String, types.Int)})
	if !got.Equals(types.NewList(types.String)) {
		t.Errorf("keys(map<string,int>) = %s, want list<string>", got)
	}

	if _, ok := funcs.Lookup("nosuchfn"); ok {
		t.Error("unknown function resolved")
	}
}

func TestRegisterOverride(t *testing.T) {
	funcs := NewFunctions()
	funcs.Register(&Signature{Name: "length", Arities: []int{1, 2}})
	sig, _ := funcs.Lookup("length")
	if !sig.AcceptsArity(2) {
		t.Error("Register should replace an existing signature")
	}
}

func TestTypeNames(t *testing.T) {
	names := NewTypeNames()
	proto := names.RegisterNamed("my.Proto")
	names.RegisterAlias("Strings", types.NewList(types.String))

	got, ok := names.LookupType("my.Proto")
	if !ok || !got.Equals(proto) {
		t.Errorf("LookupType(my.Proto) = %v, %v", got, ok)
	}

	parsed, err := types.Parse("list<my.Proto>|Strings", names)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := types.Union(types.NewList(proto), types.NewList(types.String))
	if !parsed.Equals(want) {
		t.Errorf("parsed = %s, want %s", parsed, want)
	}

	if _, ok := names.LookupType("missing.Type"); ok {
		t.Error("missing name resolved")
	}
}
