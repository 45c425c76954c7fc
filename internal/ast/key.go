package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// ExprKey renders an expression into a canonical string so that two
// occurrences of the same source expression (e.g. "$pa.length" in a condition
// and in the guarded branch) compare equal in narrowing constraint maps.
//
// Variable references key on their resolved definition, not their spelling,
// so a shadowing let never aliases the variable it shadows. Grouping
// parentheses are transparent. Expressions with no stable identity (literals
// aside, anything unhandled) key to "" and are skipped by narrowing.
func ExprKey(e Expression) string {
	switch ex := e.(type) {
	case *NullLit:
		return "null"
	case *UndefinedLit:
		return "undefined"
	case *BoolLit:
		return strconv.FormatBool(ex.Value)
	case *IntLit:
		return strconv.FormatInt(ex.Value, 10)
	case *FloatLit:
		return strconv.FormatFloat(ex.Value, 'g', -1, 64)
	case *StringLit:
		return strconv.Quote(ex.Value)
	case *VarRef:
		if ex.Defn != nil {
			return fmt.Sprintf("$%s#%p", ex.Defn.Name, ex.Defn)
		}
		return "$" + ex.Name
	case *FieldAccessExpr:
		base := ExprKey(ex.X)
		if base == "" {
			return ""
		}
		if ex.NullSafe {
			return base + "?." + ex.Field
		}
		return base + "." + ex.Field
	case *ItemAccessExpr:
		base := ExprKey(ex.X)
		index := ExprKey(ex.Index)
		if base == "" || index == "" {
			return ""
		}
		if ex.NullSafe {
			return base + "?[" + index + "]"
		}
		return base + "[" + index + "]"
	case *FunctionCallExpr:
		args := make([]string, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = ExprKey(a)
			if args[i] == "" {
				return ""
			}
		}
		return ex.Name + "(" + strings.Join(args, ",") + ")"
	case *NotExpr:
		inner := ExprKey(ex.X)
		if inner == "" {
			return ""
		}
		return "not(" + inner + ")"
	case *NegExpr:
		inner := ExprKey(ex.X)
		if inner == "" {
			return ""
		}
		return "-(" + inner + ")"
	case *BinaryExpr:
		left := ExprKey(ex.X)
		right := ExprKey(ex.Y)
		if left == "" || right == "" {
			return ""
		}
		return "(" + left + string(ex.Op) + right + ")"
	case *GroupExpr:
		return ExprKey(ex.X)
	}
	return ""
}
