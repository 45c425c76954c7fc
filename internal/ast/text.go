package ast

import (
	"strconv"
	"strings"
)

// Text renders an expression roughly as it appears in source, for use in
// diagnostics. Unlike ExprKey it never embeds binding identity, and it
// returns "" for composite literals that have no short form.
func Text(e Expression) string {
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
		return "'" + ex.Value + "'"
	case *VarRef:
		if ex.Injected {
			return "$ij." + ex.Name
		}
		return "$" + ex.Name
	case *FieldAccessExpr:
		base := Text(ex.X)
		if base == "" {
			return ""
		}
		if ex.NullSafe {
			return base + "?." + ex.Field
		}
		return base + "." + ex.Field
	case *ItemAccessExpr:
		base, index := Text(ex.X), Text(ex.Index)
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
			args[i] = Text(a)
			if args[i] == "" {
				return ""
			}
		}
		return ex.Name + "(" + strings.Join(args, ", ") + ")"
	case *NotExpr:
		if inner := Text(ex.X); inner != "" {
			return "not " + inner
		}
	case *NegExpr:
		if inner := Text(ex.X); inner != "" {
			return "-" + inner
		}
	case *BinaryExpr:
		left, right := Text(ex.X), Text(ex.Y)
		if left != "" && right != "" {
			return left + " " + string(ex.Op) + " " + right
		}
	case *GroupExpr:
		if inner := Text(ex.X); inner != "" {
			return "(" + inner + ")"
		}
	}
	return ""
}
