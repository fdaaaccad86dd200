package symbolic

import "strings"

// ============================================================
// srepr printer
// ============================================================

// sreprFuncNames maps function names to their constructor names in the
// srepr dialect.
var sreprFuncNames = map[string]string{
	"ln":  "log",
	"abs": "Abs",
}

// Srepr prints e as nested constructor calls, for example
// Mul(Integer(2), Pow(Symbol('x'), Integer(3))). The token stream of this
// form is what the router's classifiers consume.
func Srepr(e Expr) string {
	var b strings.Builder
	writeSrepr(&b, e)
	return b.String()
}

func writeSrepr(b *strings.Builder, e Expr) {
	switch v := e.(type) {
	case *Num:
		if v.val.IsInt() {
			b.WriteString("Integer(" + v.val.Num().String() + ")")
			return
		}
		b.WriteString("Rational(" + v.val.Num().String() + ", " + v.val.Denom().String() + ")")
	case *Sym:
		b.WriteString("Symbol('" + v.name + "')")
	case *Add:
		writeSreprCall(b, "Add", v.terms)
	case *Mul:
		writeSreprCall(b, "Mul", v.factors)
	case *Pow:
		writeSreprCall(b, "Pow", []Expr{v.base, v.exp})
	case *Func:
		name := v.name
		if alias, ok := sreprFuncNames[name]; ok {
			name = alias
		}
		writeSreprCall(b, name, []Expr{v.arg})
	case *Integral:
		b.WriteString("Integral(")
		writeSrepr(b, v.integrand)
		b.WriteString(", Tuple(Symbol('" + v.varName + "')))")
	default:
		b.WriteString(e.String())
	}
}

func writeSreprCall(b *strings.Builder, head string, args []Expr) {
	b.WriteString(head)
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		writeSrepr(b, a)
	}
	b.WriteByte(')')
}
