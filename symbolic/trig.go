package symbolic

// ============================================================
// Trig and hyperbolic identities
// ============================================================

// TrigSimplify applies c*sin(u)^2 + c*cos(u)^2 = c and
// c*cosh(u)^2 - c*sinh(u)^2 = c throughout e.
func TrigSimplify(e Expr) Expr {
	return trigSimplifyExpr(e.Simplify()).Simplify()
}

func trigSimplifyExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		newTerms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			newTerms[i] = trigSimplifyExpr(t)
		}
		return trigFindPythagorean(AddOf(newTerms...))
	case *Mul:
		newFactors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			newFactors[i] = trigSimplifyExpr(f)
		}
		return MulOf(newFactors...)
	case *Pow:
		return PowOf(trigSimplifyExpr(v.base), v.exp)
	case *Func:
		return funcOf(v.name, trigSimplifyExpr(v.arg)).Simplify()
	}
	return e
}

// pythagoreanPairs maps a squared function to its partner and the sign the
// partner's coefficient must carry for the pair to collapse.
var pythagoreanPairs = map[string]struct {
	partner string
	sign    int
}{
	"sin":  {"cos", 1},
	"cos":  {"sin", 1},
	"cosh": {"sinh", -1},
	"sinh": {"cosh", -1},
}

func trigFindPythagorean(e Expr) Expr {
	for {
		add, ok := e.(*Add)
		if !ok {
			return e
		}
		next, changed := collapsePair(add)
		if !changed {
			return e
		}
		e = next
	}
}

func collapsePair(add *Add) (Expr, bool) {
	type trigTerm struct {
		funcName string
		argStr   string
		coeff    *Num
		idx      int
	}
	var trigTerms []trigTerm
	for idx, t := range add.terms {
		coeff, inner := CoeffMul(t)
		p, ok := inner.(*Pow)
		if !ok || !isNumEqual(p.exp, 2) {
			continue
		}
		if fn, ok := p.base.(*Func); ok {
			if _, known := pythagoreanPairs[fn.name]; known {
				trigTerms = append(trigTerms, trigTerm{fn.name, fn.arg.String(), coeff, idx})
			}
		}
	}
	for i := 0; i < len(trigTerms); i++ {
		for j := i + 1; j < len(trigTerms); j++ {
			ti, tj := trigTerms[i], trigTerms[j]
			pair := pythagoreanPairs[ti.funcName]
			if ti.argStr != tj.argStr || pair.partner != tj.funcName {
				continue
			}
			want := tj.coeff
			if pair.sign < 0 {
				want = numNeg(tj.coeff)
			}
			if ti.coeff.val.Cmp(want.val) != 0 {
				continue
			}
			// The surviving constant is the coefficient of the cos or cosh term.
			constant := ti.coeff
			if ti.funcName == "sinh" {
				constant = tj.coeff
			}
			newTerms := []Expr{}
			for idx, t := range add.terms {
				if idx != ti.idx && idx != tj.idx {
					newTerms = append(newTerms, t)
				}
			}
			newTerms = append(newTerms, constant)
			return AddOf(newTerms...), true
		}
	}
	return add, false
}
