package symbolic

import "sort"

// ============================================================
// Top-level convenience functions
// ============================================================

func Simplify(e Expr) Expr { return e.Simplify() }
func String(e Expr) string { return e.String() }
func LaTeX(e Expr) string  { return e.LaTeX() }

func Sub(expr Expr, varName string, value Expr) Expr {
	return expr.Sub(varName, value).Simplify()
}

func Diff(expr Expr, varName string) Expr {
	return expr.Diff(varName).Simplify()
}

func DiffN(expr Expr, varName string, n int) Expr {
	result := expr
	for i := 0; i < n; i++ {
		result = Diff(result, varName)
	}
	return result
}

// Expand distributes products over sums and expands non-negative integer
// powers of sums, recursively including function arguments.
func Expand(e Expr) Expr { return expandExpr(e.Simplify()).Simplify() }

func expandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Mul:
		expanded := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			expanded[i] = expandExpr(f)
		}
		for _, f := range expanded {
			if _, ok := f.(*Add); ok {
				return distribute(expanded)
			}
		}
		return MulOf(expanded...)
	case *Add:
		newTerms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			newTerms[i] = expandExpr(t)
		}
		return AddOf(newTerms...)
	case *Pow:
		base := expandExpr(v.base)
		if n, ok := v.exp.(*Num); ok {
			if exp, ok := n.Int64(); ok && exp >= 2 && exp <= maxExactPow {
				if _, isAdd := base.(*Add); isAdd {
					factors := make([]Expr, exp)
					for i := range factors {
						factors[i] = base
					}
					return distribute(factors)
				}
			}
		}
		return PowOf(base, expandExpr(v.exp))
	case *Func:
		return funcOf(v.name, expandExpr(v.arg)).Simplify()
	case *Integral:
		return IntegralOf(expandExpr(v.integrand), v.varName)
	}
	return e
}

// distribute multiplies already expanded factors term by term. Partial
// products are built from single terms only, so MulOf never sees two equal
// sums to fold back into a power.
func distribute(factors []Expr) Expr {
	acc := []Expr{N(1)}
	for _, f := range factors {
		terms := Terms(f)
		next := make([]Expr, 0, len(acc)*len(terms))
		for _, a := range acc {
			for _, t := range terms {
				next = append(next, MulOf(a, t))
			}
		}
		acc = Terms(AddOf(next...))
	}
	return AddOf(acc...)
}

// ============================================================
// Free symbols and tree walking
// ============================================================

// FreeSymbols returns the sorted names of all symbols in e.
func FreeSymbols(e Expr) []string {
	set := map[string]struct{}{}
	collectSymbols(e, set)
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	case *Integral:
		out[v.varName] = struct{}{}
		collectSymbols(v.integrand, out)
	}
}

// Has reports whether e depends on the symbol varName.
func Has(e Expr, varName string) bool {
	switch v := e.(type) {
	case *Sym:
		return v.name == varName
	case *Add:
		for _, t := range v.terms {
			if Has(t, varName) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if Has(f, varName) {
				return true
			}
		}
	case *Pow:
		return Has(v.base, varName) || Has(v.exp, varName)
	case *Func:
		return Has(v.arg, varName)
	case *Integral:
		return v.varName == varName || Has(v.integrand, varName)
	}
	return false
}

// ContainsIntegral reports whether any unevaluated integral remains in e.
func ContainsIntegral(e Expr) bool {
	found := false
	Walk(e, func(n Expr) bool {
		if _, ok := n.(*Integral); ok {
			found = true
		}
		return !found
	})
	return found
}

// Walk visits e in pre-order. Returning false from fn skips the children of
// the current node.
func Walk(e Expr, fn func(Expr) bool) {
	if !fn(e) {
		return
	}
	switch v := e.(type) {
	case *Add:
		for _, t := range v.terms {
			Walk(t, fn)
		}
	case *Mul:
		for _, f := range v.factors {
			Walk(f, fn)
		}
	case *Pow:
		Walk(v.base, fn)
		Walk(v.exp, fn)
	case *Func:
		Walk(v.arg, fn)
	case *Integral:
		Walk(v.integrand, fn)
	}
}

// Replace rebuilds e top-down. When fn reports a replacement for a node, the
// replacement is used as is and its children are not visited.
func Replace(e Expr, fn func(Expr) (Expr, bool)) Expr {
	if r, ok := fn(e); ok {
		return r
	}
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = Replace(t, fn)
		}
		return AddOf(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = Replace(f, fn)
		}
		return MulOf(factors...)
	case *Pow:
		return PowOf(Replace(v.base, fn), Replace(v.exp, fn))
	case *Func:
		return funcOf(v.name, Replace(v.arg, fn)).Simplify()
	case *Integral:
		return IntegralOf(Replace(v.integrand, fn), v.varName)
	}
	return e
}

// Factors returns the multiplicative factors of e, or e itself.
func Factors(e Expr) []Expr {
	if m, ok := e.(*Mul); ok {
		return m.Factors()
	}
	return []Expr{e}
}

// Terms returns the additive terms of e, or e itself.
func Terms(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.Terms()
	}
	return []Expr{e}
}
