package symbolic

import "github.com/SaiNikhilTadepalli/NeuralSutra/poly"

// maxIntegrateDepth bounds rule recursion (by parts, reductions).
const maxIntegrateDepth = 128

// substitutionVar is the dummy variable used when integrating f(g(x))*g'(x).
const substitutionVar = "_u"

// ============================================================
// Integration (rule-based)
// ============================================================

// Integrate returns an antiderivative of expr with respect to varName and
// true, or nil and false when no rule applies. The constant of integration
// is omitted.
//
// Rules, in order: constants, polynomials, sums term by term, linear
// arguments of elementary functions, powers of linear forms, rational
// functions with a linear or derivative-matching remainder, substitution
// u = g(x), products of sines and cosines, exp times sin/cos, and
// integration by parts for a polynomial times a closed transcendental
// family.
func Integrate(expr Expr, varName string) (Expr, bool) {
	return integrate(expr.Simplify(), varName, 0)
}

// IntegrateOrHold integrates expr, keeping every term it cannot integrate as
// an unevaluated Integral.
func IntegrateOrHold(expr Expr, varName string) Expr {
	expr = expr.Simplify()
	if r, ok := Integrate(expr, varName); ok {
		return r
	}
	add, ok := expr.(*Add)
	if !ok {
		return IntegralOf(expr, varName)
	}
	terms := make([]Expr, len(add.terms))
	for i, t := range add.terms {
		if r, ok := Integrate(t, varName); ok {
			terms[i] = r
		} else {
			terms[i] = IntegralOf(t, varName)
		}
	}
	return AddOf(terms...)
}

func integrate(e Expr, x string, depth int) (Expr, bool) {
	if depth > maxIntegrateDepth {
		return nil, false
	}
	if !Has(e, x) {
		return MulOf(e, S(x)), true
	}
	if p, err := Coefficients(e, x); err == nil {
		return FromCoefficients(p.Antiderivative(), x), true
	}
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			r, ok := integrate(t, x, depth+1)
			if !ok {
				return nil, false
			}
			terms[i] = r
		}
		return AddOf(terms...), true
	case *Pow:
		return integratePow(v, x, depth)
	case *Func:
		return integrateFunc(v, x)
	case *Mul:
		return integrateMul(v, x, depth)
	}
	return nil, false
}

// linear returns a and b when e == a*x + b with a != 0.
func linear(e Expr, x string) (a, b *Num, ok bool) {
	p, err := Coefficients(e, x)
	if err != nil || len(p) != 2 {
		return nil, nil, false
	}
	return R(p[0]), R(p[1]), true
}

func integrateFunc(f *Func, x string) (Expr, bool) {
	a, _, ok := linear(f.arg, x)
	if !ok {
		return nil, false
	}
	u := f.arg
	oneMinusU2 := AddOf(N(1), MulOf(N(-1), PowOf(u, N(2))))
	var r Expr
	switch f.name {
	case "sin":
		r = MulOf(N(-1), CosOf(u))
	case "cos":
		r = SinOf(u)
	case "exp":
		r = ExpOf(u)
	case "sinh":
		r = CoshOf(u)
	case "cosh":
		r = SinhOf(u)
	case "tanh":
		r = LnOf(CoshOf(u))
	case "tan":
		r = MulOf(N(-1), LnOf(CosOf(u)))
	case "ln":
		r = AddOf(MulOf(u, LnOf(u)), MulOf(N(-1), u))
	case "asin":
		r = AddOf(MulOf(u, AsinOf(u)), SqrtOf(oneMinusU2))
	case "acos":
		r = AddOf(MulOf(u, AcosOf(u)), MulOf(N(-1), SqrtOf(oneMinusU2)))
	case "atan":
		r = AddOf(MulOf(u, AtanOf(u)), MulOf(F(-1, 2), LnOf(AddOf(N(1), PowOf(u, N(2))))))
	default:
		return nil, false
	}
	return MulOf(numRecip(a), r), true
}

func integratePow(p *Pow, x string, depth int) (Expr, bool) {
	if n, ok := p.exp.(*Num); ok {
		if a, _, ok := linear(p.base, x); ok {
			if n.IsNegOne() {
				return MulOf(numRecip(a), LnOf(p.base)), true
			}
			n1 := numAdd(n, N(1))
			return MulOf(numRecip(numMul(a, n1)), PowOf(p.base, n1)), true
		}
		if fn, ok := p.base.(*Func); ok && isNumEqual(n, 2) {
			if r, ok := reduceSquare(fn, x); ok {
				return integrate(r, x, depth+1)
			}
		}
	}
	if !Has(p.base, x) {
		if a, _, ok := linear(p.exp, x); ok {
			return MulOf(p, PowOf(MulOf(a, LnOf(p.base)), N(-1))), true
		}
	}
	if r, ok := integrateRational(p, x, depth); ok {
		return r, true
	}
	return integrateSubstitution(p, []Expr{p}, x)
}

// reduceSquare rewrites sin^2, cos^2, sinh^2 and cosh^2 of a linear argument
// in terms of the doubled argument.
func reduceSquare(fn *Func, x string) (Expr, bool) {
	if _, _, ok := linear(fn.arg, x); !ok {
		return nil, false
	}
	double := MulOf(N(2), fn.arg)
	switch fn.name {
	case "sin":
		return AddOf(F(1, 2), MulOf(F(-1, 2), CosOf(double))), true
	case "cos":
		return AddOf(F(1, 2), MulOf(F(1, 2), CosOf(double))), true
	case "sinh":
		return AddOf(F(-1, 2), MulOf(F(1, 2), CoshOf(double))), true
	case "cosh":
		return AddOf(F(1, 2), MulOf(F(1, 2), CoshOf(double))), true
	}
	return nil, false
}

func integrateMul(m *Mul, x string, depth int) (Expr, bool) {
	var consts, deps []Expr
	for _, f := range m.factors {
		if Has(f, x) {
			deps = append(deps, f)
		} else {
			consts = append(consts, f)
		}
	}
	if len(consts) > 0 {
		r, ok := integrate(MulOf(deps...), x, depth)
		if !ok {
			return nil, false
		}
		return MulOf(append(consts, r)...), true
	}
	if r, ok := integrateRational(m, x, depth); ok {
		return r, true
	}
	if r, ok := integrateSubstitution(m, deps, x); ok {
		return r, true
	}
	if r, ok := integrateTrigProduct(deps, x, depth); ok {
		return r, true
	}
	if r, ok := integrateExpTrig(deps, x); ok {
		return r, true
	}
	if r, ok := integrateByParts(deps, x, depth); ok {
		return r, true
	}
	if ex := Expand(m); !ex.Equal(m) {
		if _, isAdd := ex.(*Add); isAdd {
			return integrate(ex, x, depth+1)
		}
	}
	return nil, false
}

// integrateRational handles p(x)/q(x) by long division when the remainder
// integrates to a logarithm: q linear, or the remainder a constant multiple
// of q'.
func integrateRational(e Expr, x string, depth int) (Expr, bool) {
	num, den := NumerDenom(e)
	if isNumEqual(den, 1) {
		return nil, false
	}
	n, err := Coefficients(num, x)
	if err != nil {
		return nil, false
	}
	d, err := Coefficients(den, x)
	if err != nil || d.Degree() < 1 {
		return nil, false
	}
	q, r, err := n.DivMod(d)
	if err != nil {
		return nil, false
	}
	quotient := FromCoefficients(q.Antiderivative(), x)
	if r.IsZero() {
		return quotient, true
	}
	denExpr := FromCoefficients(d, x)
	var logPart Expr
	switch {
	case d.Degree() == 1 && r.Degree() == 0:
		logPart = MulOf(R(r[0]), numRecip(R(d[0])), LnOf(denExpr))
	default:
		k, ok := constantMultiple(r, d.Derivative())
		if !ok {
			return nil, false
		}
		logPart = MulOf(k, LnOf(denExpr))
	}
	return AddOf(quotient, logPart), true
}

// constantMultiple returns k with r == k*s.
func constantMultiple(r, s poly.Poly) (*Num, bool) {
	r, s = r.Normalize(), s.Normalize()
	if len(r) != len(s) || s.IsZero() {
		return nil, false
	}
	k := numDiv(R(r[0]), R(s[0]))
	if !r.Equal(s.Scale(k.val)) {
		return nil, false
	}
	return k, true
}

// integrateSubstitution recognizes k*g^n*g' and k*f(g)*g' for a constant k.
func integrateSubstitution(e Expr, factors []Expr, x string) (Expr, bool) {
	for _, f := range factors {
		base, n := f, N(1)
		if p, ok := f.(*Pow); ok {
			en, isNum := p.exp.(*Num)
			if !isNum {
				continue
			}
			base, n = p.base, en
		}
		if s, ok := base.(*Sym); ok && s.name == x {
			continue
		}
		if !Has(base, x) {
			continue
		}
		db := Diff(base, x)
		q, ok := constantRatio(e, MulOf(PowOf(base, n), db), x)
		if !ok {
			continue
		}
		if n.IsNegOne() {
			return MulOf(q, LnOf(base)), true
		}
		n1 := numAdd(n, N(1))
		return MulOf(q, numRecip(n1), PowOf(base, n1)), true
	}
	for _, f := range factors {
		fn, ok := f.(*Func)
		if !ok {
			continue
		}
		if _, _, lin := linear(fn.arg, x); lin {
			continue
		}
		q, ok := constantRatio(e, MulOf(fn, Diff(fn.arg, x)), x)
		if !ok {
			continue
		}
		outer, ok := integrateFunc(funcOf(fn.name, S(substitutionVar)), substitutionVar)
		if !ok {
			continue
		}
		return MulOf(q, Sub(outer, substitutionVar, fn.arg)), true
	}
	return nil, false
}

func constantRatio(e, candidate Expr, x string) (Expr, bool) {
	if isNumEqual(candidate, 0) {
		return nil, false
	}
	q := MulOf(e, PowOf(candidate, N(-1)))
	if Has(q, x) {
		return nil, false
	}
	return q, true
}

// integrateTrigProduct applies the product-to-sum identities to two sines or
// cosines of linear arguments.
func integrateTrigProduct(deps []Expr, x string, depth int) (Expr, bool) {
	if len(deps) != 2 {
		return nil, false
	}
	f, ok1 := deps[0].(*Func)
	g, ok2 := deps[1].(*Func)
	if !ok1 || !ok2 {
		return nil, false
	}
	if _, _, ok := linear(f.arg, x); !ok {
		return nil, false
	}
	if _, _, ok := linear(g.arg, x); !ok {
		return nil, false
	}
	sum := AddOf(f.arg, g.arg)
	diff := AddOf(f.arg, MulOf(N(-1), g.arg))
	var r Expr
	switch f.name + "*" + g.name {
	case "sin*cos":
		r = MulOf(F(1, 2), AddOf(SinOf(sum), SinOf(diff)))
	case "cos*sin":
		r = MulOf(F(1, 2), AddOf(SinOf(sum), MulOf(N(-1), SinOf(diff))))
	case "sin*sin":
		r = MulOf(F(1, 2), AddOf(CosOf(diff), MulOf(N(-1), CosOf(sum))))
	case "cos*cos":
		r = MulOf(F(1, 2), AddOf(CosOf(diff), CosOf(sum)))
	default:
		return nil, false
	}
	return integrate(Expand(r), x, depth+1)
}

// integrateExpTrig integrates exp(a*x+c)*sin(b*x+d) and exp(a*x+c)*cos(b*x+d).
func integrateExpTrig(deps []Expr, x string) (Expr, bool) {
	if len(deps) != 2 {
		return nil, false
	}
	var ex, tr *Func
	for _, d := range deps {
		fn, ok := d.(*Func)
		if !ok {
			return nil, false
		}
		switch fn.name {
		case "exp":
			ex = fn
		case "sin", "cos":
			tr = fn
		}
	}
	if ex == nil || tr == nil {
		return nil, false
	}
	a, _, ok := linear(ex.arg, x)
	if !ok {
		return nil, false
	}
	b, _, ok := linear(tr.arg, x)
	if !ok {
		return nil, false
	}
	scale := numRecip(numAdd(numMul(a, a), numMul(b, b)))
	var body Expr
	if tr.name == "sin" {
		body = AddOf(MulOf(a, SinOf(tr.arg)), MulOf(numNeg(b), CosOf(tr.arg)))
	} else {
		body = AddOf(MulOf(a, CosOf(tr.arg)), MulOf(b, SinOf(tr.arg)))
	}
	return Expand(MulOf(scale, ex, body)), true
}

// closedFactor reports whether repeated integration of f stays inside a
// finite family, which keeps integration by parts terminating.
func closedFactor(f Expr, x string) bool {
	switch v := f.(type) {
	case *Func:
		switch v.name {
		case "sin", "cos", "exp", "sinh", "cosh":
			_, _, ok := linear(v.arg, x)
			return ok
		}
	case *Pow:
		fn, ok := v.base.(*Func)
		if !ok || !isNumEqual(v.exp, 2) {
			return false
		}
		_, ok = reduceSquare(fn, x)
		return ok
	}
	return false
}

// integrateByParts handles p(x)*F where p is a polynomial and F is either a
// product of closed factors (dv = F) or a single log or inverse
// trigonometric function of a linear argument (u = F).
func integrateByParts(deps []Expr, x string, depth int) (Expr, bool) {
	var polys, others []Expr
	for _, f := range deps {
		if IsPolynomial(f, x) {
			polys = append(polys, f)
		} else {
			others = append(others, f)
		}
	}
	if len(polys) == 0 || len(others) == 0 {
		return nil, false
	}
	p := MulOf(polys...)
	if len(others) == 1 {
		if fn, ok := others[0].(*Func); ok {
			switch fn.name {
			case "ln", "asin", "acos", "atan":
				if _, _, lin := linear(fn.arg, x); !lin {
					return nil, false
				}
				pInt, ok := integrate(p, x, depth+1)
				if !ok {
					return nil, false
				}
				rest, ok := integrate(Expand(MulOf(pInt, Diff(fn, x))), x, depth+1)
				if !ok {
					return nil, false
				}
				return AddOf(MulOf(pInt, fn), MulOf(N(-1), rest)), true
			}
		}
	}
	for _, f := range others {
		if !closedFactor(f, x) {
			return nil, false
		}
	}
	v := MulOf(others...)
	vInt, ok := integrate(v, x, depth+1)
	if !ok {
		return nil, false
	}
	rest, ok := integrate(Expand(MulOf(Diff(p, x), vInt)), x, depth+1)
	if !ok {
		return nil, false
	}
	return AddOf(MulOf(p, vInt), MulOf(N(-1), rest)), true
}
