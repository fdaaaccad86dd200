package symbolic

import (
	"sort"
	"strings"
)

// ============================================================
// Mul: product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// Simplify flattens nested products, folds the numeric coefficient, merges
// equal bases by adding exponents, and combines exponentials into a single
// exp(sum). The coefficient, when not 1, is always the first factor.
func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}

	coeff := N(1)
	type group struct {
		base Expr
		exps []Expr
	}
	groups := map[string]*group{}
	order := []string{}
	var expArgs []Expr
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			coeff = numMul(coeff, n)
			continue
		}
		if fn, ok := f.(*Func); ok && fn.name == "exp" {
			expArgs = append(expArgs, fn.arg)
			continue
		}
		base, exp := f, Expr(N(1))
		if p, ok := f.(*Pow); ok {
			base, exp = p.base, p.exp
		}
		key := base.String()
		g, seen := groups[key]
		if !seen {
			g = &group{base: base}
			groups[key] = g
			order = append(order, key)
		}
		g.exps = append(g.exps, exp)
	}
	if coeff.IsZero() {
		return N(0)
	}

	rebuilt := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		g := groups[key]
		if len(g.exps) == 1 {
			if n, ok := g.exps[0].(*Num); ok && n.IsOne() {
				rebuilt = append(rebuilt, g.base)
				continue
			}
			rebuilt = append(rebuilt, PowOf(g.base, g.exps[0]))
			continue
		}
		rebuilt = append(rebuilt, PowOf(g.base, AddOf(g.exps...)))
	}
	if len(expArgs) == 1 {
		rebuilt = append(rebuilt, funcOf("exp", expArgs[0]))
	} else if len(expArgs) > 1 {
		rebuilt = append(rebuilt, ExpOf(AddOf(expArgs...)))
	}

	others := make([]Expr, 0, len(rebuilt))
	for _, f := range rebuilt {
		switch v := f.(type) {
		case *Num:
			coeff = numMul(coeff, v)
		case *Mul:
			// A power distributed over a product; regroup from scratch.
			return (&Mul{factors: append([]Expr{coeff}, rebuilt...)}).Simplify()
		default:
			others = append(others, v)
		}
	}
	if coeff.IsZero() {
		return N(0)
	}
	if len(others) == 0 {
		return coeff
	}

	// Precompute sort keys to avoid repeated String() calls in comparator.
	type keyed struct {
		e    Expr
		rank int
		key  string
	}
	ks := make([]keyed, len(others))
	for i, e := range others {
		ks[i] = keyed{e: e, rank: factorRank(e), key: e.String()}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].rank != ks[j].rank {
			return ks[i].rank < ks[j].rank
		}
		return ks[i].key < ks[j].key
	})
	sorted := make([]Expr, len(ks))
	for i := range ks {
		sorted[i] = ks[i].e
	}

	if coeff.IsOne() {
		if len(sorted) == 1 {
			return sorted[0]
		}
		return &Mul{factors: sorted}
	}
	return &Mul{factors: append([]Expr{coeff}, sorted...)}
}

// factorRank orders factors as radicals, symbols and their powers, sums and
// their powers, then functions and everything else.
func factorRank(e Expr) int {
	base := e
	if p, ok := e.(*Pow); ok {
		base = p.base
	}
	switch base.(type) {
	case *Num:
		return 0
	case *Sym:
		return 1
	case *Add:
		return 2
	case *Func:
		return 3
	}
	return 4
}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	c, rest := CoeffMul(m)
	prefix := ""
	switch {
	case c.IsNegOne():
		prefix = "-"
	case !c.IsOne():
		prefix = c.String() + "*"
	}
	var factors []Expr
	if rm, ok := rest.(*Mul); ok {
		factors = rm.factors
	} else {
		factors = []Expr{rest}
	}
	parts := make([]string, len(factors))
	for i, f := range factors {
		if _, isAdd := f.(*Add); isAdd {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return prefix + strings.Join(parts, "*")
}

func (m *Mul) LaTeX() string {
	c, rest := CoeffMul(m)
	prefix := ""
	switch {
	case c.IsNegOne():
		prefix = "-"
	case !c.IsOne():
		prefix = c.LaTeX() + " "
	}
	var factors []Expr
	if rm, ok := rest.(*Mul); ok {
		factors = rm.factors
	} else {
		factors = []Expr{rest}
	}
	parts := make([]string, len(factors))
	for i, f := range factors {
		if _, isAdd := f.(*Add); isAdd {
			parts[i] = "\\left(" + f.LaTeX() + "\\right)"
		} else {
			parts[i] = f.LaTeX()
		}
	}
	return prefix + strings.Join(parts, " ")
}

func (m *Mul) Sub(varName string, value Expr) Expr {
	newFactors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		newFactors[i] = f.Sub(varName, value)
	}
	return MulOf(newFactors...)
}

func (m *Mul) Diff(varName string) Expr {
	terms := make([]Expr, len(m.factors))
	for i, fi := range m.factors {
		dfi := fi.Diff(varName)
		others := make([]Expr, 0, len(m.factors))
		others = append(others, dfi)
		for j, fj := range m.factors {
			if j != i {
				others = append(others, fj)
			}
		}
		terms[i] = MulOf(others...)
	}
	return AddOf(terms...)
}

func (m *Mul) Eval() (*Num, bool) {
	acc := N(1)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = numMul(acc, v)
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) exprType() string { return "mul" }
func (m *Mul) toJSON() map[string]interface{} {
	fs := make([]map[string]interface{}, len(m.factors))
	for i, f := range m.factors {
		fs[i] = f.toJSON()
	}
	return map[string]interface{}{"type": "mul", "factors": fs}
}
func (m *Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }
