package symbolic

import "math/big"

// maxExactPow bounds exact integer powers of numbers and expansion of
// powers of sums.
const maxExactPow = 4096

// ============================================================
// Pow: base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	en, expIsNum := exp.(*Num)
	if expIsNum && en.IsZero() {
		return N(1)
	}
	if expIsNum && en.IsOne() {
		return base
	}

	if bn, ok := base.(*Num); ok && bn.IsZero() {
		// 0^0 is handled above; 0^negative stays unevaluated.
		if expIsNum && en.IsNegative() {
			return &Pow{base: base, exp: exp}
		}
		return N(0)
	}
	if bn, ok := base.(*Num); ok && bn.IsOne() {
		return N(1)
	}

	if bn, ok := base.(*Num); ok && expIsNum {
		if e, ok := en.Int64(); ok && e >= -maxExactPow && e <= maxExactPow {
			return numPow(bn, e)
		}
		if r, ok := exactSqrt(bn); ok && en.val.Denom().Cmp(big.NewInt(2)) == 0 {
			if k := en.val.Num(); k.IsInt64() && k.Int64() >= -maxExactPow && k.Int64() <= maxExactPow {
				return numPow(r, k.Int64())
			}
		}
		return &Pow{base: base, exp: exp}
	}

	if expIsNum && en.IsInteger() {
		switch b := base.(type) {
		case *Pow:
			// (b^e1)^n = b^(e1*n) for integer n.
			return PowOf(b.base, MulOf(b.exp, en))
		case *Mul:
			factors := make([]Expr, len(b.factors))
			for i, f := range b.factors {
				factors[i] = PowOf(f, en)
			}
			return MulOf(factors...)
		}
	}
	if fn, ok := base.(*Func); ok && fn.name == "exp" && expIsNum {
		return ExpOf(MulOf(en, fn.arg))
	}
	return &Pow{base: base, exp: exp}
}

// exactSqrt returns the rational square root of a non-negative perfect
// square.
func exactSqrt(n *Num) (*Num, bool) {
	if n.val.Sign() < 0 {
		return nil, false
	}
	num, den := n.val.Num(), n.val.Denom()
	rn, rd := new(big.Int).Sqrt(num), new(big.Int).Sqrt(den)
	if new(big.Int).Mul(rn, rn).Cmp(num) != 0 || new(big.Int).Mul(rd, rd).Cmp(den) != 0 {
		return nil, false
	}
	return &Num{val: new(big.Rat).SetFrac(rn, rd)}, true
}

func (p *Pow) String() string {
	baseStr := p.base.String()
	if powBaseNeedsParens(p.base) {
		baseStr = "(" + baseStr + ")"
	}
	expStr := p.exp.String()
	if powExpNeedsParens(p.exp) {
		expStr = "(" + expStr + ")"
	}
	return baseStr + "^" + expStr
}

func (p *Pow) LaTeX() string {
	baseStr := p.base.LaTeX()
	if powBaseNeedsParens(p.base) {
		baseStr = "\\left(" + baseStr + "\\right)"
	}
	return baseStr + "^{" + p.exp.LaTeX() + "}"
}

func powBaseNeedsParens(e Expr) bool {
	switch v := e.(type) {
	case *Add, *Mul, *Pow, *Integral:
		return true
	case *Num:
		return !v.IsInteger() || v.IsNegative()
	}
	return false
}

func powExpNeedsParens(e Expr) bool {
	switch v := e.(type) {
	case *Sym:
		return false
	case *Num:
		return !v.IsInteger() || v.IsNegative()
	}
	return true
}

func (p *Pow) Sub(varName string, value Expr) Expr {
	return PowOf(p.base.Sub(varName, value), p.exp.Sub(varName, value))
}

func (p *Pow) Diff(varName string) Expr {
	du := p.base.Diff(varName)
	dv := p.exp.Diff(varName)
	if _, expIsNum := p.exp.(*Num); expIsNum {
		newExp := AddOf(p.exp, N(-1))
		return MulOf(p.exp, PowOf(p.base, newExp), du)
	}
	if _, baseIsNum := p.base.(*Num); baseIsNum {
		return MulOf(PowOf(p.base, p.exp), LnOf(p.base), dv)
	}
	logTerm := MulOf(dv, LnOf(p.base))
	divTerm := MulOf(p.exp, du, PowOf(p.base, N(-1)))
	return MulOf(PowOf(p.base, p.exp), AddOf(logTerm, divTerm))
}

// Eval succeeds only when the power has an exact rational value.
func (p *Pow) Eval() (*Num, bool) {
	b, ok1 := p.base.Eval()
	e, ok2 := p.exp.Eval()
	if !ok1 || !ok2 {
		return nil, false
	}
	if b.IsZero() && e.IsNegative() {
		return nil, false
	}
	if n, ok := PowOf(b, e).(*Num); ok {
		return n, true
	}
	return nil, false
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) exprType() string { return "pow" }
func (p *Pow) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}
func (p *Pow) Base() Expr    { return p.base }
func (p *Pow) ExpExpr() Expr { return p.exp }
