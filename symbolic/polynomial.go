package symbolic

import (
	"fmt"
	"math/big"

	"github.com/SaiNikhilTadepalli/NeuralSutra/poly"
)

// maxPolyDegree caps the degree of extracted coefficient vectors.
const maxPolyDegree = 1 << 14

// ============================================================
// Polynomial utilities
// ============================================================

// Coefficients extracts the dense rational coefficient vector of e in
// varName, highest degree first. Products and non-negative integer powers
// are multiplied out exactly; any other symbol, function, or negative power
// yields an error wrapping ErrNotPolynomial.
func Coefficients(e Expr, varName string) (poly.Poly, error) {
	p, err := coeffsOf(e.Simplify(), varName)
	if err != nil {
		return nil, err
	}
	return p.Normalize(), nil
}

func coeffsOf(e Expr, varName string) (poly.Poly, error) {
	switch v := e.(type) {
	case *Num:
		return poly.Const(v.val), nil
	case *Sym:
		if v.name == varName {
			return poly.FromInts(1, 0), nil
		}
		return nil, fmt.Errorf("%w in %s: free symbol %s", ErrNotPolynomial, varName, v.name)
	case *Add:
		acc := poly.Zero()
		for _, t := range v.terms {
			p, err := coeffsOf(t, varName)
			if err != nil {
				return nil, err
			}
			acc = acc.Add(p)
		}
		return acc, nil
	case *Mul:
		acc := poly.FromInts(1)
		for _, f := range v.factors {
			p, err := coeffsOf(f, varName)
			if err != nil {
				return nil, err
			}
			acc = acc.Mul(p).Normalize()
		}
		return acc, nil
	case *Pow:
		n, ok := v.exp.(*Num)
		if !ok {
			break
		}
		k, ok := n.Int64()
		if !ok || k < 0 {
			break
		}
		base, err := coeffsOf(v.base, varName)
		if err != nil {
			return nil, err
		}
		if int64(base.Normalize().Degree())*k > maxPolyDegree {
			return nil, fmt.Errorf("%w in %s: degree exceeds %d", ErrNotPolynomial, varName, maxPolyDegree)
		}
		return base.Pow(int(k)), nil
	}
	return nil, fmt.Errorf("%w in %s: %s", ErrNotPolynomial, varName, e)
}

// IsPolynomial reports whether e is a univariate polynomial in varName with
// rational coefficients.
func IsPolynomial(e Expr, varName string) bool {
	_, err := Coefficients(e, varName)
	return err == nil
}

// FromCoefficients rebuilds the expression sum c[i]*x^(deg-i).
func FromCoefficients(p poly.Poly, varName string) Expr {
	deg := len(p) - 1
	terms := make([]Expr, 0, len(p))
	x := S(varName)
	for i, c := range p {
		if c.Sign() == 0 {
			continue
		}
		terms = append(terms, MulOf(R(c), PowOf(x, N(int64(deg-i)))))
	}
	return AddOf(terms...)
}

// Collect rewrites a polynomial in varName as a sum of descending powers.
// Non-polynomials are expanded instead.
func Collect(expr Expr, varName string) Expr {
	p, err := Coefficients(expr, varName)
	if err != nil {
		return Expand(expr)
	}
	return FromCoefficients(p, varName)
}

// NumerDenom splits e into numerator and denominator. Negative powers move
// to the denominator and sums are brought over a common denominator.
func NumerDenom(e Expr) (numer, denom Expr) {
	switch v := e.Simplify().(type) {
	case *Num:
		return &Num{val: new(big.Rat).SetInt(v.val.Num())}, &Num{val: new(big.Rat).SetInt(v.val.Denom())}
	case *Pow:
		if n, ok := v.exp.(*Num); ok && n.IsNegative() {
			return N(1), PowOf(v.base, numNeg(n))
		}
		return v, N(1)
	case *Mul:
		nums := make([]Expr, 0, len(v.factors))
		dens := make([]Expr, 0, len(v.factors))
		for _, f := range v.factors {
			n, d := NumerDenom(f)
			nums = append(nums, n)
			dens = append(dens, d)
		}
		return MulOf(nums...), MulOf(dens...)
	case *Add:
		return addNumerDenom(v)
	default:
		return v, N(1)
	}
}

func addNumerDenom(a *Add) (Expr, Expr) {
	type part struct {
		numer  Expr
		denIdx int
	}
	parts := make([]part, len(a.terms))
	var dens []Expr
	index := map[string]int{}
	for i, t := range a.terms {
		n, d := NumerDenom(t)
		if isNumEqual(d, 1) {
			parts[i] = part{numer: n, denIdx: -1}
			continue
		}
		key := d.String()
		idx, seen := index[key]
		if !seen {
			idx = len(dens)
			index[key] = idx
			dens = append(dens, d)
		}
		parts[i] = part{numer: n, denIdx: idx}
	}
	if len(dens) == 0 {
		return a, N(1)
	}
	terms := make([]Expr, len(parts))
	for i, p := range parts {
		factors := []Expr{p.numer}
		for j, d := range dens {
			if j != p.denIdx {
				factors = append(factors, d)
			}
		}
		terms[i] = MulOf(factors...)
	}
	return AddOf(terms...), MulOf(dens...)
}
