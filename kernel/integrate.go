package kernel

import (
	"math/big"

	"github.com/SaiNikhilTadepalli/NeuralSutra/poly"
	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
)

// Integrate integrates coeff * u(x) * v(x), with u a polynomial and v a
// transcendental factor, by the tabular method. Any other shape, or a v
// whose repeated antiderivatives leave the closed family, falls back to
// direct integration of the whole expression.
func Integrate(expr symbolic.Expr, varName string) symbolic.Expr {
	r, err := IntegrateExact(expr, varName)
	if err != nil {
		return IntegrateFallback(expr, varName)
	}
	return r
}

// IntegrateFallback is the result Integrate returns on a structural
// mismatch. Terms with no antiderivative stay as unevaluated integrals.
func IntegrateFallback(expr symbolic.Expr, varName string) symbolic.Expr {
	return symbolic.IntegrateOrHold(expr, varName)
}

// IntegrateExact is Integrate with the structural mismatch reported.
func IntegrateExact(expr symbolic.Expr, varName string) (symbolic.Expr, error) {
	return guard(func() (symbolic.Expr, error) {
		d, err := Decompose(expr, varName)
		if err != nil {
			return nil, err
		}
		table, err := Tabulate(d.Poly, d.Trans, varName)
		if err != nil {
			return nil, err
		}
		deg := len(table) - 1
		terms := make([]symbolic.Expr, len(table))
		x := symbolic.S(varName)
		for i, c := range table {
			terms[i] = symbolic.MulOf(c, symbolic.PowOf(x, symbolic.N(int64(deg-i))))
		}
		return symbolic.Expand(symbolic.MulOf(d.Coeff, symbolic.AddOf(terms...), d.Trans)), nil
	})
}

// Decomposition is an integrand split as Coeff * Poly(x) * Trans.
type Decomposition struct {
	Coeff *symbolic.Num
	Poly  poly.Poly
	Trans symbolic.Expr
}

// Decompose separates the rational coefficient, the product of every factor
// that is a polynomial of degree >= 1 in varName, and the remaining factor.
// The remaining factor must depend on varName.
func Decompose(expr symbolic.Expr, varName string) (Decomposition, error) {
	coeff, rest := symbolic.CoeffMul(expr.Simplify())
	var polys, others []symbolic.Expr
	for _, f := range symbolic.Factors(rest) {
		if symbolic.Has(f, varName) && symbolic.IsPolynomial(f, varName) {
			polys = append(polys, f)
			continue
		}
		others = append(others, f)
	}
	if len(polys) == 0 {
		return Decomposition{}, mismatch(errNoPolynomialFactor)
	}
	trans := symbolic.MulOf(others...)
	if !symbolic.Has(trans, varName) {
		return Decomposition{}, mismatch(errNoTranscendentalFactor)
	}
	u, err := symbolic.Coefficients(symbolic.MulOf(polys...), varName)
	if err != nil {
		return Decomposition{}, mismatch(err)
	}
	return Decomposition{Coeff: coeff, Poly: u, Trans: trans}, nil
}

// Tabulate runs the tabular table for u(x)*v: row k is the k-th derivative
// of u, paired with the (k+1)-th antiderivative V of v and an alternating
// sign. Each row is added, shifted to its degree, into an accumulator as a
// multiple of V/v. The returned coefficients t satisfy
//
//	integral of u*v = (sum t[i]*x^(deg-i)) * v
func Tabulate(u poly.Poly, v symbolic.Expr, varName string) ([]symbolic.Expr, error) {
	if n, ok := v.(*symbolic.Num); ok && n.IsZero() {
		return nil, mismatch(errZeroFactor)
	}
	deg := len(u) - 1
	final := make([]symbolic.Expr, deg+1)
	for i := range final {
		final[i] = symbolic.N(0)
	}
	invV := symbolic.PowOf(v, symbolic.N(-1))
	row := u
	sign := big.NewRat(1, 1)
	antideriv := v
	for len(row) > 0 {
		next, ok := symbolic.Integrate(antideriv, varName)
		if !ok || symbolic.ContainsIntegral(next) {
			return nil, mismatch(errNotClosed)
		}
		antideriv = next
		multiplier := symbolic.MulOf(antideriv, invV)

		offset := deg + 1 - len(row)
		for i, c := range row {
			k := new(big.Rat).Mul(sign, c)
			final[offset+i] = symbolic.AddOf(final[offset+i], symbolic.MulOf(symbolic.R(k), multiplier))
		}
		row = row.Derivative()
		sign.Neg(sign)
	}
	return final, nil
}
