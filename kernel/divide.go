package kernel

import (
	"math/big"

	"github.com/SaiNikhilTadepalli/NeuralSutra/poly"
	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
)

// Divide divides the numerator of expr by its denominator and returns
// quotient + remainder/denominator. Inputs that are not rational functions
// in varName are returned unchanged.
func Divide(expr symbolic.Expr, varName string) symbolic.Expr {
	r, err := DivideExact(expr, varName)
	if err != nil {
		return DivideFallback(expr)
	}
	return r
}

// DivideFallback is the result Divide returns on a structural mismatch.
func DivideFallback(expr symbolic.Expr) symbolic.Expr {
	return expr
}

// DivideExact is Divide with the structural mismatch reported. When the
// denominator has a higher degree than the numerator the fraction is
// returned as is.
func DivideExact(expr symbolic.Expr, varName string) (symbolic.Expr, error) {
	return guard(func() (symbolic.Expr, error) {
		num, den := symbolic.NumerDenom(expr)
		n, err := symbolic.Coefficients(num, varName)
		if err != nil {
			return nil, mismatch(err)
		}
		d, err := symbolic.Coefficients(den, varName)
		if err != nil {
			return nil, mismatch(err)
		}
		if len(d) > len(n) {
			return expr, nil
		}
		q, r, err := Paravartya(n, d)
		if err != nil {
			return nil, mismatch(err)
		}
		quotient := symbolic.FromCoefficients(q, varName)
		remainder := symbolic.FromCoefficients(r, varName)
		divisor := symbolic.FromCoefficients(d, varName)
		return symbolic.AddOf(quotient, symbolic.MulOf(remainder, symbolic.PowOf(divisor, symbolic.N(-1)))), nil
	})
}

// Paravartya divides n by d with the transpose-and-apply method. With
// t = deg d, each of the first len(n)-t columns is normalized by the leading
// coefficient d[0] and, when nonzero, propagated into the next t columns
// through the transposed divisor -d[1..t]. The normalized columns are the
// quotient; the last t columns are the remainder.
//
// The remainder is returned with exactly t coefficients (it may be all
// zero). d must have a nonzero leading coefficient.
func Paravartya(n, d poly.Poly) (quotient, remainder poly.Poly, err error) {
	if len(d) == 0 || d[0].Sign() == 0 {
		return nil, nil, poly.ErrZeroDivisor
	}
	lead := d[0]
	t := len(d) - 1
	trans := make(poly.Poly, t)
	for j := range trans {
		trans[j] = new(big.Rat).Neg(d[j+1])
	}

	res := n.Clone()
	split := len(n) - t
	if split < 0 {
		return poly.Zero(), res, nil
	}
	tmp := new(big.Rat)
	for i := 0; i < split; i++ {
		res[i].Quo(res[i], lead)
		if res[i].Sign() == 0 {
			continue
		}
		for j := 0; j < t; j++ {
			res[i+1+j].Add(res[i+1+j], tmp.Mul(res[i], trans[j]))
		}
	}
	return res[:split], res[split:], nil
}
