package kernel

import (
	"github.com/SaiNikhilTadepalli/NeuralSutra/poly"
	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
)

// Multiply multiplies the factors of expr as polynomials in varName and
// falls back to symbolic expansion when they are not polynomials.
func Multiply(expr symbolic.Expr, varName string) symbolic.Expr {
	r, err := MultiplyExact(expr, varName)
	if err != nil {
		return MultiplyFallback(expr)
	}
	return r
}

// MultiplyFallback is the result Multiply returns on a structural mismatch.
func MultiplyFallback(expr symbolic.Expr) symbolic.Expr {
	return symbolic.Expand(expr)
}

// MultiplyExact splits expr into its first factor a and the product b of
// the remaining factors, then returns the exact convolution of their
// coefficient vectors. A non-product e is treated as e*1.
func MultiplyExact(expr symbolic.Expr, varName string) (symbolic.Expr, error) {
	return guard(func() (symbolic.Expr, error) {
		a, b := splitProduct(expr.Simplify())
		pa, err := symbolic.Coefficients(a, varName)
		if err != nil {
			return nil, mismatch(err)
		}
		pb, err := symbolic.Coefficients(b, varName)
		if err != nil {
			return nil, mismatch(err)
		}
		return symbolic.FromCoefficients(Convolve(pa, pb), varName), nil
	})
}

// Convolve computes c[k] = sum of a[i]*b[j] over i+j == k, highest degree
// first, so len(c) == len(a)+len(b)-1.
func Convolve(a, b poly.Poly) poly.Poly {
	return a.Mul(b)
}

func splitProduct(e symbolic.Expr) (a, b symbolic.Expr) {
	factors := symbolic.Factors(e)
	if len(factors) < 2 {
		return e, symbolic.N(1)
	}
	return factors[0], symbolic.MulOf(factors[1:]...)
}
