// Package verify checks proposed antiderivatives.
//
// A candidate F passes for an integrand f when d/dx F - f simplifies to zero,
// or, failing that, when d/dx F and f agree numerically at every sample point
// where both are defined.
package verify

import (
	"errors"
	"math/big"

	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
)

const (
	// DefaultPrecision is the mantissa size used for numeric checks, a little
	// over 60 significant decimal digits.
	DefaultPrecision uint = 200

	// DefaultTolerance is the largest accepted relative error.
	DefaultTolerance = 1e-12
)

// DefaultPoints are the sample points of the numeric check. Small integers
// avoid the removable discontinuities common at 0 and 1.
var DefaultPoints = []int64{2, 3, 4}

// Verifier holds the numeric check parameters.
type Verifier struct {
	Points    []int64
	Precision uint
	Tolerance float64
}

// New returns a Verifier with the default points, precision and tolerance.
func New() *Verifier {
	return &Verifier{
		Points:    append([]int64(nil), DefaultPoints...),
		Precision: DefaultPrecision,
		Tolerance: DefaultTolerance,
	}
}

// Verify reports whether candidate is an antiderivative of original with
// respect to varName, using the default settings.
func Verify(original, candidate symbolic.Expr, varName string) bool {
	return New().Verify(original, candidate, varName)
}

// Verify reports whether candidate is an antiderivative of original. A nil
// candidate fails. Verify never panics.
func (v *Verifier) Verify(original, candidate symbolic.Expr, varName string) (ok bool) {
	if original == nil || candidate == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	derivative := symbolic.Diff(candidate, varName)
	if Symbolic(original, derivative) {
		return true
	}
	return v.numeric(original, derivative, varName)
}

// Symbolic reports whether a and b expand to the same expression once trig
// and hyperbolic identities are applied.
func Symbolic(a, b symbolic.Expr) bool {
	diff := symbolic.AddOf(b, symbolic.MulOf(symbolic.N(-1), a))
	if symbolic.Expand(diff).Equal(symbolic.N(0)) {
		return true
	}
	return symbolic.TrigSimplify(symbolic.Expand(diff)).Equal(symbolic.N(0))
}

func (v *Verifier) numeric(original, derivative symbolic.Expr, varName string) bool {
	prec := v.Precision
	if prec == 0 {
		prec = DefaultPrecision
	}
	tol := new(big.Float).SetPrec(prec).SetFloat64(v.Tolerance)
	compared := 0
	for _, p := range v.Points {
		env := map[string]*big.Float{varName: new(big.Float).SetPrec(prec).SetInt64(p)}
		v1, err := symbolic.EvalFloat(original, env, prec)
		if err != nil {
			if errors.Is(err, symbolic.ErrUndefined) {
				continue
			}
			return false
		}
		v2, err := symbolic.EvalFloat(derivative, env, prec)
		if err != nil {
			if errors.Is(err, symbolic.ErrUndefined) {
				continue
			}
			return false
		}
		if RelativeError(v1, v2).Cmp(tol) > 0 {
			return false
		}
		compared++
	}
	// A check where every point was skipped proves nothing.
	return compared > 0
}

// RelativeError returns |a-b| / max(|a|, |b|), or |a-b| when both are zero.
func RelativeError(a, b *big.Float) *big.Float {
	prec := a.Prec()
	if b.Prec() > prec {
		prec = b.Prec()
	}
	diff := new(big.Float).SetPrec(prec).Sub(a, b)
	diff.Abs(diff)
	scale := new(big.Float).SetPrec(prec).Abs(a)
	if bb := new(big.Float).SetPrec(prec).Abs(b); bb.Cmp(scale) > 0 {
		scale = bb
	}
	if scale.Sign() == 0 {
		return diff
	}
	return diff.Quo(diff, scale)
}
