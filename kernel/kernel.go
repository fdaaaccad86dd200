// Package kernel implements the exact rational polynomial kernels: Urdhva
// Tiryagbhyam multiplication, Paravartya Yojayet division, and tabular
// integration by parts.
//
// Each kernel comes in two forms. The Exact form returns an error wrapping
// ErrStructuralMismatch when the input does not have the shape the kernel
// expects. The plain form never fails: on a mismatch it returns the kernel's
// fallback result instead.
package kernel

import (
	"errors"
	"fmt"

	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
)

// ErrStructuralMismatch is wrapped by every Exact kernel error.
var ErrStructuralMismatch = errors.New("structural mismatch")

var (
	errNoPolynomialFactor     = errors.New("no polynomial factor of degree >= 1")
	errNoTranscendentalFactor = errors.New("no transcendental factor")
	errNotClosed              = errors.New("antiderivative of the transcendental factor is not closed")
	errZeroFactor             = errors.New("transcendental factor is zero")
)

func mismatch(cause error) error {
	return fmt.Errorf("%w: %w", ErrStructuralMismatch, cause)
}

// guard turns a panic inside a kernel into a structural mismatch.
func guard(fn func() (symbolic.Expr, error)) (result symbolic.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = mismatch(fmt.Errorf("panic: %v", r))
		}
	}()
	return fn()
}
