package verify_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SaiNikhilTadepalli/NeuralSutra/kernel"
	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
	"github.com/SaiNikhilTadepalli/NeuralSutra/verify"
)

func TestVerify_NilCandidate(t *testing.T) {
	assert.False(t, verify.Verify(symbolic.S("x"), nil, "x"))
}

func TestVerify_Constant(t *testing.T) {
	assert.True(t, verify.Verify(symbolic.N(0), symbolic.N(10), "x"))
}

func TestVerify_StructurallyDifferent(t *testing.T) {
	assert.True(t, verify.Verify(symbolic.MustParse("2*(x + 1)"), symbolic.MustParse("(x + 1)**2"), "x"))
}

func TestVerify_WrongPower(t *testing.T) {
	assert.False(t, verify.Verify(symbolic.MustParse("x**2"), symbolic.MustParse("x**3/2"), "x"))
}

func TestVerify_NumericFallback(t *testing.T) {
	// d/dx ln(cosh(x)) = sinh(x)/cosh(x) only matches tanh(x) numerically.
	f := symbolic.MustParse("tanh(x)")
	F := symbolic.MustParse("ln(cosh(x))")
	assert.False(t, verify.Symbolic(f, symbolic.Diff(F, "x")))
	assert.True(t, verify.Verify(f, F, "x"))
}

func TestVerify_SkipsPoles(t *testing.T) {
	// x = 3 is a pole of both sides and is skipped.
	f := symbolic.MustParse("1/(x - 3) + tanh(x)")
	F := symbolic.MustParse("ln(x - 3) + ln(cosh(x))")
	assert.True(t, verify.Verify(f, F, "x"))
}

func TestVerify_UnsupportedFails(t *testing.T) {
	assert.False(t, verify.Verify(symbolic.S("x"), symbolic.MustParse("x^2/2 + y*x"), "x"))
}

func TestVerify_KernelRoundTrips(t *testing.T) {
	for _, in := range []string{
		"x*sin(x)",
		"(x^2 + 3)*cos(x)",
		"x^3*exp(x)",
		"2*x*sinh(x)",
		"x*cosh(x)",
		"sin(x)*cos(x)",
		"(x + 1)^2*sin(x)",
		"(2*x - 1)^3*exp(x)",
		"(x^2 - 1)^2*cos(2*x)",
	} {
		f := symbolic.MustParse(in)
		got := kernel.Integrate(f, "x")
		assert.False(t, symbolic.ContainsIntegral(got), "%s -> %s", in, got)
		assert.True(t, verify.Verify(f, got, "x"), in)
	}
}

func TestVerify_HeldIntegral(t *testing.T) {
	// An unevaluated integral differentiates back to its integrand, so it
	// verifies without being a closed form.
	f := symbolic.MustParse("x*tanh(x)")
	got := kernel.Integrate(f, "x")
	assert.True(t, symbolic.ContainsIntegral(got))
	assert.True(t, verify.Verify(f, got, "x"))
}

func TestVerify_PowerOfSum(t *testing.T) {
	f := symbolic.MustParse("(x + 1)^2")
	assert.True(t, verify.Symbolic(f, symbolic.Diff(symbolic.MustParse("(x + 1)^3/3"), "x")))
	assert.True(t, verify.Verify(f, symbolic.MustParse("x^3/3 + x^2 + x"), "x"))
	assert.False(t, verify.Verify(f, symbolic.MustParse("x^3/3 + x"), "x"))
}

func TestVerifier_CustomPoints(t *testing.T) {
	v := verify.New()
	v.Points = []int64{3}
	f := symbolic.MustParse("1/(x - 3)")
	wrong := symbolic.MustParse("x")
	// The only sample point is a pole, so nothing was compared.
	assert.False(t, v.Verify(f, wrong, "x"))
	assert.False(t, verify.Verify(f, wrong, "x"))

	v.Points = []int64{3, 5}
	assert.True(t, v.Verify(f, symbolic.MustParse("ln(x - 3)"), "x"))
}

func TestVerify_NoDefinedPoints(t *testing.T) {
	// sqrt(1 - x) is not real at 2, 3 or 4.
	assert.False(t, verify.Verify(symbolic.MustParse("sqrt(1 - x)"), symbolic.S("x"), "x"))
}

func TestRelativeError(t *testing.T) {
	a := big.NewFloat(1)
	b := big.NewFloat(1 + 1e-13)
	assert.Equal(t, -1, verify.RelativeError(a, b).Cmp(big.NewFloat(1e-12)))

	zero := big.NewFloat(0)
	assert.Equal(t, 0, verify.RelativeError(zero, zero).Sign())
}
