package symbolic_test

import (
	"math/big"
	"testing"

	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
)

// derivativeMatches compares d/dx F with f numerically at a few points.
func derivativeMatches(t *testing.T, f, antiderivative symbolic.Expr) {
	t.Helper()
	diff := symbolic.AddOf(symbolic.Diff(antiderivative, "x"), symbolic.MulOf(symbolic.N(-1), f))
	tol := new(big.Float).SetFloat64(1e-30)
	for _, p := range []float64{0.5, 1.25, 2} {
		env := map[string]*big.Float{"x": big.NewFloat(p)}
		v, err := symbolic.EvalFloat(diff, env, 200)
		if err != nil {
			t.Errorf("d/dx %s at %v: %v", antiderivative, p, err)
			return
		}
		if v.Abs(v).Cmp(tol) > 0 {
			t.Errorf("d/dx %s != %s at x=%v (residual %s)", antiderivative, f, p, v.Text('g', 10))
			return
		}
	}
}

func TestIntegrate_Polynomial(t *testing.T) {
	r, ok := symbolic.Integrate(symbolic.PowOf(x, symbolic.N(2)), "x")
	if !ok || symbolic.String(r) != "1/3*x^3" {
		t.Errorf("want 1/3*x^3, got %v", r)
	}
	r, ok = symbolic.Integrate(symbolic.N(5), "x")
	if !ok || symbolic.String(r) != "5*x" {
		t.Errorf("want 5*x, got %v", r)
	}
}

func TestIntegrate_Elementary(t *testing.T) {
	tests := []struct {
		in   symbolic.Expr
		want string
	}{
		{symbolic.SinOf(x), "-cos(x)"},
		{symbolic.CosOf(x), "sin(x)"},
		{symbolic.ExpOf(symbolic.MulOf(symbolic.N(2), x)), "1/2*exp(2*x)"},
		{symbolic.PowOf(x, symbolic.N(-1)), "ln(x)"},
		{symbolic.CoshOf(x), "sinh(x)"},
		{symbolic.TanhOf(x), "ln(cosh(x))"},
	}
	for _, tt := range tests {
		r, ok := symbolic.Integrate(tt.in, "x")
		if !ok {
			t.Errorf("integrate %s: no rule applied", tt.in)
			continue
		}
		if symbolic.String(r) != tt.want {
			t.Errorf("integrate %s: want %s, got %s", tt.in, tt.want, r)
		}
	}
}

func TestIntegrate_ByParts(t *testing.T) {
	f := symbolic.MulOf(x, symbolic.ExpOf(x))
	r, ok := symbolic.Integrate(f, "x")
	if !ok {
		t.Fatalf("integrate %s: no rule applied", f)
	}
	if symbolic.String(r) != "x*exp(x) - exp(x)" {
		t.Errorf("want x*exp(x) - exp(x), got %s", r)
	}
}

func TestIntegrate_RoundTrips(t *testing.T) {
	inputs := []string{
		"x^2*sin(x)",
		"(3*x^2 + 1)*cos(2*x)",
		"x^3*exp(-x)",
		"x*sinh(x)",
		"sin(x)*cos(x)",
		"sin(x)^2",
		"exp(x)*sin(x)",
		"x*exp(x^2)",
		"ln(x)",
		"x*ln(x)",
		"atan(x)",
		"1/(2*x + 1)",
		"(x^2 + 1)/(x + 2)",
		"x/(x^2 + 1)",
		"(x + 1)^5",
		"tan(x)",
		"cos(x)*sin(3*x)",
	}
	for _, in := range inputs {
		f := symbolic.MustParse(in)
		r, ok := symbolic.Integrate(f, "x")
		if !ok {
			t.Errorf("integrate %s: no rule applied", in)
			continue
		}
		if symbolic.ContainsIntegral(r) {
			t.Errorf("integrate %s: unexpected held integral %s", in, r)
			continue
		}
		derivativeMatches(t, f, r)
	}
}

func TestIntegrateOrHold(t *testing.T) {
	f := symbolic.MustParse("exp(x^2) + x")
	got := symbolic.IntegrateOrHold(f, "x")
	if !symbolic.ContainsIntegral(got) {
		t.Fatalf("expected a held integral, got %s", got)
	}
	if symbolic.String(got) != "1/2*x^2 + Integral(exp(x^2), x)" {
		t.Errorf("unexpected result %s", got)
	}
	if _, ok := symbolic.Integrate(symbolic.MustParse("exp(x)/x"), "x"); ok {
		t.Errorf("exp(x)/x has no elementary antiderivative")
	}
}
