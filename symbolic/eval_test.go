package symbolic_test

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
)

func evalAt(t *testing.T, in string, at float64) float64 {
	t.Helper()
	v, err := symbolic.EvalFloat(symbolic.MustParse(in), map[string]*big.Float{"x": big.NewFloat(at)}, 200)
	if err != nil {
		t.Fatalf("EvalFloat(%s): %v", in, err)
	}
	f, _ := v.Float64()
	return f
}

func TestEvalFloat_MatchesFloat64(t *testing.T) {
	tests := []struct {
		in   string
		at   float64
		want float64
	}{
		{"x^2 + 1/3", 2, 4 + 1.0/3},
		{"sin(x)", 1, math.Sin(1)},
		{"cos(x)", 10, math.Cos(10)},
		{"sin(x)", -7.5, math.Sin(-7.5)},
		{"tan(x)", 0.3, math.Tan(0.3)},
		{"exp(x)", 2, math.Exp(2)},
		{"ln(x)", 3, math.Log(3)},
		{"sqrt(x)", 2, math.Sqrt2},
		{"atan(x)", 4, math.Atan(4)},
		{"asin(x)", 0.25, math.Asin(0.25)},
		{"acos(x)", -1, math.Pi},
		{"sinh(x)", 1.5, math.Sinh(1.5)},
		{"cosh(x)", -2, math.Cosh(-2)},
		{"tanh(x)", 0.75, math.Tanh(0.75)},
		{"x^(3/2)", 4, 8},
		{"abs(x)", -3, 3},
	}
	for _, tt := range tests {
		got := evalAt(t, tt.in, tt.at)
		if math.Abs(got-tt.want) > 1e-14*math.Max(1, math.Abs(tt.want)) {
			t.Errorf("%s at %v: want %v, got %v", tt.in, tt.at, tt.want, got)
		}
	}
}

func TestEvalFloat_HighPrecision(t *testing.T) {
	// sin^2 + cos^2 stays 1 far beyond float64 precision.
	e := symbolic.MustParse("sin(x)^2 + cos(x)^2 - 1")
	v, err := symbolic.EvalFloat(e, map[string]*big.Float{"x": big.NewFloat(3)}, 256)
	if err != nil {
		t.Fatal(err)
	}
	limit := new(big.Float).SetMantExp(big.NewFloat(1), -240)
	if v.Abs(v).Cmp(limit) > 0 {
		t.Errorf("residual too large: %s", v.Text('g', 10))
	}
}

func TestEvalFloat_Undefined(t *testing.T) {
	env := map[string]*big.Float{"x": big.NewFloat(0)}
	for _, in := range []string{"1/x", "ln(x)", "ln(x - 1)", "asin(x + 2)", "x^(-1/2)"} {
		_, err := symbolic.EvalFloat(symbolic.MustParse(in), env, 128)
		if !errors.Is(err, symbolic.ErrUndefined) {
			t.Errorf("%s at 0: want ErrUndefined, got %v", in, err)
		}
	}
}

func TestEvalFloat_Unsupported(t *testing.T) {
	env := map[string]*big.Float{"x": big.NewFloat(1)}
	for _, in := range []string{"x + y", "Integral(exp(x^2), x)"} {
		_, err := symbolic.EvalFloat(symbolic.MustParse(in), env, 128)
		if !errors.Is(err, symbolic.ErrUnsupported) {
			t.Errorf("%s: want ErrUnsupported, got %v", in, err)
		}
	}
}
