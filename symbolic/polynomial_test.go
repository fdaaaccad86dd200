package symbolic_test

import (
	"errors"
	"testing"

	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
)

func TestCoefficients(t *testing.T) {
	p, err := symbolic.Coefficients(symbolic.MustParse("(x + 1)^3"), "x")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.String("x"); got != "x^3 + 3*x^2 + 3*x + 1" {
		t.Errorf("want x^3 + 3*x^2 + 3*x + 1, got %s", got)
	}

	p, err = symbolic.Coefficients(symbolic.MustParse("1/2*x^2 - 3"), "x")
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 3 || p[1].Sign() != 0 {
		t.Errorf("want a dense degree-2 vector with a zero middle slot, got %v", p)
	}
}

func TestCoefficients_NotPolynomial(t *testing.T) {
	for _, in := range []string{"sin(x)", "x*y", "x^(-1)", "x^(1/2)", "2^x"} {
		_, err := symbolic.Coefficients(symbolic.MustParse(in), "x")
		if !errors.Is(err, symbolic.ErrNotPolynomial) {
			t.Errorf("%s: want ErrNotPolynomial, got %v", in, err)
		}
	}
}

func TestFromCoefficients_RoundTrip(t *testing.T) {
	e := symbolic.MustParse("3*x^4 - x^2 + 7")
	p, err := symbolic.Coefficients(e, "x")
	if err != nil {
		t.Fatal(err)
	}
	back := symbolic.FromCoefficients(p, "x")
	if !back.Equal(e) {
		t.Errorf("want %s, got %s", e, back)
	}
}

func TestCollect(t *testing.T) {
	got := symbolic.Collect(symbolic.MustParse("(x + 2)*(x - 2) + 4"), "x")
	if symbolic.String(got) != "x^2" {
		t.Errorf("want x^2, got %s", got)
	}
}

func TestNumerDenom(t *testing.T) {
	tests := []struct {
		in, num, den string
	}{
		{"(x^2 + 1)/(x + 2)", "x^2 + 1", "x + 2"},
		{"1/2*x", "x", "2"},
		{"x + 1/x", "x^2 + 1", "x"},
		{"sin(x)", "sin(x)", "1"},
	}
	for _, tt := range tests {
		n, d := symbolic.NumerDenom(symbolic.MustParse(tt.in))
		if symbolic.String(n) != tt.num || symbolic.String(d) != tt.den {
			t.Errorf("NumerDenom(%s): want (%s, %s), got (%s, %s)", tt.in, tt.num, tt.den, n, d)
		}
	}
}
