package symbolic_test

import (
	"errors"
	"testing"

	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2*x + 3", "2*x + 3"},
		{"x**2 - 1/2", "x^2 - 1/2"},
		{"0.5*x", "1/2*x"},
		{"-x^2", "-x^2"},
		{"x^2^3", "x^8"},
		{"2^-1", "1/2"},
		{"(x + 1)*(x + 1)", "(x + 1)^2"},
		{"log(x)", "ln(x)"},
		{"sqrt(4)", "2"},
		{"sin(-x)", "-sin(x)"},
		{"x/x", "1"},
		{"Integral(x^2, x)", "Integral(x^2, x)"},
		{"1.5e2", "150"},
	}
	for _, tt := range tests {
		got, err := symbolic.Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("Parse(%q): want %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "x +", "sin(x", "foo(x)", "1/0", "x $ y", "(x))", "Integral(x)"} {
		_, err := symbolic.Parse(in)
		if !errors.Is(err, symbolic.ErrSyntax) {
			t.Errorf("Parse(%q): want ErrSyntax, got %v", in, err)
		}
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("MustParse should panic on invalid input")
		}
	}()
	symbolic.MustParse("x +* 2")
}
