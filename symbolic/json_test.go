package symbolic_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
)

// ============================================================
// JSON tests
// ============================================================

func TestToJSON_Num(t *testing.T) {
	s, err := symbolic.ToJSON(symbolic.F(3, 4))
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatal(err)
	}
	if m["type"] != "num" || m["value"] != "3/4" {
		t.Errorf("unexpected encoding %s", s)
	}
}

func TestFromJSON_RoundTrip(t *testing.T) {
	for _, in := range []string{
		"x^2*sin(x) + 3/7",
		"exp(2*x)*cos(x)",
		"(x^3 + 2*x)/(x + 5)",
		"Integral(exp(x^2), x) + x",
	} {
		e := symbolic.MustParse(in)
		s, err := symbolic.ToJSON(e)
		if err != nil {
			t.Fatalf("ToJSON(%s): %v", in, err)
		}
		back, err := symbolic.ParseJSON([]byte(s))
		if err != nil {
			t.Fatalf("ParseJSON(%s): %v", s, err)
		}
		if !back.Equal(e) {
			t.Errorf("round trip of %s gave %s", e, back)
		}
	}
}

func TestFromJSON_Errors(t *testing.T) {
	tests := []struct {
		in      string
		wantErr string
	}{
		{`{}`, "missing 'type'"},
		{`{"type": "num", "value": "abc"}`, "invalid num value"},
		{`{"type": "add", "terms": {}}`, "must be an array"},
		{`{"type": "pow", "base": {"type": "sym", "name": "x"}}`, `missing "exp"`},
		{`{"type": "integral", "integrand": {"type": "sym", "name": "x"}}`, `missing "var"`},
		{`{"type": "matrix"}`, "unknown expression type"},
	}
	for _, tt := range tests {
		_, err := symbolic.ParseJSON([]byte(tt.in))
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("ParseJSON(%s): want error containing %q, got %v", tt.in, tt.wantErr, err)
		}
	}
}

// ============================================================
// srepr tests
// ============================================================

func TestSrepr(t *testing.T) {
	tests := []struct {
		in   symbolic.Expr
		want string
	}{
		{symbolic.F(1, 2), "Rational(1, 2)"},
		{symbolic.N(-3), "Integer(-3)"},
		{symbolic.MulOf(symbolic.N(2), symbolic.PowOf(x, symbolic.N(3))), "Mul(Integer(2), Pow(Symbol('x'), Integer(3)))"},
		{symbolic.LnOf(x), "log(Symbol('x'))"},
		{symbolic.AddOf(x, symbolic.N(1)), "Add(Symbol('x'), Integer(1))"},
		{symbolic.IntegralOf(symbolic.SinOf(x), "x"), "Integral(sin(Symbol('x')), Tuple(Symbol('x')))"},
	}
	for _, tt := range tests {
		if got := symbolic.Srepr(tt.in); got != tt.want {
			t.Errorf("Srepr(%s): want %s, got %s", tt.in, tt.want, got)
		}
	}
}
