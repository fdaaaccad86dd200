// Package bench compares direct integration against the compiler on a fixed
// suite of integrands.
package bench

import "github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"

// Case is a named integrand of the benchmark suite.
type Case struct {
	Name        string
	Category    string
	Description string
	Expr        symbolic.Expr
}

// Var is the integration variable of every case.
const Var = "x"

// Cases returns the benchmark suite in report order.
func Cases() []Case {
	return []Case{
		{
			Name:        "POLY_TRANS_MIXED",
			Category:    "Mixed Terms",
			Description: "Sum that needs tabular integration and Paravartya division in the same task.",
			Expr:        symbolic.MustParse("-5*x^12*cos(x) + 3*x^2*exp(x) - (x^3 + 2*x)/(x + 5)"),
		},
		{
			Name:        "HIGH_DEGREE_SPARSE",
			Category:    "Integration",
			Description: "Sparse degree-50 polynomial times sin(x).",
			Expr:        symbolic.MustParse("(10*x^50 + 5*x^25 + 1)*sin(x)"),
		},
		{
			Name:        "DUAL_POLY_PRODUCT",
			Category:    "Multiplication",
			Description: "Product of two degree-14 polynomials.",
			Expr: symbolic.MulOf(
				symbolic.MustParse("2*x^14 + x^13 + 2*x^11 + x^10 + 2*x^8 + x^7 + 2*x^5 + x^4 + 2*x^2 + x"),
				symbolic.MustParse("x^14 + x^13 + x^12 + x^11 + x^10 + x^9 + x^8 + x^7 + x^6 + x^5 + x^4 + x^3 + x^2 + x + 1"),
			),
		},
		{
			Name:        "NESTED_COMPOSITE",
			Category:    "Recursive Expansion",
			Description: "Unexpanded polynomial product times cos(x).",
			Expr:        symbolic.MustParse("(x^10 + 5)*(x^5 + 2*x^2 + 1)*cos(x)"),
		},
		{
			Name:        "RATIONAL_FRACTIONAL",
			Category:    "Division",
			Description: "Sum of two rational functions with linear denominators.",
			Expr:        symbolic.MustParse("(x^4 + 2)/(x + 2) + (x^6 + 1)/(x - 1)"),
		},
	}
}

// Lookup returns the case with the given name.
func Lookup(name string) (Case, bool) {
	for _, c := range Cases() {
		if c.Name == name {
			return c, true
		}
	}
	return Case{}, false
}
