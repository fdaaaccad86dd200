package symbolic

// ============================================================
// Integral: unevaluated indefinite integral
// ============================================================

// Integral holds an integrand that has not been integrated yet. Its
// derivative with respect to the integration variable is the integrand, so
// a held integral still verifies as an antiderivative.
type Integral struct {
	integrand Expr
	varName   string
}

func IntegralOf(integrand Expr, varName string) Expr {
	return (&Integral{integrand: integrand, varName: varName}).Simplify()
}

func (i *Integral) Simplify() Expr {
	return &Integral{integrand: i.integrand.Simplify(), varName: i.varName}
}

func (i *Integral) String() string {
	return "Integral(" + i.integrand.String() + ", " + i.varName + ")"
}

func (i *Integral) LaTeX() string {
	return "\\int " + i.integrand.LaTeX() + " \\, d" + i.varName
}

// Sub leaves the integration variable bound.
func (i *Integral) Sub(varName string, value Expr) Expr {
	if varName == i.varName {
		return i
	}
	return IntegralOf(i.integrand.Sub(varName, value), i.varName)
}

func (i *Integral) Diff(varName string) Expr {
	if varName == i.varName {
		return i.integrand
	}
	d := i.integrand.Diff(varName)
	if isNumEqual(d, 0) {
		return N(0)
	}
	return IntegralOf(d, i.varName)
}

func (i *Integral) Eval() (*Num, bool) { return nil, false }

func (i *Integral) Equal(other Expr) bool {
	o, ok := other.(*Integral)
	return ok && i.varName == o.varName && i.integrand.Equal(o.integrand)
}

func (i *Integral) exprType() string { return "integral" }
func (i *Integral) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "integral", "integrand": i.integrand.toJSON(), "var": i.varName}
}

func (i *Integral) Integrand() Expr { return i.integrand }
func (i *Integral) Var() string     { return i.varName }

// Doit evaluates the integral with the rule-based integrator, holding the
// terms it cannot integrate.
func (i *Integral) Doit() Expr { return IntegrateOrHold(i.integrand, i.varName) }
