// Package poly implements dense univariate polynomials over exact rationals.
//
// A Poly is a coefficient vector ordered from the highest degree down to the
// constant term, so len(p) == degree+1. Every operation returns fresh
// big.Rat values; callers may mutate the result without aliasing the inputs.
package poly

import (
	"errors"
	"math/big"
	"strings"
)

// ErrZeroDivisor is returned when a divisor has a zero leading coefficient.
var ErrZeroDivisor = errors.New("poly: zero leading coefficient")

// Poly is a dense coefficient vector, highest degree first.
type Poly []*big.Rat

// New copies the given coefficients into a Poly.
func New(coeffs ...*big.Rat) Poly {
	p := make(Poly, len(coeffs))
	for i, c := range coeffs {
		if c == nil {
			p[i] = new(big.Rat)
			continue
		}
		p[i] = new(big.Rat).Set(c)
	}
	return p
}

// FromInts builds a Poly from integer coefficients, highest degree first.
func FromInts(coeffs ...int64) Poly {
	p := make(Poly, len(coeffs))
	for i, c := range coeffs {
		p[i] = new(big.Rat).SetInt64(c)
	}
	return p
}

// Const returns the degree-0 polynomial c.
func Const(c *big.Rat) Poly { return New(c) }

// Zero returns the zero polynomial [0].
func Zero() Poly { return Poly{new(big.Rat)} }

// Monomial returns c*x^deg.
func Monomial(c *big.Rat, deg int) Poly {
	p := Zeros(deg + 1)
	p[0].Set(c)
	return p
}

// Zeros returns a buffer of n zero coefficients. Kernels use it as a
// positional accumulator.
func Zeros(n int) Poly {
	p := make(Poly, n)
	for i := range p {
		p[i] = new(big.Rat)
	}
	return p
}

// Clone returns a deep copy.
func (p Poly) Clone() Poly { return New(p...) }

// Degree is len(p)-1 without trimming leading zeros. Use Normalize first for
// the mathematical degree.
func (p Poly) Degree() int { return len(p) - 1 }

// Leading returns the highest-degree coefficient, or zero for an empty Poly.
func (p Poly) Leading() *big.Rat {
	if len(p) == 0 {
		return new(big.Rat)
	}
	return new(big.Rat).Set(p[0])
}

// IsZero reports whether every coefficient is zero.
func (p Poly) IsZero() bool {
	for _, c := range p {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}

// Normalize drops leading zero coefficients. The zero polynomial normalizes
// to [0].
func (p Poly) Normalize() Poly {
	i := 0
	for i < len(p)-1 && p[i].Sign() == 0 {
		i++
	}
	if len(p) == 0 {
		return Zero()
	}
	return p[i:].Clone()
}

// Equal compares normalized forms.
func (p Poly) Equal(q Poly) bool {
	a, b := p.Normalize(), q.Normalize()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Cmp(b[i]) != 0 {
			return false
		}
	}
	return true
}

// Add returns p+q, aligned on the constant term.
func (p Poly) Add(q Poly) Poly {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	out := Zeros(n)
	for i, c := range p {
		out[n-len(p)+i].Add(out[n-len(p)+i], c)
	}
	for i, c := range q {
		out[n-len(q)+i].Add(out[n-len(q)+i], c)
	}
	return out.Normalize()
}

// Sub returns p-q.
func (p Poly) Sub(q Poly) Poly { return p.Add(q.Scale(big.NewRat(-1, 1))) }

// Scale multiplies every coefficient by k.
func (p Poly) Scale(k *big.Rat) Poly {
	out := make(Poly, len(p))
	for i, c := range p {
		out[i] = new(big.Rat).Mul(c, k)
	}
	return out
}

// Mul returns the exact convolution c[k] = sum a[i]*b[j] over i+j == k.
// Zero coefficients keep their slot; the result has len(p)+len(q)-1 entries.
func (p Poly) Mul(q Poly) Poly {
	if len(p) == 0 || len(q) == 0 {
		return Zero()
	}
	out := Zeros(len(p) + len(q) - 1)
	t := new(big.Rat)
	for i, a := range p {
		if a.Sign() == 0 {
			continue
		}
		for j, b := range q {
			out[i+j].Add(out[i+j], t.Mul(a, b))
		}
	}
	return out
}

// Pow returns p^n for n >= 0 by repeated squaring.
func (p Poly) Pow(n int) Poly {
	result := FromInts(1)
	base := p.Normalize()
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base)
		}
	}
	return result
}

// Derivative drops the constant term and multiplies each remaining
// coefficient by its power. The derivative of a constant is the empty Poly.
func (p Poly) Derivative() Poly {
	if len(p) <= 1 {
		return Poly{}
	}
	out := make(Poly, len(p)-1)
	for i := range out {
		power := int64(len(p) - 1 - i)
		out[i] = new(big.Rat).Mul(p[i], new(big.Rat).SetInt64(power))
	}
	return out
}

// DivMod performs schoolbook long division, returning q and r with
// p = q*d + r and deg r < deg d.
func (p Poly) DivMod(d Poly) (q, r Poly, err error) {
	d = d.Normalize()
	if d.IsZero() {
		return nil, nil, ErrZeroDivisor
	}
	r = p.Normalize()
	if len(r) < len(d) {
		return Zero(), r, nil
	}
	q = Zeros(len(r) - len(d) + 1)
	t := new(big.Rat)
	for i := range q {
		c := new(big.Rat).Quo(r[i], d[0])
		q[i] = c
		if c.Sign() == 0 {
			continue
		}
		for j := range d {
			r[i+j].Sub(r[i+j], t.Mul(c, d[j]))
		}
	}
	return q, r[len(q):].Normalize(), nil
}

// Antiderivative integrates term by term with a zero constant term.
func (p Poly) Antiderivative() Poly {
	out := Zeros(len(p) + 1)
	for i, c := range p {
		power := int64(len(p) - i)
		out[i].Quo(c, new(big.Rat).SetInt64(power))
	}
	return out
}

// Eval evaluates p at x with Horner's rule.
func (p Poly) Eval(x *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for _, c := range p {
		acc.Mul(acc, x)
		acc.Add(acc, c)
	}
	return acc
}

// String renders p in var, e.g. "3*x^2 - 1/2*x + 1".
func (p Poly) String(v string) string {
	q := p.Normalize()
	var b strings.Builder
	deg := len(q) - 1
	for i, c := range q {
		if c.Sign() == 0 && deg > 0 {
			continue
		}
		pow := deg - i
		abs := new(big.Rat).Abs(c)
		switch {
		case b.Len() == 0 && c.Sign() < 0:
			b.WriteString("-")
		case b.Len() > 0 && c.Sign() < 0:
			b.WriteString(" - ")
		case b.Len() > 0:
			b.WriteString(" + ")
		}
		coeff := abs.RatString()
		switch {
		case pow == 0:
			b.WriteString(coeff)
		case coeff != "1":
			b.WriteString(coeff + "*")
			fallthrough
		default:
			b.WriteString(v)
			if pow > 1 {
				b.WriteString("^" + big.NewInt(int64(pow)).String())
			}
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}
