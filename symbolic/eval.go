package symbolic

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ALTree/bigfloat"
)

// ============================================================
// High-precision numeric evaluation
// ============================================================

// guardBits are carried on top of the requested precision while evaluating.
const guardBits = 64

// EvalFloat evaluates e numerically with at least prec bits of mantissa.
// Every free symbol must be bound in env.
//
// Poles, logarithms of non-positive values, out-of-range inverse sines and
// infinite results return an error wrapping ErrUndefined. Unbound symbols and
// unevaluated integrals return an error wrapping ErrUnsupported.
func EvalFloat(e Expr, env map[string]*big.Float, prec uint) (result *big.Float, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			var nan big.ErrNaN
			if re, ok := r.(error); ok && errors.As(re, &nan) {
				err = fmt.Errorf("%w: %s", ErrUndefined, nan.Error())
				return
			}
			err = fmt.Errorf("numeric evaluation of %s: %v", e, r)
		}
	}()
	ev := &evaluator{env: env, prec: prec + guardBits}
	v, err := ev.eval(e)
	if err != nil {
		return nil, err
	}
	if v.IsInf() {
		return nil, fmt.Errorf("%w: %s is not finite", ErrUndefined, e)
	}
	return new(big.Float).SetPrec(prec).Set(v), nil
}

type evaluator struct {
	env  map[string]*big.Float
	prec uint
	pi   *big.Float
}

func (ev *evaluator) newf() *big.Float { return new(big.Float).SetPrec(ev.prec) }

func (ev *evaluator) eval(e Expr) (*big.Float, error) {
	switch v := e.(type) {
	case *Num:
		return ev.newf().SetRat(v.val), nil

	case *Sym:
		x, ok := ev.env[v.name]
		if !ok || x == nil {
			return nil, fmt.Errorf("%w: unbound symbol %s", ErrUnsupported, v.name)
		}
		return ev.newf().Set(x), nil

	case *Add:
		sum := ev.newf()
		for _, t := range v.terms {
			x, err := ev.eval(t)
			if err != nil {
				return nil, err
			}
			sum.Add(sum, x)
		}
		return sum, nil

	case *Mul:
		prod := ev.newf().SetInt64(1)
		for _, f := range v.factors {
			x, err := ev.eval(f)
			if err != nil {
				return nil, err
			}
			prod.Mul(prod, x)
		}
		return prod, nil

	case *Pow:
		return ev.evalPow(v)

	case *Func:
		x, err := ev.eval(v.arg)
		if err != nil {
			return nil, err
		}
		return ev.evalFunc(v.name, x)

	case *Integral:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, v)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, e)
}

func (ev *evaluator) evalPow(p *Pow) (*big.Float, error) {
	base, err := ev.eval(p.base)
	if err != nil {
		return nil, err
	}
	if n, ok := p.exp.(*Num); ok {
		if k, ok := n.Int64(); ok {
			return ev.powInt(base, k)
		}
	}
	exp, err := ev.eval(p.exp)
	if err != nil {
		return nil, err
	}
	switch base.Sign() {
	case -1:
		return nil, fmt.Errorf("%w: negative base %s to a non-integer power", ErrUndefined, p.base)
	case 0:
		if exp.Sign() > 0 {
			return ev.newf(), nil
		}
		return nil, fmt.Errorf("%w: 0 to a non-positive power", ErrUndefined)
	}
	return bigfloat.Pow(base, exp), nil
}

func (ev *evaluator) powInt(base *big.Float, k int64) (*big.Float, error) {
	if k < 0 && base.Sign() == 0 {
		return nil, fmt.Errorf("%w: division by zero", ErrUndefined)
	}
	neg := k < 0
	if neg {
		k = -k
	}
	result := ev.newf().SetInt64(1)
	b := ev.newf().Set(base)
	for k > 0 {
		if k&1 == 1 {
			result.Mul(result, b)
		}
		k >>= 1
		if k > 0 {
			b.Mul(b, b)
		}
	}
	if neg {
		result.Quo(ev.newf().SetInt64(1), result)
	}
	return result, nil
}

func (ev *evaluator) evalFunc(name string, x *big.Float) (*big.Float, error) {
	one := ev.newf().SetInt64(1)
	switch name {
	case "exp":
		return bigfloat.Exp(x), nil
	case "ln":
		if x.Sign() <= 0 {
			return nil, fmt.Errorf("%w: ln of non-positive value", ErrUndefined)
		}
		return bigfloat.Log(x), nil
	case "abs":
		return ev.newf().Abs(x), nil
	case "sin":
		s, _ := ev.sinCos(x)
		return s, nil
	case "cos":
		_, c := ev.sinCos(x)
		return c, nil
	case "tan":
		s, c := ev.sinCos(x)
		if c.Sign() == 0 {
			return nil, fmt.Errorf("%w: tan pole", ErrUndefined)
		}
		return ev.newf().Quo(s, c), nil
	case "atan":
		return ev.atan(x), nil
	case "asin", "acos":
		if ev.newf().Abs(x).Cmp(one) > 0 {
			return nil, fmt.Errorf("%w: %s argument outside [-1, 1]", ErrUndefined, name)
		}
		as := ev.asin(x)
		if name == "asin" {
			return as, nil
		}
		half := ev.newf().Quo(ev.piConst(), ev.newf().SetInt64(2))
		return half.Sub(half, as), nil
	case "sinh", "cosh":
		ex := bigfloat.Exp(x)
		inv := ev.newf().Quo(one, ex)
		if name == "sinh" {
			ex.Sub(ex, inv)
		} else {
			ex.Add(ex, inv)
		}
		return ex.Quo(ex, ev.newf().SetInt64(2)), nil
	case "tanh":
		e2 := bigfloat.Exp(ev.newf().Mul(x, ev.newf().SetInt64(2)))
		if e2.IsInf() {
			return one, nil
		}
		num := ev.newf().Sub(e2, one)
		den := ev.newf().Add(e2, one)
		return num.Quo(num, den), nil
	}
	return nil, fmt.Errorf("%w: function %s", ErrUnsupported, name)
}

// negligible reports whether a series term no longer moves sum at the
// working precision.
func (ev *evaluator) negligible(term, sum *big.Float) bool {
	if term.Sign() == 0 {
		return true
	}
	if sum.Sign() == 0 {
		return false
	}
	return term.MantExp(nil) < sum.MantExp(nil)-int(ev.prec)-2
}

// piConst computes pi by Machin's formula: pi = 16*atan(1/5) - 4*atan(1/239).
func (ev *evaluator) piConst() *big.Float {
	if ev.pi != nil {
		return ev.newf().Set(ev.pi)
	}
	a := ev.atanSeries(ev.newf().Quo(ev.newf().SetInt64(1), ev.newf().SetInt64(5)))
	b := ev.atanSeries(ev.newf().Quo(ev.newf().SetInt64(1), ev.newf().SetInt64(239)))
	a.Mul(a, ev.newf().SetInt64(16))
	b.Mul(b, ev.newf().SetInt64(4))
	ev.pi = a.Sub(a, b)
	return ev.newf().Set(ev.pi)
}

// atanSeries sums x - x^3/3 + x^5/5 - ... for small |x|.
func (ev *evaluator) atanSeries(x *big.Float) *big.Float {
	sum := ev.newf().Set(x)
	if x.Sign() == 0 {
		return sum
	}
	x2 := ev.newf().Mul(x, x)
	pow := ev.newf().Set(x)
	for n := int64(1); ; n++ {
		pow.Mul(pow, x2)
		pow.Neg(pow)
		term := ev.newf().Quo(pow, ev.newf().SetInt64(2*n+1))
		sum.Add(sum, term)
		if ev.negligible(term, sum) {
			return sum
		}
	}
}

func (ev *evaluator) atan(x *big.Float) *big.Float {
	one := ev.newf().SetInt64(1)
	ax := ev.newf().Abs(x)
	if ax.Cmp(one) > 0 {
		// atan(x) = sign(x)*pi/2 - atan(1/x)
		half := ev.newf().Quo(ev.piConst(), ev.newf().SetInt64(2))
		if x.Sign() < 0 {
			half.Neg(half)
		}
		inner := ev.atan(ev.newf().Quo(one, x))
		return half.Sub(half, inner)
	}
	// atan(x) = 2*atan(x / (1 + sqrt(1 + x^2))) until the series converges fast.
	y := ev.newf().Set(x)
	scale := int64(1)
	limit := ev.newf().SetFloat64(0.125)
	for ev.newf().Abs(y).Cmp(limit) > 0 {
		r := ev.newf().Mul(y, y)
		r.Add(r, one)
		r.Sqrt(r)
		r.Add(r, one)
		y.Quo(y, r)
		scale *= 2
	}
	s := ev.atanSeries(y)
	return s.Mul(s, ev.newf().SetInt64(scale))
}

func (ev *evaluator) asin(x *big.Float) *big.Float {
	one := ev.newf().SetInt64(1)
	d := ev.newf().Mul(x, x)
	d.Sub(one, d)
	if d.Sign() == 0 {
		half := ev.newf().Quo(ev.piConst(), ev.newf().SetInt64(2))
		if x.Sign() < 0 {
			half.Neg(half)
		}
		return half
	}
	d.Sqrt(d)
	return ev.atan(ev.newf().Quo(x, d))
}

// sinCos reduces x into [-pi, pi] and sums both Taylor series.
func (ev *evaluator) sinCos(x *big.Float) (sin, cos *big.Float) {
	// Large arguments lose their integer part of x/(2*pi) to rounding; widen
	// the working precision by the argument's binary exponent.
	saved := ev.prec
	if exp := x.MantExp(nil); exp > 0 {
		ev.prec += uint(exp)
		ev.pi = nil
	}
	defer func() {
		ev.prec = saved
		ev.pi = nil
	}()

	twoPi := ev.piConst()
	twoPi.Mul(twoPi, ev.newf().SetInt64(2))
	k := ev.newf().Quo(x, twoPi)
	half := ev.newf().SetFloat64(0.5)
	if k.Sign() < 0 {
		half.Neg(half)
	}
	k.Add(k, half)
	ki, _ := k.Int(nil)
	r := ev.newf().SetInt(ki)
	r.Mul(r, twoPi)
	r.Sub(ev.newf().Set(x), r)

	sin = ev.newf().Set(r)
	cos = ev.newf().SetInt64(1)
	if r.Sign() == 0 {
		return ev.round(sin, saved), ev.round(cos, saved)
	}
	r2 := ev.newf().Mul(r, r)
	st := ev.newf().Set(r)
	ct := ev.newf().SetInt64(1)
	for n := int64(1); ; n++ {
		// sin term: r^(2n+1)/(2n+1)!, cos term: r^(2n)/(2n)!, alternating.
		ct.Mul(ct, r2)
		ct.Quo(ct, ev.newf().SetInt64((2*n-1)*(2*n)))
		ct.Neg(ct)
		st.Mul(st, r2)
		st.Quo(st, ev.newf().SetInt64((2*n)*(2*n+1)))
		st.Neg(st)
		cos.Add(cos, ct)
		sin.Add(sin, st)
		if ev.negligible(st, sin) && ev.negligible(ct, cos) {
			break
		}
	}
	return ev.round(sin, saved), ev.round(cos, saved)
}

func (ev *evaluator) round(x *big.Float, prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).Set(x)
}
