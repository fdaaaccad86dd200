// Package compiler rewrites integration tasks pass by pass, sending each
// unevaluated integral to the kernel its classifier picks.
package compiler

import (
	"context"
	"log/slog"

	"github.com/SaiNikhilTadepalli/NeuralSutra/router"
	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
)

// DefaultMaxPasses bounds the rewrite loop when no WithMaxPasses option is
// given.
const DefaultMaxPasses = 10

// Kernels is the set of total kernel operations the compiler dispatches to.
// *engine.Engine satisfies it.
type Kernels interface {
	Multiply(expr symbolic.Expr, varName string) symbolic.Expr
	Divide(expr symbolic.Expr, varName string) symbolic.Expr
	Integrate(expr symbolic.Expr, varName string) symbolic.Expr
}

// PassHook is called after every pass with the pass number (from 1) and the
// task before and after it.
type PassHook func(pass int, before, after symbolic.Expr)

// Compiler turns an integrand into its antiderivative, or into the closest
// form it can reach with the integrals it could not resolve left in place.
type Compiler struct {
	kernels    Kernels
	classifier router.Classifier
	maxPasses  int
	logger     *slog.Logger
	hook       PassHook
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithMaxPasses sets the maximum number of rewrite passes. Values below 1
// are ignored.
func WithMaxPasses(n int) Option {
	return func(c *Compiler) {
		if n >= 1 {
			c.maxPasses = n
		}
	}
}

// WithLogger sets the logger used to report routing decisions.
// If logger is nil, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithPassHook registers a function observing every pass.
func WithPassHook(hook PassHook) Option {
	return func(c *Compiler) {
		c.hook = hook
	}
}

// New returns a Compiler dispatching to kernels as classifier decides.
func New(kernels Kernels, classifier router.Classifier, opts ...Option) *Compiler {
	c := &Compiler{
		kernels:    kernels,
		classifier: classifier,
		maxPasses:  DefaultMaxPasses,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile integrates expr with respect to varName.
//
// The task starts as Integral(expr) split over addition. Each pass replaces
// every remaining Integral node by its transformation. The loop stops when no
// integral is left, when a pass changes nothing, or after the maximum number
// of passes. If ctx is done between passes, Compile returns the current task
// together with ctx.Err().
func (c *Compiler) Compile(ctx context.Context, expr symbolic.Expr, varName string) (symbolic.Expr, error) {
	task := Split(symbolic.IntegralOf(expr, varName))

	var last symbolic.Expr
	for pass := 1; pass <= c.maxPasses && symbolic.ContainsIntegral(task); pass++ {
		if err := ctx.Err(); err != nil {
			return task, err
		}
		if last != nil && last.Equal(task) {
			c.debug(ctx, "fixed point", "pass", pass)
			break
		}
		last = task
		task = symbolic.Replace(task, func(n symbolic.Expr) (symbolic.Expr, bool) {
			in, ok := n.(*symbolic.Integral)
			if !ok {
				return nil, false
			}
			return c.transform(ctx, in), true
		})
		if c.hook != nil {
			c.hook(pass, last, task)
		}
	}
	return task, nil
}

// Split distributes an Integral over the terms of its integrand. Other
// expressions are returned unchanged.
func Split(e symbolic.Expr) symbolic.Expr {
	in, ok := e.(*symbolic.Integral)
	if !ok {
		return e
	}
	terms := symbolic.Terms(in.Integrand().Simplify())
	if len(terms) == 1 {
		return e
	}
	parts := make([]symbolic.Expr, len(terms))
	for i, t := range terms {
		parts[i] = symbolic.IntegralOf(t, in.Var())
	}
	return symbolic.AddOf(parts...)
}

func (c *Compiler) transform(ctx context.Context, in *symbolic.Integral) symbolic.Expr {
	integrand, x := in.Integrand(), in.Var()

	intent, err := c.classifier.Classify(ctx, router.Tokenize(integrand))
	if err != nil {
		c.debug(ctx, "classifier failed", "expr", integrand.String(), "error", err)
		intent = router.Fallback
	}
	c.debug(ctx, "route", "intent", intent.String(), "expr", integrand.String())

	switch intent {
	case router.Multiply:
		factors := symbolic.Factors(integrand)
		if len(factors) == 1 {
			return doit(c.kernels.Multiply(integrand, x), x)
		}
		product := factors[0]
		for _, f := range factors[1:] {
			product = c.kernels.Multiply(symbolic.MulOf(product, f), x)
		}
		return doit(product, x)
	case router.Divide:
		return doit(c.kernels.Divide(integrand, x), x)
	case router.Integrate:
		return c.kernels.Integrate(integrand, x)
	default:
		return doit(symbolic.Expand(integrand), x)
	}
}

// doit integrates e directly. Sums whose terms do not all integrate come back
// as a sum of per-term integrals, which later passes route individually.
func doit(e symbolic.Expr, x string) symbolic.Expr {
	return symbolic.IntegrateOrHold(e, x)
}

func (c *Compiler) debug(ctx context.Context, msg string, args ...any) {
	if c.logger != nil {
		c.logger.DebugContext(ctx, msg, args...)
	}
}
