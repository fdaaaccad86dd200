// Package engine is the facade over the polynomial kernels. Every operation
// is total: a structural mismatch is logged and the kernel's fallback result
// is returned.
package engine

import (
	"context"
	"log/slog"

	"github.com/SaiNikhilTadepalli/NeuralSutra/kernel"
	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
)

// Engine dispatches expressions to the multiply, divide and integrate
// kernels. It is safe for concurrent use.
type Engine struct {
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used to report kernel fallbacks.
// If logger is nil, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New returns an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Multiply runs the multiplication kernel, expanding on mismatch.
func (e *Engine) Multiply(expr symbolic.Expr, varName string) symbolic.Expr {
	r, err := kernel.MultiplyExact(expr, varName)
	if err != nil {
		e.fallback("multiply", expr, err)
		return kernel.MultiplyFallback(expr)
	}
	return r
}

// Divide runs the division kernel, returning expr unchanged on mismatch.
func (e *Engine) Divide(expr symbolic.Expr, varName string) symbolic.Expr {
	r, err := kernel.DivideExact(expr, varName)
	if err != nil {
		e.fallback("divide", expr, err)
		return kernel.DivideFallback(expr)
	}
	return r
}

// Integrate runs the tabular integration kernel, integrating directly on
// mismatch.
func (e *Engine) Integrate(expr symbolic.Expr, varName string) symbolic.Expr {
	r, err := kernel.IntegrateExact(expr, varName)
	if err != nil {
		e.fallback("integrate", expr, err)
		return kernel.IntegrateFallback(expr, varName)
	}
	return r
}

func (e *Engine) fallback(op string, expr symbolic.Expr, err error) {
	if e.logger == nil {
		return
	}
	e.logger.DebugContext(context.Background(), "kernel fallback",
		"kernel", op,
		"expr", expr.String(),
		"error", err,
	)
}
