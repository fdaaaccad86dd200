package bench

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
	"github.com/SaiNikhilTadepalli/NeuralSutra/verify"
)

const (
	DefaultTimeout = 30 * time.Second
	DefaultWorkers = 1
)

// Status is the outcome of one timed run.
type Status string

const (
	StatusOK      Status = "OK"
	StatusTimeout Status = "TIMEOUT"
	StatusError   Status = "ERROR"
)

// Compiler is the compile operation under test. *compiler.Compiler
// satisfies it.
type Compiler interface {
	Compile(ctx context.Context, expr symbolic.Expr, varName string) (symbolic.Expr, error)
}

// Timing is one timed run. A timed-out run reports the timeout as its
// duration.
type Timing struct {
	Elapsed time.Duration
	Status  Status
	Err     error
	Output  symbolic.Expr
}

// Result compares the baseline and the compiler on a single case.
type Result struct {
	Case     Case
	Baseline Timing
	Compiler Timing
	Correct  bool
	// Closed reports whether the compiler output is free of unevaluated
	// integrals. A held integral verifies trivially.
	Closed bool
	// Speedup is baseline time over compiler time, 0 when the compiler took
	// no measurable time.
	Speedup float64
}

// Runner times the direct integration baseline against a Compiler.
type Runner struct {
	compiler Compiler
	timeout  time.Duration
	workers  int
	verifier *verify.Verifier
	logger   *slog.Logger
	baseline func(symbolic.Expr, string) symbolic.Expr
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTimeout sets the per-run timeout.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithWorkers sets how many cases run concurrently.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithVerifier replaces the default antiderivative check.
func WithVerifier(v *verify.Verifier) RunnerOption {
	return func(r *Runner) {
		r.verifier = v
	}
}

// WithLogger sets the logger used to report case progress.
// If logger is nil, logging is disabled.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithBaseline replaces direct integration as the baseline.
func WithBaseline(fn func(expr symbolic.Expr, varName string) symbolic.Expr) RunnerOption {
	return func(r *Runner) {
		r.baseline = fn
	}
}

// NewRunner returns a Runner for c.
func NewRunner(c Compiler, opts ...RunnerOption) *Runner {
	r := &Runner{
		compiler: c,
		timeout:  DefaultTimeout,
		workers:  DefaultWorkers,
		verifier: verify.New(),
		baseline: symbolic.IntegrateOrHold,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run benchmarks every case and returns the results in input order. It fails
// only when ctx is done before all cases finished.
func (r *Runner) Run(ctx context.Context, cases []Case) ([]Result, error) {
	results := make([]Result, len(cases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.RunCase(gctx, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

// RunCase times the baseline and the compiler on c and verifies the compiler
// output.
func (r *Runner) RunCase(ctx context.Context, c Case) Result {
	res := Result{Case: c}
	res.Baseline = r.timed(ctx, func(context.Context) (symbolic.Expr, error) {
		return r.baseline(c.Expr, Var), nil
	})
	res.Compiler = r.timed(ctx, func(ctx context.Context) (symbolic.Expr, error) {
		return r.compiler.Compile(ctx, c.Expr, Var)
	})
	if res.Compiler.Status == StatusOK {
		res.Correct = r.verifier.Verify(c.Expr, res.Compiler.Output, Var)
		res.Closed = !symbolic.ContainsIntegral(res.Compiler.Output)
	}
	if res.Compiler.Elapsed > 0 {
		res.Speedup = float64(res.Baseline.Elapsed) / float64(res.Compiler.Elapsed)
	}
	if r.logger != nil {
		r.logger.InfoContext(ctx, "case finished",
			"case", c.Name,
			"baseline", res.Baseline.Elapsed,
			"baseline_status", res.Baseline.Status,
			"compiler", res.Compiler.Elapsed,
			"compiler_status", res.Compiler.Status,
			"correct", res.Correct,
			"closed", res.Closed,
		)
	}
	return res
}

type outcome struct {
	expr symbolic.Expr
	err  error
}

// timed runs fn under the runner timeout. Go cannot stop a running
// goroutine, so a run that misses its deadline is abandoned; its result is
// dropped into a buffered channel nobody reads.
func (r *Runner) timed(ctx context.Context, fn func(context.Context) (symbolic.Expr, error)) Timing {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	done := make(chan outcome, 1)
	start := time.Now()
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- outcome{err: fmt.Errorf("panic: %v", p)}
			}
		}()
		e, err := fn(ctx)
		done <- outcome{expr: e, err: err}
	}()

	select {
	case out := <-done:
		elapsed := time.Since(start)
		if out.err != nil {
			if ctx.Err() != nil {
				return Timing{Elapsed: r.timeout, Status: StatusTimeout, Err: out.err}
			}
			return Timing{Elapsed: elapsed, Status: StatusError, Err: out.err}
		}
		return Timing{Elapsed: elapsed, Status: StatusOK, Output: out.expr}
	case <-ctx.Done():
		return Timing{Elapsed: r.timeout, Status: StatusTimeout, Err: ctx.Err()}
	}
}
