// Command nsutra routes integrals to the polynomial kernels from the command
// line.
//
// Usage:
//
//	nsutra compile [-var x] [-max-passes 10] [-trace] EXPR
//	nsutra multiply|divide|integrate [-var x] EXPR
//	nsutra verify -candidate F EXPR
//	nsutra classify EXPR
//	nsutra tokens EXPR
//	nsutra bench [-case NAME]... [-workers N] [-timeout 30s] [-html chart.html]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/SaiNikhilTadepalli/NeuralSutra/bench"
	"github.com/SaiNikhilTadepalli/NeuralSutra/compiler"
	"github.com/SaiNikhilTadepalli/NeuralSutra/engine"
	"github.com/SaiNikhilTadepalli/NeuralSutra/internal/config"
	"github.com/SaiNikhilTadepalli/NeuralSutra/internal/passdiff"
	"github.com/SaiNikhilTadepalli/NeuralSutra/router"
	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
	"github.com/SaiNikhilTadepalli/NeuralSutra/verify"
)

const usage = `usage: nsutra <command> [flags] [expression]

commands:
  compile     integrate with kernel routing
  multiply    run the multiplication kernel
  divide      run the division kernel
  integrate   run the tabular integration kernel
  verify      check -candidate against the integrand
  classify    print the kernel intent of an integrand
  tokens      print the srepr token stream
  bench       run the benchmark suite

run "nsutra <command> -h" for flags
`

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" {
		fmt.Fprint(stderr, usage)
		if len(args) == 0 {
			return exitUsage
		}
		return exitOK
	}
	cmd := args[0]

	fs := config.NewFlagSet("nsutra " + cmd)
	fs.SetOutput(stderr)
	opts, err := config.ParseArgs(fs, args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, "nsutra:", err)
		return exitUsage
	}
	logger, err := config.NewLogger(stderr, opts.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, "nsutra:", err)
		return exitUsage
	}
	app := &app{opts: opts, stdout: stdout, stderr: stderr, engine: engine.New(engine.WithLogger(logger))}
	app.compilerOpts = []compiler.Option{compiler.WithMaxPasses(opts.MaxPasses), compiler.WithLogger(logger)}
	if opts.Trace {
		tracer := &passdiff.Tracer{W: stderr}
		app.compilerOpts = append(app.compilerOpts, compiler.WithPassHook(tracer.Observe))
	}

	var cmdErr error
	switch cmd {
	case "compile":
		cmdErr = app.compile(ctx)
	case "multiply":
		cmdErr = app.kernel(app.engine.Multiply)
	case "divide":
		cmdErr = app.kernel(app.engine.Divide)
	case "integrate":
		cmdErr = app.kernel(app.engine.Integrate)
	case "verify":
		cmdErr = app.verify()
	case "classify":
		cmdErr = app.classify(ctx)
	case "tokens":
		cmdErr = app.tokens()
	case "bench":
		cmdErr = app.bench(ctx, logger)
	default:
		fmt.Fprintf(stderr, "nsutra: unknown command %q\n\n%s", cmd, usage)
		return exitUsage
	}

	var ue usageError
	switch {
	case cmdErr == nil:
		return exitOK
	case errors.As(cmdErr, &ue):
		fmt.Fprintln(stderr, "nsutra:", cmdErr)
		return exitUsage
	case errors.Is(cmdErr, errFailed):
		return exitError
	default:
		fmt.Fprintln(stderr, "nsutra:", cmdErr)
		return exitError
	}
}

type usageError string

func (e usageError) Error() string { return string(e) }

// errFailed reports a negative answer that has already been printed.
var errFailed = errors.New("failed")

type app struct {
	opts         config.Options
	stdout       io.Writer
	stderr       io.Writer
	engine       *engine.Engine
	compilerOpts []compiler.Option
}

func (a *app) expr() (symbolic.Expr, error) {
	if a.opts.Expr == "" {
		return nil, usageError("missing expression")
	}
	return symbolic.Parse(a.opts.Expr)
}

func (a *app) print(e symbolic.Expr) error {
	switch a.opts.Format {
	case config.FormatLaTeX:
		_, err := fmt.Fprintln(a.stdout, symbolic.LaTeX(e))
		return err
	case config.FormatJSON:
		s, err := symbolic.ToJSON(e)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.stdout, s)
		return err
	}
	_, err := fmt.Fprintln(a.stdout, symbolic.String(e))
	return err
}

func (a *app) compile(ctx context.Context) error {
	e, err := a.expr()
	if err != nil {
		return err
	}
	cls, err := a.opts.NewClassifier()
	if err != nil {
		return err
	}
	out, err := compiler.New(a.engine, cls, a.compilerOpts...).Compile(ctx, e, a.opts.Var)
	if err != nil {
		return err
	}
	return a.print(out)
}

func (a *app) kernel(fn func(symbolic.Expr, string) symbolic.Expr) error {
	e, err := a.expr()
	if err != nil {
		return err
	}
	return a.print(fn(e, a.opts.Var))
}

func (a *app) verify() error {
	e, err := a.expr()
	if err != nil {
		return err
	}
	if a.opts.Candidate == "" {
		return usageError("verify needs -candidate")
	}
	cand, err := symbolic.Parse(a.opts.Candidate)
	if err != nil {
		return err
	}
	ok := verify.Verify(e, cand, a.opts.Var)
	fmt.Fprintln(a.stdout, ok)
	if !ok {
		return errFailed
	}
	return nil
}

func (a *app) classify(ctx context.Context) error {
	e, err := a.expr()
	if err != nil {
		return err
	}
	cls, err := a.opts.NewClassifier()
	if err != nil {
		return err
	}
	intent, err := cls.Classify(ctx, router.Tokenize(e))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, intent)
	return err
}

func (a *app) tokens() error {
	e, err := a.expr()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, strings.Join(router.Tokenize(e), " "))
	return err
}

func (a *app) bench(ctx context.Context, logger *slog.Logger) error {
	cases := bench.Cases()
	if len(a.opts.Cases) > 0 {
		cases = nil
		for _, name := range a.opts.Cases {
			c, _ := bench.Lookup(name)
			cases = append(cases, c)
		}
	}
	cls, err := a.opts.NewClassifier()
	if err != nil {
		return err
	}
	runner := bench.NewRunner(compiler.New(a.engine, cls, a.compilerOpts...),
		bench.WithTimeout(a.opts.Timeout),
		bench.WithWorkers(a.opts.Workers),
		bench.WithLogger(logger),
	)
	results, err := runner.Run(ctx, cases)
	if err != nil {
		return err
	}
	if err := bench.WriteText(a.stdout, results); err != nil {
		return err
	}
	if a.opts.HTML != "" {
		if err := writeChart(a.opts.HTML, results); err != nil {
			return err
		}
		fmt.Fprintln(a.stderr, "chart:", a.opts.HTML)
	}
	for _, r := range results {
		if !r.Correct {
			return errFailed
		}
	}
	return nil
}

func writeChart(path string, results []bench.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	if err := bench.WriteChart(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
