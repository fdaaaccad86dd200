// Package config parses and validates nsutra command-line options.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/SaiNikhilTadepalli/NeuralSutra/bench"
	"github.com/SaiNikhilTadepalli/NeuralSutra/compiler"
	"github.com/SaiNikhilTadepalli/NeuralSutra/router"
)

// Output formats
const (
	FormatText  = "text"
	FormatLaTeX = "latex"
	FormatJSON  = "json"
)

// Options holds the flags shared by every nsutra command.
type Options struct {
	// Input
	Expr      string // positional arguments joined by spaces
	Candidate string // verify: proposed antiderivative
	Var       string

	// Routing
	Classifier string // rules | model
	Vocab      string
	ModelURL   string
	MaxPasses  int

	// Benchmarks
	Timeout time.Duration
	Workers int
	Cases   []string
	HTML    string

	// Output
	Format   string
	Trace    bool
	LogLevel string
}

// Classifier kinds
const (
	ClassifierRules = "rules"
	ClassifierModel = "model"
)

// NewFlagSet returns a FlagSet that reports errors instead of exiting.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage of %s:\n", name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers all flags on fs, parses argv and validates the result.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options

	fs.StringVar(&opt.Var, "var", "x", "integration variable [x]")
	fs.StringVar(&opt.Candidate, "candidate", "", "antiderivative to check (verify)")

	fs.StringVar(&opt.Classifier, "classifier", ClassifierRules, "intent classifier: rules | model [rules]")
	fs.StringVar(&opt.Vocab, "vocab", "", "vocabulary JSON for -classifier=model")
	fs.StringVar(&opt.ModelURL, "model-url", "", "model server endpoint for -classifier=model")
	fs.IntVar(&opt.MaxPasses, "max-passes", compiler.DefaultMaxPasses, fmt.Sprintf("maximum compiler passes [%d]", compiler.DefaultMaxPasses))

	fs.DurationVar(&opt.Timeout, "timeout", bench.DefaultTimeout, "per-run benchmark timeout ["+bench.DefaultTimeout.String()+"]")
	fs.IntVar(&opt.Workers, "workers", bench.DefaultWorkers, "benchmark cases run concurrently [1]")
	var cases stringSlice
	fs.Var(&cases, "case", "benchmark case to run (repeatable, default all)")
	fs.StringVar(&opt.HTML, "html", "", "write a benchmark chart to this HTML file")

	fs.StringVar(&opt.Format, "format", FormatText, "output format: text | latex | json [text]")
	fs.BoolVar(&opt.Trace, "trace", false, "print a diff of every compiler pass to stderr [false]")
	fs.StringVar(&opt.LogLevel, "log-level", "warn", "log level: debug | info | warn | error [warn]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	opt.Cases = cases
	opt.Expr = strings.TrimSpace(strings.Join(fs.Args(), " "))

	if err := opt.Validate(); err != nil {
		return opt, err
	}
	return opt, nil
}

// Validate checks option values that do not depend on the command.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Var) == "" {
		return errors.New("-var must not be empty")
	}
	if o.MaxPasses < 1 {
		return errors.New("-max-passes must be ≥ 1")
	}
	if o.Timeout <= 0 {
		return errors.New("-timeout must be > 0")
	}
	if o.Workers < 1 {
		return errors.New("-workers must be ≥ 1")
	}
	switch o.Format {
	case FormatText, FormatLaTeX, FormatJSON:
	default:
		return fmt.Errorf("invalid -format %q", o.Format)
	}
	if _, err := ParseLevel(o.LogLevel); err != nil {
		return err
	}
	switch o.Classifier {
	case ClassifierRules:
	case ClassifierModel:
		if o.Vocab == "" || o.ModelURL == "" {
			return errors.New("-classifier=model needs -vocab and -model-url")
		}
	default:
		return fmt.Errorf("invalid -classifier %q", o.Classifier)
	}
	for _, name := range o.Cases {
		if _, ok := bench.Lookup(name); !ok {
			return fmt.Errorf("unknown benchmark case %q", name)
		}
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid -log-level %q", s)
	}
	return l, nil
}

// NewLogger returns a text logger writing to w at the named level.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

// NewClassifier builds the classifier selected by o.
func (o Options) NewClassifier() (router.Classifier, error) {
	return BuildClassifier(o.Classifier, o.Vocab, o.ModelURL)
}

// BuildClassifier returns the rule classifier, or for kind "model" a cached
// classifier over the vocabulary at vocabPath and the model server at
// modelURL.
func BuildClassifier(kind, vocabPath, modelURL string) (router.Classifier, error) {
	switch kind {
	case ClassifierRules, "":
		return router.RuleClassifier{}, nil
	case ClassifierModel:
		vocab, err := router.LoadVocab(vocabPath)
		if err != nil {
			return nil, err
		}
		model := router.NewModelClassifier(vocab, router.NewHTTPModel(modelURL))
		return router.NewCachedClassifier(model), nil
	}
	return nil, fmt.Errorf("invalid classifier %q", kind)
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
