package config

import (
	"bytes"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SaiNikhilTadepalli/NeuralSutra/router"
)

func newFS() *flag.FlagSet {
	fs := NewFlagSet("test")
	fs.SetOutput(io.Discard)
	return fs
}

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func TestDefaults(t *testing.T) {
	o := mustParse(t, "x*sin(x)")
	if o.Var != "x" || o.MaxPasses != 10 || o.Workers != 1 || o.Timeout != 30*time.Second {
		t.Errorf("bad defaults %+v", o)
	}
	if o.Format != FormatText || o.Classifier != ClassifierRules || o.LogLevel != "warn" {
		t.Errorf("bad defaults %+v", o)
	}
	if o.Expr != "x*sin(x)" {
		t.Errorf("Expr = %q", o.Expr)
	}
}

func TestExprJoinsArgs(t *testing.T) {
	o := mustParse(t, "-var", "t", "t", "*", "exp(t)")
	if o.Expr != "t * exp(t)" || o.Var != "t" {
		t.Errorf("bad parse %+v", o)
	}
}

func TestRepeatableCases(t *testing.T) {
	o := mustParse(t, "-case", "DUAL_POLY_PRODUCT", "-case", "NESTED_COMPOSITE", "-workers", "4", "-html", "out.html")
	if len(o.Cases) != 2 || o.Workers != 4 || o.HTML != "out.html" {
		t.Errorf("bad parse %+v", o)
	}
}

func TestErrors(t *testing.T) {
	tests := [][]string{
		{"-var", ""},
		{"-max-passes", "0"},
		{"-timeout", "0s"},
		{"-workers", "0"},
		{"-format", "yaml"},
		{"-log-level", "loud"},
		{"-classifier", "oracle"},
		{"-classifier", "model", "-vocab", "v.json"},
		{"-case", "NOPE"},
		{"-unknown-flag"},
	}
	for _, args := range tests {
		if _, err := ParseArgs(newFS(), args); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestModelClassifierOK(t *testing.T) {
	o := mustParse(t, "-classifier", "model", "-vocab", "v.json", "-model-url", "http://localhost:8000/predict")
	if o.Classifier != ClassifierModel {
		t.Errorf("bad parse %+v", o)
	}
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("debug")
	if err != nil || l != slog.LevelDebug {
		t.Errorf("ParseLevel(debug) = %v, %v", l, err)
	}
	if _, err := ParseLevel(""); err == nil {
		t.Error("expected error for empty level")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "info")
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected log output %q", buf.String())
	}
	if _, err := NewLogger(&buf, "chatty"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestBuildClassifier(t *testing.T) {
	c, err := BuildClassifier(ClassifierRules, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(router.RuleClassifier); !ok {
		t.Errorf("want RuleClassifier, got %T", c)
	}

	path := filepath.Join(t.TempDir(), "vocab.json")
	if err := os.WriteFile(path, []byte(`{"Mul": 1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = BuildClassifier(ClassifierModel, path, "http://127.0.0.1:1/predict")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*router.CachedClassifier); !ok {
		t.Errorf("want CachedClassifier, got %T", c)
	}

	if _, err := BuildClassifier(ClassifierModel, filepath.Join(t.TempDir(), "none.json"), ""); err == nil {
		t.Error("expected error for missing vocab")
	}
	if _, err := BuildClassifier("oracle", "", ""); err == nil {
		t.Error("expected error for unknown kind")
	}
}
