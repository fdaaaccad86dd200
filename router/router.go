// Package router turns integrands into token streams and maps them to the
// kernel that should handle them.
//
// The token stream is the srepr form of an expression with parentheses
// padded by spaces and split on whitespace, e.g.
//
//	Mul ( Integer ( 2 ) , Pow ( Symbol ( 'x' ) , Integer ( 3 ) ) )
//
// A Classifier maps such a stream to an Intent. RuleClassifier decides from
// the structure alone; ModelClassifier defers to an external sequence model
// through a Vocab.
package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
)

// Intent is the kernel a classifier selects for an integrand.
type Intent int

const (
	Fallback Intent = iota
	Multiply
	Divide
	Integrate
)

var intentNames = [...]string{"fallback", "multiply", "divide", "integrate"}

func (i Intent) String() string {
	if i < 0 || int(i) >= len(intentNames) {
		return fmt.Sprintf("intent(%d)", int(i))
	}
	return intentNames[i]
}

// Valid reports whether i is one of the four known intents.
func (i Intent) Valid() bool { return i >= Fallback && i <= Integrate }

// ParseIntent accepts an intent name or its class number.
func ParseIntent(s string) (Intent, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range intentNames {
		if s == name || s == fmt.Sprint(i) {
			return Intent(i), nil
		}
	}
	return Fallback, fmt.Errorf("unknown intent %q", s)
}

// Classifier predicts the intent for a token stream.
type Classifier interface {
	Classify(ctx context.Context, tokens []string) (Intent, error)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, tokens []string) (Intent, error)

func (f ClassifierFunc) Classify(ctx context.Context, tokens []string) (Intent, error) {
	return f(ctx, tokens)
}

// Tokenize returns the srepr token stream of e.
func Tokenize(e symbolic.Expr) []string {
	s := symbolic.Srepr(e)
	s = strings.ReplaceAll(s, "(", " ( ")
	s = strings.ReplaceAll(s, ")", " ) ")
	return strings.Fields(s)
}
