// Package passdiff renders the change made by one compiler pass as a unified
// diff, one additive term per line.
package passdiff

import (
	"fmt"
	"io"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"

	"github.com/SaiNikhilTadepalli/NeuralSutra/symbolic"
)

// DefaultContext is the number of unchanged terms shown around a change.
const DefaultContext = 2

// Lines returns the additive terms of e, one per line.
func Lines(e symbolic.Expr) []string {
	terms := symbolic.Terms(e)
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.String() + "\n"
	}
	return out
}

// Unified returns the unified diff from before to after for the given pass,
// or "" when the pass changed nothing.
func Unified(pass int, before, after symbolic.Expr) (string, error) {
	u := difflib.UnifiedDiff{
		A:        Lines(before),
		B:        Lines(after),
		FromFile: fmt.Sprintf("pass %d", pass-1),
		ToFile:   fmt.Sprintf("pass %d", pass),
		Context:  DefaultContext,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return "", fmt.Errorf("diff pass %d: %w", pass, err)
	}
	return s, nil
}

// Tracer writes the diff of every pass it observes to W.
type Tracer struct {
	W io.Writer
}

// Observe has the shape of a compiler pass hook.
func (t *Tracer) Observe(pass int, before, after symbolic.Expr) {
	s, err := Unified(pass, before, after)
	if err != nil {
		fmt.Fprintf(t.W, "pass %d: %v\n", pass, err)
		return
	}
	if s == "" {
		fmt.Fprintf(t.W, "pass %d: no change\n", pass)
		return
	}
	io.WriteString(t.W, s)
	if !strings.HasSuffix(s, "\n") {
		io.WriteString(t.W, "\n")
	}
}
