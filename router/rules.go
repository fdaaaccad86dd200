package router

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedTokens is returned when a token stream is not well-formed srepr.
var ErrMalformedTokens = errors.New("malformed token stream")

// node is a parsed srepr call such as Pow(Symbol('x'), Integer(2)). Atoms
// like 2 or 'x' have no args.
type node struct {
	head string
	args []*node
}

func (n *node) String() string {
	if len(n.args) == 0 {
		return n.head
	}
	parts := make([]string, len(n.args))
	for i, a := range n.args {
		parts[i] = a.String()
	}
	return n.head + "(" + strings.Join(parts, ", ") + ")"
}

// parseTokens rebuilds the call tree of a token stream.
func parseTokens(tokens []string) (*node, error) {
	p := &tokenParser{toks: splitCommas(tokens)}
	n, err := p.parse()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("%w: trailing token %q", ErrMalformedTokens, p.toks[p.pos])
	}
	return n, nil
}

// splitCommas separates commas glued to atoms, as in Rational ( 1, 3 ).
func splitCommas(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		for strings.HasSuffix(t, ",") && t != "," {
			out = append(out, strings.TrimSuffix(t, ","))
			t = ","
		}
		out = append(out, t)
	}
	return out
}

type tokenParser struct {
	toks []string
	pos  int
}

func (p *tokenParser) peek() string {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return ""
}

func (p *tokenParser) parse() (*node, error) {
	if p.pos >= len(p.toks) {
		return nil, fmt.Errorf("%w: unexpected end", ErrMalformedTokens)
	}
	head := p.toks[p.pos]
	switch head {
	case "(", ")", ",":
		return nil, fmt.Errorf("%w: unexpected %q at %d", ErrMalformedTokens, head, p.pos)
	}
	p.pos++
	n := &node{head: head}
	if p.peek() != "(" {
		return n, nil
	}
	p.pos++
	for {
		arg, err := p.parse()
		if err != nil {
			return nil, err
		}
		n.args = append(n.args, arg)
		switch p.peek() {
		case ",":
			p.pos++
		case ")":
			p.pos++
			return n, nil
		default:
			return nil, fmt.Errorf("%w: unclosed %s", ErrMalformedTokens, head)
		}
	}
}

// transcendental heads the tabular kernel integrates in closed form.
var transcendental = map[string]bool{
	"sin": true, "cos": true, "tan": true, "exp": true,
	"sinh": true, "cosh": true, "tanh": true,
}

// RuleClassifier picks an intent from the shape of the expression alone:
//
//   - a polynomial divided by a polynomial routes to Divide
//   - a polynomial times one transcendental of a linear argument routes to
//     Integrate
//   - a product of two or more polynomials, or a power of a sum, routes to
//     Multiply
//
// Everything else is Fallback. Every symbol is treated as the variable.
type RuleClassifier struct{}

// Classify implements Classifier. It returns ErrMalformedTokens for streams
// that do not parse.
func (RuleClassifier) Classify(_ context.Context, tokens []string) (Intent, error) {
	root, err := parseTokens(tokens)
	if err != nil {
		return Fallback, err
	}
	return classifyTree(root), nil
}

func classifyTree(root *node) Intent {
	if root.head == "Integral" && len(root.args) > 0 {
		root = root.args[0]
	}
	factors := []*node{root}
	if root.head == "Mul" {
		factors = root.args
	}

	var polys, negPows, trans, other int
	for _, f := range factors {
		switch {
		case isNegativePower(f):
			negPows++
		case degree(f) > 0:
			polys++
		case degree(f) == 0:
		case transcendental[f.head] && len(f.args) == 1 && degree(f.args[0]) == 1:
			trans++
		default:
			other++
		}
	}

	switch {
	case other > 0:
		return Fallback
	case negPows > 0 && trans == 0:
		return Divide
	case trans == 1 && negPows == 0 && polys > 0:
		return Integrate
	case trans == 0 && negPows == 0 && (polys >= 2 || hasPowerOfSum(factors)):
		return Multiply
	}
	return Fallback
}

// maxDegree caps degree so huge exponents cannot overflow.
const maxDegree = 1 << 20

// degree returns the polynomial degree of n, or -1 if n is not a polynomial.
// Degrees above maxDegree are reported as maxDegree.
func degree(n *node) int {
	switch n.head {
	case "Integer", "Rational":
		return 0
	case "Symbol":
		return 1
	case "Add":
		d := 0
		for _, a := range n.args {
			ad := degree(a)
			if ad < 0 {
				return -1
			}
			if ad > d {
				d = ad
			}
		}
		return d
	case "Mul":
		d := 0
		for _, a := range n.args {
			ad := degree(a)
			if ad < 0 {
				return -1
			}
			d += ad
		}
		return min(d, maxDegree)
	case "Pow":
		if len(n.args) != 2 {
			return -1
		}
		k, ok := integerValue(n.args[1])
		if !ok || k < 0 {
			return -1
		}
		bd := degree(n.args[0])
		if bd < 0 {
			return -1
		}
		if bd > 0 && k > maxDegree/int64(bd) {
			return maxDegree
		}
		return bd * int(k)
	}
	return -1
}

func integerValue(n *node) (int64, bool) {
	if n.head != "Integer" || len(n.args) != 1 {
		return 0, false
	}
	k, err := strconv.ParseInt(n.args[0].head, 10, 64)
	return k, err == nil
}

func isNegativePower(n *node) bool {
	if n.head != "Pow" || len(n.args) != 2 {
		return false
	}
	k, ok := integerValue(n.args[1])
	return ok && k < 0 && degree(n.args[0]) > 0
}

func hasPowerOfSum(factors []*node) bool {
	for _, f := range factors {
		if f.head != "Pow" || len(f.args) != 2 || f.args[0].head != "Add" {
			continue
		}
		if k, ok := integerValue(f.args[1]); ok && k >= 2 && degree(f.args[0]) > 0 {
			return true
		}
	}
	return false
}
