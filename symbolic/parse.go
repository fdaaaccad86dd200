package symbolic

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// Parse reads an infix expression such as "x^2*sin(x) - (x^3 + 2*x)/(x + 5)".
//
// Operators: + - * / ^ and ** (right associative), unary minus, and
// parentheses. Identifiers followed by "(" are functions; log is accepted as
// ln and sqrt(u) becomes u^(1/2). Integral(f, x) builds an unevaluated
// integral. Decimal literals are read as exact rationals, so 0.5 is 1/2.
func Parse(input string) (Expr, error) {
	p := &parser{src: input}
	if err := p.lex(); err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, "unexpected %q", tok.text)
	}
	return e, nil
}

// MustParse is Parse for literals known to be valid; it panics on error.
func MustParse(input string) Expr {
	e, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return e
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNum
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type parser struct {
	src  string
	toks []token
	i    int
}

func (p *parser) errorf(tok token, format string, args ...any) error {
	return fmt.Errorf("%w at offset %d in %q: %s", ErrSyntax, tok.pos, p.src, fmt.Sprintf(format, args...))
}

func (p *parser) lex() error {
	s := p.src
	for i := 0; i < len(s); {
		c := rune(s[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case unicode.IsDigit(c) || (c == '.' && i+1 < len(s) && unicode.IsDigit(rune(s[i+1]))):
			j := i
			for j < len(s) && (unicode.IsDigit(rune(s[j])) || s[j] == '.') {
				j++
			}
			if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
				k := j + 1
				if k < len(s) && (s[k] == '+' || s[k] == '-') {
					k++
				}
				if k < len(s) && unicode.IsDigit(rune(s[k])) {
					for k < len(s) && unicode.IsDigit(rune(s[k])) {
						k++
					}
					j = k
				}
			}
			p.toks = append(p.toks, token{kind: tokNum, text: s[i:j], pos: i})
			i = j
		case unicode.IsLetter(c) || c == '_':
			j := i
			for j < len(s) && (unicode.IsLetter(rune(s[j])) || unicode.IsDigit(rune(s[j])) || s[j] == '_') {
				j++
			}
			p.toks = append(p.toks, token{kind: tokIdent, text: s[i:j], pos: i})
			i = j
		case strings.HasPrefix(s[i:], "**"):
			p.toks = append(p.toks, token{kind: tokOp, text: "^", pos: i})
			i += 2
		case strings.ContainsRune("+-*/^", c):
			p.toks = append(p.toks, token{kind: tokOp, text: string(c), pos: i})
			i++
		case c == '(':
			p.toks = append(p.toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case c == ')':
			p.toks = append(p.toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		case c == ',':
			p.toks = append(p.toks, token{kind: tokComma, text: ",", pos: i})
			i++
		default:
			return fmt.Errorf("%w at offset %d in %q: unexpected character %q", ErrSyntax, i, s, c)
		}
	}
	p.toks = append(p.toks, token{kind: tokEOF, text: "end of input", pos: len(s)})
	return nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) isOp(op string) bool {
	t := p.peek()
	return t.kind == tokOp && t.text == op
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, p.errorf(t, "expected %s, got %q", what, t.text)
	}
	return t, nil
}

// expr := term (('+'|'-') term)*
func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	terms := []Expr{left}
	for p.isOp("+") || p.isOp("-") {
		op := p.next().text
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if op == "-" {
			right = MulOf(N(-1), right)
		}
		terms = append(terms, right)
	}
	if len(terms) == 1 {
		return left, nil
	}
	return AddOf(terms...), nil
}

// term := unary (('*'|'/') unary)*
func (p *parser) parseTerm() (Expr, error) {
	acc, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isOp("*") || p.isOp("/") {
		opTok := p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if opTok.text == "*" {
			acc = MulOf(acc, right)
			continue
		}
		if isNumEqual(right, 0) {
			return nil, p.errorf(opTok, "division by zero")
		}
		acc = MulOf(acc, PowOf(right, N(-1)))
	}
	return acc, nil
}

// unary := ('-'|'+') unary | power
func (p *parser) parseUnary() (Expr, error) {
	if p.isOp("-") {
		p.next()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return MulOf(N(-1), e), nil
	}
	if p.isOp("+") {
		p.next()
		return p.parseUnary()
	}
	return p.parsePower()
}

// power := primary ('^' unary)?
func (p *parser) parsePower() (Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if !p.isOp("^") {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return PowOf(base, exp), nil
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		r, ok := new(big.Rat).SetString(t.text)
		if !ok {
			return nil, p.errorf(t, "invalid number %q", t.text)
		}
		return &Num{val: r}, nil
	case tokLParen:
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, `")"`); err != nil {
			return nil, err
		}
		return e, nil
	case tokIdent:
		if p.peek().kind != tokLParen {
			return S(t.text), nil
		}
		return p.parseCall(t)
	}
	return nil, p.errorf(t, "unexpected %q", t.text)
}

func (p *parser) parseCall(name token) (Expr, error) {
	p.next() // (
	arg, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if name.text == "Integral" || name.text == "integrate" {
		if _, err := p.expect(tokComma, `","`); err != nil {
			return nil, err
		}
		v, err := p.expect(tokIdent, "integration variable")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, `")"`); err != nil {
			return nil, err
		}
		return IntegralOf(arg, v.text), nil
	}
	if _, err := p.expect(tokRParen, `")"`); err != nil {
		return nil, err
	}
	switch name.text {
	case "sqrt":
		return SqrtOf(arg), nil
	case "log":
		return LnOf(arg), nil
	}
	if !knownFuncs[name.text] {
		return nil, p.errorf(name, "unknown function %q", name.text)
	}
	return funcOf(name.text, arg).Simplify(), nil
}
