package symbolic

import (
	"fmt"
	"strconv"
	"unicode"
)

// Parse converts an infix expression string into an expression tree.
//
// Grammar (standard precedence, ^ binds tightest and is right-associative):
//
//	expr   := mul { ("+" | "-") mul }
//	mul    := unary { ("*" | "/") unary }
//	unary  := [ "+" | "-" ] pow
//	pow    := atom [ "^" unary ]
//	atom   := number | symbol | fn "(" expr ")" | "(" expr ")"
//
// Symbols are Go-style identifiers; a symbol immediately followed by "(" is
// a function call and must name a member of the fixed vocabulary.
func Parse(src string) (Expr, error) {
	p := &parser{src: src}
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, ErrEmptyExpression
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, fmt.Errorf("%w: trailing input at offset %d: %q", ErrParse, p.pos, p.src[p.pos:])
	}

	return e, nil
}

// MustParse is Parse for expressions known to be valid; it panics on error.
// Intended for tests and fixed internal expressions only.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}

	return e
}

type parser struct {
	src string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n' || p.src[p.pos] == '\r') {
		p.pos++
	}
}

// peek returns the next non-space byte without consuming it, or 0 at EOF.
func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}

	return p.src[p.pos]
}

func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	terms := []Expr{left}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			t, err := p.parseMul()
			if err != nil {
				return nil, err
			}
			terms = append(terms, t)
		case '-':
			p.pos++
			t, err := p.parseMul()
			if err != nil {
				return nil, err
			}
			terms = append(terms, Neg(t))
		default:
			return AddOf(terms...), nil
		}
	}
}

func (p *parser) parseMul() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	acc := left
	for {
		switch p.peek() {
		case '*':
			p.pos++
			f, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			acc = MulOf(acc, f)
		case '/':
			p.pos++
			f, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			acc = Div(acc, f)
		default:
			return acc, nil
		}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	switch p.peek() {
	case '-':
		p.pos++
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return Neg(e), nil
	case '+':
		p.pos++

		return p.parseUnary()
	}

	return p.parsePow()
}

func (p *parser) parsePow() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek() != '^' {
		return base, nil
	}
	p.pos++
	// Right-associative; unary so that x^-2 parses.
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return PowOf(base, exp), nil
}

func (p *parser) parseAtom() (Expr, error) {
	c := p.peek()
	switch {
	case c == 0:
		return nil, fmt.Errorf("%w: unexpected end of input", ErrParse)

	case c == '(':
		p.pos++
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, fmt.Errorf("%w: missing ) at offset %d", ErrParse, p.pos)
		}
		p.pos++

		return e, nil

	case c >= '0' && c <= '9' || c == '.':
		return p.parseNumber()

	case isIdentStart(rune(c)):
		return p.parseIdent()
	}

	return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrParse, string(c), p.pos)
}

func (p *parser) parseNumber() (Expr, error) {
	start := p.pos
	for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	// Scientific notation: 1e-3, 2.5E+10.
	if p.pos < len(p.src) && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
		mark := p.pos
		p.pos++
		if p.pos < len(p.src) && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
			p.pos++
		}
		if p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
				p.pos++
			}
		} else {
			p.pos = mark // "e" belongs to a following identifier, not the number
		}
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad number %q at offset %d", ErrParse, p.src[start:p.pos], start)
	}

	return NumOf(v), nil
}

func (p *parser) parseIdent() (Expr, error) {
	start := p.pos
	for p.pos < len(p.src) && isIdentPart(rune(p.src[p.pos])) {
		p.pos++
	}
	name := p.src[start:p.pos]

	if p.peek() == '(' {
		p.pos++
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, fmt.Errorf("%w: missing ) after %s( at offset %d", ErrParse, name, p.pos)
		}
		p.pos++

		return CallOf(name, arg)
	}

	return SymOf(name), nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentPart(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
