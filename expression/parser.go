package expression

import (
	"fmt"
	"math"
)

const (
	glyphX = "\U0001d465"
	plainX = "x"
)

var constants = map[string]float64{
	"pi":    math.Pi,
	"e":     math.E,
	"tau":   2 * math.Pi,
	"inf":   math.Inf(1),
	"nan":   math.NaN(),
	"True":  1,
	"False": 0,
	"true":  1,
	"false": 0,
}

type parser struct {
	tokens []token
	at     int
}

func parse(src string) (node, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.unexpected(tok)
	}
	return n, nil
}

func (p *parser) peek() token {
	return p.tokens[p.at]
}

func (p *parser) next() token {
	tok := p.tokens[p.at]
	if tok.kind != tokEOF {
		p.at++
	}
	return tok
}

func (p *parser) unexpected(tok token) error {
	return fmt.Errorf("%w: unexpected %v at position %v", ErrSyntax, tok, tok.pos)
}

func (p *parser) isKeyword(word string) bool {
	tok := p.peek()
	return tok.kind == tokIdent && tok.text == word
}

func (p *parser) isOp(ops ...string) bool {
	tok := p.peek()
	if tok.kind != tokOp {
		return false
	}
	for _, op := range ops {
		if tok.text == op {
			return true
		}
	}
	return false
}

// expr := or ["if" or "else" expr]
func (p *parser) parseExpr() (node, error) {
	then, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.isKeyword("if") {
		return then, nil
	}
	p.next()
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.isKeyword("else") {
		return nil, p.unexpected(p.peek())
	}
	p.next()
	otherwise, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &conditionalNode{cond: cond, then: then, otherwise: otherwise}, nil
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("or") {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &logicNode{op: "or", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("and") {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &logicNode{op: "and", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseNot() (node, error) {
	if p.isKeyword("not") {
		p.next()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: "not", operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (node, error) {
	first, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	if !p.isOp("<", "<=", ">", ">=", "==", "!=") {
		return first, nil
	}
	cmp := &compareNode{operands: []node{first}}
	for p.isOp("<", "<=", ">", ">=", "==", "!=") {
		cmp.ops = append(cmp.ops, p.next().text)
		operand, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		cmp.operands = append(cmp.operands, operand)
	}
	return cmp, nil
}

func (p *parser) parseArith() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.isOp("+", "-") {
		op := p.next().text
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isOp("*", "/", "//", "%") {
		op := p.next().text
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.isOp("+", "-") {
		op := p.next().text
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: op, operand: operand}, nil
	}
	return p.parsePower()
}

// power binds tighter than a unary minus on its left, so -2**2 is -4, and
// associates to the right.
func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if !p.isOp("**") {
		return base, nil
	}
	p.next()
	exponent, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &binaryNode{op: "**", left: base, right: exponent}, nil
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		return &numberNode{value: tok.num}, nil
	case tokLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, p.unexpected(closing)
		}
		return inner, nil
	case tokIdent:
		if isKeyword(tok.text) {
			return nil, p.unexpected(tok)
		}
		if p.peek().kind == tokLParen {
			return p.parseCall(tok)
		}
		if tok.text == plainX || tok.text == glyphX {
			return &variableNode{pos: tok.pos}, nil
		}
		if v, ok := constants[tok.text]; ok {
			return &numberNode{value: v}, nil
		}
		return &identNode{name: tok.text, pos: tok.pos}, nil
	}
	return nil, p.unexpected(tok)
}

func (p *parser) parseCall(name token) (node, error) {
	p.next()
	call := &callNode{name: name.text, pos: name.pos}
	if p.peek().kind == tokRParen {
		p.next()
		return call, nil
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		call.args = append(call.args, arg)
		tok := p.next()
		switch tok.kind {
		case tokComma:
			continue
		case tokRParen:
			return call, nil
		}
		return nil, p.unexpected(tok)
	}
}

func isKeyword(word string) bool {
	switch word {
	case "and", "or", "not", "if", "else":
		return true
	}
	return false
}
